package debugui

import "github.com/plus3/puppet/ecs"

type TransformInspectorComponent struct {
	selected ecs.EntityId
}

type CameraPanelComponent struct{}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}
