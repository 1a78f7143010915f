package debugui

import (
	"github.com/plus3/puppet/camera"
	"github.com/plus3/puppet/ecs"
)

// PanelSystem defers the render function of every inspector window.
type PanelSystem struct {
	Inspectors ecs.Query[struct{ *TransformInspectorComponent }]
	Cameras    ecs.Query[struct{ *CameraPanelComponent }]
	Stats      ecs.Query[struct{ *PerformanceStatsComponent }]
	Camera     ecs.Singleton[camera.ViewProjection]

	Scheduler *ecs.Scheduler
}

func (p *PanelSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range p.Stats.Iter() {
		stats := item.PerformanceStatsComponent
		stats.record(frame.DeltaTime)
		frame.Commands.Defer(func() { stats.Render(frame.Storage, p.Scheduler) })
	}
	for item := range p.Inspectors.Iter() {
		inspector := item.TransformInspectorComponent
		frame.Commands.Defer(func() { inspector.Render(frame.Storage) })
	}
	for item := range p.Cameras.Iter() {
		panel := item.CameraPanelComponent
		frame.Commands.Defer(func() { panel.Render(p.Camera.Get()) })
	}
}

// Overlay installs the inspector windows into every scene. It satisfies
// scene.Extension.
type Overlay struct {
	HistoryFrames int
}

func (o *Overlay) RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[TransformInspectorComponent](registry)
	ecs.RegisterComponent[CameraPanelComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
}

func (o *Overlay) Install(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	history := o.HistoryFrames
	if history <= 0 {
		history = 120
	}

	ecs.NewSingleton[ImguiInputState](storage)
	storage.Spawn(NewPerformanceStatsComponent(history))
	storage.Spawn(NewTransformInspectorComponent())
	storage.Spawn(CameraPanelComponent{})

	scheduler.Register(&ImguiSystem{})
	scheduler.Register(&PanelSystem{Scheduler: scheduler})
}
