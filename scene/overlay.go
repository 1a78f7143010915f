package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/puppet/camera"
	"github.com/plus3/puppet/debugtext"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/transform"
)

// OverlayLine selects one line of the debug overlay.
type OverlayLine int

const (
	LineEye OverlayLine = iota
	LineTarget
	LineUp
	LineFov
	LineNearZ
	LineRoot
)

const (
	overlayX    = 50
	overlayY    = 50
	overlayStep = 20
)

var overlayLines = map[string][]OverlayLine{
	"character": {LineEye, LineTarget, LineUp, LineFov, LineNearZ, LineRoot},
	"scatter":   {LineEye, LineTarget, LineUp},
	"cube":      {LineFov, LineNearZ},
}

// OverlaySystem prints the camera state, and the character's position when
// there is one, into the debug text for this frame.
type OverlaySystem struct {
	Camera ecs.Singleton[camera.ViewProjection]
	Text   ecs.Singleton[debugtext.DebugText]
	Parts  ecs.Query[struct {
		*Part
		*transform.WorldTransform
	}]

	Lines []OverlayLine
}

func (o *OverlaySystem) Execute(frame *ecs.UpdateFrame) {
	vp, text := o.Camera.Get(), o.Text.Get()
	if vp == nil || text == nil {
		return
	}
	// Update may run more than once per drawn frame; keep only the latest.
	text.Reset()

	for i, line := range o.Lines {
		text.SetPos(overlayX, overlayY+i*overlayStep)
		switch line {
		case LineEye:
			text.Printf("eye:(%f,%f,%f)", vp.Eye.X(), vp.Eye.Y(), vp.Eye.Z())
		case LineTarget:
			text.Printf("target:(%f,%f,%f)", vp.Target.X(), vp.Target.Y(), vp.Target.Z())
		case LineUp:
			text.Printf("up:(%f,%f,%f)", vp.Up.X(), vp.Up.Y(), vp.Up.Z())
		case LineFov:
			text.Printf("fovAngleY(Degree):%f", mgl32.RadToDeg(vp.FovAngleY))
		case LineNearZ:
			text.Printf("nearZ:%f", vp.NearZ)
		case LineRoot:
			root := o.root()
			text.Printf("Root:(%f,%f,%f)", root.X(), root.Y(), root.Z())
		}
	}
}

func (o *OverlaySystem) root() mgl32.Vec3 {
	for p := range o.Parts.Iter() {
		if p.Part.Id == Root {
			return p.Translation
		}
	}
	return mgl32.Vec3{}
}
