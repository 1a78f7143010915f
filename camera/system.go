package camera

import "github.com/plus3/puppet/ecs"

// System keeps the aspect ratio in step with the viewport and recomputes the
// camera matrices once per frame.
type System struct {
	Camera   ecs.Singleton[ViewProjection]
	Viewport ecs.Singleton[Viewport]
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	vp := s.Camera.Get()
	if vp == nil {
		return
	}
	if viewport := s.Viewport.Get(); viewport != nil && viewport.Width > 0 && viewport.Height > 0 {
		vp.AspectRatio = viewport.Width / viewport.Height
	}
	vp.UpdateMatrix()
}
