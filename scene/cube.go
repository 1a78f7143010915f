package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/camera"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/input"
	"github.com/plus3/puppet/transform"
)

const (
	fovSpeed  = 0.01
	minFov    = 0.01
	maxFov    = math.Pi
	nearSpeed = 0.1
	minNearZ  = 0.01
)

// NewCube builds the single-cube scene used to try out the camera lens.
func NewCube(env Env) *Scene {
	return newScene("cube", env, func(s *Scene, env *Env) []ecs.System {
		wt := transform.New(mgl32.Vec3{10, 10, 10})
		wt.Scale = mgl32.Vec3{5, 5, 5}
		wt.Rotation = mgl32.Vec3{math.Pi / 4, math.Pi / 4, 0}
		s.storage.Spawn(wt, Cube{Texture: s.texture})
		return []ecs.System{&LensSystem{}}
	})
}

// LensSystem zooms with W/S and moves the near clip plane with UP/DOWN.
type LensSystem struct {
	Keys   ecs.Singleton[input.State]
	Camera ecs.Singleton[camera.ViewProjection]
}

func (l *LensSystem) Execute(frame *ecs.UpdateFrame) {
	keys, vp := l.Keys.Get(), l.Camera.Get()
	if keys == nil || vp == nil {
		return
	}

	if keys.PushKey(ebiten.KeyW) {
		vp.FovAngleY = min(vp.FovAngleY+fovSpeed, maxFov)
	} else if keys.PushKey(ebiten.KeyS) {
		vp.FovAngleY = max(vp.FovAngleY-fovSpeed, minFov)
	}

	if keys.PushKey(ebiten.KeyArrowUp) {
		vp.NearZ += nearSpeed
	} else if keys.PushKey(ebiten.KeyArrowDown) {
		vp.NearZ -= nearSpeed
	}
	vp.NearZ = mgl32.Clamp(vp.NearZ, minNearZ, vp.FarZ-minNearZ)
}
