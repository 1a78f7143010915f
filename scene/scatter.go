package scene

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/camera"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/input"
	"github.com/plus3/puppet/transform"
)

const (
	ScatterCount = 100

	scatterRange   = 10
	eyeSpeed       = 0.2
	targetSpeed    = 0.2
	upRotSpeed     = 0.05
	initialUpAngle = math.Pi / 2
)

// NewScatter builds the scene of randomly placed and rotated cubes.
func NewScatter(env Env) *Scene {
	return newScene("scatter", env, func(s *Scene, env *Env) []ecs.System {
		seed := env.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		env.Logger.Printf("scatter: seed %d", seed)
		rng := rand.New(rand.NewPCG(seed, seed>>1|1))

		for range ScatterCount {
			wt := transform.New(mgl32.Vec3{
				randRange(rng, -scatterRange, scatterRange),
				randRange(rng, -scatterRange, scatterRange),
				randRange(rng, -scatterRange, scatterRange),
			})
			wt.Rotation = mgl32.Vec3{
				randRange(rng, 0, 2*math.Pi),
				randRange(rng, 0, 2*math.Pi),
				randRange(rng, 0, 2*math.Pi),
			}
			s.storage.Spawn(wt, Cube{Texture: s.texture})
		}
		return []ecs.System{&ScatterCameraSystem{UpAngle: initialUpAngle}}
	})
}

// randRange returns a value in [lo, hi).
func randRange(rng *rand.Rand, lo, hi float32) float32 {
	v := lo + rng.Float32()*(hi-lo)
	if v >= hi {
		return lo
	}
	return v
}

// ScatterCameraSystem flies the camera: W/S dolly the eye along Z,
// LEFT/RIGHT pan the target along X, and SPACE rolls the up vector.
type ScatterCameraSystem struct {
	Keys   ecs.Singleton[input.State]
	Camera ecs.Singleton[camera.ViewProjection]

	// UpAngle is the roll of the up vector in the XY plane, in radians.
	UpAngle float32
}

func (c *ScatterCameraSystem) Execute(frame *ecs.UpdateFrame) {
	keys, vp := c.Keys.Get(), c.Camera.Get()
	if keys == nil || vp == nil {
		return
	}

	if keys.PushKey(ebiten.KeyW) {
		vp.Eye[2] += eyeSpeed
	} else if keys.PushKey(ebiten.KeyS) {
		vp.Eye[2] -= eyeSpeed
	}

	vp.Target[0] += targetSpeed * keys.Axis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight)

	if keys.PushKey(ebiten.KeySpace) {
		c.UpAngle += upRotSpeed
		if c.UpAngle >= 2*math.Pi {
			c.UpAngle -= 2 * math.Pi
		}
		vp.Up = mgl32.Vec3{
			float32(math.Cos(float64(c.UpAngle))),
			float32(math.Sin(float64(c.UpAngle))),
			0,
		}
	}
}
