package camera_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/puppet/camera"
	"github.com/plus3/puppet/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var viewport = camera.Viewport{Width: 1280, Height: 720}

func TestDefaultCamera(t *testing.T) {
	vp := camera.Default()

	assert.Equal(t, mgl32.Vec3{0, 0, -50}, vp.Eye)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, vp.Up)
	assert.InDelta(t, 45.0, float64(mgl32.RadToDeg(vp.FovAngleY)), 1e-4)
	assert.Equal(t, float32(0.1), vp.NearZ)
	assert.Equal(t, float32(1000), vp.FarZ)
}

func TestProjectCentersTarget(t *testing.T) {
	vp := camera.Default()

	screen, depth, ok := vp.Project(mgl32.Vec3{0, 0, 0}, viewport)
	require.True(t, ok)
	assert.InDelta(t, 640, screen.X(), 1e-3)
	assert.InDelta(t, 360, screen.Y(), 1e-3)
	assert.Greater(t, depth, float32(0))
	assert.Less(t, depth, float32(1))
}

func TestProjectIsLeftHanded(t *testing.T) {
	vp := camera.Default()

	right, _, ok := vp.Project(mgl32.Vec3{5, 0, 0}, viewport)
	require.True(t, ok)
	up, _, ok := vp.Project(mgl32.Vec3{0, 5, 0}, viewport)
	require.True(t, ok)

	assert.Greater(t, right.X(), float32(640), "+X is to the right")
	assert.Less(t, up.Y(), float32(360), "+Y is up the screen")

	_, near, _ := vp.Project(mgl32.Vec3{0, 0, -10}, viewport)
	_, far, _ := vp.Project(mgl32.Vec3{0, 0, 10}, viewport)
	assert.Less(t, near, far, "+Z goes into the screen")
}

func TestProjectRejectsPointsBehindNearPlane(t *testing.T) {
	vp := camera.Default()

	_, _, ok := vp.Project(mgl32.Vec3{0, 0, -60}, viewport)
	assert.False(t, ok)
	_, _, ok = vp.Project(mgl32.Vec3{0, 0, -49.95}, viewport)
	assert.False(t, ok)
}

func TestDepthRange(t *testing.T) {
	vp := camera.Default()

	// Twice the near distance lands halfway through the depth range.
	_, d, ok := vp.Project(mgl32.Vec3{0, 0, -50 + 2*vp.NearZ}, viewport)
	require.True(t, ok)
	assert.InDelta(t, 0.5, d, 1e-3)

	_, d, ok = vp.Project(mgl32.Vec3{0, 0, -50 + vp.FarZ}, viewport)
	require.True(t, ok)
	assert.InDelta(t, 1, d, 1e-3)
}

func TestFovAffectsScale(t *testing.T) {
	narrow := camera.Default()
	wide := camera.Default()
	wide.FovAngleY = mgl32.DegToRad(90)
	wide.UpdateMatrix()

	p := mgl32.Vec3{0, 10, 0}
	n, _, _ := narrow.Project(p, viewport)
	w, _, _ := wide.Project(p, viewport)
	assert.Greater(t, 360-n.Y(), 360-w.Y(), "a wider lens shrinks the image")
}

func TestDegenerateCameraKeepsPreviousMatrices(t *testing.T) {
	vp := camera.Default()
	view, proj := vp.View, vp.Projection

	vp.Target = vp.Eye
	vp.FovAngleY = 0
	vp.UpdateMatrix()
	assert.Equal(t, view, vp.View)
	assert.Equal(t, proj, vp.Projection)

	vp.Target = mgl32.Vec3{0, 10, -50}
	vp.UpdateMatrix()
	assert.Equal(t, view, vp.View, "up parallel to view direction")
}

func TestPerspectiveRejectsBadRanges(t *testing.T) {
	_, ok := camera.PerspectiveFovLH(math.Pi, 1, 0.1, 10)
	assert.False(t, ok)
	_, ok = camera.PerspectiveFovLH(1, 1, 5, 5)
	assert.False(t, ok)
	_, ok = camera.PerspectiveFovLH(1, 0, 0.1, 10)
	assert.False(t, ok)
}

func TestSystemTracksViewportAspect(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	vp := ecs.NewSingleton[camera.ViewProjection](storage, camera.Default())
	ecs.NewSingleton[camera.Viewport](storage, camera.Viewport{Width: 800, Height: 800})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&camera.System{})

	vp.Get().Eye = mgl32.Vec3{0, 0, -20}
	scheduler.Once(0)

	assert.Equal(t, float32(1), vp.Get().AspectRatio)
	screen, _, ok := vp.Get().Project(mgl32.Vec3{}, camera.Viewport{Width: 800, Height: 800})
	require.True(t, ok)
	assert.InDelta(t, 400, screen.X(), 1e-3)
}
