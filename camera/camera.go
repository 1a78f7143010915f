// Package camera provides the view-projection state shared by a scene and
// the left-handed matrices built from it.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ViewProjection is the camera: where it sits, what it looks at, its lens,
// and the matrices last computed from those.
type ViewProjection struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	FovAngleY   float32 // radians
	AspectRatio float32
	NearZ       float32
	FarZ        float32

	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// Viewport is the size of the render target in pixels. The camera system
// reads it to keep the aspect ratio in step with the window.
type Viewport struct {
	Width  float32
	Height float32
}

// Default returns the camera every scene starts from: 50 units in front of
// the origin looking down +Z.
func Default() ViewProjection {
	vp := ViewProjection{
		Eye:         mgl32.Vec3{0, 0, -50},
		Target:      mgl32.Vec3{0, 0, 0},
		Up:          mgl32.Vec3{0, 1, 0},
		FovAngleY:   mgl32.DegToRad(45),
		AspectRatio: 16.0 / 9.0,
		NearZ:       0.1,
		FarZ:        1000,
	}
	vp.UpdateMatrix()
	return vp
}

// UpdateMatrix recomputes View and Projection. A degenerate camera (eye on
// the target, up parallel to the view direction, empty depth range) keeps
// the previous matrix for the part that cannot be built.
func (vp *ViewProjection) UpdateMatrix() {
	if view, ok := LookAtLH(vp.Eye, vp.Target, vp.Up); ok {
		vp.View = view
	}
	if proj, ok := PerspectiveFovLH(vp.FovAngleY, vp.AspectRatio, vp.NearZ, vp.FarZ); ok {
		vp.Projection = proj
	}
}

// Matrix returns Projection × View.
func (vp *ViewProjection) Matrix() mgl32.Mat4 {
	return vp.Projection.Mul4(vp.View)
}

// LookAtLH builds a left-handed view matrix: +X right, +Y up, +Z into the
// screen.
func LookAtLH(eye, target, up mgl32.Vec3) (mgl32.Mat4, bool) {
	forward := target.Sub(eye)
	if forward.Len() < 1e-6 {
		return mgl32.Ident4(), false
	}
	z := forward.Normalize()
	x := up.Cross(z)
	if x.Len() < 1e-6 {
		return mgl32.Ident4(), false
	}
	x = x.Normalize()
	y := z.Cross(x)

	return mgl32.Mat4FromRows(
		x.Vec4(-x.Dot(eye)),
		y.Vec4(-y.Dot(eye)),
		z.Vec4(-z.Dot(eye)),
		mgl32.Vec4{0, 0, 0, 1},
	), true
}

// PerspectiveFovLH builds a left-handed perspective projection that maps
// view depth [near, far] to [0, 1].
func PerspectiveFovLH(fovY, aspect, near, far float32) (mgl32.Mat4, bool) {
	if fovY <= 0 || fovY >= math.Pi || aspect <= 0 || near <= 0 || far <= near {
		return mgl32.Ident4(), false
	}
	h := 1 / float32(math.Tan(float64(fovY)/2))
	w := h / aspect
	r := far / (far - near)

	return mgl32.Mat4FromRows(
		mgl32.Vec4{w, 0, 0, 0},
		mgl32.Vec4{0, h, 0, 0},
		mgl32.Vec4{0, 0, r, -r * near},
		mgl32.Vec4{0, 0, 1, 0},
	), true
}

// Project maps a world-space point to viewport pixels. depth is in [0,1]
// for points between the clip planes; ok is false for points at or behind
// the near plane.
func (vp *ViewProjection) Project(world mgl32.Vec3, viewport Viewport) (screen mgl32.Vec2, depth float32, ok bool) {
	return ProjectWith(vp.Matrix(), vp.NearZ, world, viewport)
}

// ProjectWith is Project with a precomputed Projection × View (or
// Projection × View × World for model-space points).
func ProjectWith(m mgl32.Mat4, near float32, point mgl32.Vec3, viewport Viewport) (mgl32.Vec2, float32, bool) {
	clip := m.Mul4x1(point.Vec4(1))
	if clip.W() < near {
		return mgl32.Vec2{}, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	screen := mgl32.Vec2{
		(ndcX + 1) * 0.5 * viewport.Width,
		(1 - ndcY) * 0.5 * viewport.Height,
	}
	return screen, clip.Z() / clip.W(), true
}
