// Package transform holds the per-entity pose components and the system that
// turns parent-relative poses into world matrices each frame.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/puppet/ecs"
)

// WorldTransform is an entity's pose relative to its parent (or the world,
// for roots) together with the world matrix last computed from it.
type WorldTransform struct {
	Scale       mgl32.Vec3
	Rotation    mgl32.Vec3 // Euler angles in radians
	Translation mgl32.Vec3
	Matrix      mgl32.Mat4
}

// Parent links a transform to the transform it is relative to.
// A nil or dangling reference makes the entity a root.
type Parent struct {
	Ref *ecs.EntityRef
}

// New returns an identity transform at translation.
func New(translation mgl32.Vec3) WorldTransform {
	return WorldTransform{
		Scale:       mgl32.Vec3{1, 1, 1},
		Translation: translation,
		Matrix:      mgl32.Translate3D(translation.Elem()),
	}
}

// Local composes scale, rotation and translation. Rotation applies Z, then X,
// then Y.
func (w *WorldTransform) Local() mgl32.Mat4 {
	return mgl32.Translate3D(w.Translation.Elem()).
		Mul4(mgl32.HomogRotate3DY(w.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(w.Rotation.X())).
		Mul4(mgl32.HomogRotate3DZ(w.Rotation.Z())).
		Mul4(mgl32.Scale3D(w.Scale.Elem()))
}

// UpdateMatrix recomputes the world matrix. parent may be nil; when set its
// Matrix must already be current for this frame.
func (w *WorldTransform) UpdateMatrix(parent *WorldTransform) {
	local := w.Local()
	if parent == nil {
		w.Matrix = local
		return
	}
	w.Matrix = parent.Matrix.Mul4(local)
}

// WorldPosition returns the translation part of the world matrix.
func (w *WorldTransform) WorldPosition() mgl32.Vec3 {
	return w.Matrix.Col(3).Vec3()
}

// RegisterComponents registers the transform components with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[WorldTransform](registry)
	ecs.RegisterComponent[Parent](registry)
}
