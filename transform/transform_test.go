package transform_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, eps), "want %v, got %v", want, got)
}

func TestLocalAppliesScaleThenRotationThenTranslation(t *testing.T) {
	wt := transform.New(mgl32.Vec3{10, 0, 0})
	wt.Scale = mgl32.Vec3{2, 2, 2}
	wt.Rotation = mgl32.Vec3{0, math.Pi / 2, 0}

	// (1,0,0) scaled to (2,0,0), yawed a quarter turn to (0,0,-2), then moved.
	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, wt.Local())
	assertVec(t, mgl32.Vec3{10, 0, -2}, got)
}

func TestRotationOrderZThenXThenY(t *testing.T) {
	wt := transform.New(mgl32.Vec3{})
	wt.Rotation = mgl32.Vec3{math.Pi / 2, 0, math.Pi / 2}

	// Z turns +X into +Y, then X turns +Y into +Z.
	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, wt.Local())
	assertVec(t, mgl32.Vec3{0, 0, 1}, got)
}

func TestUpdateMatrixComposesWithParent(t *testing.T) {
	parent := transform.New(mgl32.Vec3{0, 5, 0})
	parent.Rotation = mgl32.Vec3{0, math.Pi, 0}
	parent.UpdateMatrix(nil)

	child := transform.New(mgl32.Vec3{3, 0, 0})
	child.UpdateMatrix(&parent)

	assertVec(t, mgl32.Vec3{-3, 5, 0}, child.WorldPosition())
}

func newWorld() (*ecs.Storage, *ecs.Scheduler) {
	registry := ecs.NewComponentRegistry()
	transform.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&transform.System{})
	return storage, scheduler
}

func spawnChild(storage *ecs.Storage, parent ecs.EntityId, translation mgl32.Vec3) ecs.EntityId {
	return storage.Spawn(transform.New(translation), transform.Parent{Ref: storage.CreateEntityRef(parent)})
}

func TestSystemUpdatesParentsFirst(t *testing.T) {
	storage, scheduler := newWorld()

	root := storage.Spawn(transform.New(mgl32.Vec3{1, 0, 0}))
	mid := spawnChild(storage, root, mgl32.Vec3{0, 2, 0})
	leaf := spawnChild(storage, mid, mgl32.Vec3{0, 0, 3})

	ecs.ReadComponent[transform.WorldTransform](storage, root).Translation = mgl32.Vec3{10, 0, 0}
	scheduler.Once(0)

	assertVec(t, mgl32.Vec3{10, 0, 0}, ecs.ReadComponent[transform.WorldTransform](storage, root).WorldPosition())
	assertVec(t, mgl32.Vec3{10, 2, 0}, ecs.ReadComponent[transform.WorldTransform](storage, mid).WorldPosition())
	assertVec(t, mgl32.Vec3{10, 2, 3}, ecs.ReadComponent[transform.WorldTransform](storage, leaf).WorldPosition())
}

func TestSystemHandlesChildStoredBeforeParent(t *testing.T) {
	storage, scheduler := newWorld()

	root := storage.Spawn(transform.New(mgl32.Vec3{1, 0, 0}))
	x := spawnChild(storage, root, mgl32.Vec3{0, 0, 1})
	y := spawnChild(storage, root, mgl32.Vec3{0, 1, 0})
	// x now hangs off y but is still iterated first.
	ecs.ReadComponent[transform.Parent](storage, x).Ref = storage.CreateEntityRef(y)

	scheduler.Once(0)
	assertVec(t, mgl32.Vec3{1, 1, 0}, ecs.ReadComponent[transform.WorldTransform](storage, y).WorldPosition())
	assertVec(t, mgl32.Vec3{1, 1, 1}, ecs.ReadComponent[transform.WorldTransform](storage, x).WorldPosition())
}

func TestSystemTreatsDanglingParentAsRoot(t *testing.T) {
	storage, scheduler := newWorld()

	root := storage.Spawn(transform.New(mgl32.Vec3{5, 0, 0}))
	child := spawnChild(storage, root, mgl32.Vec3{0, 1, 0})
	storage.Delete(root)

	scheduler.Once(0)
	assertVec(t, mgl32.Vec3{0, 1, 0}, ecs.ReadComponent[transform.WorldTransform](storage, child).WorldPosition())
}

func TestSystemBreaksParentLoops(t *testing.T) {
	storage, scheduler := newWorld()

	a := storage.Spawn(transform.New(mgl32.Vec3{1, 0, 0}), transform.Parent{})
	b := spawnChild(storage, a, mgl32.Vec3{0, 1, 0})
	ecs.ReadComponent[transform.Parent](storage, a).Ref = storage.CreateEntityRef(b)

	require.NotPanics(t, func() { scheduler.Once(0) })

	pa := ecs.ReadComponent[transform.WorldTransform](storage, a).WorldPosition()
	pb := ecs.ReadComponent[transform.WorldTransform](storage, b).WorldPosition()
	// One of the two ends up as the root; the other sits relative to it.
	assert.True(t, pa.ApproxEqualThreshold(mgl32.Vec3{1, 1, 0}, eps) || pb.ApproxEqualThreshold(mgl32.Vec3{1, 1, 0}, eps))
}
