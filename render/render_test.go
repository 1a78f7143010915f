package render_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/camera"
	"github.com/plus3/puppet/render"
	"github.com/plus3/puppet/texture"
	"github.com/plus3/puppet/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTextures struct{}

func (fakeTextures) Image(texture.Handle) *ebiten.Image { return nil }
func (fakeTextures) Size(texture.Handle) (int, int)     { return 32, 32 }

type triangleCall struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

type fakeTarget struct {
	triangles []triangleCall
	images    []*ebiten.DrawImageOptions
}

func (f *fakeTarget) Bounds() image.Rectangle { return image.Rect(0, 0, 1280, 720) }

func (f *fakeTarget) DrawTriangles(vertices []ebiten.Vertex, indices []uint16, _ *ebiten.Image, _ *ebiten.DrawTrianglesOptions) {
	f.triangles = append(f.triangles, triangleCall{
		vertices: append([]ebiten.Vertex(nil), vertices...),
		indices:  append([]uint16(nil), indices...),
	})
}

func (f *fakeTarget) DrawImage(_ *ebiten.Image, options *ebiten.DrawImageOptions) {
	f.images = append(f.images, options)
}

func newRenderer() (*render.Renderer, *fakeTarget) {
	r := render.NewRenderer(fakeTextures{})
	target := &fakeTarget{}
	r.BeginFrame(target)
	return r, target
}

func at(p mgl32.Vec3) *transform.WorldTransform {
	wt := transform.New(p)
	wt.UpdateMatrix(nil)
	return &wt
}

func TestCubeMesh(t *testing.T) {
	cube := render.Cube()
	assert.Len(t, cube.Vertices, 24)
	assert.Equal(t, 12, cube.Triangles())

	for _, v := range cube.Vertices {
		for i := 0; i < 3; i++ {
			assert.InDelta(t, 1, float64(mgl32.Abs(v.Pos[i])), 1e-6)
		}
		assert.InDelta(t, 1, float64(v.Pos.Dot(v.Normal)), 1e-6, "vertex lies on its face")
	}
}

func TestCubeFacingCameraShowsOneFace(t *testing.T) {
	r, target := newRenderer()
	vp := camera.Default()
	model := render.NewModel(r, nil)

	require.NoError(t, r.PreDrawModels())
	require.NoError(t, model.Draw(at(mgl32.Vec3{}), &vp, 1))
	require.NoError(t, r.PostDrawModels())
	require.NoError(t, r.EndFrame())

	stats := r.Stats()
	assert.Equal(t, 2, stats.Queued, "only the -Z face is visible head on")
	assert.Equal(t, 10, stats.Culled)
	require.Len(t, target.triangles, 1)

	call := target.triangles[0]
	assert.Len(t, call.vertices, 6)
	for _, v := range call.vertices {
		assert.InDelta(t, 640, v.DstX, 40)
		assert.InDelta(t, 360, v.DstY, 40)
		assert.Contains(t, []float32{0, 32}, v.SrcX)
	}
}

func TestRotatedCubeShowsMoreFaces(t *testing.T) {
	r, _ := newRenderer()
	vp := camera.Default()
	wt := transform.New(mgl32.Vec3{})
	wt.Rotation = mgl32.Vec3{0.7, 0.7, 0}
	wt.UpdateMatrix(nil)

	require.NoError(t, r.PreDrawModels())
	require.NoError(t, render.NewModel(r, nil).Draw(&wt, &vp, 1))
	require.NoError(t, r.PostDrawModels())

	assert.Equal(t, 6, r.Stats().Queued, "three faces")
}

func TestModelBehindCameraIsCulled(t *testing.T) {
	r, target := newRenderer()
	vp := camera.Default()

	require.NoError(t, r.PreDrawModels())
	require.NoError(t, render.NewModel(r, nil).Draw(at(mgl32.Vec3{0, 0, -60}), &vp, 1))
	require.NoError(t, r.PostDrawModels())

	assert.Equal(t, 0, r.Stats().Queued)
	assert.Empty(t, target.triangles)
}

func TestTrianglesSubmittedBackToFront(t *testing.T) {
	r, target := newRenderer()
	vp := camera.Default()
	model := render.NewModel(r, nil)

	require.NoError(t, r.PreDrawModels())
	require.NoError(t, model.Draw(at(mgl32.Vec3{0, 0, -10}), &vp, 1))
	require.NoError(t, model.Draw(at(mgl32.Vec3{0, 0, 10}), &vp, 1))
	require.NoError(t, r.PostDrawModels())

	require.Len(t, target.triangles, 1)
	verts := target.triangles[0].vertices
	require.Len(t, verts, 12)
	// The far cube is smaller on screen, so its first vertex is closer to center.
	assert.Less(t, mgl32.Abs(verts[0].DstX-640), mgl32.Abs(verts[6].DstX-640))
}

func TestClearDepthBufferDrawsLaterLayerOnTop(t *testing.T) {
	r, target := newRenderer()
	vp := camera.Default()
	model := render.NewModel(r, nil)

	require.NoError(t, r.PreDrawModels())
	require.NoError(t, model.Draw(at(mgl32.Vec3{0, 0, -10}), &vp, 1))
	require.NoError(t, r.PostDrawModels())
	r.ClearDepthBuffer()
	require.NoError(t, r.PreDrawModels())
	require.NoError(t, model.Draw(at(mgl32.Vec3{0, 0, 10}), &vp, 2))
	require.NoError(t, r.PostDrawModels())

	require.Len(t, target.triangles, 2)
	near := target.triangles[0].vertices[0]
	far := target.triangles[1].vertices[0]
	assert.Greater(t, mgl32.Abs(near.DstX-640), mgl32.Abs(far.DstX-640))
}

func TestBatchesSplitByTexture(t *testing.T) {
	r, target := newRenderer()
	vp := camera.Default()
	model := render.NewModel(r, nil)

	require.NoError(t, r.PreDrawModels())
	require.NoError(t, model.Draw(at(mgl32.Vec3{-5, 0, 0}), &vp, 1))
	require.NoError(t, model.Draw(at(mgl32.Vec3{5, 0, 5}), &vp, 2))
	require.NoError(t, r.PostDrawModels())

	assert.Len(t, target.triangles, 2)
	assert.Equal(t, 2, r.Stats().Batches)
}

func TestPhaseErrors(t *testing.T) {
	r := render.NewRenderer(fakeTextures{})
	assert.ErrorIs(t, r.PreDrawSprites(), render.ErrPhase, "no frame begun")

	r.BeginFrame(&fakeTarget{})
	vp := camera.Default()
	model := render.NewModel(r, nil)

	assert.ErrorIs(t, model.Draw(at(mgl32.Vec3{}), &vp, 1), render.ErrPhase)
	assert.ErrorIs(t, r.DrawSprite(&render.Sprite{}), render.ErrPhase)
	assert.ErrorIs(t, r.PostDrawModels(), render.ErrPhase)

	require.NoError(t, r.PreDrawSprites())
	assert.ErrorIs(t, r.PreDrawModels(), render.ErrPhase, "nested phases")
	assert.ErrorIs(t, model.Draw(at(mgl32.Vec3{}), &vp, 1), render.ErrPhase)
	assert.ErrorIs(t, r.EndFrame(), render.ErrPhase)
	require.NoError(t, r.PostDrawSprites())
	assert.NoError(t, r.EndFrame())
}

func TestDrawSprite(t *testing.T) {
	r, target := newRenderer()

	require.NoError(t, r.PreDrawSprites())
	require.NoError(t, r.DrawSprite(&render.Sprite{
		Texture:  1,
		Position: mgl32.Vec2{100, 50},
		Size:     mgl32.Vec2{64, 16},
		Color:    color.RGBA{255, 0, 0, 255},
	}))
	require.NoError(t, r.PostDrawSprites())

	require.Len(t, target.images, 1)
	x, y := target.images[0].GeoM.Apply(32, 32)
	assert.InDelta(t, 164, x, 1e-9)
	assert.InDelta(t, 66, y, 1e-9)
	assert.Equal(t, 1, r.Stats().Sprites)
}
