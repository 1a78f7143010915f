package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/camera"
	"github.com/plus3/puppet/texture"
	"github.com/plus3/puppet/transform"
)

// lightDir points from the light toward the scene.
var lightDir = mgl32.Vec3{0.4, -1, 0.6}.Normalize()

const ambient = 0.45

// Model draws one mesh any number of times per frame.
type Model struct {
	renderer *Renderer
	mesh     *Mesh
}

// NewModel creates a model for mesh. A nil mesh means the unit cube.
func NewModel(renderer *Renderer, mesh *Mesh) *Model {
	if mesh == nil {
		mesh = Cube()
	}
	return &Model{renderer: renderer, mesh: mesh}
}

// Mesh returns the mesh the model draws.
func (m *Model) Mesh() *Mesh {
	return m.mesh
}

// Draw projects the mesh with wt's world matrix through vp and queues the
// visible triangles textured with tex. Triangles facing away from the camera
// or crossing the near plane are dropped.
func (m *Model) Draw(wt *transform.WorldTransform, vp *camera.ViewProjection, tex texture.Handle) error {
	r := m.renderer
	if err := r.require(PhaseModels); err != nil {
		return fmt.Errorf("draw model: %w", err)
	}

	mvp := vp.Matrix().Mul4(wt.Matrix)
	normalMat := wt.Matrix.Mat3()
	tw, th := r.textures.Size(tex)

	for i := 0; i+2 < len(m.mesh.Indices); i += 3 {
		var verts [3]ebiten.Vertex
		var depth float32
		visible := true

		for k := 0; k < 3; k++ {
			v := m.mesh.Vertices[m.mesh.Indices[i+k]]
			screen, d, ok := camera.ProjectWith(mvp, vp.NearZ, v.Pos, r.viewport)
			if !ok {
				visible = false
				break
			}
			depth += d
			verts[k] = ebiten.Vertex{
				DstX: screen.X(),
				DstY: screen.Y(),
				SrcX: v.U * float32(tw),
				SrcY: v.V * float32(th),
			}
		}
		if !visible || !frontFacing(verts) {
			r.stats.Culled++
			continue
		}

		normal := m.mesh.Vertices[m.mesh.Indices[i]].Normal
		shade := shading(normalMat.Mul3x1(normal))
		for k := range verts {
			verts[k].ColorR = shade
			verts[k].ColorG = shade
			verts[k].ColorB = shade
			verts[k].ColorA = 1
		}
		r.queue(verts, depth/3, tex)
	}
	return nil
}

// frontFacing reports whether the triangle winds clockwise on screen, with
// Y pointing down.
func frontFacing(v [3]ebiten.Vertex) bool {
	ax, ay := v[1].DstX-v[0].DstX, v[1].DstY-v[0].DstY
	bx, by := v[2].DstX-v[0].DstX, v[2].DstY-v[0].DstY
	return ax*by-ay*bx > 0
}

func shading(worldNormal mgl32.Vec3) float32 {
	if worldNormal.Len() == 0 {
		return 1
	}
	diffuse := max(0, worldNormal.Normalize().Dot(lightDir.Mul(-1)))
	return min(1, ambient+(1-ambient)*diffuse)
}
