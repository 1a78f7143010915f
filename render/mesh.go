package render

import "github.com/go-gl/mathgl/mgl32"

// Vertex is a model-space position with texture coordinates in [0,1].
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	U, V   float32
}

// Mesh is an indexed triangle list. Front faces wind clockwise as seen from
// outside.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Cube returns a cube of edge 2 centered on the origin, each face mapped to
// the whole texture.
func Cube() *Mesh {
	faces := []struct{ normal, up mgl32.Vec3 }{
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	}

	m := &Mesh{}
	for _, f := range faces {
		// Right as seen by a viewer outside the face looking back at it.
		right := f.up.Cross(f.normal.Mul(-1))
		base := uint16(len(m.Vertices))
		corners := []struct {
			pos  mgl32.Vec3
			u, v float32
		}{
			{f.normal.Sub(right).Add(f.up), 0, 0},
			{f.normal.Add(right).Add(f.up), 1, 0},
			{f.normal.Add(right).Sub(f.up), 1, 1},
			{f.normal.Sub(right).Sub(f.up), 0, 1},
		}
		for _, c := range corners {
			m.Vertices = append(m.Vertices, Vertex{Pos: c.pos, Normal: f.normal, U: c.u, V: c.v})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
