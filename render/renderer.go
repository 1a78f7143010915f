// Package render draws the demo's sprites and models onto an Ebitengine
// image in the fixed phase order the scenes use: background sprites, depth
// clear, models, foreground sprites.
package render

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/camera"
	"github.com/plus3/puppet/texture"
)

// ErrPhase is returned when a draw call is made outside its phase, or a
// phase is opened while another is still open.
var ErrPhase = errors.New("render: call outside its draw phase")

// Phase is the renderer's current draw phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSprites
	PhaseModels
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSprites:
		return "sprites"
	case PhaseModels:
		return "models"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Target is what the renderer draws onto. *ebiten.Image satisfies it.
type Target interface {
	Bounds() image.Rectangle
	DrawTriangles(vertices []ebiten.Vertex, indices []uint16, img *ebiten.Image, options *ebiten.DrawTrianglesOptions)
	DrawImage(img *ebiten.Image, options *ebiten.DrawImageOptions)
}

// Textures resolves texture handles. *texture.Manager satisfies it.
type Textures interface {
	Image(texture.Handle) *ebiten.Image
	Size(texture.Handle) (int, int)
}

// FrameStats counts what the renderer did in the current frame.
type FrameStats struct {
	Queued  int
	Culled  int
	Batches int
	Sprites int
}

// Renderer collects draw calls for one frame.
type Renderer struct {
	textures Textures
	target   Target
	viewport camera.Viewport
	phase    Phase
	layer    int
	tris     []queuedTriangle
	stats    FrameStats

	vertices []ebiten.Vertex
	indices  []uint16
}

type queuedTriangle struct {
	verts   [3]ebiten.Vertex
	depth   float32
	layer   int
	texture texture.Handle
	seq     int
}

// NewRenderer creates a renderer that looks textures up in textures.
func NewRenderer(textures Textures) *Renderer {
	return &Renderer{textures: textures}
}

// BeginFrame starts a frame on target. The viewport is the target's bounds.
func (r *Renderer) BeginFrame(target Target) {
	r.target = target
	b := target.Bounds()
	r.viewport = camera.Viewport{Width: float32(b.Dx()), Height: float32(b.Dy())}
	r.phase = PhaseIdle
	r.layer = 0
	r.tris = r.tris[:0]
	r.stats = FrameStats{}
}

// EndFrame checks that every phase was closed.
func (r *Renderer) EndFrame() error {
	if r.phase != PhaseIdle {
		return fmt.Errorf("end frame with %s phase open: %w", r.phase, ErrPhase)
	}
	r.target = nil
	return nil
}

// Viewport returns the current frame's viewport.
func (r *Renderer) Viewport() camera.Viewport {
	return r.viewport
}

// Phase returns the phase currently open.
func (r *Renderer) Phase() Phase {
	return r.phase
}

// Stats returns the counters for the current frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

func (r *Renderer) open(p Phase) error {
	if r.target == nil {
		return fmt.Errorf("open %s phase before BeginFrame: %w", p, ErrPhase)
	}
	if r.phase != PhaseIdle {
		return fmt.Errorf("open %s phase while %s is open: %w", p, r.phase, ErrPhase)
	}
	r.phase = p
	return nil
}

func (r *Renderer) require(p Phase) error {
	if r.phase != p {
		return fmt.Errorf("%s call during %s phase: %w", p, r.phase, ErrPhase)
	}
	return nil
}

// PreDrawSprites opens a sprite phase.
func (r *Renderer) PreDrawSprites() error {
	return r.open(PhaseSprites)
}

// PostDrawSprites closes the sprite phase.
func (r *Renderer) PostDrawSprites() error {
	if err := r.require(PhaseSprites); err != nil {
		return err
	}
	r.phase = PhaseIdle
	return nil
}

// PreDrawModels opens a model phase.
func (r *Renderer) PreDrawModels() error {
	return r.open(PhaseModels)
}

// PostDrawModels closes the model phase and submits its triangles back to
// front.
func (r *Renderer) PostDrawModels() error {
	if err := r.require(PhaseModels); err != nil {
		return err
	}
	r.flush()
	r.phase = PhaseIdle
	return nil
}

// ClearDepthBuffer makes models drawn afterwards cover everything drawn
// before, whatever their depth.
func (r *Renderer) ClearDepthBuffer() {
	r.layer++
}

func (r *Renderer) queue(verts [3]ebiten.Vertex, depth float32, tex texture.Handle) {
	r.tris = append(r.tris, queuedTriangle{
		verts:   verts,
		depth:   depth,
		layer:   r.layer,
		texture: tex,
		seq:     len(r.tris),
	})
	r.stats.Queued++
}

// sortQueued orders triangles by layer, then far to near, then submission order.
func (r *Renderer) sortQueued() {
	slices.SortFunc(r.tris, func(a, b queuedTriangle) int {
		if c := cmp.Compare(a.layer, b.layer); c != 0 {
			return c
		}
		if c := cmp.Compare(b.depth, a.depth); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
}

const maxBatchVertices = 65535 - 2

func (r *Renderer) flush() {
	r.sortQueued()

	opts := &ebiten.DrawTrianglesOptions{}
	for start := 0; start < len(r.tris); {
		tex := r.tris[start].texture
		end := start
		for end < len(r.tris) && r.tris[end].texture == tex && (end-start+1)*3 <= maxBatchVertices {
			end++
		}

		r.vertices = r.vertices[:0]
		r.indices = r.indices[:0]
		for _, t := range r.tris[start:end] {
			base := uint16(len(r.vertices))
			r.vertices = append(r.vertices, t.verts[:]...)
			r.indices = append(r.indices, base, base+1, base+2)
		}
		r.target.DrawTriangles(r.vertices, r.indices, r.textures.Image(tex), opts)
		r.stats.Batches++
		start = end
	}
	r.tris = r.tris[:0]
}
