// Package texture loads images by file name and hands out small integer
// handles for them.
package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Handle identifies a loaded texture. The zero Handle is never returned by
// Load and resolves to the white texture.
type Handle uint32

// Manager owns every texture a scene loads.
type Manager struct {
	fsys    fs.FS
	logger  *log.Logger
	handles map[string]Handle
	entries []entry
}

type entry struct {
	name     string
	source   image.Image
	image    *ebiten.Image
	fallback bool
}

// FallbackSize is the edge length of the checker texture used for files
// that cannot be loaded.
const FallbackSize = 16

// NewManager reads textures from fsys. logger may be nil.
func NewManager(fsys fs.FS, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{
		fsys:    fsys,
		logger:  logger,
		handles: make(map[string]Handle),
	}
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Set(0, 0, color.White)
	m.entries = append(m.entries, entry{name: "", source: white})
	return m
}

// Load returns the handle for name, decoding the file on first use. A file
// that is missing or not an image is replaced by a checker texture and a
// warning is logged; the name still gets its own handle.
func (m *Manager) Load(name string) Handle {
	if h, ok := m.handles[name]; ok {
		return h
	}

	e := entry{name: name}
	src, err := m.decode(name)
	if err != nil {
		m.logger.Printf("texture: %v; using checker fallback", err)
		src = Checker(FallbackSize, FallbackSize/2, color.RGBA{0xff, 0x00, 0xff, 0xff}, color.RGBA{0x20, 0x20, 0x20, 0xff})
		e.fallback = true
	}
	e.source = src

	h := Handle(len(m.entries))
	m.entries = append(m.entries, e)
	m.handles[name] = h
	return h
}

func (m *Manager) decode(name string) (image.Image, error) {
	if m.fsys == nil {
		return nil, fmt.Errorf("load %q: no asset filesystem", name)
	}
	f, err := m.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}
	return img, nil
}

func (m *Manager) entry(h Handle) *entry {
	if int(h) >= len(m.entries) {
		return &m.entries[0]
	}
	return &m.entries[h]
}

// Source returns the decoded image for h. Unknown handles give the white
// texture.
func (m *Manager) Source(h Handle) image.Image {
	return m.entry(h).source
}

// Name returns the file name h was loaded from.
func (m *Manager) Name(h Handle) string {
	return m.entry(h).name
}

// IsFallback reports whether h is showing the checker replacement.
func (m *Manager) IsFallback(h Handle) bool {
	return m.entry(h).fallback
}

// Size returns the texture's pixel dimensions.
func (m *Manager) Size(h Handle) (int, int) {
	b := m.entry(h).source.Bounds()
	return b.Dx(), b.Dy()
}

// Len returns the number of handles issued, including the reserved zero handle.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Image returns the GPU image for h, uploading it on first use.
func (m *Manager) Image(h Handle) *ebiten.Image {
	e := m.entry(h)
	if e.image == nil {
		e.image = ebiten.NewImageFromImage(e.source)
	}
	return e.image
}

// Dispose releases every uploaded GPU image. Handles stay valid and
// re-upload on next use.
func (m *Manager) Dispose() {
	for i := range m.entries {
		if m.entries[i].image != nil {
			m.entries[i].image.Deallocate()
			m.entries[i].image = nil
		}
	}
}

// Checker generates a size×size checkerboard with cell-pixel squares.
func Checker(size, cell int, a, b color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if cell <= 0 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	return img
}
