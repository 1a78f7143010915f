// Package debugtext buffers lines of on-screen diagnostics during Update and
// draws them in the foreground sprite phase.
package debugtext

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Line is one buffered string and where it goes.
type Line struct {
	X, Y int
	Text string
}

// Printer draws a string with its top-left corner at x,y.
type Printer interface {
	DebugPrintAt(text string, x, y int)
}

// Screen adapts an Ebitengine image to Printer. It also satisfies
// render.Target through the embedded image.
type Screen struct {
	*ebiten.Image
}

func (s Screen) DebugPrintAt(text string, x, y int) {
	ebitenutil.DebugPrintAt(s.Image, text, x, y)
}

// DebugText collects lines until the next Reset. Ebitengine may draw more
// often than it updates, so drawing leaves the buffer intact.
type DebugText struct {
	x, y  int
	lines []Line
}

func New() *DebugText {
	return &DebugText{}
}

// SetPos moves the cursor for the next Print.
func (d *DebugText) SetPos(x, y int) {
	d.x, d.y = x, y
}

// Print buffers text at the cursor.
func (d *DebugText) Print(text string) {
	d.lines = append(d.lines, Line{X: d.x, Y: d.y, Text: text})
}

// Printf buffers a formatted line at the cursor.
func (d *DebugText) Printf(format string, args ...any) {
	d.Print(fmt.Sprintf(format, args...))
}

// Lines returns the buffered lines in print order.
func (d *DebugText) Lines() []Line {
	return d.lines
}

// DrawAll draws every buffered line onto dst.
func (d *DebugText) DrawAll(dst Printer) {
	for _, l := range d.lines {
		dst.DebugPrintAt(l.Text, l.X, l.Y)
	}
}

// Reset drops the buffered lines without drawing them.
func (d *DebugText) Reset() {
	d.lines = d.lines[:0]
}
