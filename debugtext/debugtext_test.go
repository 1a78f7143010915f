package debugtext_test

import (
	"fmt"
	"testing"

	"github.com/plus3/puppet/debugtext"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	lines []debugtext.Line
}

func (r *recorder) DebugPrintAt(text string, x, y int) {
	r.lines = append(r.lines, debugtext.Line{X: x, Y: y, Text: text})
}

func TestPrintUsesCursor(t *testing.T) {
	d := debugtext.New()
	d.SetPos(50, 50)
	d.Printf("eye:(%f,%f,%f)", 0.0, 0.0, -50.0)
	d.SetPos(50, 70)
	d.Print("second")
	d.Print("same spot")

	assert.Equal(t, []debugtext.Line{
		{X: 50, Y: 50, Text: "eye:(0.000000,0.000000,-50.000000)"},
		{X: 50, Y: 70, Text: "second"},
		{X: 50, Y: 70, Text: "same spot"},
	}, d.Lines())
}

func TestDrawAllKeepsBufferUntilReset(t *testing.T) {
	d := debugtext.New()
	d.SetPos(1, 2)
	d.Print("a")

	first, second := &recorder{}, &recorder{}
	d.DrawAll(first)
	d.DrawAll(second)
	assert.Equal(t, []debugtext.Line{{X: 1, Y: 2, Text: "a"}}, first.lines)
	assert.Equal(t, first.lines, second.lines)

	d.Reset()
	third := &recorder{}
	d.DrawAll(third)
	assert.Empty(t, third.lines)
}

func ExampleDebugText() {
	d := debugtext.New()
	d.SetPos(50, 130)
	d.Printf("nearZ:%f", float32(0.1))
	for _, l := range d.Lines() {
		fmt.Println(l.X, l.Y, l.Text)
	}
	// Output: 50 130 nearZ:0.100000
}
