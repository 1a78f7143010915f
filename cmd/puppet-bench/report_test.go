package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:    time.Second,
		Scene:       "scatter",
		Seed:        42,
		Entities:    100,
		Draw:        true,
		TotalFrames: 4,
		Queued:      10,
		Culled:      30,
		Systems:     []ecs.SystemStats{{Name: "LensSystem", ExecutionCount: 4}},
	}
	r.MemStatsEnd.HeapAlloc = 2 * 1024 * 1024

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()

	assert.Contains(t, out, "- **Scene:** scatter")
	assert.Contains(t, out, "- **Triangles per Frame:** 2.5 drawn, 7.5 culled")
	assert.Contains(t, out, "- **LensSystem:**")
	assert.Contains(t, out, "2.00 MiB")
	assert.NotContains(t, out, "GC Pause")
}

func TestKeyScriptCycles(t *testing.T) {
	keys := &input.Scripted{}
	script := newKeyScript("cube")

	script.apply(keys, 0)
	assert.Equal(t, []input.Key{ebiten.KeyW, ebiten.KeyArrowUp}, keys.AppendPressedKeys(nil))

	script.apply(keys, 30)
	assert.Len(t, keys.AppendPressedKeys(nil), 2, "held for the whole phase")

	script.apply(keys, phaseFrames)
	assert.Equal(t, []input.Key{ebiten.KeyS, ebiten.KeyArrowDown}, keys.AppendPressedKeys(nil))

	script.apply(keys, 2*phaseFrames)
	assert.Empty(t, keys.AppendPressedKeys(nil))

	script.apply(keys, 3*phaseFrames)
	assert.Len(t, keys.AppendPressedKeys(nil), 2)
}
