package scene_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/input"
	"github.com/plus3/puppet/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marker struct{}

type countingExtension struct {
	installs int
}

func (e *countingExtension) RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[marker](registry)
}

func (e *countingExtension) Install(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	e.installs++
	storage.Spawn(marker{})
}

func TestManagerRejectsUnknownScene(t *testing.T) {
	_, err := scene.NewManager(newEnv(&input.Scripted{}), "menu")
	assert.ErrorIs(t, err, scene.ErrUnknownScene)
	assert.ErrorContains(t, err, `"menu"`)
}

func TestManagerSwitchesOnFunctionKeys(t *testing.T) {
	keys := &input.Scripted{}
	var logs bytes.Buffer
	env := newEnv(keys)
	env.Logger = log.New(&logs, "", 0)
	ext := &countingExtension{}
	env.Extensions = []scene.Extension{ext}

	m, err := scene.NewManager(env, "character")
	require.NoError(t, err)
	assert.Equal(t, "character", m.Active().Name())

	keys.Hold(ebiten.KeyArrowRight)
	require.NoError(t, m.Update(dt))
	first := m.Active()

	keys.Hold(ebiten.KeyF2)
	require.NoError(t, m.Update(dt))
	assert.Equal(t, "scatter", m.Active().Name())
	assert.NotSame(t, first.Storage(), m.Active().Storage())

	// Holding F2 into the new scene does not rebuild it.
	scatter := m.Active()
	require.NoError(t, m.Update(dt))
	require.NoError(t, m.Update(dt))
	assert.Same(t, scatter, m.Active())

	keys.ReleaseAll()
	require.NoError(t, m.Update(dt))
	keys.Hold(ebiten.KeyF1)
	require.NoError(t, m.Update(dt))
	assert.Equal(t, "character", m.Active().Name())
	assert.Equal(t, float32(0), m.Active().Part(scene.Root).Translation.X(), "rebuilt from scratch")

	assert.Equal(t, 3, ext.installs)
	assert.Contains(t, logs.String(), "scene: character -> scatter")
	assert.Contains(t, logs.String(), "scene: scatter -> character")
}

func TestManagerCarriesViewport(t *testing.T) {
	keys := &input.Scripted{}
	m, err := scene.NewManager(newEnv(keys), "cube")
	require.NoError(t, err)

	m.SetViewport(800, 600)
	require.NoError(t, m.Update(dt))
	assert.InDelta(t, 800.0/600.0, m.Active().Camera().AspectRatio, 1e-6)

	require.NoError(t, m.Switch("scatter"))
	require.NoError(t, m.Update(dt))
	assert.InDelta(t, 800.0/600.0, m.Active().Camera().AspectRatio, 1e-6)
}

func TestSwitchedSceneIsReadyToDraw(t *testing.T) {
	keys := &input.Scripted{}
	m, err := scene.NewManager(newEnv(keys), "cube")
	require.NoError(t, err)
	m.SetViewport(800, 600)

	keys.Hold(ebiten.KeyF1)
	require.NoError(t, m.Update(dt))
	s := m.Active()
	require.Equal(t, "character", s.Name())

	// No Update has run on the new scene yet.
	assertVec(t, mgl32.Vec3{0, 1.5, 0}, s.Part(scene.Chest).WorldPosition())
	assertVec(t, mgl32.Vec3{3, -4.5, 0}, s.Part(scene.LegR).WorldPosition())
	assert.Len(t, s.Text().Lines(), 6)
	assert.InDelta(t, 800.0/600.0, s.Camera().AspectRatio, 1e-6)
	assert.Zero(t, s.Scheduler().GetStats().TotalExecutions)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"character", "scatter", "cube"}, scene.Names())
	for _, name := range scene.Names() {
		s, err := scene.Build(name, newEnv(&input.Scripted{}))
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}
}
