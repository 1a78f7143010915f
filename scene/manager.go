package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/debugtext"
)

// ErrUnknownScene is returned for a scene name with no builder.
var ErrUnknownScene = errors.New("unknown scene")

type builder struct {
	name  string
	key   ebiten.Key
	build func(Env) *Scene
}

var builders = []builder{
	{"character", ebiten.KeyF1, NewCharacter},
	{"scatter", ebiten.KeyF2, NewScatter},
	{"cube", ebiten.KeyF3, NewCube},
}

// Names lists the scenes in switch-key order.
func Names() []string {
	names := make([]string, len(builders))
	for i, b := range builders {
		names[i] = b.name
	}
	return names
}

// Build creates the named scene.
func Build(name string, env Env) (*Scene, error) {
	i := slices.IndexFunc(builders, func(b builder) bool { return b.name == name })
	if i < 0 {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownScene, name, Names())
	}
	return builders[i].build(env), nil
}

// Manager runs one scene at a time and swaps scenes on F1-F3.
type Manager struct {
	env    Env
	active *Scene
	width  int
	height int
}

// NewManager builds the initial scene.
func NewManager(env Env, initial string) (*Manager, error) {
	env.defaults()
	m := &Manager{env: env}
	if err := m.Switch(initial); err != nil {
		return nil, err
	}
	return m, nil
}

// Active returns the running scene.
func (m *Manager) Active() *Scene {
	return m.active
}

// Switch discards the running scene and builds name from scratch.
func (m *Manager) Switch(name string) error {
	s, err := Build(name, m.env)
	if err != nil {
		return err
	}
	if m.active != nil {
		m.env.Logger.Printf("scene: %s -> %s", m.active.Name(), name)
	} else {
		m.env.Logger.Printf("scene: starting %s", name)
	}
	m.active = s
	if m.width > 0 && m.height > 0 {
		s.SetViewport(m.width, m.height)
	}
	s.settle()
	return nil
}

// SetViewport records the render target size for the running scene and
// every scene built later.
func (m *Manager) SetViewport(width, height int) {
	m.width, m.height = width, height
	m.active.SetViewport(width, height)
}

// Update runs one frame of the active scene, then switches scenes if a
// switch key went down this frame.
func (m *Manager) Update(dt float64) error {
	m.active.Update(dt)

	keys := m.active.Input()
	for _, b := range builders {
		if keys.TriggerKey(b.key) {
			if b.name == m.active.Name() {
				return nil
			}
			return m.Switch(b.name)
		}
	}
	return nil
}

// Draw draws the active scene.
func (m *Manager) Draw(text debugtext.Printer) error {
	return m.active.Draw(text)
}
