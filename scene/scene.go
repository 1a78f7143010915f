// Package scene builds the demo's worlds: the jointed character, the cube
// field and the single lens-test cube. Each scene owns a fresh ECS storage
// and scheduler and draws through the render phases.
package scene

import (
	"fmt"
	"io"
	"log"

	"github.com/plus3/puppet/camera"
	"github.com/plus3/puppet/debugtext"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/input"
	"github.com/plus3/puppet/render"
	"github.com/plus3/puppet/texture"
	"github.com/plus3/puppet/transform"
)

// Extension adds components, entities and systems to every scene built from
// an Env. The debug overlay is one.
type Extension interface {
	RegisterComponents(registry *ecs.ComponentRegistry)
	Install(storage *ecs.Storage, scheduler *ecs.Scheduler)
}

// Env is what a scene needs from its host.
type Env struct {
	Keyboard    input.Keyboard
	Textures    *texture.Manager
	Renderer    *render.Renderer
	TextureName string
	// Seed feeds the scatter scene's random source. Zero picks a random seed.
	Seed       uint64
	Logger     *log.Logger
	Extensions []Extension
}

func (e *Env) defaults() {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard, "", 0)
	}
	if e.Keyboard == nil {
		e.Keyboard = &input.Scripted{}
	}
	if e.Textures == nil {
		e.Textures = texture.NewManager(nil, e.Logger)
	}
	if e.Renderer == nil {
		e.Renderer = render.NewRenderer(e.Textures)
	}
}

// Scene is one running world.
type Scene struct {
	name      string
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	settler   *ecs.Scheduler
	renderer  *render.Renderer
	model     *render.Model
	texture   texture.Handle

	camera   *ecs.Singleton[camera.ViewProjection]
	viewport *ecs.Singleton[camera.Viewport]
	keys     *ecs.Singleton[input.State]
	text     *ecs.Singleton[debugtext.DebugText]
	cubes    *ecs.Query[struct {
		*transform.WorldTransform
		*Cube
	}]
	parts *ecs.Query[struct {
		*Part
		*transform.WorldTransform
	}]
}

// populate spawns the scene's entities and registers the systems that run
// between input capture and the transform pass.
type populate func(s *Scene, env *Env) []ecs.System

func newScene(name string, env Env, fill populate) *Scene {
	env.defaults()

	registry := ecs.NewComponentRegistry()
	transform.RegisterComponents(registry)
	ecs.RegisterComponent[Part](registry)
	ecs.RegisterComponent[Cube](registry)
	for _, ext := range env.Extensions {
		ext.RegisterComponents(registry)
	}

	storage := ecs.NewStorage(registry)
	s := &Scene{
		name:      name,
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		settler:   ecs.NewScheduler(storage),
		renderer:  env.Renderer,
		model:     render.NewModel(env.Renderer, nil),
		texture:   env.Textures.Load(env.TextureName),
		camera:    ecs.NewSingleton(storage, camera.Default()),
		viewport:  ecs.NewSingleton[camera.Viewport](storage),
		keys:      ecs.NewSingleton[input.State](storage),
		text:      ecs.NewSingleton[debugtext.DebugText](storage),
	}
	s.cubes = ecs.NewQuery[struct {
		*transform.WorldTransform
		*Cube
	}](storage)
	s.parts = ecs.NewQuery[struct {
		*Part
		*transform.WorldTransform
	}](storage)

	s.scheduler.Register(&input.System{Keyboard: env.Keyboard})
	for _, sys := range fill(s, &env) {
		s.scheduler.Register(sys)
	}
	for _, sched := range []*ecs.Scheduler{s.scheduler, s.settler} {
		sched.Register(&transform.System{})
		sched.Register(&camera.System{})
		sched.Register(&OverlaySystem{Lines: overlayLines[name]})
	}

	for _, ext := range env.Extensions {
		ext.Install(storage, s.scheduler)
	}
	return s
}

// Name returns the name the scene was built under.
func (s *Scene) Name() string { return s.name }

// Storage returns the scene's entity storage.
func (s *Scene) Storage() *ecs.Storage { return s.storage }

// Scheduler returns the scene's system scheduler.
func (s *Scene) Scheduler() *ecs.Scheduler { return s.scheduler }

// Camera returns the live camera.
func (s *Scene) Camera() *camera.ViewProjection { return s.camera.Get() }

// Input returns the keyboard state captured by the last Update.
func (s *Scene) Input() *input.State { return s.keys.Get() }

// Text returns the debug text buffered by the last Update.
func (s *Scene) Text() *debugtext.DebugText { return s.text.Get() }

// Texture returns the handle cubes are drawn with.
func (s *Scene) Texture() texture.Handle { return s.texture }

// Part returns the transform of a character joint, or nil when the scene
// has no such part.
func (s *Scene) Part(id PartId) *transform.WorldTransform {
	for p := range s.parts.Iter() {
		if p.Part.Id == id {
			return p.WorldTransform
		}
	}
	return nil
}

// SetViewport tells the camera the size of the render target.
func (s *Scene) SetViewport(width, height int) {
	*s.viewport.Get() = camera.Viewport{Width: float32(width), Height: float32(height)}
}

// Update runs one frame of the scene's systems.
func (s *Scene) Update(dt float64) {
	s.scheduler.Once(dt)
}

// settle composes world matrices, the camera and the overlay without
// reading input, so a scene can be drawn before its first Update.
func (s *Scene) settle() {
	s.settler.Once(0)
}

// Draw runs the frame's draw phases on the scene's renderer: an empty
// background sprite pass, a depth clear, every cube, then the debug text.
// The renderer's frame must already have begun.
func (s *Scene) Draw(text debugtext.Printer) error {
	r := s.renderer

	if err := r.PreDrawSprites(); err != nil {
		return fmt.Errorf("background sprites: %w", err)
	}
	if err := r.PostDrawSprites(); err != nil {
		return fmt.Errorf("background sprites: %w", err)
	}
	r.ClearDepthBuffer()

	if err := r.PreDrawModels(); err != nil {
		return fmt.Errorf("models: %w", err)
	}
	vp := s.camera.Get()
	for c := range s.cubes.Iter() {
		if err := s.model.Draw(c.WorldTransform, vp, c.Cube.Texture); err != nil {
			return err
		}
	}
	if err := r.PostDrawModels(); err != nil {
		return fmt.Errorf("models: %w", err)
	}

	if err := r.PreDrawSprites(); err != nil {
		return fmt.Errorf("foreground sprites: %w", err)
	}
	s.text.Get().DrawAll(text)
	if err := r.PostDrawSprites(); err != nil {
		return fmt.Errorf("foreground sprites: %w", err)
	}
	return nil
}
