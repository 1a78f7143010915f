// Package game runs the scene manager inside Ebitengine's loop.
package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/debugtext"
	debugui_ebiten "github.com/plus3/puppet/debugui/ebiten"
	"github.com/plus3/puppet/render"
	"github.com/plus3/puppet/scene"
)

var clearColor = color.RGBA{0x1a, 0x40, 0x80, 0xff}

// Game implements ebiten.Game.
type Game struct {
	manager  *scene.Manager
	renderer *render.Renderer
	imgui    *debugui_ebiten.ImguiBackend
	tps      int
	drawErr  error
}

// Options configures a Game.
type Options struct {
	// TPS is the update rate the game was started with. Zero means 60.
	TPS int
	// Imgui, when set, wraps each update in an ImGui frame and draws the
	// UI over the scene.
	Imgui *debugui_ebiten.ImguiBackend
}

// New creates a game drawing manager's scenes with renderer. renderer must
// be the one the manager's scenes were built with.
func New(manager *scene.Manager, renderer *render.Renderer, opts Options) *Game {
	tps := opts.TPS
	if tps <= 0 {
		tps = 60
	}
	return &Game{
		manager:  manager,
		renderer: renderer,
		imgui:    opts.Imgui,
		tps:      tps,
	}
}

// Update runs one frame. ESC ends the game; a draw failure from the
// previous frame is returned here since Draw cannot report errors.
func (g *Game) Update() error {
	if g.drawErr != nil {
		return g.drawErr
	}

	if g.imgui != nil {
		g.imgui.BeginFrame()
		defer g.imgui.EndFrame()
	}

	if err := g.manager.Update(1 / float64(g.tps)); err != nil {
		return err
	}
	if g.manager.Active().Input().TriggerKey(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)

	canvas := debugtext.Screen{Image: screen}
	g.renderer.BeginFrame(canvas)
	if err := g.manager.Draw(canvas); err != nil {
		g.drawErr = err
	}
	if err := g.renderer.EndFrame(); err != nil && g.drawErr == nil {
		g.drawErr = err
	}

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	g.manager.SetViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
