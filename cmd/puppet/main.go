package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/config"
	"github.com/plus3/puppet/debugui"
	debugui_ebiten "github.com/plus3/puppet/debugui/ebiten"
	"github.com/plus3/puppet/game"
	"github.com/plus3/puppet/input"
	"github.com/plus3/puppet/render"
	"github.com/plus3/puppet/scene"
	"github.com/plus3/puppet/texture"
)

func main() {
	cfg, err := config.Load(flag.NewFlagSet("puppet", flag.ExitOnError), os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(scene.Names()); err != nil {
		log.Fatalf("config: %v", err)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetTPS(cfg.TPS)

	textures := texture.NewManager(os.DirFS(cfg.Assets), log.Default())
	defer textures.Dispose()
	renderer := render.NewRenderer(textures)

	env := scene.Env{
		Keyboard:    input.EbitenKeyboard{},
		Textures:    textures,
		Renderer:    renderer,
		TextureName: cfg.Texture,
		Seed:        cfg.Seed,
		Logger:      log.Default(),
	}
	opts := game.Options{TPS: cfg.TPS}
	if cfg.DebugUI {
		opts.Imgui = debugui_ebiten.NewImguiBackend(cfg.Title, cfg.Width, cfg.Height)
		env.Keyboard = debugui.Keyboard{Keyboard: env.Keyboard}
		env.Extensions = append(env.Extensions, &debugui.Overlay{})
	}

	manager, err := scene.NewManager(env, cfg.Scene)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}

	log.Printf("puppet: %dx%d, scene %s, assets %s", cfg.Width, cfg.Height, cfg.Scene, cfg.Assets)
	if err := ebiten.RunGame(game.New(manager, renderer, opts)); err != nil {
		log.Fatal(err)
	}
}
