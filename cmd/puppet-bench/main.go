package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/config"
	"github.com/plus3/puppet/input"
	"github.com/plus3/puppet/render"
	"github.com/plus3/puppet/scene"
	"github.com/plus3/puppet/texture"
)

func main() {
	fs := flag.NewFlagSet("puppet-bench", flag.ExitOnError)
	duration := fs.Duration("duration", 10*time.Second, "The total duration the benchmark should run for.")
	draw := fs.Bool("draw", true, "Run the draw pass into a discarding target as well as updates.")
	gcPauseMetrics := fs.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")

	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(scene.Names()); err != nil {
		log.Fatalf("config: %v", err)
	}

	log.Printf("Starting %s scene benchmark...", cfg.Scene)

	keys := &input.Scripted{}
	textures := texture.NewManager(os.DirFS(cfg.Assets), log.Default())
	renderer := render.NewRenderer(headlessTextures{textures})
	manager, err := scene.NewManager(scene.Env{
		Keyboard:    keys,
		Textures:    textures,
		Renderer:    renderer,
		TextureName: cfg.Texture,
		Seed:        cfg.Seed,
		Logger:      log.Default(),
	}, cfg.Scene)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}
	manager.SetViewport(cfg.Width, cfg.Height)

	report := &Report{
		Duration:       *duration,
		Scene:          cfg.Scene,
		Seed:           cfg.Seed,
		Entities:       manager.Active().Storage().CollectStats().TotalEntityCount,
		Draw:           *draw,
		GCPauseMetrics: *gcPauseMetrics,
	}
	target := discard{bounds: image.Rect(0, 0, cfg.Width, cfg.Height)}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s...", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	dt := 1 / float64(cfg.TPS)
	startTime := time.Now()
	script := newKeyScript(manager.Active().Name())

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			script.apply(keys, report.TotalFrames)

			updateStart := time.Now()
			if err := manager.Update(dt); err != nil {
				log.Fatalf("update: %v", err)
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

			if *draw {
				drawStart := time.Now()
				renderer.BeginFrame(target)
				if err := manager.Draw(target); err != nil {
					log.Fatalf("draw: %v", err)
				}
				if err := renderer.EndFrame(); err != nil {
					log.Fatalf("draw: %v", err)
				}
				report.DrawTime.Samples = append(report.DrawTime.Samples, time.Since(drawStart))

				stats := renderer.Stats()
				report.Queued += int64(stats.Queued)
				report.Culled += int64(stats.Culled)
			}
			report.TotalFrames++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.DrawTime.Finalize()
	report.Systems = manager.Active().Scheduler().GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Benchmark finished.")

	fmt.Println("\n\n--- Scene Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// headlessTextures keeps texture sizes but never uploads to the GPU.
type headlessTextures struct {
	*texture.Manager
}

func (headlessTextures) Image(texture.Handle) *ebiten.Image { return nil }

// discard is a render target and text printer that drops everything.
type discard struct {
	bounds image.Rectangle
}

func (d discard) Bounds() image.Rectangle { return d.bounds }

func (discard) DrawTriangles([]ebiten.Vertex, []uint16, *ebiten.Image, *ebiten.DrawTrianglesOptions) {}

func (discard) DrawImage(*ebiten.Image, *ebiten.DrawImageOptions) {}

func (discard) DebugPrintAt(string, int, int) {}
