// Package config reads the demo's settings from PUPPET_* environment
// variables and command-line flags, flags taking precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
)

// ErrInvalid is returned by Validate for settings the demo cannot run with.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings shared by the windowed demo and the benchmark.
type Config struct {
	Width   int    `env:"PUPPET_WIDTH" envDefault:"1280"`
	Height  int    `env:"PUPPET_HEIGHT" envDefault:"720"`
	Title   string `env:"PUPPET_TITLE" envDefault:"puppet"`
	Scene   string `env:"PUPPET_SCENE" envDefault:"character"`
	Seed    uint64 `env:"PUPPET_SEED" envDefault:"0"`
	Assets  string `env:"PUPPET_ASSETS" envDefault:"assets"`
	Texture string `env:"PUPPET_TEXTURE" envDefault:"mario.jpg"`
	DebugUI bool   `env:"PUPPET_DEBUG_UI" envDefault:"false"`
	TPS     int    `env:"PUPPET_TPS" envDefault:"60"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Bind registers a flag for every field, defaulting to the current value.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.StringVar(&c.Title, "title", c.Title, "window title")
	fs.StringVar(&c.Scene, "scene", c.Scene, "initial scene (character, scatter, cube)")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "scatter scene seed, 0 for random")
	fs.StringVar(&c.Assets, "assets", c.Assets, "directory textures are loaded from")
	fs.StringVar(&c.Texture, "texture", c.Texture, "texture drawn on every cube")
	fs.BoolVar(&c.DebugUI, "debug-ui", c.DebugUI, "show the Dear ImGui inspector")
	fs.IntVar(&c.TPS, "tps", c.TPS, "updates per second")
}

// Load reads the environment, then parses args with fs. Extra flags may be
// registered on fs before calling.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Bind(fs)
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings against scenes, the list of known scene
// names.
func (c Config) Validate(scenes []string) error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: tps %d", ErrInvalid, c.TPS))
	}
	if len(scenes) > 0 && !slices.Contains(scenes, c.Scene) {
		errs = append(errs, fmt.Errorf("%w: scene %q not one of %v", ErrInvalid, c.Scene, scenes))
	}
	return errors.Join(errs...)
}
