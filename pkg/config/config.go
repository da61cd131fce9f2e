// Package config loads render settings from TOML files, with defaults for
// every field so a partial file is enough.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spectralpt/go-spectral-raytracer/pkg/renderer"
)

// Config is the full render configuration
type Config struct {
	Scene  string `toml:"scene"`  // Built-in scene name
	Output string `toml:"output"` // Output PNG path
	Table  string `toml:"table"`  // Path to a precomputed spectrum table, optional

	Render RenderConfig `toml:"render"`
}

// RenderConfig mirrors renderer.Options in TOML form
type RenderConfig struct {
	Width               int    `toml:"width"`
	Height              int    `toml:"height"`
	SamplesPerPixel     int    `toml:"samples_per_pixel"`
	MaxBounces          int    `toml:"max_bounces"`
	RouletteStartBounce int    `toml:"roulette_start_bounce"`
	Seed                uint64 `toml:"seed"`
	TileSize            int    `toml:"tile_size"`
	Threads             int    `toml:"threads"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	opts := renderer.DefaultOptions()
	return Config{
		Scene:  "default",
		Output: "render.png",
		Render: RenderConfig{
			Width:               opts.Width,
			Height:              opts.Height,
			SamplesPerPixel:     opts.SamplesPerPixel,
			MaxBounces:          opts.MaxBounces,
			RouletteStartBounce: opts.RouletteStartBounce,
			Seed:                opts.Seed,
			TileSize:            opts.TileSize,
			Threads:             opts.Threads,
		},
	}
}

// Load reads a TOML file over the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the render section to renderer options
func (c Config) Options() renderer.Options {
	return renderer.Options{
		Width:               c.Render.Width,
		Height:              c.Render.Height,
		SamplesPerPixel:     c.Render.SamplesPerPixel,
		MaxBounces:          c.Render.MaxBounces,
		RouletteStartBounce: c.Render.RouletteStartBounce,
		Seed:                c.Render.Seed,
		TileSize:            c.Render.TileSize,
		Threads:             c.Render.Threads,
	}
}
