// Command render renders a built-in scene to a PNG image.
package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spectralpt/go-spectral-raytracer/pkg/config"
	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/renderer"
	"github.com/spectralpt/go-spectral-raytracer/pkg/rgb2spec"
	"github.com/spectralpt/go-spectral-raytracer/pkg/scene"
)

// fallbackTableResolution keeps startup tolerable when no precomputed table
// file is available
const fallbackTableResolution = 16

func main() {
	var (
		configPath string
		sceneName  string
		output     string
		tablePath  string
		width      int
		height     int
		samples    int
		seed       uint64
		threads    int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a built-in scene with the spectral path tracer",
		Long: "Render renders one of the built-in scenes (" +
			strings.Join(scene.Names(), ", ") + ") to a PNG file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}

			// Flags override the config file
			flags := cmd.Flags()
			if flags.Changed("scene") {
				cfg.Scene = sceneName
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("table") {
				cfg.Table = tablePath
			}
			if flags.Changed("width") {
				cfg.Render.Width = width
			}
			if flags.Changed("height") {
				cfg.Render.Height = height
			}
			if flags.Changed("samples") {
				cfg.Render.SamplesPerPixel = samples
			}
			if flags.Changed("seed") {
				cfg.Render.Seed = seed
			}
			if flags.Changed("threads") {
				cfg.Render.Threads = threads
			}

			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVarP(&sceneName, "scene", "s", "default", "built-in scene name")
	cmd.Flags().StringVarP(&output, "output", "o", "render.png", "output PNG path")
	cmd.Flags().StringVar(&tablePath, "table", "", "precomputed spectrum table file")
	cmd.Flags().IntVar(&width, "width", 400, "image width")
	cmd.Flags().IntVar(&height, "height", 400, "image height")
	cmd.Flags().IntVar(&samples, "samples", 64, "samples per pixel")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "render seed")
	cmd.Flags().IntVar(&threads, "threads", 0, "worker threads (0 = all CPUs)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	logger := core.StdLogger{}

	table, err := loadTable(cfg.Table, logger)
	if err != nil {
		return err
	}

	scn, err := scene.Build(cfg.Scene, table)
	if err != nil {
		return err
	}
	if err := scn.Preprocess(logger); err != nil {
		return err
	}

	// Ctrl-C aborts the render but still writes the partial image
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	film, renderErr := renderer.NewRenderer(cfg.Options(), logger).Render(ctx, scn)
	if renderErr != nil && film == nil {
		return renderErr
	}
	logger.Printf("render finished in %v (complete: %v)", time.Since(start).Round(time.Millisecond), film.Complete())

	out, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, film.ToImage()); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	logger.Printf("wrote %s", cfg.Output)

	return renderErr
}

// loadTable loads the precomputed spectrum table, or fits a small one on the
// fly when no file is given
func loadTable(path string, logger core.Logger) (*rgb2spec.Table, error) {
	if path != "" {
		table, err := rgb2spec.LoadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Printf("loaded spectrum table %s (resolution %d)", path, table.Resolution)
		return table, nil
	}

	logger.Printf("no spectrum table given, fitting resolution %d (use the rgb2spec tool for higher quality)",
		fallbackTableResolution)
	return rgb2spec.Fit(fallbackTableResolution, rgb2spec.DefaultFitOptions(), logger)
}
