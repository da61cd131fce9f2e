package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/integrator"
	"github.com/spectralpt/go-spectral-raytracer/pkg/scene"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// Options controls image dimensions, sampling effort and parallelism
type Options struct {
	Width               int
	Height              int
	SamplesPerPixel     int
	MaxBounces          int
	RouletteStartBounce int
	Seed                uint64
	TileSize            int
	Threads             int // 0 means use all CPUs
}

// DefaultOptions returns sensible defaults for an offline render
func DefaultOptions() Options {
	return Options{
		Width:               400,
		Height:              400,
		SamplesPerPixel:     64,
		MaxBounces:          16,
		RouletteStartBounce: 4,
		Seed:                1,
		TileSize:            32,
		Threads:             0,
	}
}

// tile is a rectangular region of the film, half-open on both axes
type tile struct {
	x0, y0, x1, y1 int
}

// Renderer renders a preprocessed scene to a film. Pixel values depend only
// on (x, y, sampleIndex, seed), so output is bit-identical for any thread
// count or tile order.
type Renderer struct {
	options    Options
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRenderer creates a renderer with the given options
func NewRenderer(options Options, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Renderer{
		options:    options,
		integrator: integrator.NewPathTracer(options.MaxBounces, options.RouletteStartBounce),
		logger:     logger,
	}
}

// Render renders the scene and returns the film. The scene must have been
// preprocessed. Cancelling the context aborts the render between pixels and
// returns the partially filled film alongside the context error.
func (r *Renderer) Render(ctx context.Context, scn *scene.Scene) (*Film, error) {
	opts := r.options
	film := NewFilm(opts.Width, opts.Height)
	camera := NewCamera(scn.Camera, float64(opts.Width)/float64(opts.Height))

	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	tileSize := opts.TileSize
	if tileSize <= 0 {
		tileSize = 32
	}

	tiles := makeTiles(opts.Width, opts.Height, tileSize)
	r.logger.Printf("rendering %dx%d, %d spp, %d tiles on %d threads",
		opts.Width, opts.Height, opts.SamplesPerPixel, len(tiles), threads)

	work := make(chan tile, len(tiles))
	for _, t := range tiles {
		work <- t
	}
	close(work)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			for t := range work {
				if err := r.renderTile(ctx, t, camera, scn, film); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		film.MarkIncomplete()
		return film, err
	}
	return film, nil
}

// renderTile renders every pixel of one tile, checking for cancellation
// between pixels
func (r *Renderer) renderTile(ctx context.Context, t tile, camera *Camera, scn *scene.Scene, film *Film) error {
	for y := t.y0; y < t.y1; y++ {
		for x := t.x0; x < t.x1; x++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			film.AddSample(x, y, r.renderPixel(x, y, camera, scn))
		}
	}
	return nil
}

// renderPixel averages all samples of one pixel, each with its own
// deterministic sampler
func (r *Renderer) renderPixel(x, y int, camera *Camera, scn *scene.Scene) core.Vec3 {
	opts := r.options
	sum := core.Vec3{}

	for s := 0; s < opts.SamplesPerPixel; s++ {
		sampler := core.NewPixelSampler(x, y, s, opts.Seed)

		jitter := sampler.Get2D()
		u := (float64(x) + jitter.X) / float64(opts.Width)
		v := 1.0 - (float64(y)+jitter.Y)/float64(opts.Height)
		ray := camera.GetRay(u, v)

		lambda := spectrum.SampleWavelengthsUniform(sampler.Get1D())
		radiance := r.integrator.Li(ray, scn, lambda, sampler)
		sum = sum.Add(lambda.ToRGB(radiance))
	}

	return sum.Multiply(1.0 / float64(opts.SamplesPerPixel))
}

// makeTiles partitions the film into tileSize x tileSize regions, with edge
// tiles clipped to the image bounds
func makeTiles(width, height, tileSize int) []tile {
	var tiles []tile
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			t := tile{x0: x, y0: y, x1: x + tileSize, y1: y + tileSize}
			if t.x1 > width {
				t.x1 = width
			}
			if t.y1 > height {
				t.y1 = height
			}
			tiles = append(tiles, t)
		}
	}
	return tiles
}
