package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
)

// Film accumulates per-pixel radiance samples. Pixels store running sums so
// samples can arrive in any order; the mean is taken at readout.
type Film struct {
	Width  int
	Height int

	sum     []core.Vec3
	count   []int
	partial bool
}

// NewFilm creates an empty film of the given dimensions
func NewFilm(width, height int) *Film {
	return &Film{
		Width:  width,
		Height: height,
		sum:    make([]core.Vec3, width*height),
		count:  make([]int, width*height),
	}
}

// AddSample accumulates one linear RGB radiance sample for the pixel.
// Non-finite samples count as zero contribution so a single bad path cannot
// poison the pixel average; the mean stays a mean over the full sample
// budget either way.
func (f *Film) AddSample(x, y int, rgb core.Vec3) {
	i := y*f.Width + x
	if rgb.IsFinite() {
		f.sum[i] = f.sum[i].Add(rgb)
	}
	f.count[i]++
}

// Pixel returns the mean linear RGB value of the pixel
func (f *Film) Pixel(x, y int) core.Vec3 {
	i := y*f.Width + x
	if f.count[i] == 0 {
		return core.Vec3{}
	}
	return f.sum[i].Multiply(1.0 / float64(f.count[i]))
}

// SampleCount returns the number of samples accumulated for the pixel
func (f *Film) SampleCount(x, y int) int {
	return f.count[y*f.Width+x]
}

// MarkIncomplete records that rendering was aborted before every pixel
// received its full sample budget
func (f *Film) MarkIncomplete() {
	f.partial = true
}

// Complete reports whether the render ran to completion
func (f *Film) Complete() bool {
	return !f.partial
}

// ToImage converts the film to an 8-bit sRGB image with gamma 2.0,
// clamping to [0, 1]
func (f *Film) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			rgb := f.Pixel(x, y).Clamp(0, 1).GammaCorrect(2.0)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(math.Round(rgb.X * 255)),
				G: uint8(math.Round(rgb.Y * 255)),
				B: uint8(math.Round(rgb.Z * 255)),
				A: 255,
			})
		}
	}
	return img
}
