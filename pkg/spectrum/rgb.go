package spectrum

import (
	"math"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/rgb2spec"
)

// RGBAlbedoSpectrum is a reflectance spectrum upsampled from a linear sRGB
// albedo in [0,1]³
type RGBAlbedoSpectrum struct {
	poly rgb2spec.SigmoidPolynomial
}

// NewRGBAlbedo upsamples an RGB albedo through the coefficient table
func NewRGBAlbedo(table *rgb2spec.Table, rgb core.Vec3) RGBAlbedoSpectrum {
	return RGBAlbedoSpectrum{poly: table.Lookup(rgb.X, rgb.Y, rgb.Z)}
}

// Value implements Spectrum
func (s RGBAlbedoSpectrum) Value(lambda float64) float64 {
	return s.poly.Value(lambda)
}

// MaxValue implements Spectrum
func (s RGBAlbedoSpectrum) MaxValue() float64 {
	return s.poly.MaxValue()
}

// standardIlluminant is the smooth white emitter RGB illuminant spectra are
// shaped against: a normalized 6504K blackbody standing in for CIE D65
var standardIlluminant = NewDenselySampled(NewBlackbody(6504))

// StandardIlluminant returns the reference white emission spectrum
func StandardIlluminant() Spectrum {
	return standardIlluminant
}

// RGBIlluminantSpectrum is an emission spectrum for a light of a given RGB
// color: the upsampled chromaticity modulates the standard illuminant, and
// an overall scale restores emission values above 1
type RGBIlluminantSpectrum struct {
	scale      float64
	poly       rgb2spec.SigmoidPolynomial
	illuminant Spectrum
}

// NewRGBIlluminant creates an emission spectrum for an RGB light color.
// Components may exceed 1; the color is normalized into the table's domain
// and the scale folded back in.
func NewRGBIlluminant(table *rgb2spec.Table, rgb core.Vec3) RGBIlluminantSpectrum {
	maxComponent := math.Max(rgb.X, math.Max(rgb.Y, rgb.Z))
	scale := 2.0 * maxComponent
	scaled := rgb
	if scale > 0 {
		scaled = rgb.Multiply(1.0 / scale)
	}
	return RGBIlluminantSpectrum{
		scale:      scale,
		poly:       table.Lookup(scaled.X, scaled.Y, scaled.Z),
		illuminant: standardIlluminant,
	}
}

// Value implements Spectrum
func (s RGBIlluminantSpectrum) Value(lambda float64) float64 {
	return s.scale * s.poly.Value(lambda) * s.illuminant.Value(lambda)
}

// MaxValue implements Spectrum
func (s RGBIlluminantSpectrum) MaxValue() float64 {
	return s.scale * s.poly.MaxValue() * s.illuminant.MaxValue()
}

// RGBUnboundedSpectrum upsamples an RGB triple whose components may exceed 1
// without tying it to an illuminant (e.g. scale factors)
type RGBUnboundedSpectrum struct {
	scale float64
	poly  rgb2spec.SigmoidPolynomial
}

// NewRGBUnbounded upsamples an unbounded RGB triple
func NewRGBUnbounded(table *rgb2spec.Table, rgb core.Vec3) RGBUnboundedSpectrum {
	maxComponent := math.Max(rgb.X, math.Max(rgb.Y, rgb.Z))
	scale := 2.0 * maxComponent
	scaled := rgb
	if scale > 0 {
		scaled = rgb.Multiply(1.0 / scale)
	}
	return RGBUnboundedSpectrum{
		scale: scale,
		poly:  table.Lookup(scaled.X, scaled.Y, scaled.Z),
	}
}

// Value implements Spectrum
func (s RGBUnboundedSpectrum) Value(lambda float64) float64 {
	return s.scale * s.poly.Value(lambda)
}

// MaxValue implements Spectrum
func (s RGBUnboundedSpectrum) MaxValue() float64 {
	return s.scale * s.poly.MaxValue()
}
