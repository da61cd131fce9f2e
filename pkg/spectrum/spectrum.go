// Package spectrum implements the spectral color model: full spectral
// distributions over the visible range, hero-wavelength sampling, and
// integration against the CIE observer to produce display RGB.
package spectrum

import "github.com/spectralpt/go-spectral-raytracer/pkg/core"

const (
	// LambdaMin is the lower bound of the visible wavelength range (nm)
	LambdaMin = 360.0
	// LambdaMax is the upper bound of the visible wavelength range (nm)
	LambdaMax = 830.0
)

// Spectrum is a spectral distribution: power or reflectance as a function
// of wavelength in nanometers
type Spectrum interface {
	// Value returns the spectral value at wavelength lambda (nm)
	Value(lambda float64) float64
	// MaxValue returns an upper bound of the spectral value over the visible range
	MaxValue() float64
}

// InnerProduct integrates the product of two spectra over the visible range
// with a 1nm Riemann sum
func InnerProduct(s1, s2 Spectrum) float64 {
	sum := 0.0
	for lambda := LambdaMin; lambda <= LambdaMax; lambda++ {
		sum += s1.Value(lambda) * s2.Value(lambda)
	}
	return sum
}

// ToXYZ integrates a spectrum against the CIE X/Y/Z matching functions.
// A constant spectrum of 1 maps to Y=1.
func ToXYZ(s Spectrum) core.Vec3 {
	x, y, z := 0.0, 0.0, 0.0
	for lambda := LambdaMin; lambda <= LambdaMax; lambda++ {
		v := s.Value(lambda)
		x += cieX(lambda) * v
		y += cieY(lambda) * v
		z += cieZ(lambda) * v
	}
	inv := 1.0 / cieYIntegral
	return core.NewVec3(x*inv, y*inv, z*inv)
}

// ToRGB converts a spectrum to linear sRGB via the CIE observer.
// ToRGB of a zero spectrum is exactly zero and ToRGB is linear in scale.
func ToRGB(s Spectrum) core.Vec3 {
	return XYZToRGB(ToXYZ(s))
}
