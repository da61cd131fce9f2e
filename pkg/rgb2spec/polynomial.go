// Package rgb2spec upsamples RGB colors to smooth reflectance spectra.
//
// Spectra are sigmoid-mapped quadratics over the normalized visible range:
// s(c0·x² + c1·x + c2) with s(x) = 1/2 + x/(2·sqrt(1+x²)). The package fits a
// precomputed coefficient table offline (one Gauss-Newton solve per grid
// cell) and answers constant-time lookups at shading time.
package rgb2spec

import "math"

// Wavelength bounds of the visible range (nm). Kept local so the package is
// self-contained for offline table builds.
const (
	LambdaMin = 360.0
	LambdaMax = 830.0
)

// Sigmoid maps an unbounded quadratic value into (0, 1), which guarantees a
// physically plausible reflectance
func Sigmoid(x float64) float64 {
	if math.IsInf(x, 1) {
		return 1
	}
	if math.IsInf(x, -1) {
		return 0
	}
	return 0.5 + x/(2.0*math.Sqrt(1.0+x*x))
}

// InvSigmoid is the inverse of Sigmoid on (0, 1)
func InvSigmoid(s float64) float64 {
	return (s - 0.5) / math.Sqrt(s*(1.0-s))
}

// SigmoidPolynomial is a fitted reflectance spectrum: a quadratic in the
// normalized wavelength passed through the sigmoid
type SigmoidPolynomial struct {
	C0, C1, C2 float64
}

// Value evaluates the reflectance at wavelength lambda (nm)
func (p SigmoidPolynomial) Value(lambda float64) float64 {
	x := (lambda - LambdaMin) / (LambdaMax - LambdaMin)
	return Sigmoid(p.C0*x*x + p.C1*x + p.C2)
}

// MaxValue returns the maximum reflectance over the visible range, found at
// an endpoint or the quadratic's vertex
func (p SigmoidPolynomial) MaxValue() float64 {
	result := math.Max(p.Value(LambdaMin), p.Value(LambdaMax))
	if p.C0 != 0 {
		x := -p.C1 / (2.0 * p.C0)
		lambda := x*(LambdaMax-LambdaMin) + LambdaMin
		if lambda >= LambdaMin && lambda <= LambdaMax {
			result = math.Max(result, p.Value(lambda))
		}
	}
	return result
}
