package spectrum

import (
	"math"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
)

// Analytic multi-lobe Gaussian fits of the CIE 1931 2° standard observer
// (Wyman, Sloan, Shirley 2013). Each lobe is a piecewise Gaussian with
// separate falloff on either side of the peak.

func gaussianLobe(lambda, alpha, mu, sigma1, sigma2 float64) float64 {
	sigma := sigma1
	if lambda >= mu {
		sigma = sigma2
	}
	t := (lambda - mu) / sigma
	return alpha * math.Exp(-0.5*t*t)
}

func cieX(lambda float64) float64 {
	return gaussianLobe(lambda, 1.056, 599.8, 37.9, 31.0) +
		gaussianLobe(lambda, 0.362, 442.0, 16.0, 26.7) +
		gaussianLobe(lambda, -0.065, 501.1, 20.4, 26.2)
}

func cieY(lambda float64) float64 {
	return gaussianLobe(lambda, 0.821, 568.8, 46.9, 40.5) +
		gaussianLobe(lambda, 0.286, 530.9, 16.3, 31.1)
}

func cieZ(lambda float64) float64 {
	return gaussianLobe(lambda, 1.217, 437.0, 11.8, 36.0) +
		gaussianLobe(lambda, 0.681, 459.0, 26.0, 13.8)
}

// cieYIntegral is the 1nm Riemann sum of the Y matching function over the
// visible range. Dividing spectral integrals by it makes a unit constant
// spectrum integrate to Y = 1.
var cieYIntegral = func() float64 {
	sum := 0.0
	for lambda := LambdaMin; lambda <= LambdaMax; lambda++ {
		sum += cieY(lambda)
	}
	return sum
}()

// CIEX returns the X matching function value at lambda (nm)
func CIEX(lambda float64) float64 { return cieX(lambda) }

// CIEY returns the Y matching function value at lambda (nm)
func CIEY(lambda float64) float64 { return cieY(lambda) }

// CIEZ returns the Z matching function value at lambda (nm)
func CIEZ(lambda float64) float64 { return cieZ(lambda) }

// CIEYIntegral returns the integral of the Y matching function over the
// visible range
func CIEYIntegral() float64 { return cieYIntegral }

// rgbToXYZMatrix is the linear sRGB to CIE XYZ matrix for the D65 white
// point (IEC 61966-2-1). Its inverse is computed rather than transcribed so
// the two conversions round trip to machine precision.
var rgbToXYZMatrix = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

var xyzToRGBMatrix = invert3x3(rgbToXYZMatrix)

func invert3x3(m [3][3]float64) [3][3]float64 {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	inv := [3][3]float64{
		{m[1][1]*m[2][2] - m[1][2]*m[2][1], m[0][2]*m[2][1] - m[0][1]*m[2][2], m[0][1]*m[1][2] - m[0][2]*m[1][1]},
		{m[1][2]*m[2][0] - m[1][0]*m[2][2], m[0][0]*m[2][2] - m[0][2]*m[2][0], m[0][2]*m[1][0] - m[0][0]*m[1][2]},
		{m[1][0]*m[2][1] - m[1][1]*m[2][0], m[0][1]*m[2][0] - m[0][0]*m[2][1], m[0][0]*m[1][1] - m[0][1]*m[1][0]},
	}
	for i := range inv {
		for j := range inv[i] {
			inv[i][j] /= det
		}
	}
	return inv
}

func applyMatrix(m [3][3]float64, v core.Vec3) core.Vec3 {
	return core.NewVec3(
		m[0][0]*v.X+m[0][1]*v.Y+m[0][2]*v.Z,
		m[1][0]*v.X+m[1][1]*v.Y+m[1][2]*v.Z,
		m[2][0]*v.X+m[2][1]*v.Y+m[2][2]*v.Z,
	)
}

// XYZToRGB converts CIE XYZ to linear sRGB (D65 white point)
func XYZToRGB(xyz core.Vec3) core.Vec3 {
	return applyMatrix(xyzToRGBMatrix, xyz)
}

// RGBToXYZ converts linear sRGB to CIE XYZ (D65 white point)
func RGBToXYZ(rgb core.Vec3) core.Vec3 {
	return applyMatrix(rgbToXYZMatrix, rgb)
}
