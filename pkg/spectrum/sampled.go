package spectrum

import (
	"math"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
)

// NSamples is the number of wavelengths carried per light path
// (hero-wavelength sampling)
const NSamples = 4

// SampledSpectrum holds spectral values at the wavelengths of one path's
// SampledWavelengths. Throughput and radiance accumulate in this form.
type SampledSpectrum struct {
	Values [NSamples]float64
}

// NewConstantSampled returns a SampledSpectrum with every value set to c
func NewConstantSampled(c float64) SampledSpectrum {
	var s SampledSpectrum
	for i := range s.Values {
		s.Values[i] = c
	}
	return s
}

// Zero returns an all-zero SampledSpectrum
func Zero() SampledSpectrum {
	return SampledSpectrum{}
}

// One returns an all-one SampledSpectrum
func One() SampledSpectrum {
	return NewConstantSampled(1)
}

// Add returns the pointwise sum
func (s SampledSpectrum) Add(other SampledSpectrum) SampledSpectrum {
	var result SampledSpectrum
	for i := range s.Values {
		result.Values[i] = s.Values[i] + other.Values[i]
	}
	return result
}

// Mul returns the pointwise product (throughput accumulation)
func (s SampledSpectrum) Mul(other SampledSpectrum) SampledSpectrum {
	var result SampledSpectrum
	for i := range s.Values {
		result.Values[i] = s.Values[i] * other.Values[i]
	}
	return result
}

// Scale returns the spectrum scaled by a scalar
func (s SampledSpectrum) Scale(factor float64) SampledSpectrum {
	var result SampledSpectrum
	for i := range s.Values {
		result.Values[i] = s.Values[i] * factor
	}
	return result
}

// SafeDiv returns the pointwise quotient, mapping division by zero to zero
func (s SampledSpectrum) SafeDiv(other SampledSpectrum) SampledSpectrum {
	var result SampledSpectrum
	for i := range s.Values {
		if other.Values[i] != 0 {
			result.Values[i] = s.Values[i] / other.Values[i]
		}
	}
	return result
}

// Average returns the mean of the sampled values
func (s SampledSpectrum) Average() float64 {
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / NSamples
}

// MaxValue returns the largest sampled value
func (s SampledSpectrum) MaxValue() float64 {
	result := s.Values[0]
	for _, v := range s.Values[1:] {
		result = math.Max(result, v)
	}
	return result
}

// IsZero reports whether all sampled values are zero
func (s SampledSpectrum) IsZero() bool {
	for _, v := range s.Values {
		if v != 0 {
			return false
		}
	}
	return true
}

// IsFinite reports whether all sampled values are finite
func (s SampledSpectrum) IsFinite() bool {
	for _, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Clamp limits every sampled value to [minVal, maxVal]
func (s SampledSpectrum) Clamp(minVal, maxVal float64) SampledSpectrum {
	var result SampledSpectrum
	for i := range s.Values {
		result.Values[i] = math.Max(minVal, math.Min(maxVal, s.Values[i]))
	}
	return result
}

// SampledWavelengths holds the wavelengths one path transports radiance at,
// together with the probability density each was sampled with
type SampledWavelengths struct {
	Lambda [NSamples]float64
	PDF    [NSamples]float64
}

// SampleWavelengthsUniform places the first wavelength uniformly in the
// visible range using u ∈ [0,1) and spaces the rest evenly with wraparound,
// so one random number yields a stratified set. PDF is uniform.
func SampleWavelengthsUniform(u float64) SampledWavelengths {
	var result SampledWavelengths
	span := LambdaMax - LambdaMin
	pdf := 1.0 / span

	result.Lambda[0] = LambdaMin + u*span
	result.PDF[0] = pdf

	delta := span / NSamples
	for i := 1; i < NSamples; i++ {
		result.Lambda[i] = result.Lambda[i-1] + delta
		if result.Lambda[i] >= LambdaMax {
			result.Lambda[i] = LambdaMin + (result.Lambda[i] - LambdaMax)
		}
		result.PDF[i] = pdf
	}
	return result
}

// Sample evaluates a full spectrum at the path's wavelengths
func (w SampledWavelengths) Sample(s Spectrum) SampledSpectrum {
	var result SampledSpectrum
	for i := 0; i < NSamples; i++ {
		result.Values[i] = s.Value(w.Lambda[i])
	}
	return result
}

// ToXYZ converts transported spectral radiance into CIE XYZ, dividing by the
// per-wavelength sampling PDF (Monte Carlo estimate of the CIE integrals)
func (w SampledWavelengths) ToXYZ(s SampledSpectrum) core.Vec3 {
	x, y, z := 0.0, 0.0, 0.0
	for i := 0; i < NSamples; i++ {
		if w.PDF[i] == 0 {
			continue
		}
		v := s.Values[i] / w.PDF[i]
		x += cieX(w.Lambda[i]) * v
		y += cieY(w.Lambda[i]) * v
		z += cieZ(w.Lambda[i]) * v
	}
	inv := 1.0 / (NSamples * cieYIntegral)
	return core.NewVec3(x*inv, y*inv, z*inv)
}

// ToRGB converts transported spectral radiance to linear sRGB
func (w SampledWavelengths) ToRGB(s SampledSpectrum) core.Vec3 {
	return XYZToRGB(w.ToXYZ(s))
}
