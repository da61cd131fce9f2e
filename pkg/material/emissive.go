package material

import (
	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/rgb2spec"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// Emissive is a material that emits light from its front face and absorbs
// everything else
type Emissive struct {
	Emission spectrum.Spectrum
}

// NewEmissive creates an emissive material from an RGB emission color whose
// components may exceed 1 (radiance units)
func NewEmissive(table *rgb2spec.Table, emission core.Vec3) *Emissive {
	return &Emissive{Emission: spectrum.NewRGBIlluminant(table, emission)}
}

// NewBlackbodyEmissive creates an emissive material from a blackbody
// temperature (K) and a radiance scale
func NewBlackbodyEmissive(temperature, scale float64) *Emissive {
	return &Emissive{Emission: spectrum.NewScaled(spectrum.NewBlackbody(temperature), scale)}
}

// NewSpectralEmissive creates an emissive material from an explicit radiance
// spectrum
func NewSpectralEmissive(emission spectrum.Spectrum) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter absorbs the ray: emissive surfaces do not scatter
func (e *Emissive) Scatter(rayIn core.Ray, hit HitRecord, lambda spectrum.SampledWavelengths, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// EvaluateBRDF is zero: pure emitters do not reflect
func (e *Emissive) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit HitRecord, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	return spectrum.Zero()
}

// PDF is zero for pure emitters
func (e *Emissive) PDF(incomingDir, outgoingDir core.Vec3, hit HitRecord) (float64, bool) {
	return 0, false
}

// Emit returns emitted radiance, front face only
func (e *Emissive) Emit(rayIn core.Ray, hit HitRecord, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	if !hit.FrontFace {
		return spectrum.Zero()
	}
	return lambda.Sample(e.Emission)
}
