package lights

import (
	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// UniformInfiniteLight surrounds the scene with constant background
// radiance arriving from every direction
type UniformInfiniteLight struct {
	Radiance    spectrum.Spectrum
	sceneRadius float64
}

// NewUniformInfiniteLight creates an environment light with the given
// radiance spectrum
func NewUniformInfiniteLight(radiance spectrum.Spectrum) *UniformInfiniteLight {
	return &UniformInfiniteLight{Radiance: radiance, sceneRadius: 1e4}
}

func (il *UniformInfiniteLight) Type() LightType {
	return LightTypeInfinite
}

// Preprocess records the scene extent so shadow rays can be bounded
func (il *UniformInfiniteLight) Preprocess(center core.Vec3, radius float64) {
	il.sceneRadius = radius
}

// Sample draws a cosine-weighted direction in the hemisphere above the
// surface, which importance-samples the cosine factor of the estimator
func (il *UniformInfiniteLight) Sample(point, normal core.Vec3, lambda spectrum.SampledWavelengths, sample core.Vec2) LightSample {
	direction := core.SampleCosineHemisphere(normal, sample)
	pdf := core.CosineHemispherePDF(direction.Dot(normal))

	return LightSample{
		Direction: direction,
		Distance:  2.0 * il.sceneRadius,
		Radiance:  lambda.Sample(il.Radiance),
		PDF:       pdf,
	}
}

// PDF matches the cosine-weighted hemisphere density of Sample
func (il *UniformInfiniteLight) PDF(point, normal, direction core.Vec3) float64 {
	return core.CosineHemispherePDF(direction.Dot(normal))
}

// Emit returns the constant background radiance for escaped rays
func (il *UniformInfiniteLight) Emit(ray core.Ray, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	return lambda.Sample(il.Radiance)
}
