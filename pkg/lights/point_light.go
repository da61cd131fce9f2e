package lights

import (
	"math"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/rgb2spec"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// PointLight is a delta light emitting uniformly in all directions.
// Intensity is radiant intensity (power per solid angle).
type PointLight struct {
	Position  core.Vec3
	Intensity spectrum.Spectrum
}

// NewPointLight creates a point light from an RGB intensity
func NewPointLight(table *rgb2spec.Table, position core.Vec3, intensity core.Vec3) *PointLight {
	return &PointLight{
		Position:  position,
		Intensity: spectrum.NewRGBIlluminant(table, intensity),
	}
}

// NewSpectralPointLight creates a point light from an explicit intensity spectrum
func NewSpectralPointLight(position core.Vec3, intensity spectrum.Spectrum) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Sample returns the single direction toward the light. Irradiance falls off
// with squared distance; PDF is 1 because the light is a delta distribution.
func (pl *PointLight) Sample(point, normal core.Vec3, lambda spectrum.SampledWavelengths, sample core.Vec2) LightSample {
	toLight := pl.Position.Subtract(point)
	distanceSquared := toLight.LengthSquared()
	if distanceSquared == 0 {
		return LightSample{}
	}
	distance := math.Sqrt(distanceSquared)

	return LightSample{
		Direction: toLight.Multiply(1.0 / distance),
		Distance:  distance,
		Radiance:  lambda.Sample(pl.Intensity).Scale(1.0 / distanceSquared),
		PDF:       1.0,
	}
}

// PDF is zero: BSDF sampling can never hit a point light
func (pl *PointLight) PDF(point, normal, direction core.Vec3) float64 {
	return 0
}

// Emit is zero: rays never hit a point
func (pl *PointLight) Emit(ray core.Ray, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	return spectrum.Zero()
}
