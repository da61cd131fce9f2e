package lights

import (
	"math"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/geometry"
	"github.com/spectralpt/go-spectral-raytracer/pkg/material"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// QuadLight is a rectangular area light. The quad's material must implement
// material.Emitter; the quad is also added to the scene geometry so BSDF
// samples can hit it.
type QuadLight struct {
	*geometry.Quad         // Embed quad for hit testing
	area           float64 // Cached area for PDF calculations
}

// NewQuadLight creates a new quad area light
func NewQuadLight(corner, u, v core.Vec3, mat material.Material) *QuadLight {
	quad := geometry.NewQuad(corner, u, v, mat)
	return &QuadLight{
		Quad: quad,
		area: quad.Area(),
	}
}

func (ql *QuadLight) Type() LightType {
	return LightTypeArea
}

// emitter returns the quad's emitting material, if any
func (ql *QuadLight) emitter() (material.Emitter, bool) {
	emitter, ok := ql.Quad.Material.(material.Emitter)
	return emitter, ok
}

// Sample draws a uniform point on the quad and converts the area density to
// a solid-angle density at the shading point
func (ql *QuadLight) Sample(point, normal core.Vec3, lambda spectrum.SampledWavelengths, sample core.Vec2) LightSample {
	samplePoint := ql.Corner.Add(ql.U.Multiply(sample.X)).Add(ql.V.Multiply(sample.Y))

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}
	}
	direction := toLight.Multiply(1.0 / distance)

	// PDF_solidangle = PDF_area · distance² / cos(θ_light)
	cosTheta := math.Abs(ql.Normal.Dot(direction))
	if cosTheta < 1e-9 {
		return LightSample{Direction: direction, Distance: distance}
	}
	solidAnglePDF := distance * distance / (cosTheta * ql.area)

	// Emission only from the front face
	var radiance spectrum.SampledSpectrum
	if direction.Dot(ql.Normal) < 0 {
		if emitter, ok := ql.emitter(); ok {
			hit := material.HitRecord{
				Point:     samplePoint,
				Normal:    ql.Normal,
				FrontFace: true,
				Material:  ql.Quad.Material,
			}
			radiance = emitter.Emit(core.NewRay(point, direction), hit, lambda)
		}
	}

	return LightSample{
		Direction: direction,
		Distance:  distance,
		Radiance:  radiance,
		PDF:       solidAnglePDF,
	}
}

// PDF returns the solid-angle density of sampling the given direction
func (ql *QuadLight) PDF(point, normal, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	hit, ok := ql.Quad.Hit(ray, 1e-4, math.Inf(1))
	if !ok {
		return 0
	}

	cosTheta := math.Abs(ql.Normal.Dot(direction))
	if cosTheta < 1e-9 {
		return 0
	}
	return hit.T * hit.T / (cosTheta * ql.area)
}

// Emit is zero here: rays that hit the quad surface pick up emission through
// its material
func (ql *QuadLight) Emit(ray core.Ray, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	return spectrum.Zero()
}
