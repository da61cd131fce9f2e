package lights

import (
	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// LightType identifies the closed set of light variants
type LightType string

const (
	LightTypeArea     LightType = "area"
	LightTypePoint    LightType = "point"
	LightTypeInfinite LightType = "infinite"
)

// Light is a source that can be sampled for next-event estimation
type Light interface {
	Type() LightType

	// Sample draws a direction toward the light from the shading point,
	// returning radiance, solid-angle PDF and distance. Delta lights return
	// PDF 1 with the selection already folded into the radiance.
	Sample(point, normal core.Vec3, lambda spectrum.SampledWavelengths, sample core.Vec2) LightSample

	// PDF returns the solid-angle density with which Sample would generate
	// the given direction from the point. Zero for delta lights, which BSDF
	// sampling can never hit.
	PDF(point, normal, direction core.Vec3) float64

	// Emit evaluates radiance carried along the ray toward its origin.
	// Finite lights return zero (their surfaces emit through materials);
	// infinite lights return the background radiance.
	Emit(ray core.Ray, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum
}

// LightSample contains one sampled direction toward a light
type LightSample struct {
	Direction core.Vec3                // From shading point to light, normalized
	Distance  float64                  // Distance to the light sample point
	Radiance  spectrum.SampledSpectrum // Emitted radiance toward the point
	PDF       float64                  // Solid-angle density of this sample
}

// IsDelta reports whether a light cannot be hit by BSDF sampling
func IsDelta(l Light) bool {
	return l.Type() == LightTypePoint
}
