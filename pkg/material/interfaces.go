package material

import (
	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// Material is the BSDF capability set: sample a scattered direction, evaluate
// the BSDF for a direction pair, and report the sampling density. All
// spectral values are taken at the path's sampled wavelengths.
type Material interface {
	// Scatter samples a scattered ray for the incoming ray.
	// Returns false if the ray is absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, lambda spectrum.SampledWavelengths, sampler core.Sampler) (ScatterResult, bool)

	// EvaluateBRDF evaluates the BSDF for specific incoming/outgoing directions.
	// incomingDir points toward the surface, outgoingDir away from it.
	EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit HitRecord, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum

	// PDF returns the solid-angle probability density Scatter would have used
	// for the given direction pair, and whether the BSDF is a delta
	// distribution (specular).
	PDF(incomingDir, outgoingDir core.Vec3, hit HitRecord) (pdf float64, isDelta bool)
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	// Emit returns emitted radiance toward the incoming ray's origin
	Emit(rayIn core.Ray, hit HitRecord, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Incoming    core.Ray                 // The incoming ray
	Scattered   core.Ray                 // The scattered ray
	Attenuation spectrum.SampledSpectrum // BSDF value (for specular: full throughput weight)
	PDF         float64                  // Solid-angle density (0 for specular materials)
}

// IsSpecular returns true if this is specular scattering (delta distribution)
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection (faces the incoming ray)
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}
