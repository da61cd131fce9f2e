package integrator

import (
	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/scene"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// Integrator estimates the spectral radiance arriving along a camera ray
type Integrator interface {
	// Li returns the radiance estimate at the ray's sampled wavelengths
	Li(ray core.Ray, scn *scene.Scene, lambda spectrum.SampledWavelengths, sampler core.Sampler) spectrum.SampledSpectrum
}
