package lights

import (
	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
)

// LightSampler selects which light next-event estimation samples
type LightSampler interface {
	// SampleLight picks a light for the shading point, returning the light
	// and its selection probability
	SampleLight(point, normal core.Vec3, u float64) (Light, float64, bool)

	// PDF returns the total solid-angle density of sampling the given
	// direction across all lights, including selection probability
	PDF(point, normal, direction core.Vec3) float64

	// LightCount returns the number of lights
	LightCount() int
}

// UniformLightSampler picks among lights with equal probability
type UniformLightSampler struct {
	lights []Light
}

// NewUniformLightSampler creates a sampler over the given lights
func NewUniformLightSampler(lightList []Light) *UniformLightSampler {
	return &UniformLightSampler{lights: lightList}
}

// SampleLight implements LightSampler
func (s *UniformLightSampler) SampleLight(point, normal core.Vec3, u float64) (Light, float64, bool) {
	n := len(s.lights)
	if n == 0 {
		return nil, 0, false
	}
	index := int(u * float64(n))
	if index >= n {
		index = n - 1
	}
	return s.lights[index], 1.0 / float64(n), true
}

// PDF averages the per-light densities, which matches uniform selection
func (s *UniformLightSampler) PDF(point, normal, direction core.Vec3) float64 {
	n := len(s.lights)
	if n == 0 {
		return 0
	}
	total := 0.0
	for _, light := range s.lights {
		total += light.PDF(point, normal, direction)
	}
	return total / float64(n)
}

// LightCount implements LightSampler
func (s *UniformLightSampler) LightCount() int {
	return len(s.lights)
}
