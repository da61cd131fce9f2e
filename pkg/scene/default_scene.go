package scene

import (
	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/geometry"
	"github.com/spectralpt/go-spectral-raytracer/pkg/lights"
	"github.com/spectralpt/go-spectral-raytracer/pkg/material"
	"github.com/spectralpt/go-spectral-raytracer/pkg/rgb2spec"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// NewDefaultScene creates the default demo scene: three spheres with
// different materials on a ground plane, lit by a dim sky and a point light
func NewDefaultScene(table *rgb2spec.Table) *Scene {
	s := NewScene()
	s.Camera = CameraConfig{
		LookFrom: core.NewVec3(0, 1.2, 4),
		LookAt:   core.NewVec3(0, 0.5, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     45.0,
	}

	ground := material.NewLambertian(table, core.NewVec3(0.5, 0.5, 0.5))
	s.AddShape(geometry.NewQuad(
		core.NewVec3(-20, 0, -20),
		core.NewVec3(40, 0, 0),
		core.NewVec3(0, 0, 40),
		ground,
	))

	diffuse := material.NewLambertian(table, core.NewVec3(0.7, 0.3, 0.3))
	metal := material.NewMicrofacet(table, core.NewVec3(0.95, 0.93, 0.88), 0.2)
	glass := material.NewDielectric(1.5)

	s.AddShape(geometry.NewSphere(core.NewVec3(-1.2, 0.5, 0), 0.5, diffuse))
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5, glass))
	s.AddShape(geometry.NewSphere(core.NewVec3(1.2, 0.5, 0), 0.5, metal))

	// Dim sky plus a bright point light from above
	sky := spectrum.NewScaled(spectrum.StandardIlluminant(), 0.15)
	s.AddLight(lights.NewUniformInfiniteLight(sky))
	s.AddLight(lights.NewPointLight(table, core.NewVec3(2, 4, 2), core.NewVec3(40, 40, 40)))

	return s
}

// NewSphereLightScene creates a single diffuse sphere lit by one point
// light straight above it. The direct illumination at the apex has a
// closed-form value, which makes this scene useful for verification.
func NewSphereLightScene(table *rgb2spec.Table) *Scene {
	s := NewScene()
	s.Camera = CameraConfig{
		LookFrom: core.NewVec3(0, 2, 4),
		LookAt:   core.NewVec3(0, 1, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40.0,
	}

	diffuse := material.NewLambertian(table, core.NewVec3(0.8, 0.8, 0.8))
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, diffuse))

	s.AddLight(lights.NewPointLight(table, core.NewVec3(0, 5, 0), core.NewVec3(30, 30, 30)))

	return s
}
