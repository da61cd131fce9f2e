package scene

import (
	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/geometry"
	"github.com/spectralpt/go-spectral-raytracer/pkg/lights"
	"github.com/spectralpt/go-spectral-raytracer/pkg/material"
	"github.com/spectralpt/go-spectral-raytracer/pkg/rgb2spec"
)

// NewCornellScene creates a classic Cornell box with quad walls, a ceiling
// area light, a mirror sphere and a diffuse sphere
func NewCornellScene(table *rgb2spec.Table) *Scene {
	s := NewScene()
	s.Camera = CameraConfig{
		LookFrom: core.NewVec3(278, 278, -800), // Outside the box looking in
		LookAt:   core.NewVec3(278, 278, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40.0,
	}

	white := material.NewLambertian(table, core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(table, core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(table, core.NewVec3(0.12, 0.45, 0.15))

	// Standard 555-unit box
	boxSize := 555.0

	// Floor (white) - XZ plane at y=0
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	))

	// Ceiling (white) - XZ plane at y=boxSize
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	))

	// Back wall (white) - XY plane at z=boxSize
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		white,
	))

	// Left wall (red) - YZ plane at x=0
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		red,
	))

	// Right wall (green) - YZ plane at x=boxSize
	s.AddShape(geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		green,
	))

	// Ceiling light, slightly below the ceiling and facing down
	lightMat := material.NewEmissive(table, core.NewVec3(15, 15, 15))
	s.AddLight(lights.NewQuadLight(
		core.NewVec3(213, boxSize-1, 227),
		core.NewVec3(130, 0, 0),
		core.NewVec3(0, 0, 105),
		lightMat,
	))

	// Two spheres instead of the traditional boxes
	mirror := material.NewMirror(table, core.NewVec3(0.9, 0.9, 0.9))
	s.AddShape(geometry.NewSphere(core.NewVec3(185, 90, 350), 90, mirror))
	s.AddShape(geometry.NewSphere(core.NewVec3(370, 90, 170), 90, white))

	return s
}
