package scene

import (
	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/geometry"
	"github.com/spectralpt/go-spectral-raytracer/pkg/lights"
)

// CameraConfig describes the viewpoint independently of image resolution.
// The renderer combines it with the output dimensions to build the camera.
type CameraConfig struct {
	LookFrom core.Vec3
	LookAt   core.Vec3
	Up       core.Vec3
	VFov     float64 // Vertical field of view in degrees
}

// Scene holds everything needed to render: geometry, lights and viewpoint.
// Call Preprocess before rendering; it builds the acceleration structure and
// validates consistency.
type Scene struct {
	Shapes []geometry.Shape
	Lights []lights.Light
	Camera CameraConfig

	// Populated by Preprocess
	BVH          *geometry.BVH
	LightSampler lights.LightSampler

	preprocessed bool
}

// NewScene creates an empty scene with a default camera
func NewScene() *Scene {
	return &Scene{
		Camera: CameraConfig{
			LookFrom: core.NewVec3(0, 1, 4),
			LookAt:   core.NewVec3(0, 0, 0),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     45.0,
		},
	}
}

// AddShape adds a shape to the scene geometry
func (s *Scene) AddShape(shape geometry.Shape) {
	s.Shapes = append(s.Shapes, shape)
}

// AddLight adds a light. Area lights also add their geometry so BSDF samples
// can hit the emitting surface.
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
	if ql, ok := light.(*lights.QuadLight); ok {
		s.AddShape(ql.Quad)
	}
}

// Preprocess validates the scene and builds the BVH. Degenerate triangles are
// dropped with a warning rather than poisoning intersection tests. Returns a
// ConsistencyError when the scene cannot be rendered.
func (s *Scene) Preprocess(logger core.Logger) error {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if s.preprocessed {
		return nil
	}

	shapes := make([]geometry.Shape, 0, len(s.Shapes))
	for i, shape := range s.Shapes {
		if tri, ok := shape.(*geometry.Triangle); ok && tri.IsDegenerate() {
			logger.Printf("scene: skipping degenerate triangle at index %d", i)
			continue
		}
		shapes = append(shapes, shape)
	}

	if len(shapes) == 0 {
		return &ConsistencyError{
			Component: "geometry",
			Invariant: "scene must contain at least one non-degenerate primitive",
		}
	}

	s.BVH = geometry.NewBVH(shapes)
	if err := s.BVH.Validate(); err != nil {
		return &ConsistencyError{
			Component: "bvh",
			Invariant: err.Error(),
		}
	}

	for _, light := range s.Lights {
		if il, ok := light.(*lights.UniformInfiniteLight); ok {
			il.Preprocess(s.BVH.Center, s.BVH.Radius)
		}
	}

	s.LightSampler = lights.NewUniformLightSampler(s.Lights)
	s.preprocessed = true
	return nil
}
