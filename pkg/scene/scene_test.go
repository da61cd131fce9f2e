package scene

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/geometry"
	"github.com/spectralpt/go-spectral-raytracer/pkg/lights"
	"github.com/spectralpt/go-spectral-raytracer/pkg/material"
	"github.com/spectralpt/go-spectral-raytracer/pkg/rgb2spec"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

var (
	tableOnce sync.Once
	tableVal  *rgb2spec.Table
	tableErr  error
)

func testTable(t *testing.T) *rgb2spec.Table {
	t.Helper()
	tableOnce.Do(func() {
		tableVal, tableErr = rgb2spec.Fit(8, rgb2spec.DefaultFitOptions(), core.NopLogger{})
	})
	require.NoError(t, tableErr)
	return tableVal
}

// recordingLogger captures log lines for assertions
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestPreprocessEmptyScene(t *testing.T) {
	s := NewScene()
	err := s.Preprocess(core.NopLogger{})

	var consistency *ConsistencyError
	require.ErrorAs(t, err, &consistency)
	assert.Equal(t, "geometry", consistency.Component)
	assert.Contains(t, err.Error(), "scene consistency error")
}

func TestPreprocessSkipsDegenerateTriangles(t *testing.T) {
	mat := material.NewSpectralLambertian(spectrum.NewConstant(0.5))
	s := NewScene()
	s.AddShape(geometry.NewTriangle(
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(2, 2, 2), mat))
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat))

	logger := &recordingLogger{}
	require.NoError(t, s.Preprocess(logger))

	assert.Equal(t, 1, s.BVH.PrimitiveCount(), "only the sphere survives")
	require.Len(t, logger.lines, 1)
	assert.Contains(t, logger.lines[0], "degenerate triangle")
}

func TestPreprocessAllDegenerate(t *testing.T) {
	mat := material.NewSpectralLambertian(spectrum.NewConstant(0.5))
	s := NewScene()
	s.AddShape(geometry.NewTriangle(
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(2, 2, 2), mat))

	var consistency *ConsistencyError
	assert.ErrorAs(t, s.Preprocess(core.NopLogger{}), &consistency)
}

func TestPreprocessWiresLights(t *testing.T) {
	mat := material.NewSpectralLambertian(spectrum.NewConstant(0.5))
	s := NewScene()
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat))
	s.AddLight(lights.NewSpectralPointLight(core.NewVec3(0, 5, 0), spectrum.NewConstant(10)))
	s.AddLight(lights.NewUniformInfiniteLight(spectrum.NewConstant(0.2)))

	require.NoError(t, s.Preprocess(core.NopLogger{}))
	require.NotNil(t, s.LightSampler)
	assert.Equal(t, 2, s.LightSampler.LightCount())
	require.NotNil(t, s.BVH)

	// Idempotent
	require.NoError(t, s.Preprocess(core.NopLogger{}))
}

func TestAddQuadLightAddsGeometry(t *testing.T) {
	s := NewScene()
	s.AddLight(lights.NewQuadLight(
		core.NewVec3(-1, 2, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		material.NewBlackbodyEmissive(5000, 1.0),
	))

	assert.Len(t, s.Lights, 1)
	assert.Len(t, s.Shapes, 1, "the emitting quad must be hittable")
}

func TestBuiltInScenesPreprocess(t *testing.T) {
	table := testTable(t)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Build(name, table)
			require.NoError(t, err)
			require.NoError(t, s.Preprocess(core.NopLogger{}))
			assert.NotEmpty(t, s.Shapes)
			assert.NotEmpty(t, s.Lights)
			assert.Greater(t, s.Camera.VFov, 0.0)
		})
	}
}

func TestBuildUnknownScene(t *testing.T) {
	_, err := Build("nope", testTable(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scene")
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "cornell")
	assert.Contains(t, names, "default")
	assert.Contains(t, names, "sphere-light")
	assert.IsNonDecreasing(t, names)
}
