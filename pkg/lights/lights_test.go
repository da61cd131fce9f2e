package lights

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/material"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

func testLambda() spectrum.SampledWavelengths {
	return spectrum.SampleWavelengthsUniform(0.5)
}

func TestPointLightFalloff(t *testing.T) {
	light := NewSpectralPointLight(core.NewVec3(0, 4, 0), spectrum.NewConstant(16))
	lambda := testLambda()
	normal := core.NewVec3(0, 1, 0)

	near := light.Sample(core.NewVec3(0, 2, 0), normal, lambda, core.NewVec2(0.5, 0.5))
	far := light.Sample(core.NewVec3(0, 0, 0), normal, lambda, core.NewVec2(0.5, 0.5))

	require.Equal(t, 1.0, near.PDF)
	assert.InDelta(t, 2.0, near.Distance, 1e-9)
	assert.InDelta(t, 4.0, far.Distance, 1e-9)

	// Inverse square: twice the distance, a quarter of the irradiance
	assert.InDelta(t, 16.0/4.0, near.Radiance.Values[0], 1e-9)
	assert.InDelta(t, 16.0/16.0, far.Radiance.Values[0], 1e-9)

	assert.True(t, IsDelta(light))
	assert.Equal(t, 0.0, light.PDF(core.NewVec3(0, 0, 0), normal, near.Direction))
}

// Sample and PDF must agree: the density reported for a sampled direction
// equals the sample's own pdf.
func TestQuadLightSamplePDFConsistency(t *testing.T) {
	emitter := material.NewBlackbodyEmissive(5000, 1.0)
	light := NewQuadLight(
		core.NewVec3(-1, 3, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		emitter,
	)
	lambda := testLambda()
	rng := rand.New(rand.NewSource(12))

	point := core.NewVec3(0.3, 0, 0.1)
	normal := core.NewVec3(0, 1, 0)

	for i := 0; i < 500; i++ {
		sample := light.Sample(point, normal, lambda, core.NewVec2(rng.Float64(), rng.Float64()))
		require.Greater(t, sample.PDF, 0.0)
		require.InDelta(t, 1.0, sample.Direction.Length(), 1e-9)

		pdf := light.PDF(point, normal, sample.Direction)
		require.InDelta(t, sample.PDF, pdf, sample.PDF*1e-6, "sample %d", i)
	}
}

func TestQuadLightEmitsFromFrontOnly(t *testing.T) {
	emitter := material.NewBlackbodyEmissive(5000, 1.0)
	light := NewQuadLight(
		core.NewVec3(-1, 3, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		emitter,
	)
	lambda := testLambda()
	normal := core.NewVec3(0, 1, 0)

	// u×v points down, so a point below the quad faces the emitting side
	below := light.Sample(core.NewVec3(0, 0, 0), normal, lambda, core.NewVec2(0.5, 0.5))
	assert.False(t, below.Radiance.IsZero())

	above := light.Sample(core.NewVec3(0, 6, 0), core.NewVec3(0, -1, 0), lambda, core.NewVec2(0.5, 0.5))
	assert.True(t, above.Radiance.IsZero())
}

// Solid-angle pdf integrates to roughly the quad's subtended solid angle
// weight: E[1/pdf] over samples equals the solid angle.
func TestQuadLightSolidAngle(t *testing.T) {
	emitter := material.NewBlackbodyEmissive(5000, 1.0)
	light := NewQuadLight(
		core.NewVec3(-0.5, 10, -0.5),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 1),
		emitter,
	)
	lambda := testLambda()
	rng := rand.New(rand.NewSource(21))
	point := core.NewVec3(0, 0, 0)
	normal := core.NewVec3(0, 1, 0)

	const n = 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		s := light.Sample(point, normal, lambda, core.NewVec2(rng.Float64(), rng.Float64()))
		require.Greater(t, s.PDF, 0.0)
		sum += 1.0 / s.PDF
	}
	// Far-field approximation: area·cos/d² = 1·1/100
	assert.InDelta(t, 0.01, sum/n, 0.0005)
}

func TestUniformInfiniteLight(t *testing.T) {
	light := NewUniformInfiniteLight(spectrum.NewConstant(0.5))
	light.Preprocess(core.NewVec3(0, 0, 0), 10)
	lambda := testLambda()
	rng := rand.New(rand.NewSource(33))

	point := core.NewVec3(0, 0, 0)
	normal := core.NewVec3(0, 1, 0)

	for i := 0; i < 200; i++ {
		s := light.Sample(point, normal, lambda, core.NewVec2(rng.Float64(), rng.Float64()))
		require.Greater(t, s.Direction.Dot(normal), 0.0)
		require.GreaterOrEqual(t, s.Distance, 20.0, "shadow ray must clear the scene")
		require.InDelta(t, s.PDF, light.PDF(point, normal, s.Direction), 1e-9)
		require.InDelta(t, 0.5, s.Radiance.Values[0], 1e-9)
	}

	// Escaped rays see the background in every direction
	emitted := light.Emit(core.NewRay(point, core.NewVec3(0, -1, 0)), lambda)
	assert.InDelta(t, 0.5, emitted.Values[0], 1e-9)
}

func TestUniformLightSampler(t *testing.T) {
	a := NewSpectralPointLight(core.NewVec3(0, 5, 0), spectrum.NewConstant(1))
	b := NewSpectralPointLight(core.NewVec3(5, 0, 0), spectrum.NewConstant(1))
	sampler := NewUniformLightSampler([]Light{a, b})

	assert.Equal(t, 2, sampler.LightCount())

	light, pdf, ok := sampler.SampleLight(core.Vec3{}, core.NewVec3(0, 1, 0), 0.2)
	require.True(t, ok)
	assert.Equal(t, 0.5, pdf)
	assert.Same(t, Light(a), light)

	light, _, _ = sampler.SampleLight(core.Vec3{}, core.NewVec3(0, 1, 0), 0.9)
	assert.Same(t, Light(b), light)

	// Boundary input stays in range
	_, _, ok = sampler.SampleLight(core.Vec3{}, core.NewVec3(0, 1, 0), 1.0)
	assert.True(t, ok)
}

func TestUniformLightSamplerEmpty(t *testing.T) {
	sampler := NewUniformLightSampler(nil)
	_, _, ok := sampler.SampleLight(core.Vec3{}, core.NewVec3(0, 1, 0), 0.5)
	assert.False(t, ok)
	assert.Equal(t, 0.0, sampler.PDF(core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)))
}

func TestLightSamplerPDFAverages(t *testing.T) {
	emitter := material.NewBlackbodyEmissive(5000, 1.0)
	quad := NewQuadLight(
		core.NewVec3(-1, 3, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		emitter,
	)
	point := NewSpectralPointLight(core.NewVec3(0, 5, 0), spectrum.NewConstant(1))
	sampler := NewUniformLightSampler([]Light{quad, point})

	at := core.NewVec3(0.2, 0, 0)
	normal := core.NewVec3(0, 1, 0)
	up := core.NewVec3(0, 1, 0)

	quadPDF := quad.PDF(at, normal, up)
	require.Greater(t, quadPDF, 0.0)
	assert.InDelta(t, quadPDF/2, sampler.PDF(at, normal, up), 1e-12)

	away := core.NewVec3(0, -1, 0)
	assert.Equal(t, 0.0, sampler.PDF(at, normal, away))
}
