package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCosineHemisphere(t *testing.T) {
	normal := NewVec3(0, 0, 1)
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		dir := SampleCosineHemisphere(normal, sampler.Get2D())

		assert.InDelta(t, 1.0, dir.Length(), 1e-9, "direction should be unit length")
		assert.GreaterOrEqual(t, dir.Dot(normal), 0.0, "direction should be in the upper hemisphere")
	}
}

// The cosine-weighted PDF must integrate to one over the hemisphere.
func TestCosineHemispherePDFNormalization(t *testing.T) {
	// Integrate cos(θ)/π over the hemisphere with uniform direction samples
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))
	normal := NewVec3(0, 1, 0)

	const n = 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		dir := SampleUniformHemisphere(normal, sampler.Get2D())
		sum += CosineHemispherePDF(dir.Dot(normal)) / UniformHemispherePDF()
	}
	assert.InDelta(t, 1.0, sum/n, 0.01)
}

func TestCosineHemispherePDFBelowHorizon(t *testing.T) {
	assert.Equal(t, 0.0, CosineHemispherePDF(-0.5))
	assert.Equal(t, 0.0, CosineHemispherePDF(0))
}

func TestPowerHeuristic(t *testing.T) {
	tests := []struct {
		name     string
		fPdf     float64
		gPdf     float64
		expected float64
	}{
		{"equal pdfs", 1.0, 1.0, 0.5},
		{"dominant f", 10.0, 1.0, 100.0 / 101.0},
		{"zero f", 0.0, 1.0, 0.0},
		{"both zero", 0.0, 0.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := PowerHeuristic(1, tt.fPdf, 1, tt.gPdf)
			assert.InDelta(t, tt.expected, w, 1e-12)
		})
	}
}

// Weights of the two strategies must sum to one so MIS stays unbiased.
func TestPowerHeuristicPartitionOfUnity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		f := rng.Float64() * 10
		g := rng.Float64() * 10
		sum := PowerHeuristic(1, f, 1, g) + PowerHeuristic(1, g, 1, f)
		assert.InDelta(t, 1.0, sum, 1e-12)
	}
}

func TestNewONB(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		n := NewVec3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)
		if n.Length() < 1e-6 {
			continue
		}
		n = n.Normalize()
		onb := NewONB(n)

		require.InDelta(t, 0.0, onb.U.Dot(onb.V), 1e-9)
		require.InDelta(t, 0.0, onb.U.Dot(onb.W), 1e-9)
		require.InDelta(t, 0.0, onb.V.Dot(onb.W), 1e-9)
		require.InDelta(t, 1.0, onb.U.Length(), 1e-9)
		require.InDelta(t, 1.0, onb.V.Length(), 1e-9)

		// Round trip through the basis
		v := NewVec3(0.3, -0.5, 0.8)
		back := onb.ToLocal(onb.ToWorld(v))
		require.InDelta(t, v.X, back.X, 1e-9)
		require.InDelta(t, v.Y, back.Y, 1e-9)
		require.InDelta(t, v.Z, back.Z, 1e-9)
	}
}

func TestPixelSeedDeterminism(t *testing.T) {
	assert.Equal(t, PixelSeed(5, 7, 3, 42), PixelSeed(5, 7, 3, 42))
	assert.NotEqual(t, PixelSeed(5, 7, 3, 42), PixelSeed(7, 5, 3, 42), "transposed coordinates should differ")
	assert.NotEqual(t, PixelSeed(5, 7, 3, 42), PixelSeed(5, 7, 4, 42), "sample index should matter")
	assert.NotEqual(t, PixelSeed(5, 7, 3, 42), PixelSeed(5, 7, 3, 43), "scene seed should matter")
}

func TestNewPixelSamplerReproducible(t *testing.T) {
	a := NewPixelSampler(10, 20, 0, 99)
	b := NewPixelSampler(10, 20, 0, 99)
	for i := 0; i < 16; i++ {
		require.Equal(t, a.Get1D(), b.Get1D())
	}
}

func TestNewRayOffset(t *testing.T) {
	origin := NewVec3(1, 2, 3)
	normal := NewVec3(0, 1, 0)

	up := NewRayOffset(origin, NewVec3(0, 1, 0), normal, 1e-4)
	assert.Greater(t, up.Origin.Y, origin.Y, "offset should follow the normal for outgoing rays")

	down := NewRayOffset(origin, NewVec3(0, -1, 0), normal, 1e-4)
	assert.Less(t, down.Origin.Y, origin.Y, "offset should flip for transmitted rays")
}

func TestAABBHitInterval(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	entry, ok := box.HitInterval(NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 0, math.Inf(1))
	require.True(t, ok)
	assert.InDelta(t, 4.0, entry, 1e-9)

	_, ok = box.HitInterval(NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), 0, math.Inf(1))
	assert.False(t, ok, "ray pointing away should miss")

	// Ray starting inside reports the interval start
	entry, ok = box.HitInterval(NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0)), 0, math.Inf(1))
	require.True(t, ok)
	assert.InDelta(t, 0.0, entry, 1e-9)
}
