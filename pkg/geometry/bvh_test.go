package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/material"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

func testMaterial() material.Material {
	return material.NewSpectralLambertian(spectrum.NewConstant(0.5))
}

// bruteForceHit is the reference the BVH must agree with
func bruteForceHit(shapes []Shape, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestT := tMax
	for _, shape := range shapes {
		if hit, ok := shape.Hit(ray, tMin, closestT); ok {
			closest = hit
			closestT = hit.T
		}
	}
	return closest, closest != nil
}

func randomShapes(rng *rand.Rand, count int) []Shape {
	mat := testMaterial()
	shapes := make([]Shape, 0, count)
	for i := 0; i < count; i++ {
		center := core.NewVec3(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10)
		switch i % 3 {
		case 0:
			shapes = append(shapes, NewSphere(center, 0.1+rng.Float64(), mat))
		case 1:
			shapes = append(shapes, NewTriangle(
				center,
				center.Add(core.NewVec3(rng.Float64()*2, rng.Float64(), 0)),
				center.Add(core.NewVec3(0, rng.Float64()*2, rng.Float64())),
				mat,
			))
		default:
			shapes = append(shapes, NewQuad(
				center,
				core.NewVec3(rng.Float64()+0.1, 0, 0),
				core.NewVec3(0, rng.Float64()+0.1, rng.Float64()),
				mat,
			))
		}
	}
	return shapes
}

// The BVH must return exactly the same nearest hit as brute force over a
// randomized battery of scenes and rays.
func TestBVHMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))

	for _, count := range []int{1, 2, 7, 50, 300} {
		shapes := randomShapes(rng, count)
		bvh := NewBVH(shapes)
		require.NoError(t, bvh.Validate())

		for i := 0; i < 500; i++ {
			origin := core.NewVec3(rng.Float64()*30-15, rng.Float64()*30-15, rng.Float64()*30-15)
			direction := core.NewVec3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)
			if direction.Length() < 1e-6 {
				continue
			}
			ray := core.NewRay(origin, direction.Normalize())

			want, wantHit := bruteForceHit(shapes, ray, 1e-4, math.Inf(1))
			got, gotHit := bvh.Hit(ray, 1e-4, math.Inf(1))

			require.Equal(t, wantHit, gotHit, "scene size %d ray %d", count, i)
			if wantHit {
				require.InDelta(t, want.T, got.T, 1e-9, "scene size %d ray %d", count, i)
			}
		}
	}
}

func TestBVHOcclusion(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	shapes := randomShapes(rng, 100)
	bvh := NewBVH(shapes)

	for i := 0; i < 500; i++ {
		origin := core.NewVec3(rng.Float64()*30-15, rng.Float64()*30-15, rng.Float64()*30-15)
		direction := core.NewVec3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)
		if direction.Length() < 1e-6 {
			continue
		}
		ray := core.NewRay(origin, direction.Normalize())
		tMax := rng.Float64() * 30

		_, wantHit := bruteForceHit(shapes, ray, 1e-4, tMax)
		assert.Equal(t, wantHit, bvh.IsOccluded(ray, 1e-4, tMax))
	}
}

// Coincident centroids must not break construction.
func TestBVHCoincidentCentroids(t *testing.T) {
	mat := testMaterial()
	shapes := make([]Shape, 16)
	for i := range shapes {
		shapes[i] = NewSphere(core.NewVec3(1, 2, 3), 0.5, mat)
	}
	bvh := NewBVH(shapes)
	require.NoError(t, bvh.Validate())

	hit, ok := bvh.Hit(core.NewRay(core.NewVec3(1, 2, -5), core.NewVec3(0, 0, 1)), 1e-4, math.Inf(1))
	require.True(t, ok)
	assert.InDelta(t, 7.5, hit.T, 1e-9)
}

// Geometrically spaced primitives split off one at a time, producing a tree
// whose depth approaches the primitive count. Traversal must cope with
// depths far beyond those of balanced scenes.
func TestBVHDeepLopsidedTree(t *testing.T) {
	mat := testMaterial()
	shapes := make([]Shape, 0, 160)
	for i := 0; i < 160; i++ {
		shapes = append(shapes, NewSphere(core.NewVec3(math.Pow(2, float64(i)), 0, 0), 0.25, mat))
	}
	bvh := NewBVH(shapes)
	require.NoError(t, bvh.Validate())

	for _, yOffset := range []float64{0, 0.1, 0.2, 0.3, 1.0} {
		ray := core.NewRay(core.NewVec3(-1, yOffset, 0), core.NewVec3(1, 0, 0))

		want, wantHit := bruteForceHit(shapes, ray, 1e-4, math.Inf(1))
		got, gotHit := bvh.Hit(ray, 1e-4, math.Inf(1))

		require.Equal(t, wantHit, gotHit, "y offset %v", yOffset)
		if wantHit {
			require.InDelta(t, want.T, got.T, 1e-9, "y offset %v", yOffset)
		}
	}
}

func TestBVHSceneBounds(t *testing.T) {
	mat := testMaterial()
	bvh := NewBVH([]Shape{
		NewSphere(core.NewVec3(-5, 0, 0), 1, mat),
		NewSphere(core.NewVec3(5, 0, 0), 1, mat),
	})

	assert.InDelta(t, 0.0, bvh.Center.X, 1e-9)
	assert.InDelta(t, 6.0, bvh.Radius, 1.0, "radius should cover both spheres")
}

func TestSphereHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())

	hit, ok := sphere.Hit(core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1)), 1e-4, math.Inf(1))
	require.True(t, ok)
	assert.InDelta(t, 2.0, hit.T, 1e-9)
	assert.True(t, hit.FrontFace)
	assert.InDelta(t, -1.0, hit.Normal.Z, 1e-9, "normal faces the ray")

	// From inside, the normal is flipped toward the ray origin
	hit, ok = sphere.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 1e-4, math.Inf(1))
	require.True(t, ok)
	assert.False(t, hit.FrontFace)
	assert.InDelta(t, -1.0, hit.Normal.Z, 1e-9)

	_, ok = sphere.Hit(core.NewRay(core.NewVec3(0, 3, -3), core.NewVec3(0, 0, 1)), 1e-4, math.Inf(1))
	assert.False(t, ok, "ray passes above the sphere")
}

func TestTriangleHit(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial(),
	)

	hit, ok := tri.Hit(core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1)), 1e-4, math.Inf(1))
	require.True(t, ok)
	assert.InDelta(t, 1.0, hit.T, 1e-9)

	_, ok = tri.Hit(core.NewRay(core.NewVec3(0.9, 0.9, -1), core.NewVec3(0, 0, 1)), 1e-4, math.Inf(1))
	assert.False(t, ok, "outside the triangle")

	_, ok = tri.Hit(core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(1, 0, 0)), 1e-4, math.Inf(1))
	assert.False(t, ok, "parallel ray")
}

func TestTriangleIsDegenerate(t *testing.T) {
	degenerate := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 1, 1),
		core.NewVec3(2, 2, 2),
		testMaterial(),
	)
	assert.True(t, degenerate.IsDegenerate())

	regular := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial(),
	)
	assert.False(t, regular.IsDegenerate())
}

func TestQuadHit(t *testing.T) {
	quad := NewQuad(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 2, 0),
		testMaterial(),
	)

	hit, ok := quad.Hit(core.NewRay(core.NewVec3(0.5, -0.5, 5), core.NewVec3(0, 0, -1)), 1e-4, math.Inf(1))
	require.True(t, ok)
	assert.InDelta(t, 5.0, hit.T, 1e-9)

	_, ok = quad.Hit(core.NewRay(core.NewVec3(1.5, 0, 5), core.NewVec3(0, 0, -1)), 1e-4, math.Inf(1))
	assert.False(t, ok, "outside the quad")

	assert.InDelta(t, 4.0, quad.Area(), 1e-9)
}
