package integrator

import (
	"math"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/lights"
	"github.com/spectralpt/go-spectral-raytracer/pkg/material"
	"github.com/spectralpt/go-spectral-raytracer/pkg/scene"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

const (
	// rayEpsilon offsets ray origins along the normal to avoid
	// self-intersection
	rayEpsilon = 1e-4

	// shadowEpsilon shortens shadow rays so they stop just before the light
	shadowEpsilon = 1e-3

	// minSurvival keeps Russian roulette from producing unbounded weights
	minSurvival = 0.05
)

// PathTracer implements unidirectional spectral path tracing with next-event
// estimation and power-heuristic multiple importance sampling
type PathTracer struct {
	MaxBounces          int
	RouletteStartBounce int
}

// NewPathTracer creates a path tracer with the given bounce limits
func NewPathTracer(maxBounces, rouletteStartBounce int) *PathTracer {
	return &PathTracer{
		MaxBounces:          maxBounces,
		RouletteStartBounce: rouletteStartBounce,
	}
}

// pathState carries the per-path quantities across bounces of the iterative
// transport loop
type pathState struct {
	ray        core.Ray
	throughput spectrum.SampledSpectrum
	bounce     int

	// Previous bounce, needed to MIS-weight emission found by BSDF sampling
	prevPDF    float64
	prevPoint  core.Vec3
	prevNormal core.Vec3
	specular   bool
}

// Li estimates radiance along the camera ray. Degenerate samples (zero pdf,
// non-finite throughput) contribute zero and terminate the path; they are
// never errors.
func (pt *PathTracer) Li(ray core.Ray, scn *scene.Scene, lambda spectrum.SampledWavelengths, sampler core.Sampler) spectrum.SampledSpectrum {
	radiance := spectrum.Zero()
	state := pathState{
		ray:        ray,
		throughput: spectrum.One(),
		specular:   true, // Camera rays count emission without MIS
	}

	for state.bounce <= pt.MaxBounces {
		hit, isHit := scn.BVH.Hit(state.ray, rayEpsilon, math.Inf(1))
		if !isHit {
			radiance = radiance.Add(pt.escapedRadiance(&state, scn, lambda))
			break
		}

		// Emission at the hit point, weighted against the light sampler's
		// chance of having found the same surface point
		if emitter, isEmissive := hit.Material.(material.Emitter); isEmissive {
			emitted := emitter.Emit(state.ray, *hit, lambda)
			if !emitted.IsZero() {
				weight := pt.emissionWeight(&state, scn, state.ray.Direction)
				radiance = radiance.Add(state.throughput.Mul(emitted.Scale(weight)))
			}
		}

		scatter, didScatter := hit.Material.Scatter(state.ray, *hit, lambda, sampler)
		if !didScatter {
			break // Absorbed
		}

		// Next-event estimation; delta BSDFs have no meaningful value for
		// sampled light directions
		if !scatter.IsSpecular() {
			radiance = radiance.Add(pt.sampleDirectLight(scn, hit, &state, lambda, sampler))
		}

		if !pt.continuePath(&state, hit, scatter) {
			break
		}

		if state.bounce >= pt.RouletteStartBounce {
			survival := math.Min(1.0, math.Max(minSurvival, state.throughput.Average()))
			if sampler.Get1D() > survival {
				break
			}
			state.throughput = state.throughput.Scale(1.0 / survival)
		}

		state.bounce++
	}

	return radiance
}

// escapedRadiance gathers environment light for a ray that left the scene
func (pt *PathTracer) escapedRadiance(state *pathState, scn *scene.Scene, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	total := spectrum.Zero()
	for _, light := range scn.Lights {
		if light.Type() != lights.LightTypeInfinite {
			continue
		}
		emitted := light.Emit(state.ray, lambda)
		if emitted.IsZero() {
			continue
		}
		weight := pt.emissionWeight(state, scn, state.ray.Direction)
		total = total.Add(state.throughput.Mul(emitted.Scale(weight)))
	}
	return total
}

// emissionWeight returns the MIS weight for emission reached by BSDF
// sampling. Camera rays and specular bounces have no competing light-sampling
// strategy, so their weight is one.
func (pt *PathTracer) emissionWeight(state *pathState, scn *scene.Scene, direction core.Vec3) float64 {
	if state.specular {
		return 1.0
	}
	lightPDF := scn.LightSampler.PDF(state.prevPoint, state.prevNormal, direction)
	if lightPDF <= 0 {
		return 1.0
	}
	return core.PowerHeuristic(1, state.prevPDF, 1, lightPDF)
}

// sampleDirectLight performs next-event estimation: sample a light, trace a
// shadow ray, and weight the contribution against BSDF sampling
func (pt *PathTracer) sampleDirectLight(scn *scene.Scene, hit *material.HitRecord, state *pathState, lambda spectrum.SampledWavelengths, sampler core.Sampler) spectrum.SampledSpectrum {
	light, selectionPDF, ok := scn.LightSampler.SampleLight(hit.Point, hit.Normal, sampler.Get1D())
	if !ok {
		return spectrum.Zero()
	}

	lightSample := light.Sample(hit.Point, hit.Normal, lambda, sampler.Get2D())
	if lightSample.PDF <= 0 || lightSample.Radiance.IsZero() {
		return spectrum.Zero()
	}

	cosine := lightSample.Direction.Dot(hit.Normal)
	if cosine <= 0 {
		return spectrum.Zero() // Light is behind the surface
	}

	shadowRay := core.NewRayOffset(hit.Point, lightSample.Direction, hit.Normal, rayEpsilon)
	if scn.BVH.IsOccluded(shadowRay, rayEpsilon, lightSample.Distance-shadowEpsilon) {
		return spectrum.Zero()
	}

	brdf := hit.Material.EvaluateBRDF(state.ray.Direction, lightSample.Direction, *hit, lambda)
	if brdf.IsZero() {
		return spectrum.Zero()
	}

	lightPDF := lightSample.PDF * selectionPDF

	// Delta lights cannot be hit by BSDF samples, so light sampling is the
	// only strategy and needs no MIS discount
	weight := 1.0
	if !lights.IsDelta(light) {
		bsdfPDF, _ := hit.Material.PDF(state.ray.Direction, lightSample.Direction, *hit)
		// The light strategy's density for a direction is the sampler's
		// marginal over all lights, the same quantity emissionWeight uses.
		// With overlapping lights the per-light density would make the two
		// weights sum to less than one.
		marginalPDF := scn.LightSampler.PDF(hit.Point, hit.Normal, lightSample.Direction)
		weight = core.PowerHeuristic(1, marginalPDF, 1, bsdfPDF)
	}

	contribution := state.throughput.Mul(brdf).Mul(lightSample.Radiance).Scale(cosine * weight / lightPDF)
	if !contribution.IsFinite() {
		return spectrum.Zero()
	}
	return contribution
}

// continuePath folds the BSDF sample into the throughput and advances the
// ray. Returns false when the path should terminate.
func (pt *PathTracer) continuePath(state *pathState, hit *material.HitRecord, scatter material.ScatterResult) bool {
	direction := scatter.Scattered.Direction.Normalize()

	if scatter.IsSpecular() {
		// Attenuation already carries the full throughput weight
		state.throughput = state.throughput.Mul(scatter.Attenuation)
		state.specular = true
	} else {
		if scatter.PDF <= 0 {
			return false
		}
		cosine := math.Abs(direction.Dot(hit.Normal))
		state.throughput = state.throughput.Mul(scatter.Attenuation.Scale(cosine / scatter.PDF))
		state.specular = false
		state.prevPDF = scatter.PDF
		state.prevPoint = hit.Point
		state.prevNormal = hit.Normal
	}

	if state.throughput.IsZero() || !state.throughput.IsFinite() {
		return false
	}

	state.ray = core.NewRayOffset(hit.Point, direction, hit.Normal, rayEpsilon)
	return true
}
