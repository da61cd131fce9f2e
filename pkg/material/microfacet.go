package material

import (
	"math"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/rgb2spec"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// Microfacet is a glossy conductor with a GGX normal distribution and
// Smith shadowing. Roughness 0 degenerates numerically, so it is clamped
// to a small minimum; use Mirror for perfectly specular surfaces.
type Microfacet struct {
	F0    spectrum.Spectrum // reflectance at normal incidence
	Alpha float64           // GGX roughness (squared perceptual roughness)
}

// NewMicrofacet creates a glossy metal-like material from an RGB reflectance
// at normal incidence and a perceptual roughness in (0, 1]
func NewMicrofacet(table *rgb2spec.Table, f0 core.Vec3, roughness float64) *Microfacet {
	alpha := math.Max(1e-3, roughness*roughness)
	return &Microfacet{
		F0:    spectrum.NewRGBAlbedo(table, f0),
		Alpha: alpha,
	}
}

// ggxD is the GGX normal distribution function
func (m *Microfacet) ggxD(cosThetaH float64) float64 {
	if cosThetaH <= 0 {
		return 0
	}
	a2 := m.Alpha * m.Alpha
	d := cosThetaH*cosThetaH*(a2-1.0) + 1.0
	return a2 / (math.Pi * d * d)
}

// smithG1 is the Smith masking term for one direction
func (m *Microfacet) smithG1(cosTheta float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	a2 := m.Alpha * m.Alpha
	return 2.0 * cosTheta / (cosTheta + math.Sqrt(a2+(1.0-a2)*cosTheta*cosTheta))
}

// fresnelSchlick applies Schlick's approximation per sampled wavelength
func (m *Microfacet) fresnelSchlick(cosTheta float64, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	f0 := lambda.Sample(m.F0)
	weight := math.Pow(1.0-math.Max(0, cosTheta), 5)
	var result spectrum.SampledSpectrum
	for i := range result.Values {
		result.Values[i] = f0.Values[i] + (1.0-f0.Values[i])*weight
	}
	return result
}

// sampleHalfVector draws a microfacet normal from the GGX distribution
func (m *Microfacet) sampleHalfVector(normal core.Vec3, sample core.Vec2) core.Vec3 {
	// Inverse CDF of the GGX NDF weighted by cos(θh)
	cosTheta := math.Sqrt((1.0 - sample.X) / (1.0 + (m.Alpha*m.Alpha-1.0)*sample.X))
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	onb := core.NewONB(normal)
	return onb.ToWorld(core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta))
}

// Scatter samples a half vector and reflects the incoming direction about it
func (m *Microfacet) Scatter(rayIn core.Ray, hit HitRecord, lambda spectrum.SampledWavelengths, sampler core.Sampler) (ScatterResult, bool) {
	wo := rayIn.Direction.Normalize().Negate()
	if wo.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	half := m.sampleHalfVector(hit.Normal, sampler.Get2D())
	wi := wo.Negate().Reflect(half)
	if wi.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	pdf, _ := m.PDF(rayIn.Direction, wi, hit)
	if pdf <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Incoming:    rayIn,
		Scattered:   core.Ray{Origin: hit.Point, Direction: wi},
		Attenuation: m.EvaluateBRDF(rayIn.Direction, wi, hit, lambda),
		PDF:         pdf,
	}, true
}

// EvaluateBRDF computes the Cook-Torrance term D·F·G / (4·cosθo·cosθi)
func (m *Microfacet) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit HitRecord, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	wo := incomingDir.Normalize().Negate()
	wi := outgoingDir.Normalize()

	cosThetaO := wo.Dot(hit.Normal)
	cosThetaI := wi.Dot(hit.Normal)
	if cosThetaO <= 0 || cosThetaI <= 0 {
		return spectrum.Zero()
	}

	half := wo.Add(wi).Normalize()
	cosThetaH := half.Dot(hit.Normal)

	d := m.ggxD(cosThetaH)
	g := m.smithG1(cosThetaO) * m.smithG1(cosThetaI)
	f := m.fresnelSchlick(wo.Dot(half), lambda)

	return f.Scale(d * g / (4.0 * cosThetaO * cosThetaI))
}

// PDF returns the half-vector sampling density converted to solid angle
func (m *Microfacet) PDF(incomingDir, outgoingDir core.Vec3, hit HitRecord) (float64, bool) {
	wo := incomingDir.Normalize().Negate()
	wi := outgoingDir.Normalize()
	if wo.Dot(hit.Normal) <= 0 || wi.Dot(hit.Normal) <= 0 {
		return 0, false
	}

	half := wo.Add(wi).Normalize()
	cosThetaH := half.Dot(hit.Normal)
	woDotH := wo.Dot(half)
	if woDotH <= 0 {
		return 0, false
	}

	// p(wi) = D(h)·cosθh / (4·(wo·h))
	return m.ggxD(cosThetaH) * cosThetaH / (4.0 * woDotH), false
}
