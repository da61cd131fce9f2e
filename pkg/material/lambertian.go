package material

import (
	"math"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/rgb2spec"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// Lambertian represents a perfectly diffuse material with a spectral albedo
type Lambertian struct {
	Albedo spectrum.Spectrum
}

// NewLambertian creates a diffuse material from a linear RGB albedo,
// upsampled to a reflectance spectrum through the table
func NewLambertian(table *rgb2spec.Table, albedo core.Vec3) *Lambertian {
	reflectance := spectrum.NewRGBAlbedo(table, albedo)
	return &Lambertian{Albedo: reflectance}
}

// NewSpectralLambertian creates a diffuse material from an explicit
// reflectance spectrum
func NewSpectralLambertian(albedo spectrum.Spectrum) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements cosine-weighted diffuse scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, lambda spectrum.SampledWavelengths, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	scattered := core.Ray{Origin: hit.Point, Direction: scatterDirection}

	cosTheta := math.Max(0, scatterDirection.Dot(hit.Normal))
	pdf := core.CosineHemispherePDF(cosTheta)

	// BRDF: albedo / π
	attenuation := lambda.Sample(l.Albedo).Scale(1.0 / math.Pi)

	return ScatterResult{
		Incoming:    rayIn,
		Scattered:   scattered,
		Attenuation: attenuation,
		PDF:         pdf,
	}, true
}

// EvaluateBRDF returns the constant diffuse BRDF, zero below the horizon
func (l *Lambertian) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit HitRecord, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	if outgoingDir.Dot(hit.Normal) <= 0 {
		return spectrum.Zero()
	}
	return lambda.Sample(l.Albedo).Scale(1.0 / math.Pi)
}

// PDF returns the cosine-weighted hemisphere density
func (l *Lambertian) PDF(incomingDir, outgoingDir core.Vec3, hit HitRecord) (float64, bool) {
	return core.CosineHemispherePDF(outgoingDir.Dot(hit.Normal)), false
}
