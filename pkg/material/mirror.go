package material

import (
	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/rgb2spec"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// Mirror is a perfectly specular reflector with a spectral reflectance tint
type Mirror struct {
	Reflectance spectrum.Spectrum
}

// NewMirror creates a perfect mirror from a linear RGB reflectance
func NewMirror(table *rgb2spec.Table, reflectance core.Vec3) *Mirror {
	return &Mirror{Reflectance: spectrum.NewRGBAlbedo(table, reflectance)}
}

// Scatter reflects the ray about the surface normal
func (m *Mirror) Scatter(rayIn core.Ray, hit HitRecord, lambda spectrum.SampledWavelengths, sampler core.Sampler) (ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Incoming:    rayIn,
		Scattered:   core.Ray{Origin: hit.Point, Direction: reflected},
		Attenuation: lambda.Sample(m.Reflectance),
		PDF:         0, // delta distribution
	}, true
}

// EvaluateBRDF is zero for all direction pairs: the delta lobe carries no
// density under area integration
func (m *Mirror) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit HitRecord, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	return spectrum.Zero()
}

// PDF reports a delta distribution
func (m *Mirror) PDF(incomingDir, outgoingDir core.Vec3, hit HitRecord) (float64, bool) {
	return 0, true
}
