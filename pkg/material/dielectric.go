package material

import (
	"math"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/spectrum"
)

// Dielectric is a clear refractive material (glass, water)
type Dielectric struct {
	RefractionIndex float64
}

// NewDielectric creates a dielectric with the given index of refraction
func NewDielectric(refractionIndex float64) *Dielectric {
	return &Dielectric{RefractionIndex: refractionIndex}
}

// Scatter refracts or reflects based on Fresnel reflectance
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, lambda spectrum.SampledWavelengths, sampler core.Sampler) (ScatterResult, bool) {
	refractionRatio := d.RefractionIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractionIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || schlickReflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = unitDirection.Reflect(hit.Normal)
	} else {
		direction = refract(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Incoming:    rayIn,
		Scattered:   core.Ray{Origin: hit.Point, Direction: direction},
		Attenuation: spectrum.One(),
		PDF:         0, // delta distribution
	}, true
}

// EvaluateBRDF is zero: both lobes are delta distributions
func (d *Dielectric) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit HitRecord, lambda spectrum.SampledWavelengths) spectrum.SampledSpectrum {
	return spectrum.Zero()
}

// PDF reports a delta distribution
func (d *Dielectric) PDF(incomingDir, outgoingDir core.Vec3, hit HitRecord) (float64, bool) {
	return 0, true
}

// refract computes the refracted direction through a surface with normal n
func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(uv.Negate().Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// schlickReflectance is Schlick's approximation of Fresnel reflectance
func schlickReflectance(cosine, refractionRatio float64) float64 {
	r0 := (1.0 - refractionRatio) / (1.0 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1.0-r0)*math.Pow(1.0-cosine, 5)
}
