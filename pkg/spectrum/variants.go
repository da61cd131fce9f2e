package spectrum

import (
	"math"
	"sort"
)

// ConstantSpectrum has the same value at every wavelength
type ConstantSpectrum struct {
	c float64
}

// NewConstant creates a constant spectrum
func NewConstant(c float64) ConstantSpectrum {
	return ConstantSpectrum{c: c}
}

// Value implements Spectrum
func (s ConstantSpectrum) Value(lambda float64) float64 { return s.c }

// MaxValue implements Spectrum
func (s ConstantSpectrum) MaxValue() float64 { return s.c }

// Planck's law constants
const (
	speedOfLight   = 299792458.0   // m/s
	planckConstant = 6.62606957e-34 // J·s
	boltzmann      = 1.3806488e-23  // J/K
)

// blackbody evaluates Planck's law for wavelength lambda (nm) and
// temperature (K), in W·sr⁻¹·m⁻³
func blackbody(lambda, temperature float64) float64 {
	if temperature <= 0 {
		return 0
	}
	l := lambda * 1e-9
	numerator := 2.0 * planckConstant * speedOfLight * speedOfLight
	denominator := math.Pow(l, 5) * (math.Exp(planckConstant*speedOfLight/(l*boltzmann*temperature)) - 1.0)
	return numerator / denominator
}

// BlackbodySpectrum is the emission spectrum of an ideal blackbody,
// normalized so its peak value is 1
type BlackbodySpectrum struct {
	temperature   float64
	normalization float64
}

// NewBlackbody creates a normalized blackbody spectrum for the given
// temperature in Kelvin
func NewBlackbody(temperature float64) BlackbodySpectrum {
	// Wien's displacement law gives the peak wavelength
	lambdaMax := 2.8977721e-3 / temperature * 1e9
	peak := blackbody(lambdaMax, temperature)
	norm := 1.0
	if peak > 0 {
		norm = 1.0 / peak
	}
	return BlackbodySpectrum{temperature: temperature, normalization: norm}
}

// Value implements Spectrum
func (s BlackbodySpectrum) Value(lambda float64) float64 {
	return s.normalization * blackbody(lambda, s.temperature)
}

// MaxValue implements Spectrum
func (s BlackbodySpectrum) MaxValue() float64 { return 1.0 }

// Temperature returns the blackbody temperature in Kelvin
func (s BlackbodySpectrum) Temperature() float64 { return s.temperature }

// denseSampleCount is one sample per nanometer across the visible range
const denseSampleCount = int(LambdaMax-LambdaMin) + 1

// DenselySampledSpectrum stores a value per nanometer; lookups are a clamp
// and an index
type DenselySampledSpectrum struct {
	values   [denseSampleCount]float64
	maxValue float64
}

// NewDenselySampled resamples any spectrum onto the 1nm grid
func NewDenselySampled(s Spectrum) *DenselySampledSpectrum {
	d := &DenselySampledSpectrum{}
	for i := 0; i < denseSampleCount; i++ {
		v := s.Value(LambdaMin + float64(i))
		d.values[i] = v
		d.maxValue = math.Max(d.maxValue, v)
	}
	return d
}

// Value implements Spectrum
func (d *DenselySampledSpectrum) Value(lambda float64) float64 {
	if lambda < LambdaMin || lambda > LambdaMax {
		return 0
	}
	index := int(math.Round(lambda - LambdaMin))
	if index < 0 || index >= denseSampleCount {
		return 0
	}
	return d.values[index]
}

// MaxValue implements Spectrum
func (d *DenselySampledSpectrum) MaxValue() float64 { return d.maxValue }

// PiecewiseLinearSpectrum interpolates between sorted (wavelength, value)
// control points and is zero outside them
type PiecewiseLinearSpectrum struct {
	lambdas  []float64
	values   []float64
	maxValue float64
}

// NewPiecewiseLinear creates a piecewise linear spectrum from parallel
// wavelength and value slices. The wavelengths must be strictly increasing.
func NewPiecewiseLinear(lambdas, values []float64) *PiecewiseLinearSpectrum {
	if len(lambdas) != len(values) || len(lambdas) == 0 {
		return &PiecewiseLinearSpectrum{}
	}
	if !sort.Float64sAreSorted(lambdas) {
		return &PiecewiseLinearSpectrum{}
	}
	maxValue := 0.0
	for _, v := range values {
		maxValue = math.Max(maxValue, v)
	}
	return &PiecewiseLinearSpectrum{
		lambdas:  append([]float64(nil), lambdas...),
		values:   append([]float64(nil), values...),
		maxValue: maxValue,
	}
}

// Value implements Spectrum
func (p *PiecewiseLinearSpectrum) Value(lambda float64) float64 {
	n := len(p.lambdas)
	if n == 0 || lambda < p.lambdas[0] || lambda > p.lambdas[n-1] {
		return 0
	}
	i := sort.SearchFloat64s(p.lambdas, lambda)
	if i < n && p.lambdas[i] == lambda {
		return p.values[i]
	}
	// lambda lies between i-1 and i
	t := (lambda - p.lambdas[i-1]) / (p.lambdas[i] - p.lambdas[i-1])
	return p.values[i-1] + t*(p.values[i]-p.values[i-1])
}

// MaxValue implements Spectrum
func (p *PiecewiseLinearSpectrum) MaxValue() float64 { return p.maxValue }

// ScaledSpectrum scales another spectrum by a constant factor
type ScaledSpectrum struct {
	base  Spectrum
	scale float64
}

// NewScaled wraps a spectrum with a scale factor
func NewScaled(base Spectrum, scale float64) ScaledSpectrum {
	return ScaledSpectrum{base: base, scale: scale}
}

// Value implements Spectrum
func (s ScaledSpectrum) Value(lambda float64) float64 {
	return s.scale * s.base.Value(lambda)
}

// MaxValue implements Spectrum
func (s ScaledSpectrum) MaxValue() float64 {
	return s.scale * s.base.MaxValue()
}
