package rgb2spec

import "math"

// The fit needs its own copy of the CIE observer and sRGB conversion so the
// package stays importable by the spectral model without a cycle. Same
// analytic fits as pkg/spectrum (Wyman, Sloan, Shirley 2013).

func gaussianLobe(lambda, alpha, mu, sigma1, sigma2 float64) float64 {
	sigma := sigma1
	if lambda >= mu {
		sigma = sigma2
	}
	t := (lambda - mu) / sigma
	return alpha * math.Exp(-0.5*t*t)
}

func cieX(lambda float64) float64 {
	return gaussianLobe(lambda, 1.056, 599.8, 37.9, 31.0) +
		gaussianLobe(lambda, 0.362, 442.0, 16.0, 26.7) +
		gaussianLobe(lambda, -0.065, 501.1, 20.4, 26.2)
}

func cieY(lambda float64) float64 {
	return gaussianLobe(lambda, 0.821, 568.8, 46.9, 40.5) +
		gaussianLobe(lambda, 0.286, 530.9, 16.3, 31.1)
}

func cieZ(lambda float64) float64 {
	return gaussianLobe(lambda, 1.217, 437.0, 11.8, 36.0) +
		gaussianLobe(lambda, 0.681, 459.0, 26.0, 13.8)
}

func xyzToRGB(x, y, z float64) [3]float64 {
	return [3]float64{
		3.2404542*x - 1.5371385*y - 0.4985314*z,
		-0.9692660*x + 1.8760108*y + 0.0415560*z,
		0.0556434*x - 0.2040259*y + 1.0572252*z,
	}
}

// fineSampleCount is the number of wavelength samples the fit integrates
// over (5nm spacing across the visible range)
const fineSampleCount = 95

// fitWeights precomputes, per fine wavelength sample, the linear-sRGB weight
// of a unit reflectance at that wavelength. Summing weight*reflectance over
// the samples reconstructs the RGB of a spectrum directly.
type fitWeights struct {
	lambda [fineSampleCount]float64
	rgb    [fineSampleCount][3]float64
}

func newFitWeights() *fitWeights {
	w := &fitWeights{}
	h := (LambdaMax - LambdaMin) / float64(fineSampleCount-1)

	// Simpson 3/8 composite weights, as in the reference fit
	weight := func(i int) float64 {
		base := 3.0 / 8.0 * h
		if i == 0 || i == fineSampleCount-1 {
			return base
		}
		if (i-1)%3 == 2 {
			return base * 2.0
		}
		return base * 3.0
	}

	yIntegral := 0.0
	for i := 0; i < fineSampleCount; i++ {
		lambda := LambdaMin + h*float64(i)
		yIntegral += cieY(lambda) * weight(i)
	}

	for i := 0; i < fineSampleCount; i++ {
		lambda := LambdaMin + h*float64(i)
		w.lambda[i] = lambda
		scale := weight(i) / yIntegral
		x := cieX(lambda) * scale
		y := cieY(lambda) * scale
		z := cieZ(lambda) * scale
		w.rgb[i] = xyzToRGB(x, y, z)
	}
	return w
}

// reconstructRGB integrates the sigmoid quadratic against the precomputed
// RGB weights
func (w *fitWeights) reconstructRGB(c [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < fineSampleCount; i++ {
		x := (w.lambda[i] - LambdaMin) / (LambdaMax - LambdaMin)
		s := Sigmoid(c[0]*x*x + c[1]*x + c[2])
		out[0] += w.rgb[i][0] * s
		out[1] += w.rgb[i][1] * s
		out[2] += w.rgb[i][2] * s
	}
	return out
}
