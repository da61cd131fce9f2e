package spectrum

import (
	"math/rand"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
)

func TestCIEObserverShape(t *testing.T) {
	// The luminosity function peaks near 555 nm
	peak := CIEY(555)
	assert.Greater(t, peak, CIEY(500))
	assert.Greater(t, peak, CIEY(600))
	assert.InDelta(t, 1.0, peak, 0.02)

	// All three curves vanish outside the visible range
	for _, lambda := range []float64{360, 830} {
		assert.Less(t, CIEX(lambda), 0.01)
		assert.Less(t, CIEY(lambda), 0.01)
		assert.Less(t, CIEZ(lambda), 0.01)
	}

	// The x-bar curve has its secondary lobe in the violet
	assert.Greater(t, CIEX(445), 0.3)
}

func TestCIEYIntegral(t *testing.T) {
	// The analytic fit integrates to roughly the standard 106.857
	assert.InDelta(t, 106.857, CIEYIntegral(), 2.0)
}

// A constant spectrum of value c has luminance Y equal to c.
func TestConstantSpectrumLuminance(t *testing.T) {
	for _, c := range []float64{0.0, 0.18, 0.5, 1.0} {
		xyz := ToXYZ(NewConstant(c))
		assert.InDelta(t, c, xyz.Y, 0.01*c+1e-9, "Y should equal the constant value")
	}
}

func TestZeroSpectrumIsBlack(t *testing.T) {
	rgb := ToRGB(NewConstant(0))
	assert.Equal(t, core.Vec3{}, rgb)
}

func TestToXYZLinearity(t *testing.T) {
	base := ToXYZ(NewConstant(0.25))
	scaled := ToXYZ(NewScaled(NewConstant(0.25), 3.0))
	assert.InDelta(t, base.X*3, scaled.X, 1e-9)
	assert.InDelta(t, base.Y*3, scaled.Y, 1e-9)
	assert.InDelta(t, base.Z*3, scaled.Z, 1e-9)
}

func TestXYZRGBRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		rgb := core.NewVec3(rng.Float64(), rng.Float64(), rng.Float64())
		back := XYZToRGB(RGBToXYZ(rgb))
		require.InDelta(t, rgb.X, back.X, 1e-9)
		require.InDelta(t, rgb.Y, back.Y, 1e-9)
		require.InDelta(t, rgb.Z, back.Z, 1e-9)
	}
}

// Cross-check the XYZ to linear sRGB matrix against go-colorful.
func TestXYZToRGBMatchesColorful(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for i := 0; i < 50; i++ {
		// Stay inside the sRGB gamut so go-colorful's sRGB round trip is exact
		xyz := RGBToXYZ(core.NewVec3(rng.Float64(), rng.Float64(), rng.Float64()))

		got := XYZToRGB(xyz)
		r, g, b := colorful.Xyz(xyz.X, xyz.Y, xyz.Z).LinearRgb()

		require.InDelta(t, r, got.X, 1e-3)
		require.InDelta(t, g, got.Y, 1e-3)
		require.InDelta(t, b, got.Z, 1e-3)
	}
}

func TestBlackbodyNormalization(t *testing.T) {
	for _, temp := range []float64{3000.0, 6504.0} {
		s := NewBlackbody(temp)
		assert.Equal(t, 1.0, s.MaxValue())

		// No sample in the visible range exceeds the Wien peak
		for lambda := LambdaMin; lambda <= LambdaMax; lambda += 5 {
			require.LessOrEqual(t, s.Value(lambda), 1.0+1e-9)
		}
	}

	// Hotter bodies shift the peak toward the blue
	cool := NewBlackbody(3000)
	hot := NewBlackbody(6504)
	assert.Greater(t, hot.Value(450)/hot.Value(650), cool.Value(450)/cool.Value(650))
}

func TestDenselySampledMatchesSource(t *testing.T) {
	src := NewBlackbody(5000)
	dense := NewDenselySampled(src)
	for lambda := LambdaMin; lambda <= LambdaMax; lambda += 17 {
		require.InDelta(t, src.Value(lambda), dense.Value(lambda), 1e-3)
	}
	assert.Equal(t, 0.0, dense.Value(LambdaMin-1))
	assert.Equal(t, 0.0, dense.Value(LambdaMax+1))
}

func TestPiecewiseLinear(t *testing.T) {
	s := NewPiecewiseLinear([]float64{400, 500, 600}, []float64{0, 1, 0})
	assert.Equal(t, 0.0, s.Value(400))
	assert.Equal(t, 1.0, s.Value(500))
	assert.InDelta(t, 0.5, s.Value(450), 1e-9)
	assert.InDelta(t, 0.5, s.Value(550), 1e-9)
	assert.Equal(t, 0.0, s.Value(350), "outside the defined range")
	assert.Equal(t, 0.0, s.Value(650))
	assert.Equal(t, 1.0, s.MaxValue())
}

func TestSampleWavelengthsUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for i := 0; i < 200; i++ {
		w := SampleWavelengthsUniform(rng.Float64())
		seen := map[int]bool{}
		for j := 0; j < NSamples; j++ {
			require.GreaterOrEqual(t, w.Lambda[j], LambdaMin)
			require.Less(t, w.Lambda[j], LambdaMax)
			require.InDelta(t, 1.0/(LambdaMax-LambdaMin), w.PDF[j], 1e-12)
			seen[int(w.Lambda[j])] = true
		}
		require.Len(t, seen, NSamples, "wavelengths should be distinct")
	}
}

// The hero-wavelength XYZ estimator converges to the deterministic integral.
func TestSampledToXYZConverges(t *testing.T) {
	s := NewBlackbody(5500)
	want := ToXYZ(s)

	rng := rand.New(rand.NewSource(31))
	sum := core.Vec3{}
	const n = 20000
	for i := 0; i < n; i++ {
		w := SampleWavelengthsUniform(rng.Float64())
		sum = sum.Add(w.ToXYZ(w.Sample(s)))
	}
	got := sum.Multiply(1.0 / n)

	assert.InDelta(t, want.X, got.X, 0.02*want.X+1e-3)
	assert.InDelta(t, want.Y, got.Y, 0.02*want.Y+1e-3)
	assert.InDelta(t, want.Z, got.Z, 0.02*want.Z+1e-3)
}

func TestSampledSpectrumArithmetic(t *testing.T) {
	a := NewConstantSampled(2)
	b := NewConstantSampled(3)

	assert.Equal(t, NewConstantSampled(5), a.Add(b))
	assert.Equal(t, NewConstantSampled(6), a.Mul(b))
	assert.Equal(t, NewConstantSampled(4), a.Scale(2))
	assert.InDelta(t, 2.0, a.Average(), 1e-12)
	assert.True(t, Zero().IsZero())
	assert.False(t, a.IsZero())
	assert.True(t, a.IsFinite())

	// Division by zero components yields zero, not Inf
	quotient := a.SafeDiv(Zero())
	assert.True(t, quotient.IsZero())
}
