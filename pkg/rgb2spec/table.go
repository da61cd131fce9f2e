package rgb2spec

import "math"

// DefaultResolution is the per-axis grid resolution of production tables
const DefaultResolution = 64

// Table maps RGB triples to sigmoid-quadratic coefficients. The grid is
// indexed by the dominant RGB channel and the two remaining channels
// normalized by it; the dominant channel's own value is remapped through the
// non-linear ZNodes so precision concentrates near 0 and 1.
//
// Built once offline, read-only thereafter: concurrent lookups need no
// synchronization.
type Table struct {
	Resolution int
	ZNodes     []float64
	// Coeffs is indexed [maxComponent][z][y][x][coefficient], flattened
	Coeffs []float64
}

// coeff returns one stored coefficient
func (t *Table) coeff(maxComponent, zi, yi, xi, i int) float64 {
	res := t.Resolution
	return t.Coeffs[(((maxComponent*res+zi)*res+yi)*res+xi)*3+i]
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Lookup returns the fitted reflectance spectrum for a linear RGB triple
// with components in [0, 1]. Constant time; safe for per-shading-point use.
func (t *Table) Lookup(r, g, b float64) SigmoidPolynomial {
	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	b = math.Max(0, math.Min(1, b))

	// Uniform RGB degenerates to an exact constant spectrum
	if r == g && g == b {
		if r >= 1 {
			return SigmoidPolynomial{C0: 0, C1: 0, C2: math.Inf(1)}
		}
		if r <= 0 {
			return SigmoidPolynomial{C0: 0, C1: 0, C2: math.Inf(-1)}
		}
		return SigmoidPolynomial{C0: 0, C1: 0, C2: InvSigmoid(r)}
	}

	rgb := [3]float64{r, g, b}
	maxComponent := 0
	if rgb[1] > rgb[maxComponent] {
		maxComponent = 1
	}
	if rgb[2] > rgb[maxComponent] {
		maxComponent = 2
	}

	res := t.Resolution
	z := rgb[maxComponent]
	x := rgb[(maxComponent+1)%3] * float64(res-1) / z
	y := rgb[(maxComponent+2)%3] * float64(res-1) / z

	// Cell indices and interpolation offsets
	xi := min(int(x), res-2)
	yi := min(int(y), res-2)
	zi := res - 2
	for i := 0; i <= res-2; i++ {
		if t.ZNodes[i+1] > z {
			zi = i
			break
		}
	}
	dx := x - float64(xi)
	dy := y - float64(yi)
	dz := (z - t.ZNodes[zi]) / (t.ZNodes[zi+1] - t.ZNodes[zi])

	var cs [3]float64
	for i := 0; i < 3; i++ {
		co := func(ddx, ddy, ddz int) float64 {
			return t.coeff(maxComponent, zi+ddz, yi+ddy, xi+ddx, i)
		}
		cs[i] = lerp(
			lerp(
				lerp(co(0, 0, 0), co(1, 0, 0), dx),
				lerp(co(0, 1, 0), co(1, 1, 0), dx),
				dy),
			lerp(
				lerp(co(0, 0, 1), co(1, 0, 1), dx),
				lerp(co(0, 1, 1), co(1, 1, 1), dx),
				dy),
			dz)
	}

	return SigmoidPolynomial{C0: cs[0], C1: cs[1], C2: cs[2]}
}

// zMapping spreads the z nodes with a double smoothstep so the grid is finer
// near 0 and 1, where fitted spectra change fastest
func zMapping(zi, res int) float64 {
	smoothstep := func(x float64) float64 {
		return x * x * (3.0 - 2.0*x)
	}
	return smoothstep(smoothstep(float64(zi) / float64(res-1)))
}
