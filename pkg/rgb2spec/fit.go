package rgb2spec

import (
	"errors"
	"math"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
)

// FitOptions control the per-cell Gauss-Newton solver
type FitOptions struct {
	MaxIterations int     // iteration budget per grid cell
	Tolerance     float64 // convergence threshold on the max RGB residual
}

// DefaultFitOptions returns solver settings that converge across the gamut
func DefaultFitOptions() FitOptions {
	return FitOptions{
		MaxIterations: 64,
		Tolerance:     1e-7,
	}
}

// ErrInvalidResolution is returned when the requested grid is too small to
// interpolate
var ErrInvalidResolution = errors.New("rgb2spec: table resolution must be at least 4")

// Fit builds a coefficient table of the given resolution. It is a pure
// function of (resolution, options): rebuilding with the same inputs yields
// the same table. Cells whose solve does not converge within the iteration
// budget inherit the nearest already-converged neighbor's coefficients; the
// build itself never fails for that reason.
func Fit(resolution int, opts FitOptions, logger core.Logger) (*Table, error) {
	if resolution < 4 {
		return nil, ErrInvalidResolution
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	weights := newFitWeights()
	res := resolution

	table := &Table{
		Resolution: res,
		ZNodes:     make([]float64, res),
		Coeffs:     make([]float64, 3*res*res*res*3),
	}
	for zi := range table.ZNodes {
		table.ZNodes[zi] = zMapping(zi, res)
	}

	failed := 0
	for maxComponent := 0; maxComponent < 3; maxComponent++ {
		// Walk z from the top down: bright cells are the easiest to fit from
		// the default seed, and each slice then seeds the one below it.
		sliceSeed := [3]float64{0, 0, 0}
		for zi := res - 1; zi >= 0; zi-- {
			z := table.ZNodes[zi]
			rowSeed := sliceSeed
			for yi := 0; yi < res; yi++ {
				coeffs := rowSeed
				for xi := 0; xi < res; xi++ {
					x := float64(xi) / float64(res-1) * z
					y := float64(yi) / float64(res-1) * z

					var rgb [3]float64
					switch maxComponent {
					case 0:
						rgb = [3]float64{z, x, y}
					case 1:
						rgb = [3]float64{y, z, x}
					default:
						rgb = [3]float64{x, y, z}
					}

					fitted, ok := solveCell(rgb, coeffs, weights, opts)
					if ok {
						coeffs = fitted
					} else {
						// Keep the previous cell's coefficients: the grid is
						// smooth, so the nearest converged neighbor is a
						// usable stand-in.
						failed++
						logger.Printf("rgb2spec: cell (%d,%d,%d,%d) did not converge, using neighbor", maxComponent, zi, yi, xi)
					}

					base := (((maxComponent*res+zi)*res+yi)*res + xi) * 3
					table.Coeffs[base+0] = coeffs[0]
					table.Coeffs[base+1] = coeffs[1]
					table.Coeffs[base+2] = coeffs[2]

					if xi == 0 {
						rowSeed = coeffs
						if yi == 0 {
							sliceSeed = coeffs
						}
					}
				}
			}
		}
	}

	if failed > 0 {
		logger.Printf("rgb2spec: %d of %d cells fell back to neighbor coefficients", failed, 3*res*res*res)
	}
	return table, nil
}

// defaultSeed is a known-good starting point that converges for interior
// gamut colors. Used whenever the propagated neighbor seed stalls, so one
// hard cell (a saturated gamut edge, say) cannot poison the cells after it.
var defaultSeed = [3]float64{0.5, 0.0, -0.1}

// solveCell fits one target color, trying the propagated neighbor seed
// first and the fixed default seed second. Reports whether either converged.
func solveCell(target, seed [3]float64, weights *fitWeights, opts FitOptions) ([3]float64, bool) {
	if c, ok := solveFrom(target, seed, weights, opts); ok {
		return c, true
	}
	if seed == defaultSeed {
		return seed, false
	}
	return solveFrom(target, defaultSeed, weights, opts)
}

// solveFrom runs a damped Gauss-Newton (Levenberg-Marquardt) iteration on
// the RGB residual from the given start. A saturated sigmoid makes the
// Jacobian near-singular; the damping term keeps the normal matrix
// invertible there instead of aborting, and shrinks again once steps start
// reducing the residual.
func solveFrom(target, start [3]float64, weights *fitWeights, opts FitOptions) ([3]float64, bool) {
	c := start
	const jacobianEps = 1e-4
	damping := 0.0

	residualAt := func(c [3]float64) ([3]float64, float64) {
		reconstructed := weights.reconstructRGB(c)
		var r [3]float64
		maxR := 0.0
		for i := 0; i < 3; i++ {
			r[i] = reconstructed[i] - target[i]
			maxR = math.Max(maxR, math.Abs(r[i]))
		}
		return r, maxR
	}

	residual, maxResidual := residualAt(c)
	bestResidual := maxResidual
	best := c

	for iter := 0; iter < opts.MaxIterations; iter++ {
		if math.IsNaN(maxResidual) || math.IsInf(maxResidual, 0) {
			return best, false
		}
		if maxResidual < opts.Tolerance {
			return c, true
		}

		// Jacobian of the residual by central differences
		var jacobian [3][3]float64
		for j := 0; j < 3; j++ {
			cNeg, cPos := c, c
			cNeg[j] -= jacobianEps
			cPos[j] += jacobianEps
			rNeg := weights.reconstructRGB(cNeg)
			rPos := weights.reconstructRGB(cPos)
			for i := 0; i < 3; i++ {
				jacobian[i][j] = (rPos[i] - rNeg[i]) / (2.0 * jacobianEps)
			}
		}

		// Normal equations (JᵀJ + λ·diag(JᵀJ))·step = Jᵀr
		var normal [3][3]float64
		var gradient [3]float64
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				for k := 0; k < 3; k++ {
					normal[i][j] += jacobian[k][i] * jacobian[k][j]
				}
			}
			for k := 0; k < 3; k++ {
				gradient[i] += jacobian[k][i] * residual[k]
			}
		}
		for i := 0; i < 3; i++ {
			normal[i][i] += damping * math.Max(normal[i][i], 1e-12)
		}

		step, ok := lupSolve(normal, gradient)
		if !ok {
			damping = math.Max(1e-4, damping*10)
			if damping > 1e10 {
				break
			}
			continue
		}

		trial := c
		for j := 0; j < 3; j++ {
			trial[j] -= step[j]
		}
		trialResidual, trialMax := residualAt(trial)

		if trialMax < maxResidual {
			c, residual, maxResidual = trial, trialResidual, trialMax
			damping *= 0.5
			if maxResidual < bestResidual {
				bestResidual = maxResidual
				best = c
			}
		} else {
			damping = math.Max(1e-4, damping*10)
			if damping > 1e10 {
				break
			}
		}
	}

	// Budget exhausted: accept the best iterate if it is close enough for
	// the round-trip contract, otherwise report failure
	if bestResidual < 1e-3 {
		return best, true
	}
	return best, false
}

// lupSolve solves the 3x3 system a·x = b with LU decomposition and partial
// pivoting. Reports false for singular systems.
func lupSolve(a [3][3]float64, b [3]float64) ([3]float64, bool) {
	const epsilon = 1e-15
	p := [3]int{0, 1, 2}

	for i := 0; i < 3; i++ {
		// Pivot on the largest remaining entry in column i
		maxA := 0.0
		iMax := i
		for k := i; k < 3; k++ {
			if absA := math.Abs(a[k][i]); absA > maxA {
				maxA = absA
				iMax = k
			}
		}
		if maxA < epsilon {
			return [3]float64{}, false
		}
		if iMax != i {
			p[i], p[iMax] = p[iMax], p[i]
			a[i], a[iMax] = a[iMax], a[i]
		}

		for j := i + 1; j < 3; j++ {
			a[j][i] /= a[i][i]
			for k := i + 1; k < 3; k++ {
				a[j][k] -= a[j][i] * a[i][k]
			}
		}
	}

	// Forward then back substitution
	var x [3]float64
	for i := 0; i < 3; i++ {
		x[i] = b[p[i]]
		for k := 0; k < i; k++ {
			x[i] -= a[i][k] * x[k]
		}
	}
	for i := 2; i >= 0; i-- {
		for k := i + 1; k < 3; k++ {
			x[i] -= a[i][k] * x[k]
		}
		x[i] /= a[i][i]
	}
	return x, true
}
