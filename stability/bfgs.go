package stability

import "math"

// refined is the outcome of one projected-BFGS run.
type refined struct {
	x          [2]float64
	value      float64
	iterations int
	converged  bool // stationarity criterion met (boundary-pinned counts)
}

// minimizeBox runs a bound-constrained BFGS from x0. Gradients are
// central differences with per-coordinate steps h_i = 1e-6·max(1,|x_i|);
// iterates are projected back into [lo, hi] after each line-search step.
// Convergence is the projected-gradient criterion
// ‖g_proj‖ ≤ gradTol·(1+|f|), backed by a step criterion for objectives
// whose value near the minimum cancels to the evaluation noise floor
// (there the finite-difference gradient never drops under gradTol): a
// successful step with ‖s‖ ≤ stepTol·(1+‖x‖) and
// |Δf| ≤ funcTol·(1+|f|) also converges, as does an exhausted line
// search (no admissible decrease left). Deterministic throughout.
func minimizeBox(f func([2]float64) float64, x0, lo, hi [2]float64, maxIter int, gradTol float64) refined {
	const (
		stepTol = 1e-6
		funcTol = 1e-9
	)
	x := clampPoint(x0, lo, hi)
	fx := f(x)
	if !isFiniteVal(fx) {
		return refined{x: x, value: fx}
	}

	// inverse Hessian estimate, identity start
	h := [2][2]float64{{1, 0}, {0, 1}}
	g := gradient(f, x, fx)

	out := refined{x: x, value: fx}
	for iter := 0; iter < maxIter; iter++ {
		out.iterations = iter + 1

		if projGradNorm(x, g, lo, hi) <= gradTol*(1+math.Abs(fx)) {
			out.converged = true

			break
		}

		// search direction d = -H·g, reset to steepest descent when H
		// has drifted off a descent direction
		d := [2]float64{
			-(h[0][0]*g[0] + h[0][1]*g[1]),
			-(h[1][0]*g[0] + h[1][1]*g[1]),
		}
		if d[0]*g[0]+d[1]*g[1] >= 0 {
			h = [2][2]float64{{1, 0}, {0, 1}}
			d = [2]float64{-g[0], -g[1]}
		}

		xNext, fNext, ok := lineSearch(f, x, fx, g, d, lo, hi)
		if !ok {
			// No admissible step: either the projection ate the whole
			// step at an active bound (the interior gate upstream demotes
			// that) or backtracking found no decrease, meaning the
			// objective is flat to evaluation noise at this iterate.
			out.converged = true

			break
		}

		stepNorm := math.Hypot(xNext[0]-x[0], xNext[1]-x[1])
		xNorm := math.Hypot(xNext[0], xNext[1])
		if stepNorm <= stepTol*(1+xNorm) && math.Abs(fNext-fx) <= funcTol*(1+math.Abs(fNext)) {
			out.x, out.value = xNext, fNext
			out.converged = true

			break
		}

		gNext := gradient(f, xNext, fNext)

		// BFGS update on (s, y); skipped when curvature information is
		// unusable
		s := [2]float64{xNext[0] - x[0], xNext[1] - x[1]}
		y := [2]float64{gNext[0] - g[0], gNext[1] - g[1]}
		if sy := s[0]*y[0] + s[1]*y[1]; sy > 1e-12 {
			h = bfgsUpdate(h, s, y, sy)
		}

		x, fx, g = xNext, fNext, gNext
		out.x, out.value = x, fx
	}

	return out
}

// lineSearch backtracks from the unit step until the Armijo condition
// f(x+t·d) ≤ f(x) + c1·t·gᵀd holds, projecting each candidate into the
// box. Returns ok=false when no candidate makes progress.
func lineSearch(f func([2]float64) float64, x [2]float64, fx float64, g, d, lo, hi [2]float64) ([2]float64, float64, bool) {
	const (
		c1        = 1e-4
		maxHalves = 40
	)
	slope := g[0]*d[0] + g[1]*d[1]

	t := 1.0
	for i := 0; i < maxHalves; i++ {
		cand := clampPoint([2]float64{x[0] + t*d[0], x[1] + t*d[1]}, lo, hi)
		if cand == x {
			return x, fx, false // projection ate the whole step
		}
		fc := f(cand)
		if isFiniteVal(fc) && fc <= fx+c1*t*slope {
			return cand, fc, true
		}
		t /= 2
	}

	return x, fx, false
}

// gradient is the central-difference estimate. A non-finite neighbor
// (outside the objective's open domain) falls back to a one-sided
// difference.
func gradient(f func([2]float64) float64, x [2]float64, fx float64) [2]float64 {
	var g [2]float64
	for i := 0; i < 2; i++ {
		h := 1e-6 * max(1, math.Abs(x[i]))
		plus, minus := x, x
		plus[i] += h
		minus[i] -= h

		fp, fm := f(plus), f(minus)
		switch {
		case isFiniteVal(fp) && isFiniteVal(fm):
			g[i] = (fp - fm) / (2 * h)
		case isFiniteVal(fp):
			g[i] = (fp - fx) / h
		case isFiniteVal(fm):
			g[i] = (fx - fm) / h
		default:
			g[i] = 0
		}
	}

	return g
}

// bfgsUpdate applies the standard inverse-Hessian update
// H' = (I - ρsyᵀ)H(I - ρysᵀ) + ρssᵀ with ρ = 1/sᵀy.
func bfgsUpdate(h [2][2]float64, s, y [2]float64, sy float64) [2][2]float64 {
	rho := 1 / sy

	// a = I - ρ·s·yᵀ
	var a [2][2]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			a[i][j] = -rho * s[i] * y[j]
			if i == j {
				a[i][j]++
			}
		}
	}

	// h' = a·h·aᵀ + ρ·s·sᵀ
	var ah, out [2][2]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			ah[i][j] = a[i][0]*h[0][j] + a[i][1]*h[1][j]
		}
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = ah[i][0]*a[j][0] + ah[i][1]*a[j][1] + rho*s[i]*s[j]
		}
	}

	return out
}

// projGradNorm zeroes gradient components that push out of the box at an
// active bound, then returns the norm of what remains.
func projGradNorm(x, g, lo, hi [2]float64) float64 {
	var sum float64
	for i := 0; i < 2; i++ {
		gi := g[i]
		if (x[i] <= lo[i] && gi > 0) || (x[i] >= hi[i] && gi < 0) {
			gi = 0
		}
		sum += gi * gi
	}

	return math.Sqrt(sum)
}

// clampPoint projects x into the box.
func clampPoint(x, lo, hi [2]float64) [2]float64 {
	for i := 0; i < 2; i++ {
		x[i] = min(max(x[i], lo[i]), hi[i])
	}

	return x
}

// isFiniteVal reports a usable objective value.
func isFiniteVal(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
