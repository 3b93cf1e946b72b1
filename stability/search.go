package stability

import (
	"math"
	"sort"
)

// candidate is one grid point with its objective value.
type candidate struct {
	r, eps, value float64
}

// better is the deterministic ordering shared by the grid stage and the
// refinement stage: lowest value first, ties to smaller r, then smaller
// |eps|, then smaller eps.
func better(a, b candidate) bool {
	switch {
	case a.value != b.value:
		return a.value < b.value
	case a.r != b.r:
		return a.r < b.r
	case math.Abs(a.eps) != math.Abs(b.eps):
		return math.Abs(a.eps) < math.Abs(b.eps)
	default:
		return a.eps < b.eps
	}
}

// Search runs the two-stage global minimization of obj over the box.
//
// Stage 1: validate the box (before any objective evaluation).
// Stage 2: exhaustive coarse grid, endpoints included, row-major order.
// Stage 3: the best distinct grid candidates seed projected-BFGS runs;
// the best refined point wins under the same ordering.
// Stage 4: boundary detection sets Converged.
//
// Non-finite objective values are tolerated anywhere; a box whose every
// grid point is non-finite yields Converged=false with Value=+Inf.
//
// Errors: ErrBounds only. Non-convergence is reported in the Result.
func Search(obj func(r, eps float64) float64, b Bounds, opts ...Option) (Result, error) {
	if err := b.validate(); err != nil {
		return Result{}, err
	}
	o := NewOptions(opts...)

	// Stage 2: coarse grid
	grid := make([]candidate, 0, o.gridR*o.gridEps)
	for i := 0; i < o.gridR; i++ {
		r := gridPoint(b.RMin, b.RMax, i, o.gridR)
		for j := 0; j < o.gridEps; j++ {
			eps := gridPoint(b.EpsMin, b.EpsMax, j, o.gridEps)
			if v := obj(r, eps); isFiniteVal(v) {
				grid = append(grid, candidate{r: r, eps: eps, value: v})
			}
		}
	}
	if len(grid) == 0 {
		return Result{Value: math.Inf(1)}, nil
	}
	sort.Slice(grid, func(i, j int) bool { return better(grid[i], grid[j]) })

	// Stage 3: multi-start refinement
	lo := [2]float64{b.RMin, b.EpsMin}
	hi := [2]float64{b.RMax, b.EpsMax}
	f := func(x [2]float64) float64 { return obj(x[0], x[1]) }

	starts := min(o.starts, len(grid))
	best := refined{value: math.Inf(1)}
	bestSet := false
	var iterations int
	for i := 0; i < starts; i++ {
		run := minimizeBox(f, [2]float64{grid[i].r, grid[i].eps}, lo, hi, o.maxIter, o.gradTol)
		iterations += run.iterations
		if !isFiniteVal(run.value) {
			continue
		}
		if !bestSet || better(
			candidate{r: run.x[0], eps: run.x[1], value: run.value},
			candidate{r: best.x[0], eps: best.x[1], value: best.value},
		) {
			best = run
			bestSet = true
		}
	}
	if !bestSet {
		// refinement produced nothing usable; fall back to the grid
		top := grid[0]
		return Result{R: top.r, Eps: top.eps, Value: top.value, Iterations: iterations}, nil
	}

	// Stage 4: boundary detection
	res := Result{
		R:          best.x[0],
		Eps:        best.x[1],
		Value:      best.value,
		Iterations: iterations,
	}
	res.Converged = best.converged && interior(best.x, lo, hi, o.boundaryTol)

	return res, nil
}

// recoverWell hunts for an interior local well after the global search
// pinned at the box boundary: a box infimum sitting on the collapse edge
// does not rule out a barrier-protected well further in. The coarse-grid
// value matrix is scanned for interior points lying strictly below both
// radial neighbors and no higher than either anisotropy neighbor (weak
// along eps, so objectives flat in the anisotropy still qualify); the
// best candidates under the shared ordering seed projected-BFGS runs,
// and the best converged interior refinement wins.
func recoverWell(obj func(r, eps float64) float64, b Bounds, o Options) (Result, bool) {
	rs := make([]float64, o.gridR)
	for i := range rs {
		rs[i] = gridPoint(b.RMin, b.RMax, i, o.gridR)
	}
	es := make([]float64, o.gridEps)
	for j := range es {
		es[j] = gridPoint(b.EpsMin, b.EpsMax, j, o.gridEps)
	}
	vals := make([][]float64, o.gridR)
	for i, r := range rs {
		vals[i] = make([]float64, o.gridEps)
		for j, eps := range es {
			vals[i][j] = obj(r, eps)
		}
	}

	var wells []candidate
	for i := 1; i < o.gridR-1; i++ {
		for j := 1; j < o.gridEps-1; j++ {
			v := vals[i][j]
			if !isFiniteVal(v) ||
				!isFiniteVal(vals[i-1][j]) || !isFiniteVal(vals[i+1][j]) ||
				!isFiniteVal(vals[i][j-1]) || !isFiniteVal(vals[i][j+1]) {
				continue
			}
			if v < vals[i-1][j] && v < vals[i+1][j] &&
				v <= vals[i][j-1] && v <= vals[i][j+1] {
				wells = append(wells, candidate{r: rs[i], eps: es[j], value: v})
			}
		}
	}
	if len(wells) == 0 {
		return Result{}, false
	}
	sort.Slice(wells, func(i, j int) bool { return better(wells[i], wells[j]) })

	lo := [2]float64{b.RMin, b.EpsMin}
	hi := [2]float64{b.RMax, b.EpsMax}
	f := func(x [2]float64) float64 { return obj(x[0], x[1]) }

	best := refined{value: math.Inf(1)}
	bestSet := false
	var iterations int
	for i := 0; i < min(o.starts, len(wells)); i++ {
		run := minimizeBox(f, [2]float64{wells[i].r, wells[i].eps}, lo, hi, o.maxIter, o.gradTol)
		iterations += run.iterations
		if !run.converged || !isFiniteVal(run.value) || !interior(run.x, lo, hi, o.boundaryTol) {
			continue
		}
		if !bestSet || better(
			candidate{r: run.x[0], eps: run.x[1], value: run.value},
			candidate{r: best.x[0], eps: best.x[1], value: best.value},
		) {
			best = run
			bestSet = true
		}
	}
	if !bestSet {
		return Result{}, false
	}

	return Result{
		R:          best.x[0],
		Eps:        best.x[1],
		Value:      best.value,
		Iterations: iterations,
		Converged:  true,
	}, true
}

// gridPoint places index i of n evenly in [lo, hi], endpoints included.
func gridPoint(lo, hi float64, i, n int) float64 {
	if i == n-1 {
		return hi
	}

	return lo + (hi-lo)*float64(i)/float64(n-1)
}

// interior reports whether x keeps the boundary margin on every edge.
func interior(x, lo, hi [2]float64, frac float64) bool {
	for i := 0; i < 2; i++ {
		margin := frac * (hi[i] - lo[i])
		if x[i]-lo[i] < margin || hi[i]-x[i] < margin {
			return false
		}
	}

	return true
}
