package stability

import "math"

// Classify labels a search outcome.
//
// The coupling-free taxonomy reads the converged flag and the radial
// section through the minimizer: an interior local maximum between the
// lower radius bound and the minimizer is the collapse barrier.
//
// An active Weyl coupling refines the labels on families whose Weyl
// block can diverge (divergent=true):
//   - alpha > 0 (ghost regime): the objective is unbounded below toward
//     the anisotropy boundary no matter where the box minimum landed, so
//     the label reports whether a local well survives on the unsquashed
//     slice: Metastable if yes, NoWellDivergent if not.
//   - alpha < 0 with the repulsive wall engaged at the minimizer
//     (wallActive=true): the radial section is re-read for one or two
//     separated wells, giving SingleWell or DoubleWell.
//
// A negative coupling whose wall is inert at the minimizer (the Weyl
// block vanishes there) falls through to the coupling-free taxonomy:
// the minimum's local structure is then exactly the alpha = 0 one.
func Classify(obj func(r, eps float64) float64, b Bounds, res Result, alpha float64, divergent, wallActive bool, o Options) Class {
	if alpha > o.alphaTol && divergent {
		epsRef := min(max(0, b.EpsMin), b.EpsMax)
		if countLocalMinima(radialSection(obj, epsRef), b.RMin, b.RMax, o.sectionSamples) >= 1 {
			return Metastable
		}

		return NoWellDivergent
	}

	if alpha < -o.alphaTol && divergent && wallActive {
		switch n := countLocalMinima(radialSection(obj, res.Eps), b.RMin, b.RMax, o.sectionSamples); {
		case n >= 2:
			return DoubleWell
		case n == 1:
			return SingleWell
		default:
			return NoWell
		}
	}

	if !res.Converged {
		return NoWell
	}
	if hasBarrier(radialSection(obj, res.Eps), b.RMin, res.R, o.sectionSamples) {
		return StableWell
	}

	return StableWellNoBarrier
}

// radialSection freezes the anisotropy coordinate.
func radialSection(obj func(r, eps float64) float64, eps float64) func(float64) float64 {
	return func(r float64) float64 { return obj(r, eps) }
}

// countLocalMinima samples sec log-spaced on [lo, hi] and counts strict
// interior minima. Non-finite samples never count and never neighbor a
// counted minimum.
func countLocalMinima(sec func(float64) float64, lo, hi float64, n int) int {
	vals := sampleLog(sec, lo, hi, n)

	count := 0
	for i := 1; i < len(vals)-1; i++ {
		if isFiniteVal(vals[i-1]) && isFiniteVal(vals[i]) && isFiniteVal(vals[i+1]) &&
			vals[i] < vals[i-1] && vals[i] < vals[i+1] {
			count++
		}
	}

	return count
}

// hasBarrier reports a strict interior local maximum of sec between lo
// and the minimizer rMin: the hump the well is protected by against
// collapse toward small radii.
func hasBarrier(sec func(float64) float64, lo, rMin float64, n int) bool {
	if rMin <= lo*(1+1e-9) {
		return false
	}
	vals := sampleLog(sec, lo, rMin, n)
	for i := 1; i < len(vals)-1; i++ {
		if isFiniteVal(vals[i-1]) && isFiniteVal(vals[i]) && isFiniteVal(vals[i+1]) &&
			vals[i] > vals[i-1] && vals[i] > vals[i+1] {
			return true
		}
	}

	return false
}

// sampleLog evaluates sec on n log-spaced points of [lo, hi]; radial
// ranges span decades, so log spacing resolves the small-r side.
func sampleLog(sec func(float64) float64, lo, hi float64, n int) []float64 {
	vals := make([]float64, n)
	ratio := hi / lo
	for i := 0; i < n; i++ {
		r := lo * math.Pow(ratio, float64(i)/float64(n-1))
		vals[i] = sec(r)
	}

	return vals
}
