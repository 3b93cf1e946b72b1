package curvature

import (
	"math"

	"github.com/katalvlaran/torsionwell/tensor"
)

// Weyl returns the conformal (trace-free) part of a lowered curvature
// tensor with Riemann symmetries, by the fixed 4D formula
//
//	C_{abcd} = R_{abcd}
//	         − ½(δ_{ac}Ric_{bd} − δ_{ad}Ric_{bc} − δ_{bc}Ric_{ad} + δ_{bd}Ric_{ac})
//	         + (R/6)(δ_{ac}δ_{bd} − δ_{ad}δ_{bc})
//
// Intended for the torsion-free curvature, whose Ricci tensor is
// symmetric; the frame metric is the identity throughout.
func Weyl(r tensor.Rank4) tensor.Rank4 {
	ric := Ricci(r)
	scalar := RicciScalar(r)

	var w tensor.Rank4
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for c := 0; c < tensor.Dim; c++ {
				for d := 0; d < tensor.Dim; d++ {
					val := r[a][b][c][d]
					val -= 0.5 * (delta(a, c)*ric[b][d] - delta(a, d)*ric[b][c] -
						delta(b, c)*ric[a][d] + delta(b, d)*ric[a][c])
					val += scalar / 6 * (delta(a, c)*delta(b, d) - delta(a, d)*delta(b, c))
					w[a][b][c][d] = val
				}
			}
		}
	}

	return w
}

// WeylScalar is the conformal invariant C² = Σ C_{abcd}², the plain sum
// of squares under the identity frame metric.
func WeylScalar(w tensor.Rank4) float64 {
	return w.SumSquares()
}

// VerifyTraceless contracts the Weyl tensor over every index pair and
// checks each trace against tol·max(1, maxAbs(w)). The contractions over
// the antisymmetric pairs (a,b) and (c,d) vanish structurally; they are
// still scanned so a malformed input cannot slip through.
func VerifyTraceless(w tensor.Rank4, tol float64) error {
	limit := tensor.RelTol(tol, w.MaxAbs())

	var (
		worst    float64
		worstIdx [4]int
	)
	record := func(res float64, i, j int) {
		if res = math.Abs(res); res > worst {
			worst = res
			worstIdx = [4]int{i, j, 0, 0}
		}
	}

	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			var t12, t13, t14, t23, t24, t34 float64
			for e := 0; e < tensor.Dim; e++ {
				t12 += w[e][e][i][j]
				t13 += w[e][i][e][j]
				t14 += w[e][i][j][e]
				t23 += w[i][e][e][j]
				t24 += w[i][e][j][e]
				t34 += w[i][j][e][e]
			}
			record(t12, i, j)
			record(t13, i, j)
			record(t14, i, j)
			record(t23, i, j)
			record(t24, i, j)
			record(t34, i, j)
		}
	}
	if worst > limit {
		return &tensor.InvariantError{
			Identity:  identityTraceless,
			Component: worstIdx,
			Residual:  worst,
			Tol:       limit,
		}
	}

	return nil
}

// delta is the Kronecker symbol.
func delta(i, j int) float64 {
	if i == j {
		return 1
	}

	return 0
}
