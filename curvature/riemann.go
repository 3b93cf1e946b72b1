package curvature

import (
	"math"

	"github.com/katalvlaran/torsionwell/tensor"
)

// Riemann computes the curvature tensor of a constant frame connection
// conn over a frame with structure constants c:
//
//	R^a_{bcd} = Γ^a_{ec}Γ^e_{bd} − Γ^a_{ed}Γ^e_{bc} + Γ^a_{be}C^e_{cd}
//
// Left-invariant frames have constant connection coefficients, so no
// derivative terms appear. With the identity frame metric the result also
// serves as the fully lowered R_{abcd}.
//
// Complexity: O(Dim⁵) multiply-adds, Dim = 4.
func Riemann(conn, c tensor.Rank3) tensor.Rank4 {
	var r tensor.Rank4
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for cc := 0; cc < tensor.Dim; cc++ {
				for d := 0; d < tensor.Dim; d++ {
					var sum float64
					for e := 0; e < tensor.Dim; e++ {
						sum += conn[a][e][cc]*conn[e][b][d] -
							conn[a][e][d]*conn[e][b][cc] +
							conn[a][b][e]*c[e][cc][d]
					}
					r[a][b][cc][d] = sum
				}
			}
		}
	}

	return r
}

// Ricci contracts the first and third slots, Ric_{bd} = R^a_{bad}.
func Ricci(r tensor.Rank4) tensor.Rank2 {
	var ric tensor.Rank2
	for b := 0; b < tensor.Dim; b++ {
		for d := 0; d < tensor.Dim; d++ {
			for a := 0; a < tensor.Dim; a++ {
				ric[b][d] += r[a][b][a][d]
			}
		}
	}

	return ric
}

// RicciScalar is the full trace R = Ric^a_a.
func RicciScalar(r tensor.Rank4) float64 {
	ric := Ricci(r)

	var scalar float64
	for a := 0; a < tensor.Dim; a++ {
		scalar += ric[a][a]
	}

	return scalar
}

// VerifyAntisymmetry checks both antisymmetries of the lowered curvature,
// R_{abcd} = −R_{bacd} and R_{abcd} = −R_{abdc}, to the relative
// tolerance tol·max(1, maxAbs(r)). The first pair holds for any
// metric-compatible connection, torsionful or not.
func VerifyAntisymmetry(r tensor.Rank4, tol float64) error {
	limit := tensor.RelTol(tol, r.MaxAbs())

	if err := worstResidual(r, limit, identityAntisymFirst, func(a, b, c, d int) float64 {
		return r[a][b][c][d] + r[b][a][c][d]
	}); err != nil {
		return err
	}

	return worstResidual(r, limit, identityAntisymSecond, func(a, b, c, d int) float64 {
		return r[a][b][c][d] + r[a][b][d][c]
	})
}

// VerifyPairExchange checks R_{abcd} = R_{cdab}. This holds only for the
// torsion-free curvature; callers must not apply it to the torsionful one.
func VerifyPairExchange(r tensor.Rank4, tol float64) error {
	limit := tensor.RelTol(tol, r.MaxAbs())

	return worstResidual(r, limit, identityPairExchange, func(a, b, c, d int) float64 {
		return r[a][b][c][d] - r[c][d][a][b]
	})
}

// worstResidual scans all components, keeps the worst |residual|, and
// converts an over-tolerance peak into an InvariantError.
func worstResidual(r tensor.Rank4, limit float64, identity string, residual func(a, b, c, d int) float64) error {
	var (
		worst    float64
		worstIdx [4]int
	)
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for c := 0; c < tensor.Dim; c++ {
				for d := 0; d < tensor.Dim; d++ {
					if res := math.Abs(residual(a, b, c, d)); res > worst {
						worst = res
						worstIdx = [4]int{a, b, c, d}
					}
				}
			}
		}
	}
	if worst > limit {
		return &tensor.InvariantError{
			Identity:  identity,
			Component: worstIdx,
			Residual:  worst,
			Tol:       limit,
		}
	}

	return nil
}
