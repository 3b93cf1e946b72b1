package connection

import (
	"math"

	"github.com/katalvlaran/torsionwell/tensor"
)

// DefaultTol is the relative tolerance applied by the verification
// helpers in this module.
const DefaultTol = 1e-9

// identityMetricCompat names the metric-compatibility identity in
// InvariantError reports.
const identityMetricCompat = "connection metric compatibility"

// VerifyMetricCompatibility checks ω_{abc} + ω_{bac} = 0 for every
// component, against the relative tolerance tol·max(1, maxAbs(ω)).
// On failure it returns a *tensor.InvariantError naming the worst
// offending component; on success it returns nil.
func VerifyMetricCompatibility(conn tensor.Rank3, tol float64) error {
	limit := tensor.RelTol(tol, conn.MaxAbs())

	var (
		worst    float64
		worstIdx [4]int
	)
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for c := 0; c < tensor.Dim; c++ {
				residual := math.Abs(conn[a][b][c] + conn[b][a][c])
				if residual > worst {
					worst = residual
					worstIdx = [4]int{a, b, c, 0}
				}
			}
		}
	}
	if worst > limit {
		return &tensor.InvariantError{
			Identity:  identityMetricCompat,
			Component: worstIdx,
			Residual:  worst,
			Tol:       limit,
		}
	}

	return nil
}
