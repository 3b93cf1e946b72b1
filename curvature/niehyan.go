package curvature

import (
	"fmt"

	"github.com/katalvlaran/torsionwell/tensor"
)

// NiehYanTT computes the torsion-torsion term
// ¼·Σ ε_{abcd}·T_{eab}·T_{ecd}.
func NiehYanTT(t tensor.Rank3) float64 {
	var total float64
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for c := 0; c < tensor.Dim; c++ {
				for d := 0; d < tensor.Dim; d++ {
					eps := tensor.Eps4(a, b, c, d)
					if eps == 0 {
						continue
					}
					for e := 0; e < tensor.Dim; e++ {
						total += eps * t[e][a][b] * t[e][c][d]
					}
				}
			}
		}
	}

	return total / 4
}

// NiehYanCurvature computes the curvature term ¼·Σ ε_{abcd}·R_{abcd}
// from the lowered torsionful curvature.
func NiehYanCurvature(r tensor.Rank4) float64 {
	var total float64
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for c := 0; c < tensor.Dim; c++ {
				for d := 0; d < tensor.Dim; d++ {
					if eps := tensor.Eps4(a, b, c, d); eps != 0 {
						total += eps * r[a][b][c][d]
					}
				}
			}
		}
	}

	return total / 4
}

// NiehYan dispatches on the variant: TT, Curvature, or the topological
// combination Full = TT − Curvature.
func NiehYan(v Variant, t tensor.Rank3, r tensor.Rank4) (float64, error) {
	switch v {
	case TT:
		return NiehYanTT(t), nil
	case Curvature:
		return NiehYanCurvature(r), nil
	case Full:
		return NiehYanTT(t) - NiehYanCurvature(r), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}
}
