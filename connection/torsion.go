package connection

import (
	"fmt"
	"math"

	"github.com/katalvlaran/torsionwell/tensor"
)

// Ansatz is the two-parameter torsion family. Amplitudes that the Mode
// does not use are ignored (Axial ignores V, VectorTrace ignores Eta), so
// a sweep can vary both without constructing per-mode structs.
type Ansatz struct {
	// Mode selects the active irreducible components.
	Mode Mode `yaml:"mode"`

	// Eta is the axial amplitude η.
	Eta float64 `yaml:"eta"`

	// V is the trace-vector amplitude.
	V float64 `yaml:"v"`
}

// Tensor builds the torsion tensor T[a][b][c] = T^a_{bc} at frame scale r.
// The axial component carries the 1/r factor; the vector component is
// scale-free.
//
// Errors: ErrUnknownMode for an out-of-set mode, ErrScaleDomain when the
// axial component is active and r is not finite positive.
func (an Ansatz) Tensor(scale float64) (tensor.Rank3, error) {
	if !an.Mode.Valid() {
		return tensor.Rank3{}, fmt.Errorf("%w: %d", ErrUnknownMode, int(an.Mode))
	}

	var t tensor.Rank3
	if an.Mode == Axial || an.Mode == Mixed {
		if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
			return tensor.Rank3{}, fmt.Errorf("%w: got %v", ErrScaleDomain, scale)
		}
		amp := 2 * an.Eta / scale
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				for k := 0; k < 3; k++ {
					t[i][j][k] += amp * tensor.Eps3(i, j, k)
				}
			}
		}
	}
	if an.Mode == VectorTrace || an.Mode == Mixed {
		// v_b = V·δ_{b3}: six nonzero components of ±V/3.
		for a := 0; a < 3; a++ {
			t[a][3][a] += an.V / 3
			t[a][a][3] -= an.V / 3
		}
	}

	return t, nil
}

// Scalar returns the torsion scalar T_{abc}T^{abc}. With the identity
// frame metric this is the plain sum of squared components: 24η²/r² for
// the axial mode, (2/3)V² for the vector mode, and their sum for Mixed
// (the cross terms cancel).
func Scalar(t tensor.Rank3) float64 {
	var total float64
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for c := 0; c < tensor.Dim; c++ {
				total += t[a][b][c] * t[a][b][c]
			}
		}
	}

	return total
}

// TraceVector returns the torsion trace t_b = T^a_{ba}.
func TraceVector(t tensor.Rank3) [tensor.Dim]float64 {
	var v [tensor.Dim]float64
	for b := 0; b < tensor.Dim; b++ {
		for a := 0; a < tensor.Dim; a++ {
			v[b] += t[a][b][a]
		}
	}

	return v
}
