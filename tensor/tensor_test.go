package tensor_test

import (
	"testing"

	"github.com/katalvlaran/torsionwell/tensor"
	"github.com/stretchr/testify/assert"
)

// TestEps3_Orientation verifies ε_{012} = +1 and the full antisymmetry of
// the spatial symbol.
func TestEps3_Orientation(t *testing.T) {
	assert.Equal(t, 1.0, tensor.Eps3(0, 1, 2), "base orientation")
	assert.Equal(t, -1.0, tensor.Eps3(1, 0, 2), "one transposition flips sign")
	assert.Equal(t, 1.0, tensor.Eps3(2, 0, 1), "cyclic permutation preserves sign")
	assert.Equal(t, -1.0, tensor.Eps3(0, 2, 1), "swap of last pair flips sign")
	assert.Equal(t, 0.0, tensor.Eps3(0, 0, 1), "repeated index vanishes")
	assert.Equal(t, 0.0, tensor.Eps3(0, 1, 3), "circle index vanishes")
}

// TestEps4_Orientation verifies ε_{0123} = +1 and representative signs.
func TestEps4_Orientation(t *testing.T) {
	assert.Equal(t, 1.0, tensor.Eps4(0, 1, 2, 3))
	assert.Equal(t, -1.0, tensor.Eps4(1, 0, 2, 3))
	assert.Equal(t, 1.0, tensor.Eps4(1, 0, 3, 2), "two transpositions restore sign")
	assert.Equal(t, -1.0, tensor.Eps4(3, 0, 1, 2), "3-cycle into front is odd")
	assert.Equal(t, 0.0, tensor.Eps4(0, 1, 1, 3), "repeated index vanishes")
}

// TestEps4_SumOfSquares checks the normalization: 4! nonzero components,
// each ±1.
func TestEps4_SumOfSquares(t *testing.T) {
	var total float64
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for c := 0; c < tensor.Dim; c++ {
				for d := 0; d < tensor.Dim; d++ {
					e := tensor.Eps4(a, b, c, d)
					total += e * e
				}
			}
		}
	}
	assert.Equal(t, 24.0, total, "exactly 4! unit components")
}

// TestIdentity_Metric confirms the frame metric is δ_{ab}.
func TestIdentity_Metric(t *testing.T) {
	m := tensor.Identity()
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			want := 0.0
			if a == b {
				want = 1.0
			}
			assert.Equal(t, want, m[a][b])
		}
	}
	assert.Equal(t, 1.0, m.MaxAbs())
}

// TestMaxAbs_PicksPeak verifies the norm finds a buried peak entry.
func TestMaxAbs_PicksPeak(t *testing.T) {
	var r3 tensor.Rank3
	r3[1][2][3] = -7.5
	r3[0][0][0] = 2
	assert.Equal(t, 7.5, r3.MaxAbs())

	var r4 tensor.Rank4
	r4[3][2][1][0] = 11
	assert.Equal(t, 11.0, r4.MaxAbs())
}

// TestRank3_AddScale checks the entrywise helpers compose as expected.
func TestRank3_AddScale(t *testing.T) {
	var a, b tensor.Rank3
	a[0][1][2] = 3
	b[0][1][2] = -1
	b[3][3][3] = 4

	sum := a.Add(b.Scale(2))
	assert.Equal(t, 1.0, sum[0][1][2])
	assert.Equal(t, 8.0, sum[3][3][3])
	// operands untouched (value semantics)
	assert.Equal(t, 3.0, a[0][1][2])
	assert.Equal(t, -1.0, b[0][1][2])
}

// TestRelTol_ScalesWithPeak verifies the relative tolerance floor at 1.
func TestRelTol_ScalesWithPeak(t *testing.T) {
	assert.Equal(t, 1e-9, tensor.RelTol(1e-9, 0.5), "small tensors use the absolute floor")
	assert.Equal(t, 1e-4, tensor.RelTol(1e-9, 1e5), "large tensors scale the tolerance")
}

// TestInvariantError_Message spot-checks the formatted report.
func TestInvariantError_Message(t *testing.T) {
	err := &tensor.InvariantError{
		Identity:  "riemann antisymmetry (a,b)",
		Component: [4]int{0, 1, 2, 3},
		Residual:  2e-3,
		Tol:       1e-9,
	}
	assert.Contains(t, err.Error(), "riemann antisymmetry (a,b)")
	assert.Contains(t, err.Error(), "[0 1 2 3]")
}
