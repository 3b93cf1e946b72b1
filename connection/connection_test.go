package connection_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/torsionwell/connection"
	"github.com/katalvlaran/torsionwell/geometry"
	"github.com/katalvlaran/torsionwell/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTorsionFree_AbelianFrame: a vanishing bracket yields a vanishing
// Koszul connection.
func TestTorsionFree_AbelianFrame(t *testing.T) {
	fr, err := geometry.NewFrame(geometry.Flat, 1, 0, 1)
	require.NoError(t, err)

	gamma := connection.TorsionFree(fr.C)
	assert.Equal(t, 0.0, gamma.MaxAbs())
}

// TestTorsionFree_RoundFrame pins the unsquashed S³ connection:
// Γ^i_{jk} = (2/r)·ε_{ijk}.
func TestTorsionFree_RoundFrame(t *testing.T) {
	const r = 2.0
	fr, err := geometry.NewFrame(geometry.Round, r, 0, 1)
	require.NoError(t, err)

	gamma := connection.TorsionFree(fr.C)
	assert.InDelta(t, 2/r, gamma[0][1][2], 1e-14)
	assert.InDelta(t, -2/r, gamma[1][0][2], 1e-14)
	assert.InDelta(t, 2/r, gamma[2][0][1], 1e-14)
	assert.InDelta(t, 2/r, gamma[1][2][0], 1e-14)
}

// TestTorsionFree_MetricCompatibility holds across all families and
// anisotropies.
func TestTorsionFree_MetricCompatibility(t *testing.T) {
	families := []geometry.Family{geometry.Round, geometry.Flat, geometry.Nilpotent}
	for _, fam := range families {
		for _, eps := range []float64{-0.9, -0.3, 0, 1.7} {
			for _, r := range []float64{0.05, 1, 30} {
				fr, err := geometry.NewFrame(fam, r, eps, 1)
				require.NoError(t, err)
				gamma := connection.TorsionFree(fr.C)
				assert.NoError(t, connection.VerifyMetricCompatibility(gamma, connection.DefaultTol),
					"family %v r %v eps %v", fam, r, eps)
			}
		}
	}
}

// TestAnsatz_ModeSelection checks which amplitudes each mode reads.
func TestAnsatz_ModeSelection(t *testing.T) {
	axial, err := connection.Ansatz{Mode: connection.Axial, Eta: 1, V: 99}.Tensor(1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, axial[0][3][0], "Axial ignores the vector amplitude")
	assert.InDelta(t, 2.0, axial[0][1][2], 1e-15)

	vect, err := connection.Ansatz{Mode: connection.VectorTrace, Eta: 99, V: 3}.Tensor(1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, vect[0][1][2], "VectorTrace ignores the axial amplitude")
	assert.InDelta(t, 1.0, vect[0][3][0], 1e-15)
	assert.InDelta(t, -1.0, vect[0][0][3], 1e-15)

	_, err = connection.Ansatz{Mode: connection.Mode(9)}.Tensor(1)
	assert.ErrorIs(t, err, connection.ErrUnknownMode)

	_, err = connection.Ansatz{Mode: connection.Axial, Eta: 1}.Tensor(0)
	assert.ErrorIs(t, err, connection.ErrScaleDomain)
}

// TestAnsatz_LastPairAntisymmetry: T^a_{bc} = -T^a_{cb} exactly.
func TestAnsatz_LastPairAntisymmetry(t *testing.T) {
	an := connection.Ansatz{Mode: connection.Mixed, Eta: -2, V: 4}
	tt, err := an.Tensor(1.5)
	require.NoError(t, err)

	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for c := 0; c < tensor.Dim; c++ {
				assert.Equal(t, tt[a][b][c], -tt[a][c][b], "(%d,%d,%d)", a, b, c)
			}
		}
	}
}

// TestScalar_ClosedForms checks T² = 24η²/r² + (2/3)V² and the vanishing
// cross term.
func TestScalar_ClosedForms(t *testing.T) {
	const (
		r   = 2.0
		eta = -3.0
		vv  = 4.0
	)

	axial, err := connection.Ansatz{Mode: connection.Axial, Eta: eta}.Tensor(r)
	require.NoError(t, err)
	assert.InDelta(t, 24*eta*eta/(r*r), connection.Scalar(axial), 1e-12)

	vect, err := connection.Ansatz{Mode: connection.VectorTrace, V: vv}.Tensor(r)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0*vv*vv, connection.Scalar(vect), 1e-12)

	mixed, err := connection.Ansatz{Mode: connection.Mixed, Eta: eta, V: vv}.Tensor(r)
	require.NoError(t, err)
	assert.InDelta(t, 24*eta*eta/(r*r)+2.0/3.0*vv*vv, connection.Scalar(mixed), 1e-12,
		"axial and vector components are orthogonal")
}

// TestTraceVector_Normalization: t_b = T^a_{ba} recovers v_b = V·δ_{b3}.
func TestTraceVector_Normalization(t *testing.T) {
	tt, err := connection.Ansatz{Mode: connection.Mixed, Eta: 5, V: 7}.Tensor(1)
	require.NoError(t, err)

	trace := connection.TraceVector(tt)
	assert.InDelta(t, 0.0, trace[0], 1e-15, "axial part is traceless")
	assert.InDelta(t, 0.0, trace[1], 1e-15)
	assert.InDelta(t, 0.0, trace[2], 1e-15)
	assert.InDelta(t, 7.0, trace[3], 1e-13)
}

// TestContortion_PreservesMetricCompatibility: the full connection ω=Γ+K
// stays metric compatible for every family and mode.
func TestContortion_PreservesMetricCompatibility(t *testing.T) {
	families := []geometry.Family{geometry.Round, geometry.Flat, geometry.Nilpotent}
	modes := []connection.Mode{connection.Axial, connection.VectorTrace, connection.Mixed}
	for _, fam := range families {
		for _, mode := range modes {
			fr, err := geometry.NewFrame(fam, 1.7, 0.4, 1)
			require.NoError(t, err)

			tt, err := connection.Ansatz{Mode: mode, Eta: -2, V: 3}.Tensor(fr.Scale)
			require.NoError(t, err)

			full := connection.Full(connection.TorsionFree(fr.C), connection.Contortion(tt))
			assert.NoError(t, connection.VerifyMetricCompatibility(full, connection.DefaultTol),
				"family %v mode %v", fam, mode)
		}
	}
}

// TestContortion_RecoversTorsion: the antisymmetric part of the full
// connection minus the bracket reproduces T^a_{bc},
// T^a_{bc} = ω^a_{bc} − ω^a_{cb} − C^a_{bc}.
func TestContortion_RecoversTorsion(t *testing.T) {
	fr, err := geometry.NewFrame(geometry.Round, 1.2, 0.3, 1)
	require.NoError(t, err)

	tt, err := connection.Ansatz{Mode: connection.Mixed, Eta: 1.5, V: -2}.Tensor(fr.Scale)
	require.NoError(t, err)

	full := connection.Full(connection.TorsionFree(fr.C), connection.Contortion(tt))
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for c := 0; c < tensor.Dim; c++ {
				got := full[a][b][c] - full[a][c][b] - fr.C[a][b][c]
				assert.InDelta(t, tt[a][b][c], got, 1e-12, "(%d,%d,%d)", a, b, c)
			}
		}
	}
}

// TestVerifyMetricCompatibility_ReportsWorstComponent: a seeded violation
// is reported with its index and residual.
func TestVerifyMetricCompatibility_ReportsWorstComponent(t *testing.T) {
	var conn tensor.Rank3
	conn[1][2][3] = 0.5
	conn[2][1][3] = 0.5 // symmetric part violates compatibility

	err := connection.VerifyMetricCompatibility(conn, connection.DefaultTol)
	require.Error(t, err)

	var inv *tensor.InvariantError
	require.ErrorAs(t, err, &inv)
	assert.InDelta(t, 1.0, inv.Residual, 1e-15)
	assert.Equal(t, [4]int{1, 2, 3, 0}, inv.Component)
	assert.False(t, math.IsNaN(inv.Tol))
}
