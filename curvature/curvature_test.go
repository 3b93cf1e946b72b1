package curvature_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/torsionwell/connection"
	"github.com/katalvlaran/torsionwell/curvature"
	"github.com/katalvlaran/torsionwell/geometry"
	"github.com/katalvlaran/torsionwell/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// torsionFreeRiemann is the shared fixture: LC curvature of one frame.
func torsionFreeRiemann(t *testing.T, fam geometry.Family, r, eps float64) tensor.Rank4 {
	t.Helper()
	fr, err := geometry.NewFrame(fam, r, eps, 1)
	require.NoError(t, err)

	return curvature.Riemann(connection.TorsionFree(fr.C), fr.C)
}

// torsionfulRiemann builds the curvature of the full connection ω = Γ + K.
func torsionfulRiemann(t *testing.T, fam geometry.Family, r, eps float64, an connection.Ansatz) (tensor.Rank4, tensor.Rank3) {
	t.Helper()
	fr, err := geometry.NewFrame(fam, r, eps, 1)
	require.NoError(t, err)

	tt, err := an.Tensor(fr.Scale)
	require.NoError(t, err)

	full := connection.Full(connection.TorsionFree(fr.C), connection.Contortion(tt))

	return curvature.Riemann(full, fr.C), tt
}

// TestRiemann_FlatVanishes: the abelian frame is exactly flat.
func TestRiemann_FlatVanishes(t *testing.T) {
	r := torsionFreeRiemann(t, geometry.Flat, 3, 0)
	assert.Equal(t, 0.0, r.MaxAbs())
}

// TestRiemann_RoundSphere pins the constant-curvature block of the
// unsquashed S³, R_{ijkl} = (4/r²)(δ_{ik}δ_{jl} − δ_{il}δ_{jk}).
func TestRiemann_RoundSphere(t *testing.T) {
	const scale = 2.0
	r := torsionFreeRiemann(t, geometry.Round, scale, 0)

	kappa := 4 / (scale * scale)
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for c := 0; c < tensor.Dim; c++ {
				for d := 0; d < tensor.Dim; d++ {
					want := 0.0
					if a < 3 && b < 3 && c < 3 && d < 3 {
						want = kappa * (del(a, c)*del(b, d) - del(a, d)*del(b, c))
					}
					assert.InDelta(t, want, r[a][b][c][d], 1e-12, "(%d,%d,%d,%d)", a, b, c, d)
				}
			}
		}
	}
	assert.InDelta(t, 24/(scale*scale), curvature.RicciScalar(r), 1e-12)
}

// TestRicciScalar_Nilpotent pins R = −λ²/2 for the Heisenberg frame.
func TestRicciScalar_Nilpotent(t *testing.T) {
	const (
		scale = 1.5
		eps   = 0.4
	)
	r := torsionFreeRiemann(t, geometry.Nilpotent, scale, eps)

	lambda := math.Pow(1+eps, -4.0/3.0) / scale
	assert.InDelta(t, -lambda*lambda/2, curvature.RicciScalar(r), 1e-12)
}

// TestRicciScalar_TorsionShift: switching on the mixed torsion shifts the
// scalar by −6η²/r² − (2/3)V² for every family, eps included.
func TestRicciScalar_TorsionShift(t *testing.T) {
	const (
		eta = -2.0
		vv  = 3.0
	)
	an := connection.Ansatz{Mode: connection.Mixed, Eta: eta, V: vv}

	families := []geometry.Family{geometry.Round, geometry.Flat, geometry.Nilpotent}
	for _, fam := range families {
		for _, eps := range []float64{-0.6, 0, 1.2} {
			for _, scale := range []float64{0.5, 2} {
				lc := torsionFreeRiemann(t, fam, scale, eps)
				ec, _ := torsionfulRiemann(t, fam, scale, eps, an)

				shift := -6*eta*eta/(scale*scale) - 2.0/3.0*vv*vv
				assert.InDelta(t, curvature.RicciScalar(lc)+shift, curvature.RicciScalar(ec),
					1e-9*max(1, lc.MaxAbs()), "family %v scale %v eps %v", fam, scale, eps)
			}
		}
	}
}

// TestVerifyAntisymmetry_HoldsForTorsionfulCurvature: both index pairs,
// every family and mode.
func TestVerifyAntisymmetry_HoldsForTorsionfulCurvature(t *testing.T) {
	modes := []connection.Mode{connection.Axial, connection.VectorTrace, connection.Mixed}
	families := []geometry.Family{geometry.Round, geometry.Flat, geometry.Nilpotent}
	for _, fam := range families {
		for _, mode := range modes {
			ec, _ := torsionfulRiemann(t, fam, 0.8, -0.4,
				connection.Ansatz{Mode: mode, Eta: 2.5, V: -1.5})
			assert.NoError(t, curvature.VerifyAntisymmetry(ec, curvature.DefaultTol),
				"family %v mode %v", fam, mode)
		}
	}
}

// TestVerifyPairExchange_TorsionFreeOnly: exchange symmetry holds for the
// LC curvature of every family.
func TestVerifyPairExchange_TorsionFreeOnly(t *testing.T) {
	families := []geometry.Family{geometry.Round, geometry.Flat, geometry.Nilpotent}
	for _, fam := range families {
		for _, eps := range []float64{-0.5, 0, 0.9} {
			lc := torsionFreeRiemann(t, fam, 1.1, eps)
			assert.NoError(t, curvature.VerifyPairExchange(lc, curvature.DefaultTol),
				"family %v eps %v", fam, eps)
		}
	}
}

// TestVerifyAntisymmetry_ReportsWitness: a seeded symmetric entry is
// caught with its component.
func TestVerifyAntisymmetry_ReportsWitness(t *testing.T) {
	var r tensor.Rank4
	r[0][1][2][3] = 1
	r[1][0][2][3] = 1 // violates (a,b) antisymmetry

	err := curvature.VerifyAntisymmetry(r, curvature.DefaultTol)
	require.Error(t, err)

	var inv *tensor.InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Contains(t, inv.Identity, "(a,b)")
	assert.InDelta(t, 2.0, inv.Residual, 1e-15)
}

// TestWeyl_VanishesOnConformallyFlat: the unsquashed S³×S¹ and the flat
// torus both have zero Weyl tensor.
func TestWeyl_VanishesOnConformallyFlat(t *testing.T) {
	round := curvature.Weyl(torsionFreeRiemann(t, geometry.Round, 1.3, 0))
	assert.InDelta(t, 0.0, round.MaxAbs(), 1e-10, "round sphere at eps = 0")

	flat := curvature.Weyl(torsionFreeRiemann(t, geometry.Flat, 2, 0))
	assert.Equal(t, 0.0, flat.MaxAbs(), "flat torus")
}

// TestWeyl_TracelessEverywhere: every contraction vanishes for squashed
// and nilpotent frames too.
func TestWeyl_TracelessEverywhere(t *testing.T) {
	families := []geometry.Family{geometry.Round, geometry.Flat, geometry.Nilpotent}
	for _, fam := range families {
		for _, eps := range []float64{-0.7, 0, 0.6, 2.5} {
			w := curvature.Weyl(torsionFreeRiemann(t, fam, 0.9, eps))
			assert.NoError(t, curvature.VerifyTraceless(w, curvature.DefaultTol),
				"family %v eps %v", fam, eps)
		}
	}
}

// TestWeylScalar_SquashActivates: C² is zero at eps = 0 and strictly
// positive once the round sphere is squashed.
func TestWeylScalar_SquashActivates(t *testing.T) {
	w0 := curvature.Weyl(torsionFreeRiemann(t, geometry.Round, 1, 0))
	assert.InDelta(t, 0.0, curvature.WeylScalar(w0), 1e-18)

	w := curvature.Weyl(torsionFreeRiemann(t, geometry.Round, 1, 0.5))
	assert.Greater(t, curvature.WeylScalar(w), 1e-6)
}

// TestNiehYan_ClosedForms: TT = −4ηV/r, Curvature = −2ηV/r and
// Full = −2ηV/r for the mixed ansatz, independent of family and eps.
func TestNiehYan_ClosedForms(t *testing.T) {
	const (
		eta   = -2.0
		vv    = 3.0
		scale = 1.25
	)
	an := connection.Ansatz{Mode: connection.Mixed, Eta: eta, V: vv}

	families := []geometry.Family{geometry.Round, geometry.Flat, geometry.Nilpotent}
	for _, fam := range families {
		for _, eps := range []float64{-0.5, 0, 1.1} {
			ec, tt := torsionfulRiemann(t, fam, scale, eps, an)

			assert.InDelta(t, -4*eta*vv/scale, curvature.NiehYanTT(tt), 1e-10,
				"family %v eps %v", fam, eps)
			assert.InDelta(t, -2*eta*vv/scale, curvature.NiehYanCurvature(ec), 1e-9,
				"family %v eps %v", fam, eps)

			full, err := curvature.NiehYan(curvature.Full, tt, ec)
			require.NoError(t, err)
			assert.InDelta(t, -2*eta*vv/scale, full, 1e-9, "family %v eps %v", fam, eps)
		}
	}

	_, err := curvature.NiehYan(curvature.Variant(7), tensor.Rank3{}, tensor.Rank4{})
	assert.ErrorIs(t, err, curvature.ErrUnknownVariant)
}

// TestNiehYan_SingleModeVanishes: each component alone has zero density.
func TestNiehYan_SingleModeVanishes(t *testing.T) {
	axial, err := connection.Ansatz{Mode: connection.Axial, Eta: 3}.Tensor(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, curvature.NiehYanTT(axial), 1e-14)

	vect, err := connection.Ansatz{Mode: connection.VectorTrace, V: 5}.Tensor(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, curvature.NiehYanTT(vect), 1e-14)
}

// TestDual_Involution: the star squares to the identity on the second
// pair of a curvature tensor.
func TestDual_Involution(t *testing.T) {
	ec, _ := torsionfulRiemann(t, geometry.Round, 1.4, 0.3,
		connection.Ansatz{Mode: connection.Mixed, Eta: 1, V: 2})

	back := curvature.Dual(curvature.Dual(ec))
	for a := 0; a < tensor.Dim; a++ {
		for b := 0; b < tensor.Dim; b++ {
			for c := 0; c < tensor.Dim; c++ {
				for d := 0; d < tensor.Dim; d++ {
					assert.InDelta(t, ec[a][b][c][d], back[a][b][c][d], 1e-10)
				}
			}
		}
	}
}

// TestPontryagin_VanishesEverywhere: the circle direction never enters a
// bracket, so ⟨R,⋆R⟩ = 0 for all families, modes and parameters.
func TestPontryagin_VanishesEverywhere(t *testing.T) {
	modes := []connection.Mode{connection.Axial, connection.VectorTrace, connection.Mixed}
	families := []geometry.Family{geometry.Round, geometry.Flat, geometry.Nilpotent}
	for _, fam := range families {
		for _, mode := range modes {
			for _, eps := range []float64{-0.8, 0, 1.6} {
				ec, _ := torsionfulRiemann(t, fam, 0.6, eps,
					connection.Ansatz{Mode: mode, Eta: -3, V: 4})
				assert.NoError(t, curvature.VerifyPontryaginZero(ec, curvature.DefaultTol),
					"family %v mode %v eps %v", fam, mode, eps)
			}
		}
	}
}

// TestDiagnostics_NormSplit: SD and ASD norms partition the energy and
// their difference is the Pontryagin product.
func TestDiagnostics_NormSplit(t *testing.T) {
	ec, _ := torsionfulRiemann(t, geometry.Nilpotent, 0.9, -0.3,
		connection.Ansatz{Mode: connection.Mixed, Eta: 2, V: -1})

	d := curvature.Diagnostics(ec)
	assert.InDelta(t, d.Energy, d.SDNorm+d.ASDNorm, 1e-9*max(1, d.Energy))
	assert.InDelta(t, d.Pontryagin, d.SDNorm-d.ASDNorm, 1e-9*max(1, d.Energy))
	assert.InDelta(t, 1.0, d.SDFraction+d.ASDFraction, 1e-12)
	assert.Equal(t, d.Energy, curvature.Energy(ec))
}

// TestDiagnostics_ZeroCurvature: fractions stay zero instead of NaN.
func TestDiagnostics_ZeroCurvature(t *testing.T) {
	d := curvature.Diagnostics(tensor.Rank4{})
	assert.Equal(t, 0.0, d.SDFraction)
	assert.Equal(t, 0.0, d.ASDFraction)
}

func del(i, j int) float64 {
	if i == j {
		return 1
	}

	return 0
}
