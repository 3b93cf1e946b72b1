package geometry

import (
	"fmt"
	"math"

	"github.com/katalvlaran/torsionwell/tensor"
)

// Frame is the immutable output of the structure-constant provider: the
// left-invariant orthonormal frame of one family at one point of the
// (scale, anisotropy) parameter plane.
type Frame struct {
	// Family tags the spatial topology the frame was built for.
	Family Family `yaml:"family"`

	// C holds the structure constants, C[a][b][c] = C^a_{bc},
	// antisymmetric in the lower pair (b,c) by construction.
	C tensor.Rank3 `yaml:"c"`

	// Metric is the frame metric, always the identity δ_{ab}.
	Metric tensor.Rank2 `yaml:"metric"`

	// Volume is the closed-form volume of the compact 4-manifold:
	// 2π²·L·r³ for Round, (2π)⁴·L·r³ for Flat and Nilpotent. It never
	// depends on the anisotropy (volume-preserving squashing).
	Volume float64 `yaml:"volume"`

	// Scale is the validated scale parameter r.
	Scale float64 `yaml:"scale"`

	// Anisotropy is the validated squashing parameter eps
	// (normalized to 0 for Flat, which ignores it).
	Anisotropy float64 `yaml:"anisotropy"`

	// Circumference is the circle length L.
	Circumference float64 `yaml:"circumference"`
}

// NewFrame validates (scale, eps, circumference) for the given family and
// builds its frame.
//
// Stage 1: domain validation. Scale and circumference must be finite and
// positive for every family; eps must be finite and > -1 for Round and
// Nilpotent, and is ignored for Flat.
// Stage 2: structure constants.
//   - Round: C^i_{jk} = (4/r)·ε_{ijk} with the volume-preserving squash
//     s_0 = s_1 = (1+eps)^{2/3}, s_2 = (1+eps)^{-4/3} applied per upper
//     index.
//   - Flat: C ≡ 0.
//   - Nilpotent: the single Heisenberg bracket C^2_{01} = -λ,
//     C^2_{10} = +λ with λ = (1+eps)^{-4/3}/r.
//
// Stage 3: volume factor and frame metric.
//
// Errors: ErrUnknownFamily, ErrScaleDomain, ErrAnisotropyDomain,
// ErrCircumferenceDomain, each wrapped with the offending value.
func NewFrame(family Family, scale, eps, circumference float64) (Frame, error) {
	if !family.Valid() {
		return Frame{}, fmt.Errorf("%w: %d", ErrUnknownFamily, int(family))
	}
	if !isFinite(scale) || scale <= 0 {
		return Frame{}, fmt.Errorf("%w: got %v", ErrScaleDomain, scale)
	}
	if !isFinite(circumference) || circumference <= 0 {
		return Frame{}, fmt.Errorf("%w: got %v", ErrCircumferenceDomain, circumference)
	}
	if family == Flat {
		// Flat ignores anisotropy entirely.
		eps = 0
	} else if !isFinite(eps) || eps <= -1 {
		return Frame{}, fmt.Errorf("%w: got %v", ErrAnisotropyDomain, eps)
	}

	fr := Frame{
		Family:        family,
		Metric:        tensor.Identity(),
		Scale:         scale,
		Anisotropy:    eps,
		Circumference: circumference,
	}

	switch family {
	case Round:
		fr.C = roundConstants(scale, eps)
		fr.Volume = 2 * math.Pi * math.Pi * circumference * scale * scale * scale
	case Flat:
		// abelian frame, C stays zero
		fr.Volume = flatVolume(circumference, scale)
	case Nilpotent:
		lambda := math.Pow(1+eps, -4.0/3.0) / scale
		fr.C[2][0][1] = -lambda
		fr.C[2][1][0] = lambda
		fr.Volume = flatVolume(circumference, scale)
	}

	return fr, nil
}

// roundConstants builds the squashed SU(2) structure constants. The squash
// factors multiply to one, keeping the volume eps-free.
func roundConstants(scale, eps float64) tensor.Rank3 {
	squash := [3]float64{
		math.Pow(1+eps, 2.0/3.0),
		math.Pow(1+eps, 2.0/3.0),
		math.Pow(1+eps, -4.0/3.0),
	}

	var c tensor.Rank3
	base := 4.0 / scale
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				c[i][j][k] = base * squash[i] * tensor.Eps3(i, j, k)
			}
		}
	}

	return c
}

// flatVolume is the torus-type volume factor (2π)⁴·L·r³, shared by the
// Flat and Nilpotent families.
func flatVolume(circumference, scale float64) float64 {
	const twoPiFourth = 16 * math.Pi * math.Pi * math.Pi * math.Pi

	return twoPiFourth * circumference * scale * scale * scale
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
