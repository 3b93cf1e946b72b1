package curvature

import (
	"errors"
	"fmt"
)

// Variant selects which Nieh-Yan density a run reports. The set is closed.
type Variant int

const (
	// TT is the torsion-torsion term ¼·ε_{abcd}·T_{eab}·T_{ecd}.
	TT Variant = iota

	// Curvature is the curvature term ¼·ε_{abcd}·R_{abcd}.
	Curvature

	// Full is the topological combination TT − Curvature.
	Full
)

var variantNames = map[Variant]string{
	TT:        "tt",
	Curvature: "curvature",
	Full:      "full",
}

// String returns the lowercase variant name used in configs and CSV output.
func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}

	return fmt.Sprintf("variant(%d)", int(v))
}

// Valid reports whether v is one of the three known variants.
func (v Variant) Valid() bool {
	_, ok := variantNames[v]

	return ok
}

// ParseVariant maps a lowercase variant name back to its tag.
func ParseVariant(name string) (Variant, error) {
	for v, n := range variantNames {
		if n == name {
			return v, nil
		}
	}

	return 0, fmt.Errorf("curvature: %w: %q", ErrUnknownVariant, name)
}

// ErrUnknownVariant is returned when a Variant tag or name is outside the
// closed three-member set.
var ErrUnknownVariant = errors.New("curvature: unknown nieh-yan variant")

// DefaultTol is the relative tolerance applied by the verification
// helpers in this module.
const DefaultTol = 1e-9

// Identity names carried by InvariantError reports.
const (
	identityAntisymFirst  = "riemann antisymmetry (a,b)"
	identityAntisymSecond = "riemann antisymmetry (c,d)"
	identityPairExchange  = "riemann pair exchange"
	identityTraceless     = "weyl tracelessness"
	identityPontryagin    = "pontryagin orthogonality"
)
