package potential

import (
	"errors"

	"github.com/katalvlaran/torsionwell/curvature"
)

// Couplings collects every scalar parameter of the effective action.
type Couplings struct {
	// Eta is the axial torsion amplitude η.
	Eta float64 `yaml:"eta"`

	// V is the trace-vector torsion amplitude.
	V float64 `yaml:"v"`

	// ThetaNY is the Nieh-Yan coupling θ_NY.
	ThetaNY float64 `yaml:"theta_ny"`

	// Kappa is the gravitational coupling κ; must be finite positive.
	Kappa float64 `yaml:"kappa"`

	// Circumference is the circle length L; must be finite positive.
	Circumference float64 `yaml:"circumference"`

	// Alpha is the Weyl-squared coupling α.
	Alpha float64 `yaml:"alpha"`
}

// ErrCouplingDomain is returned by New when a coupling lies outside its
// domain (κ ≤ 0, L ≤ 0, or any non-finite value).
var ErrCouplingDomain = errors.New("potential: coupling outside its domain")

// DefaultTol is the relative tolerance handed to the inline self-checks.
const DefaultTol = 1e-9

// Report is the full scalar record of one evaluation point.
type Report struct {
	// RicciScalar is the scalar of the torsionful curvature.
	RicciScalar float64 `yaml:"ricci_scalar"`

	// TorsionScalar is T_{abc}T^{abc}.
	TorsionScalar float64 `yaml:"torsion_scalar"`

	// NiehYanTT, NiehYanCurvature and NiehYanFull report all three
	// variants; NiehYan is the one selected by the configuration.
	NiehYanTT        float64 `yaml:"nieh_yan_tt"`
	NiehYanCurvature float64 `yaml:"nieh_yan_curvature"`
	NiehYanFull      float64 `yaml:"nieh_yan_full"`
	NiehYan          float64 `yaml:"nieh_yan"`

	// WeylScalar is C² of the torsion-free curvature.
	WeylScalar float64 `yaml:"weyl_scalar"`

	// SelfDuality carries the duality diagnostics of the torsionful
	// curvature.
	SelfDuality curvature.SelfDuality `yaml:"self_duality"`

	// Volume is the closed-form volume factor at this point.
	Volume float64 `yaml:"volume"`

	// Density is the Lagrangian density L = R/(2κ²) + θ_NY·N + α·C².
	Density float64 `yaml:"density"`

	// Value is V_eff = −Density·Volume.
	Value float64 `yaml:"value"`
}

// Coefficients is the exact radial decomposition of the Einstein-Cartan
// block at fixed eps: V_EC(r) = Linear·r + Quadratic·r² + Cubic·r³.
type Coefficients struct {
	Linear    float64 `yaml:"linear"`
	Quadratic float64 `yaml:"quadratic"`
	Cubic     float64 `yaml:"cubic"`
}

// At evaluates the reconstructed cubic at radius r.
func (c Coefficients) At(r float64) float64 {
	return r * (c.Linear + r*(c.Quadratic+r*c.Cubic))
}
