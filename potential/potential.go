package potential

import (
	"fmt"
	"math"

	"github.com/katalvlaran/torsionwell/connection"
	"github.com/katalvlaran/torsionwell/curvature"
	"github.com/katalvlaran/torsionwell/geometry"
	"github.com/katalvlaran/torsionwell/tensor"
)

// Potential is an immutable evaluator of V_eff for one configuration.
// Construct with New; the zero value is not usable.
type Potential struct {
	family  geometry.Family
	mode    connection.Mode
	variant curvature.Variant
	coup    Couplings
	tol     float64
	cache   *Cache
}

// Option adjusts evaluator policy at construction time.
type Option func(*Potential)

// WithTol overrides the relative tolerance of the inline self-checks.
// Panics on a non-positive tolerance (programmer error).
func WithTol(tol float64) Option {
	if !(tol > 0) {
		panic("potential: WithTol: tolerance must be > 0")
	}

	return func(p *Potential) { p.tol = tol }
}

// WithCache shares an existing Weyl-scalar cache instead of allocating a
// private one. Panics on nil.
func WithCache(c *Cache) Option {
	if c == nil {
		panic("potential: WithCache: nil cache")
	}

	return func(p *Potential) { p.cache = c }
}

// New validates the configuration and returns the evaluator.
//
// Errors: geometry.ErrUnknownFamily, connection.ErrUnknownMode,
// curvature.ErrUnknownVariant, ErrCouplingDomain.
func New(family geometry.Family, mode connection.Mode, variant curvature.Variant, coup Couplings, opts ...Option) (*Potential, error) {
	if !family.Valid() {
		return nil, fmt.Errorf("%w: %d", geometry.ErrUnknownFamily, int(family))
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %d", connection.ErrUnknownMode, int(mode))
	}
	if !variant.Valid() {
		return nil, fmt.Errorf("%w: %d", curvature.ErrUnknownVariant, int(variant))
	}
	if err := validateCouplings(coup); err != nil {
		return nil, err
	}

	p := &Potential{
		family:  family,
		mode:    mode,
		variant: variant,
		coup:    coup,
		tol:     DefaultTol,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cache == nil {
		p.cache = NewCache()
	}

	return p, nil
}

// validateCouplings rejects non-finite values everywhere and non-positive
// κ and L.
func validateCouplings(c Couplings) error {
	for name, v := range map[string]float64{
		"eta": c.Eta, "v": c.V, "theta_ny": c.ThetaNY,
		"kappa": c.Kappa, "circumference": c.Circumference, "alpha": c.Alpha,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrCouplingDomain, name, v)
		}
	}
	if c.Kappa <= 0 {
		return fmt.Errorf("%w: kappa = %v", ErrCouplingDomain, c.Kappa)
	}
	if c.Circumference <= 0 {
		return fmt.Errorf("%w: circumference = %v", ErrCouplingDomain, c.Circumference)
	}

	return nil
}

// Family returns the configured family tag.
func (p *Potential) Family() geometry.Family { return p.family }

// Mode returns the configured torsion mode.
func (p *Potential) Mode() connection.Mode { return p.mode }

// Variant returns the configured Nieh-Yan variant.
func (p *Potential) Variant() curvature.Variant { return p.variant }

// Couplings returns a copy of the configured couplings.
func (p *Potential) Couplings() Couplings { return p.coup }

// Alpha returns the Weyl-squared coupling.
func (p *Potential) Alpha() float64 { return p.coup.Alpha }

// Eval returns V_eff(r, eps) with all inline self-checks enabled.
// Domain errors from geometry propagate unchanged; a failed identity
// surfaces as a *tensor.InvariantError.
func (p *Potential) Eval(r, eps float64) (float64, error) {
	ec, err := p.ecPart(r, eps, true)
	if err != nil {
		return 0, err
	}

	c2vol, err := p.WeylBlock(r, eps)
	if err != nil {
		return 0, err
	}

	return ec - p.coup.Alpha*c2vol, nil
}

// ECPart returns the Einstein-Cartan block
// V_EC = −(R/(2κ²) + θ_NY·N)·Vol, the α-free half of the affine split.
func (p *Potential) ECPart(r, eps float64) (float64, error) {
	return p.ecPart(r, eps, true)
}

// WeylBlock returns C²·Vol at (r, eps), memoizing C² in the cache. The
// block is built from the torsion-free connection only, so it is the
// same for every torsion mode and coupling set of the family.
func (p *Potential) WeylBlock(r, eps float64) (float64, error) {
	fr, err := geometry.NewFrame(p.family, r, eps, p.coup.Circumference)
	if err != nil {
		return 0, err
	}

	key := cacheKey{family: p.family, scale: r, eps: fr.Anisotropy}
	if c2, ok := p.cache.lookup(key); ok {
		return c2 * fr.Volume, nil
	}

	lc := curvature.Riemann(connection.TorsionFree(fr.C), fr.C)
	c2 := curvature.WeylScalar(curvature.Weyl(lc))
	p.cache.store(key, c2)

	return c2 * fr.Volume, nil
}

// Func returns the bare objective for the optimizer. Out-of-domain
// points evaluate to +Inf; the self-checks are skipped on this path.
func (p *Potential) Func() func(r, eps float64) float64 {
	return func(r, eps float64) float64 {
		ec, err := p.ecPart(r, eps, false)
		if err != nil {
			return math.Inf(1)
		}
		c2vol, err := p.WeylBlock(r, eps)
		if err != nil {
			return math.Inf(1)
		}

		return ec - p.coup.Alpha*c2vol
	}
}

// Invariants evaluates the full scalar report at (r, eps), self-checks
// included.
func (p *Potential) Invariants(r, eps float64) (Report, error) {
	fr, torsion, ec, err := p.assemble(r, eps, true)
	if err != nil {
		return Report{}, err
	}

	var rep Report
	rep.RicciScalar = curvature.RicciScalar(ec)
	rep.TorsionScalar = connection.Scalar(torsion)
	rep.NiehYanTT = curvature.NiehYanTT(torsion)
	rep.NiehYanCurvature = curvature.NiehYanCurvature(ec)
	rep.NiehYanFull = rep.NiehYanTT - rep.NiehYanCurvature
	rep.SelfDuality = curvature.Diagnostics(ec)
	rep.Volume = fr.Volume

	rep.NiehYan, err = curvature.NiehYan(p.variant, torsion, ec)
	if err != nil {
		return Report{}, err
	}

	c2vol, err := p.WeylBlock(r, eps)
	if err != nil {
		return Report{}, err
	}
	rep.WeylScalar = c2vol / fr.Volume

	rep.Density = rep.RicciScalar/(2*p.coup.Kappa*p.coup.Kappa) +
		p.coup.ThetaNY*rep.NiehYan + p.coup.Alpha*rep.WeylScalar
	rep.Value = -rep.Density * fr.Volume

	return rep, nil
}

// RadialCoefficients extracts the exact cubic decomposition of V_EC in r
// at fixed eps. The density scales as r⁻², r⁻¹ and r⁰ against an r³
// volume, so three evaluations at r = 1, 2, 3 determine the polynomial
// exactly.
func (p *Potential) RadialCoefficients(eps float64) (Coefficients, error) {
	v1, err := p.ecPart(1, eps, false)
	if err != nil {
		return Coefficients{}, err
	}
	v2, err := p.ecPart(2, eps, false)
	if err != nil {
		return Coefficients{}, err
	}
	v3, err := p.ecPart(3, eps, false)
	if err != nil {
		return Coefficients{}, err
	}

	// inverse of the 3x3 Vandermonde at r = 1,2,3
	return Coefficients{
		Linear:    3*v1 - 1.5*v2 + v3/3,
		Quadratic: -2.5*v1 + 2*v2 - 0.5*v3,
		Cubic:     0.5*v1 - 0.5*v2 + v3/6,
	}, nil
}

// ecPart computes V_EC = −(R/(2κ²) + θ_NY·N)·Vol.
func (p *Potential) ecPart(r, eps float64, checks bool) (float64, error) {
	fr, torsion, ec, err := p.assemble(r, eps, checks)
	if err != nil {
		return 0, err
	}

	n, err := curvature.NiehYan(p.variant, torsion, ec)
	if err != nil {
		return 0, err
	}

	density := curvature.RicciScalar(ec)/(2*p.coup.Kappa*p.coup.Kappa) + p.coup.ThetaNY*n

	return -density * fr.Volume, nil
}

// assemble builds the frame, torsion tensor and torsionful curvature at
// one point, optionally running the self-checks.
func (p *Potential) assemble(r, eps float64, checks bool) (geometry.Frame, tensor.Rank3, tensor.Rank4, error) {
	fr, err := geometry.NewFrame(p.family, r, eps, p.coup.Circumference)
	if err != nil {
		return geometry.Frame{}, tensor.Rank3{}, tensor.Rank4{}, err
	}

	an := connection.Ansatz{Mode: p.mode, Eta: p.coup.Eta, V: p.coup.V}
	torsion, err := an.Tensor(fr.Scale)
	if err != nil {
		return geometry.Frame{}, tensor.Rank3{}, tensor.Rank4{}, err
	}

	full := connection.Full(connection.TorsionFree(fr.C), connection.Contortion(torsion))
	if checks {
		if err = connection.VerifyMetricCompatibility(full, p.tol); err != nil {
			return geometry.Frame{}, tensor.Rank3{}, tensor.Rank4{}, err
		}
	}

	ec := curvature.Riemann(full, fr.C)
	if checks {
		if err = curvature.VerifyAntisymmetry(ec, p.tol); err != nil {
			return geometry.Frame{}, tensor.Rank3{}, tensor.Rank4{}, err
		}
		if err = curvature.VerifyPontryaginZero(ec, p.tol); err != nil {
			return geometry.Frame{}, tensor.Rank3{}, tensor.Rank4{}, err
		}
	}

	return fr, torsion, ec, nil
}
