package pipeline

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/torsionwell/connection"
	"github.com/katalvlaran/torsionwell/curvature"
	"github.com/katalvlaran/torsionwell/geometry"
	"github.com/katalvlaran/torsionwell/potential"
	"github.com/katalvlaran/torsionwell/stability"
)

// Pipeline executes the stage machine for one configuration.
// Construct with New; the zero value is not usable.
type Pipeline struct {
	cfg        Config
	log        *slog.Logger
	ckpt       *CheckpointManager
	ckptDir    string
	pot        *potential.Potential
	searchOpts []stability.Option
}

// Option adjusts run policy at construction time.
type Option func(*Pipeline)

// WithLogger routes progress logging through the given logger. Panics on
// nil (programmer error).
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("pipeline: WithLogger: nil logger")
	}

	return func(p *Pipeline) { p.log = l }
}

// WithCheckpoints enables per-stage YAML persistence under dir. Panics
// on an empty path (programmer error); directory creation errors surface
// from New.
func WithCheckpoints(dir string) Option {
	if dir == "" {
		panic("pipeline: WithCheckpoints: empty directory")
	}

	return func(p *Pipeline) { p.ckptDir = dir }
}

// WithSearchOptions forwards options to the stability stage.
func WithSearchOptions(opts ...stability.Option) Option {
	return func(p *Pipeline) { p.searchOpts = append(p.searchOpts, opts...) }
}

// New validates the configuration and returns a ready pipeline. The
// embedded potential constructor performs the full domain validation, so
// an invalid family, mode, variant or coupling set fails here rather than
// mid-run.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	pot, err := potential.New(cfg.Family, cfg.Mode, cfg.Variant, cfg.Couplings)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg: cfg,
		log: slog.Default(),
		pot: pot,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.ckptDir != "" {
		if p.ckpt, err = NewCheckpointManager(p.ckptDir); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Checkpoints returns the manager, or nil when persistence is disabled.
func (p *Pipeline) Checkpoints() *CheckpointManager { return p.ckpt }

// stageFunc consumes the predecessor record by value and returns the
// extended copy.
type stageFunc func(Record) (Record, error)

// table returns the stage functions in execution order, parallel to
// Stages.
func (p *Pipeline) table() []stageFunc {
	return []stageFunc{
		p.runSetup,
		p.runFrame,
		p.runTorsionFree,
		p.runWeyl,
		p.runTorsion,
		p.runContortion,
		p.runFullConnection,
		p.runCurvature,
		p.runInvariants,
		p.runLagrangian,
		p.runPotential,
		p.runStability,
		p.runSummary,
	}
}

// Run executes every stage from a fresh record.
func (p *Pipeline) Run() (Record, error) {
	return p.runFrom(0, Record{})
}

// RunFrom restarts at the named stage, loading its predecessor's
// checkpoint. Starting at the first stage needs no checkpoint.
//
// Errors: ErrUnknownStage, ErrNoCheckpoint.
func (p *Pipeline) RunFrom(s Stage) (Record, error) {
	idx, err := stageIndex(s)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownStage, s)
	}
	if idx == 0 {
		return p.Run()
	}
	if p.ckpt == nil {
		return Record{}, fmt.Errorf("%w: checkpointing disabled", ErrNoCheckpoint)
	}

	rec, err := p.ckpt.Load(Stages[idx-1])
	if err != nil {
		return Record{}, err
	}

	return p.runFrom(idx, rec)
}

// Resume continues after the furthest checkpoint on disk. A fully
// completed run is returned as-is.
func (p *Pipeline) Resume() (Record, error) {
	if p.ckpt == nil {
		return Record{}, fmt.Errorf("%w: checkpointing disabled", ErrNoCheckpoint)
	}

	last, err := p.ckpt.Latest()
	if err != nil {
		return Record{}, err
	}
	rec, err := p.ckpt.Load(last)
	if err != nil {
		return Record{}, err
	}

	idx, _ := stageIndex(last)
	if idx == len(Stages)-1 {
		p.log.Info("run already complete", "stage", last)

		return rec, nil
	}

	return p.runFrom(idx+1, rec)
}

// runFrom drives stages [start, len) over rec, checkpointing each
// completed stage when enabled.
func (p *Pipeline) runFrom(start int, rec Record) (Record, error) {
	table := p.table()
	for i := start; i < len(Stages); i++ {
		stage := Stages[i]
		p.log.Info("stage start", "stage", stage)

		next, err := table[i](rec)
		if err != nil {
			p.log.Error("stage failed", "stage", stage, "err", err)

			return Record{}, fmt.Errorf("pipeline: stage %s: %w", stage, err)
		}
		next.Stage = stage
		rec = next

		if p.ckpt != nil {
			if err = p.ckpt.Save(rec); err != nil {
				return Record{}, err
			}
		}
	}

	return rec, nil
}

// runSetup seeds the record with the validated configuration.
func (p *Pipeline) runSetup(rec Record) (Record, error) {
	rec.Config = p.cfg
	p.log.Info("configuration",
		"family", p.cfg.Family.String(),
		"mode", p.cfg.Mode.String(),
		"variant", p.cfg.Variant.String(),
		"ref_scale", p.cfg.RefScale,
		"ref_anisotropy", p.cfg.RefAnisotropy)

	return rec, nil
}

// runFrame builds the structure-constant frame at the reference point.
func (p *Pipeline) runFrame(rec Record) (Record, error) {
	fr, err := geometry.NewFrame(p.cfg.Family, p.cfg.RefScale, p.cfg.RefAnisotropy, p.cfg.Couplings.Circumference)
	if err != nil {
		return Record{}, err
	}
	rec.Frame = fr
	p.log.Info("frame built", "volume", fr.Volume, "anisotropy", fr.Anisotropy)

	return rec, nil
}

// runTorsionFree derives the Koszul connection from the frame.
func (p *Pipeline) runTorsionFree(rec Record) (Record, error) {
	rec.TorsionFree = connection.TorsionFree(rec.Frame.C)
	if err := connection.VerifyMetricCompatibility(rec.TorsionFree, curvature.DefaultTol); err != nil {
		return Record{}, err
	}

	return rec, nil
}

// runWeyl computes the torsion-free curvature and its conformal part.
func (p *Pipeline) runWeyl(rec Record) (Record, error) {
	rec.RiemannLC = curvature.Riemann(rec.TorsionFree, rec.Frame.C)
	if err := curvature.VerifyPairExchange(rec.RiemannLC, curvature.DefaultTol); err != nil {
		return Record{}, err
	}

	rec.RicciScalarLC = curvature.RicciScalar(rec.RiemannLC)
	rec.Weyl = curvature.Weyl(rec.RiemannLC)
	if err := curvature.VerifyTraceless(rec.Weyl, curvature.DefaultTol); err != nil {
		return Record{}, err
	}
	rec.WeylScalar = curvature.WeylScalar(rec.Weyl)
	p.log.Info("conformal split", "ricci_scalar", rec.RicciScalarLC, "weyl_scalar", rec.WeylScalar)

	return rec, nil
}

// runTorsion materializes the torsion ansatz at the reference scale.
func (p *Pipeline) runTorsion(rec Record) (Record, error) {
	an := connection.Ansatz{Mode: p.cfg.Mode, Eta: p.cfg.Couplings.Eta, V: p.cfg.Couplings.V}
	torsion, err := an.Tensor(rec.Frame.Scale)
	if err != nil {
		return Record{}, err
	}
	rec.Torsion = torsion
	p.log.Info("torsion ansatz", "scalar", connection.Scalar(torsion))

	return rec, nil
}

// runContortion converts the torsion tensor to its contortion.
func (p *Pipeline) runContortion(rec Record) (Record, error) {
	rec.Contortion = connection.Contortion(rec.Torsion)

	return rec, nil
}

// runFullConnection assembles ω = Γ + K and checks metric compatibility.
func (p *Pipeline) runFullConnection(rec Record) (Record, error) {
	rec.Connection = connection.Full(rec.TorsionFree, rec.Contortion)
	if err := connection.VerifyMetricCompatibility(rec.Connection, curvature.DefaultTol); err != nil {
		return Record{}, err
	}

	return rec, nil
}

// runCurvature computes the torsionful curvature with its identity
// checks.
func (p *Pipeline) runCurvature(rec Record) (Record, error) {
	rec.Riemann = curvature.Riemann(rec.Connection, rec.Frame.C)
	if err := curvature.VerifyAntisymmetry(rec.Riemann, curvature.DefaultTol); err != nil {
		return Record{}, err
	}
	if err := curvature.VerifyPontryaginZero(rec.Riemann, curvature.DefaultTol); err != nil {
		return Record{}, err
	}

	return rec, nil
}

// runInvariants evaluates the full scalar report at the reference point
// and cross-checks the Ricci scalar against the tensor computed by the
// curvature stage.
func (p *Pipeline) runInvariants(rec Record) (Record, error) {
	rep, err := p.pot.Invariants(p.cfg.RefScale, p.cfg.RefAnisotropy)
	if err != nil {
		return Record{}, err
	}
	if !agree(rep.RicciScalar, curvature.RicciScalar(rec.Riemann)) {
		return Record{}, fmt.Errorf("pipeline: ricci scalar mismatch: report %v, tensor %v",
			rep.RicciScalar, curvature.RicciScalar(rec.Riemann))
	}
	rec.Report = rep
	p.log.Info("invariants",
		"ricci_scalar", rep.RicciScalar,
		"torsion_scalar", rep.TorsionScalar,
		"nieh_yan", rep.NiehYan,
		"weyl_scalar", rep.WeylScalar)

	return rec, nil
}

// runLagrangian extracts the radial cubic of the Einstein-Cartan block
// and checks that it reproduces the reference evaluation.
func (p *Pipeline) runLagrangian(rec Record) (Record, error) {
	coef, err := p.pot.RadialCoefficients(p.cfg.RefAnisotropy)
	if err != nil {
		return Record{}, err
	}

	ec, err := p.pot.ECPart(p.cfg.RefScale, p.cfg.RefAnisotropy)
	if err != nil {
		return Record{}, err
	}
	if !agree(coef.At(p.cfg.RefScale), ec) {
		return Record{}, fmt.Errorf("pipeline: radial cubic mismatch at r = %v: cubic %v, direct %v",
			p.cfg.RefScale, coef.At(p.cfg.RefScale), ec)
	}
	rec.Coefficients = coef
	p.log.Info("radial cubic",
		"linear", coef.Linear, "quadratic", coef.Quadratic, "cubic", coef.Cubic)

	return rec, nil
}

// runPotential evaluates V_eff at the reference point and checks the
// affine split against the invariant report.
func (p *Pipeline) runPotential(rec Record) (Record, error) {
	val, err := p.pot.Eval(p.cfg.RefScale, p.cfg.RefAnisotropy)
	if err != nil {
		return Record{}, err
	}
	if !agree(val, rec.Report.Value) {
		return Record{}, fmt.Errorf("pipeline: potential mismatch: eval %v, report %v", val, rec.Report.Value)
	}
	rec.Value = val
	p.log.Info("potential", "value", val)

	return rec, nil
}

// runStability searches the configured box and labels the outcome.
func (p *Pipeline) runStability(rec Record) (Record, error) {
	res, class, err := stability.Analyze(p.pot, p.cfg.Bounds, p.searchOpts...)
	if err != nil {
		return Record{}, err
	}
	rec.Result = res
	rec.Class = class

	return rec, nil
}

// runSummary reports the final outcome.
func (p *Pipeline) runSummary(rec Record) (Record, error) {
	p.log.Info("summary",
		"family", rec.Config.Family.String(),
		"r", rec.Result.R,
		"eps", rec.Result.Eps,
		"value", rec.Result.Value,
		"converged", rec.Result.Converged,
		"class", rec.Class.String())

	return rec, nil
}

// agree compares two stage outputs under the relative tolerance used by
// the cross-checks.
func agree(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*(1+math.Max(math.Abs(a), math.Abs(b)))
}
