package pipeline

import (
	"errors"

	"github.com/katalvlaran/torsionwell/connection"
	"github.com/katalvlaran/torsionwell/curvature"
	"github.com/katalvlaran/torsionwell/geometry"
	"github.com/katalvlaran/torsionwell/potential"
	"github.com/katalvlaran/torsionwell/stability"
	"github.com/katalvlaran/torsionwell/tensor"
)

// Stage names one step of the fixed machine. Stages run in the order of
// Stages; the names are stable and appear in checkpoint file names.
type Stage string

const (
	StageSetup          Stage = "setup"
	StageFrame          Stage = "frame"
	StageTorsionFree    Stage = "torsion-free"
	StageWeyl           Stage = "weyl"
	StageTorsion        Stage = "torsion"
	StageContortion     Stage = "contortion"
	StageFullConnection Stage = "full-connection"
	StageCurvature      Stage = "curvature"
	StageInvariants     Stage = "invariants"
	StageLagrangian     Stage = "lagrangian"
	StagePotential      Stage = "potential"
	StageStability      Stage = "stability"
	StageSummary        Stage = "summary"
)

// Stages is the fixed execution order.
var Stages = []Stage{
	StageSetup,
	StageFrame,
	StageTorsionFree,
	StageWeyl,
	StageTorsion,
	StageContortion,
	StageFullConnection,
	StageCurvature,
	StageInvariants,
	StageLagrangian,
	StagePotential,
	StageStability,
	StageSummary,
}

var (
	// ErrUnknownStage is returned for a stage name outside Stages.
	ErrUnknownStage = errors.New("pipeline: unknown stage")

	// ErrNoCheckpoint is returned when a resume point does not exist.
	ErrNoCheckpoint = errors.New("pipeline: checkpoint not found")
)

// stageIndex maps a stage to its position in Stages.
func stageIndex(s Stage) (int, error) {
	for i, st := range Stages {
		if st == s {
			return i, nil
		}
	}

	return 0, ErrUnknownStage
}

// Config fixes one run: the physical configuration, the reference point
// for the tensor stages, and the search box for the stability stage.
type Config struct {
	Family    geometry.Family     `yaml:"family"`
	Mode      connection.Mode     `yaml:"mode"`
	Variant   curvature.Variant   `yaml:"variant"`
	Couplings potential.Couplings `yaml:"couplings"`

	// RefScale and RefAnisotropy locate the tensor-stage evaluation
	// point.
	RefScale      float64 `yaml:"ref_scale"`
	RefAnisotropy float64 `yaml:"ref_anisotropy"`

	// Bounds is the stability search box.
	Bounds stability.Bounds `yaml:"bounds"`
}

// Record accumulates the output of every completed stage. It is a plain
// value: stages receive it by value and return extended copies, and the
// whole record round-trips through YAML for checkpointing.
type Record struct {
	// Stage is the last completed stage.
	Stage Stage `yaml:"stage"`

	// Config echoes the run configuration.
	Config Config `yaml:"config"`

	// Frame holds the structure-constant frame at the reference point.
	Frame geometry.Frame `yaml:"frame"`

	// TorsionFree is the Koszul connection Γ.
	TorsionFree tensor.Rank3 `yaml:"torsion_free"`

	// RiemannLC and RicciScalarLC come from the torsion-free
	// connection; Weyl and WeylScalar are its conformal part.
	RiemannLC     tensor.Rank4 `yaml:"riemann_lc"`
	RicciScalarLC float64      `yaml:"ricci_scalar_lc"`
	Weyl          tensor.Rank4 `yaml:"weyl"`
	WeylScalar    float64      `yaml:"weyl_scalar"`

	// Torsion, Contortion and Connection are the torsion tensor, its
	// contortion and the full connection ω = Γ + K.
	Torsion    tensor.Rank3 `yaml:"torsion"`
	Contortion tensor.Rank3 `yaml:"contortion"`
	Connection tensor.Rank3 `yaml:"connection"`

	// Riemann is the torsionful curvature.
	Riemann tensor.Rank4 `yaml:"riemann"`

	// Report is the scalar invariant record at the reference point.
	Report potential.Report `yaml:"report"`

	// Coefficients is the radial cubic of the Einstein-Cartan block at
	// the reference anisotropy.
	Coefficients potential.Coefficients `yaml:"coefficients"`

	// Value is V_eff at the reference point.
	Value float64 `yaml:"value"`

	// Result and Class are the global search outcome.
	Result stability.Result `yaml:"result"`
	Class  stability.Class  `yaml:"class"`
}
