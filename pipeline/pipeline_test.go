package pipeline_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/katalvlaran/torsionwell/connection"
	"github.com/katalvlaran/torsionwell/curvature"
	"github.com/katalvlaran/torsionwell/geometry"
	"github.com/katalvlaran/torsionwell/pipeline"
	"github.com/katalvlaran/torsionwell/potential"
	"github.com/katalvlaran/torsionwell/stability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quiet drops stage logging during tests.
func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// roundConfig is the κ = L = 1 reference configuration with a genuine
// interior well.
func roundConfig() pipeline.Config {
	return pipeline.Config{
		Family:  geometry.Round,
		Mode:    connection.Mixed,
		Variant: curvature.Full,
		Couplings: potential.Couplings{
			Eta: -3, V: 4, ThetaNY: 0.7, Kappa: 1, Circumference: 1,
		},
		RefScale:      1.5,
		RefAnisotropy: 0.25,
		Bounds:        stability.Bounds{RMin: 0.1, RMax: 10, EpsMin: -0.9, EpsMax: 2},
	}
}

// TestPipeline_FullRun drives every stage and checks the record fills in.
func TestPipeline_FullRun(t *testing.T) {
	p, err := pipeline.New(roundConfig(), pipeline.WithLogger(quiet()))
	require.NoError(t, err)

	rec, err := p.Run()
	require.NoError(t, err)

	assert.Equal(t, pipeline.StageSummary, rec.Stage)
	assert.Equal(t, geometry.Round, rec.Config.Family)
	assert.Greater(t, rec.Frame.Volume, 0.0)
	assert.NotZero(t, rec.TorsionFree.MaxAbs())
	assert.NotZero(t, rec.RicciScalarLC)
	assert.Greater(t, rec.WeylScalar, 0.0, "squashed point carries a conformal part")
	assert.NotZero(t, rec.Torsion.MaxAbs())
	assert.NotZero(t, rec.Riemann.SumSquares())
	assert.Equal(t, rec.Report.Value, rec.Value)
	assert.NotZero(t, rec.Coefficients.Cubic)

	assert.True(t, rec.Result.Converged)
	assert.Equal(t, stability.StableWell, rec.Class)
}

// TestPipeline_Checkpoints verifies per-stage persistence, roundtrip and
// resumption.
func TestPipeline_Checkpoints(t *testing.T) {
	dir := t.TempDir()
	p, err := pipeline.New(roundConfig(), pipeline.WithLogger(quiet()), pipeline.WithCheckpoints(dir))
	require.NoError(t, err)

	rec, err := p.Run()
	require.NoError(t, err)

	m := p.Checkpoints()
	require.NotNil(t, m)
	assert.Equal(t, pipeline.Stages, m.List(), "every stage checkpointed")

	last, err := m.Latest()
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageSummary, last)

	// the persisted summary record round-trips through YAML
	loaded, err := m.Load(pipeline.StageSummary)
	require.NoError(t, err)
	assert.Equal(t, rec.Result, loaded.Result)
	assert.Equal(t, rec.Class, loaded.Class)
	assert.Equal(t, rec.Value, loaded.Value)
	assert.Equal(t, rec.Riemann, loaded.Riemann)

	// a completed run resumes to the same record
	resumed, err := p.Resume()
	require.NoError(t, err)
	assert.Equal(t, rec.Result, resumed.Result)

	// restarting at the stability stage reproduces the search exactly
	again, err := p.RunFrom(pipeline.StageStability)
	require.NoError(t, err)
	assert.Equal(t, rec.Result, again.Result)
	assert.Equal(t, rec.Class, again.Class)

	require.NoError(t, m.Clear())
	assert.Empty(t, m.List())
	_, err = m.Latest()
	assert.ErrorIs(t, err, pipeline.ErrNoCheckpoint)
}

// TestPipeline_ResumeMidway interrupts after a prefix of stages and
// continues from disk.
func TestPipeline_ResumeMidway(t *testing.T) {
	dir := t.TempDir()
	p, err := pipeline.New(roundConfig(), pipeline.WithLogger(quiet()), pipeline.WithCheckpoints(dir))
	require.NoError(t, err)

	full, err := p.Run()
	require.NoError(t, err)

	// drop everything after the curvature stage, then resume
	m := p.Checkpoints()
	for _, s := range []pipeline.Stage{
		pipeline.StageInvariants, pipeline.StageLagrangian, pipeline.StagePotential,
		pipeline.StageStability, pipeline.StageSummary,
	} {
		require.NoError(t, m.Remove(s))
	}

	resumed, err := p.Resume()
	require.NoError(t, err)
	assert.Equal(t, full.Result, resumed.Result)
	assert.Equal(t, full.Class, resumed.Class)
	assert.Equal(t, full.Value, resumed.Value)
}

// TestPipeline_Errors covers construction and resume failure modes.
func TestPipeline_Errors(t *testing.T) {
	bad := roundConfig()
	bad.Couplings.Kappa = 0
	_, err := pipeline.New(bad, pipeline.WithLogger(quiet()))
	assert.ErrorIs(t, err, potential.ErrCouplingDomain)

	p, err := pipeline.New(roundConfig(), pipeline.WithLogger(quiet()))
	require.NoError(t, err)

	_, err = p.RunFrom(pipeline.Stage("warp"))
	assert.ErrorIs(t, err, pipeline.ErrUnknownStage)

	// checkpointing disabled
	_, err = p.Resume()
	assert.ErrorIs(t, err, pipeline.ErrNoCheckpoint)
	_, err = p.RunFrom(pipeline.StageStability)
	assert.ErrorIs(t, err, pipeline.ErrNoCheckpoint)

	assert.Panics(t, func() { pipeline.WithCheckpoints("") })
	assert.Panics(t, func() { pipeline.WithLogger(nil) })
}

// TestPipeline_FrameDomainError surfaces geometry validation through the
// frame stage.
func TestPipeline_FrameDomainError(t *testing.T) {
	cfg := roundConfig()
	cfg.RefScale = -2
	p, err := pipeline.New(cfg, pipeline.WithLogger(quiet()))
	require.NoError(t, err)

	_, err = p.Run()
	assert.ErrorIs(t, err, geometry.ErrScaleDomain)
}
