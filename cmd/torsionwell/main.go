// Command torsionwell explores the effective potential of torsionful
// homogeneous 4-geometries: single pipeline runs, coupling sweeps and
// Weyl-coupling transition charts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/torsionwell/connection"
	"github.com/katalvlaran/torsionwell/curvature"
	"github.com/katalvlaran/torsionwell/geometry"
	"github.com/katalvlaran/torsionwell/pipeline"
	"github.com/katalvlaran/torsionwell/potential"
	"github.com/katalvlaran/torsionwell/scan"
	"github.com/katalvlaran/torsionwell/stability"
)

var rootCmd = &cobra.Command{
	Use:   "torsionwell",
	Short: "Curvature invariants and stability of torsionful homogeneous geometries",
	Long: `Torsionwell assembles the effective potential of homogeneous
4-geometries (S3xS1, T3xS1, Nil3xS1) under a torsionful connection,
minimizes it globally over scale and anisotropy, and labels the outcome.`,
	SilenceUsage: true,
}

var verbose bool

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(criticalCmd)
}

func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))
}

// tupleFlags is the flag set shared by run and critical.
type tupleFlags struct {
	family  string
	mode    string
	variant string

	eta   float64
	v     float64
	theta float64
	kappa float64
	circ  float64
	alpha float64

	rMin, rMax     float64
	epsMin, epsMax float64
}

func (f *tupleFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.family, "family", "round", "geometry family (round, flat, nilpotent)")
	fl.StringVar(&f.mode, "mode", "mixed", "torsion mode (axial, vector-trace, mixed)")
	fl.StringVar(&f.variant, "variant", "full", "nieh-yan variant (tt, curvature, full)")

	fl.Float64Var(&f.eta, "eta", 0, "axial torsion amplitude")
	fl.Float64Var(&f.v, "vec", 0, "trace-vector torsion amplitude")
	fl.Float64Var(&f.theta, "theta", 0, "nieh-yan coupling")
	fl.Float64Var(&f.kappa, "kappa", 1, "gravitational coupling")
	fl.Float64Var(&f.circ, "circumference", 1, "circle circumference")
	fl.Float64Var(&f.alpha, "alpha", 0, "weyl-squared coupling")

	fl.Float64Var(&f.rMin, "r-min", 0.1, "scale lower bound")
	fl.Float64Var(&f.rMax, "r-max", 10, "scale upper bound")
	fl.Float64Var(&f.epsMin, "eps-min", -0.9, "anisotropy lower bound")
	fl.Float64Var(&f.epsMax, "eps-max", 2, "anisotropy upper bound")
}

func (f *tupleFlags) tuple() (scan.Tuple, error) {
	family, err := geometry.ParseFamily(f.family)
	if err != nil {
		return scan.Tuple{}, err
	}
	mode, err := connection.ParseMode(f.mode)
	if err != nil {
		return scan.Tuple{}, err
	}
	variant, err := curvature.ParseVariant(f.variant)
	if err != nil {
		return scan.Tuple{}, err
	}

	return scan.Tuple{
		Family:  family,
		Mode:    mode,
		Variant: variant,
		Couplings: potential.Couplings{
			Eta:           f.eta,
			V:             f.v,
			ThetaNY:       f.theta,
			Kappa:         f.kappa,
			Circumference: f.circ,
			Alpha:         f.alpha,
		},
	}, nil
}

func (f *tupleFlags) bounds() stability.Bounds {
	return stability.Bounds{RMin: f.rMin, RMax: f.rMax, EpsMin: f.epsMin, EpsMax: f.epsMax}
}

var (
	runFlags  tupleFlags
	runRef    [2]float64
	runCkpt   string
	runResume bool
	runFrom   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one full pipeline run and print the record",
	RunE:  runRun,
}

func init() {
	runFlags.register(runCmd)
	runCmd.Flags().Float64Var(&runRef[0], "ref-scale", 1, "reference scale for the tensor stages")
	runCmd.Flags().Float64Var(&runRef[1], "ref-eps", 0, "reference anisotropy for the tensor stages")
	runCmd.Flags().StringVar(&runCkpt, "checkpoints", "", "directory for per-stage YAML checkpoints")
	runCmd.Flags().BoolVar(&runResume, "resume", false, "continue after the last checkpoint")
	runCmd.Flags().StringVar(&runFrom, "from", "", "restart at the named stage")
}

func runRun(cmd *cobra.Command, args []string) error {
	t, err := runFlags.tuple()
	if err != nil {
		return err
	}

	cfg := pipeline.Config{
		Family:        t.Family,
		Mode:          t.Mode,
		Variant:       t.Variant,
		Couplings:     t.Couplings,
		RefScale:      runRef[0],
		RefAnisotropy: runRef[1],
		Bounds:        runFlags.bounds(),
	}

	var opts []pipeline.Option
	if runCkpt != "" {
		opts = append(opts, pipeline.WithCheckpoints(runCkpt))
	}
	p, err := pipeline.New(cfg, opts...)
	if err != nil {
		return err
	}

	var rec pipeline.Record
	switch {
	case runResume:
		rec, err = p.Resume()
	case runFrom != "":
		rec, err = p.RunFrom(pipeline.Stage(runFrom))
	default:
		rec, err = p.Run()
	}
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(struct {
		Result stability.Result `yaml:"result"`
		Class  string           `yaml:"class"`
		Value  float64          `yaml:"reference_value"`
	}{rec.Result, rec.Class.String(), rec.Value})
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))

	return nil
}

var (
	scanConfig  string
	scanOut     string
	scanDB      string
	scanWorkers int
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Sweep a YAML-described grid of coupling tuples",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanConfig, "config", "", "YAML sweep description (required)")
	scanCmd.Flags().StringVar(&scanOut, "out", "", "CSV output path (default stdout)")
	scanCmd.Flags().StringVar(&scanDB, "db", "", "SQLite database to persist the run")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "pool size (default all CPUs)")
	_ = scanCmd.MarkFlagRequired("config")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := scan.LoadConfig(scanConfig)
	if err != nil {
		return err
	}
	tuples, err := cfg.Tuples()
	if err != nil {
		return err
	}
	slog.Info("sweep expanded", "tuples", len(tuples))

	var opts []scan.Option
	if scanWorkers > 0 {
		opts = append(opts, scan.WithWorkers(scanWorkers))
	}
	rows, err := scan.NewSweeper(cfg.Bounds, opts...).Run(signalContext(), tuples)
	if err != nil {
		return err
	}

	if scanDB != "" {
		store, err := scan.OpenStore(scanDB)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.SaveRun(context.Background(), cfg.Bounds, rows)
		if err != nil {
			return err
		}
		slog.Info("run persisted", "id", id)
	}

	return writeCSV(cmd, scanOut, rows)
}

var (
	criticalFlags  tupleFlags
	criticalAlphas []float64
	criticalOut    string
)

var criticalCmd = &cobra.Command{
	Use:   "critical",
	Short: "Chart the stability label along a Weyl-coupling sweep",
	RunE:  runCritical,
}

func init() {
	criticalFlags.register(criticalCmd)
	criticalCmd.Flags().Float64SliceVar(&criticalAlphas, "alphas",
		[]float64{-1, -0.1, -0.01, 0, 0.01, 0.1, 1}, "weyl couplings to sweep")
	criticalCmd.Flags().StringVar(&criticalOut, "out", "", "CSV output path (default stdout)")
}

func runCritical(cmd *cobra.Command, args []string) error {
	base, err := criticalFlags.tuple()
	if err != nil {
		return err
	}

	s := scan.NewSweeper(criticalFlags.bounds())
	rows, err := s.AlphaSweep(signalContext(), base, criticalAlphas)
	if err != nil {
		return err
	}

	for _, idx := range scan.Transitions(rows) {
		slog.Info("label transition",
			"alpha", rows[idx].Tuple.Couplings.Alpha,
			"class", rows[idx].Class.String())
	}

	return writeCSV(cmd, criticalOut, rows)
}

// writeCSV sends rows to the path, or stdout when empty.
func writeCSV(cmd *cobra.Command, path string, rows []scan.Row) error {
	if path == "" {
		return scan.WriteCSV(cmd.OutOrStdout(), rows)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return scan.WriteCSV(f, rows)
}

// signalContext cancels on SIGINT/SIGTERM so sweeps stop between tuples.
func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return ctx
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
