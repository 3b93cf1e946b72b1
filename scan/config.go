package scan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/torsionwell/connection"
	"github.com/katalvlaran/torsionwell/curvature"
	"github.com/katalvlaran/torsionwell/geometry"
	"github.com/katalvlaran/torsionwell/potential"
	"github.com/katalvlaran/torsionwell/stability"
)

// Config is the YAML sweep description. Tuples expands the listed axes
// into their cartesian product; an omitted axis collapses to a single
// default entry, so a minimal config names only the axes it varies.
type Config struct {
	Bounds stability.Bounds `yaml:"bounds"`

	Families []string `yaml:"families"`
	Modes    []string `yaml:"modes"`
	Variants []string `yaml:"variants"`

	Etas   []float64 `yaml:"etas"`
	Vs     []float64 `yaml:"vs"`
	Thetas []float64 `yaml:"thetas"`
	Alphas []float64 `yaml:"alphas"`

	// Kappa and Circumference are scalars: sweeps never vary them.
	// Zero means the unit default.
	Kappa         float64 `yaml:"kappa"`
	Circumference float64 `yaml:"circumference"`
}

// ParseConfig decodes a YAML sweep description.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("scan: decode config: %w", err)
	}

	return c, nil
}

// LoadConfig reads and decodes a YAML sweep file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("scan: read config: %w", err)
	}

	return ParseConfig(data)
}

// axis defaults applied by Tuples for omitted lists.
var (
	defaultFamilies = []string{geometry.Round.String()}
	defaultModes    = []string{connection.Mixed.String()}
	defaultVariants = []string{curvature.Full.String()}
)

// Tuples expands the config into the cartesian product of its axes, in
// the fixed nesting order family, mode, variant, eta, v, theta, alpha.
// Name resolution errors surface before any sweep work starts.
func (c Config) Tuples() ([]Tuple, error) {
	families, err := parseNames(orDefault(c.Families, defaultFamilies), geometry.ParseFamily)
	if err != nil {
		return nil, err
	}
	modes, err := parseNames(orDefault(c.Modes, defaultModes), connection.ParseMode)
	if err != nil {
		return nil, err
	}
	variants, err := parseNames(orDefault(c.Variants, defaultVariants), curvature.ParseVariant)
	if err != nil {
		return nil, err
	}

	etas := orDefault(c.Etas, []float64{0})
	vs := orDefault(c.Vs, []float64{0})
	thetas := orDefault(c.Thetas, []float64{0})
	alphas := orDefault(c.Alphas, []float64{0})

	kappa := c.Kappa
	if kappa == 0 {
		kappa = 1
	}
	circ := c.Circumference
	if circ == 0 {
		circ = 1
	}

	tuples := make([]Tuple, 0,
		len(families)*len(modes)*len(variants)*len(etas)*len(vs)*len(thetas)*len(alphas))
	for _, f := range families {
		for _, m := range modes {
			for _, vr := range variants {
				for _, eta := range etas {
					for _, v := range vs {
						for _, th := range thetas {
							for _, a := range alphas {
								tuples = append(tuples, Tuple{
									Family:  f,
									Mode:    m,
									Variant: vr,
									Couplings: potential.Couplings{
										Eta:           eta,
										V:             v,
										ThetaNY:       th,
										Kappa:         kappa,
										Circumference: circ,
										Alpha:         a,
									},
								})
							}
						}
					}
				}
			}
		}
	}

	return tuples, nil
}

// orDefault substitutes the fallback for an omitted axis.
func orDefault[T any](list, fallback []T) []T {
	if len(list) == 0 {
		return fallback
	}

	return list
}

// parseNames resolves a name list through the enum parser.
func parseNames[T any](names []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, len(names))
	for i, n := range names {
		v, err := parse(n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}
