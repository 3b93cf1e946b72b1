package stability

import (
	"errors"
	"fmt"
	"math"
)

// Class is the stability label of a search outcome. The set is closed.
type Class int

const (
	// StableWell is a converged interior minimum protected by a barrier
	// against collapse toward r → 0.
	StableWell Class = iota

	// StableWellNoBarrier is a converged interior minimum reached
	// monotonically from the small-r side.
	StableWellNoBarrier

	// NoWell means no converged interior minimum exists in the box.
	NoWell

	// Metastable is the positive-coupling ghost regime with a surviving
	// interior local well; the divergence sits at the anisotropy
	// boundary, outside the box.
	Metastable

	// NoWellDivergent is the ghost regime with no surviving local well.
	NoWellDivergent

	// DoubleWell is the negative-coupling wall regime with two separate
	// radial wells.
	DoubleWell

	// SingleWell is the wall regime with exactly one radial well.
	SingleWell
)

var classNames = map[Class]string{
	StableWell:          "stable-well-with-barrier",
	StableWellNoBarrier: "stable-well-no-barrier",
	NoWell:              "no-well",
	Metastable:          "metastable",
	NoWellDivergent:     "no-well-divergent",
	DoubleWell:          "double-well",
	SingleWell:          "single-well",
}

// String returns the hyphenated label used in CSV output and logs.
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}

	return fmt.Sprintf("class(%d)", int(c))
}

// ParseClass maps a hyphenated label back to its tag.
func ParseClass(name string) (Class, error) {
	for c, n := range classNames {
		if n == name {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, name)
}

// ErrUnknownClass is returned when a label is outside the closed set.
var ErrUnknownClass = errors.New("stability: unknown class")

// Result is the outcome of one global search.
type Result struct {
	// R and Eps locate the best point found.
	R   float64 `yaml:"r"`
	Eps float64 `yaml:"eps"`

	// Value is the objective there.
	Value float64 `yaml:"value"`

	// Converged is true only when the refinement met its stationarity
	// criterion at an interior point. A boundary-pinned or
	// iteration-capped search reports false and still fills the other
	// fields.
	Converged bool `yaml:"converged"`

	// Iterations counts refinement iterations summed over all starts.
	Iterations int `yaml:"iterations"`
}

// Bounds is the closed search box. The objective itself is defined on
// the open domain r > 0, eps > -1; the box must sit strictly inside it.
type Bounds struct {
	RMin   float64 `yaml:"r_min"`
	RMax   float64 `yaml:"r_max"`
	EpsMin float64 `yaml:"eps_min"`
	EpsMax float64 `yaml:"eps_max"`
}

// ErrBounds is returned when the search box is empty, non-finite, or
// leaves the open domain of the objective.
var ErrBounds = errors.New("stability: invalid search bounds")

// validate rejects a box the search cannot run on.
func (b Bounds) validate() error {
	for _, v := range []float64{b.RMin, b.RMax, b.EpsMin, b.EpsMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bound %v", ErrBounds, v)
		}
	}
	if b.RMin <= 0 {
		return fmt.Errorf("%w: r_min %v must be > 0", ErrBounds, b.RMin)
	}
	if b.RMax <= b.RMin {
		return fmt.Errorf("%w: r range [%v, %v] is empty", ErrBounds, b.RMin, b.RMax)
	}
	if b.EpsMin <= -1 {
		return fmt.Errorf("%w: eps_min %v must be > -1", ErrBounds, b.EpsMin)
	}
	if b.EpsMax <= b.EpsMin {
		return fmt.Errorf("%w: eps range [%v, %v] is empty", ErrBounds, b.EpsMin, b.EpsMax)
	}

	return nil
}
