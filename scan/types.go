package scan

import (
	"errors"

	"github.com/katalvlaran/torsionwell/connection"
	"github.com/katalvlaran/torsionwell/curvature"
	"github.com/katalvlaran/torsionwell/geometry"
	"github.com/katalvlaran/torsionwell/potential"
	"github.com/katalvlaran/torsionwell/stability"
)

var (
	// ErrNoTuples is returned when a sweep is started with an empty work
	// list.
	ErrNoTuples = errors.New("scan: no tuples to sweep")

	// ErrRunNotFound is returned when a run id is absent from the store.
	ErrRunNotFound = errors.New("scan: run not found")
)

// Tuple is one point of a sweep: a full physical configuration.
type Tuple struct {
	Family    geometry.Family     `yaml:"family"`
	Mode      connection.Mode     `yaml:"mode"`
	Variant   curvature.Variant   `yaml:"variant"`
	Couplings potential.Couplings `yaml:"couplings"`
}

// Row is the outcome of one tuple. Err is the empty string on success;
// a failed tuple keeps its position in the aggregate with Err filled and
// the result fields zeroed.
type Row struct {
	Index  int              `yaml:"index"`
	Tuple  Tuple            `yaml:"tuple"`
	Result stability.Result `yaml:"result"`
	Class  stability.Class  `yaml:"class"`
	Err    string           `yaml:"err,omitempty"`
}
