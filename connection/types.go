package connection

import (
	"errors"
	"fmt"
)

// Mode identifies which irreducible torsion components the ansatz turns
// on. The set is closed.
type Mode int

const (
	// Axial switches on the totally antisymmetric spatial component
	// T_{ijk} = (2η/r)·ε_{ijk}; the vector amplitude is ignored.
	Axial Mode = iota

	// VectorTrace switches on the trace-vector component
	// T_{abc} = (δ_{ac}v_b − δ_{ab}v_c)/3 with v pointing along the
	// circle, v_b = V·δ_{b3}; the axial amplitude is ignored.
	VectorTrace

	// Mixed switches on both components simultaneously.
	Mixed
)

var modeNames = map[Mode]string{
	Axial:       "axial",
	VectorTrace: "vector-trace",
	Mixed:       "mixed",
}

// String returns the lowercase mode name used in configs and CSV output.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}

	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is one of the three known modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]

	return ok
}

// ParseMode maps a lowercase mode name back to its tag.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("connection: %w: %q", ErrUnknownMode, name)
}

var (
	// ErrUnknownMode is returned when a Mode tag or name is outside the
	// closed three-member set.
	ErrUnknownMode = errors.New("connection: unknown torsion mode")

	// ErrScaleDomain is returned by Ansatz.Tensor when the scale fed to
	// the axial component is not finite and positive.
	ErrScaleDomain = errors.New("connection: scale must be finite and > 0")
)
