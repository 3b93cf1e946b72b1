package tensor

import "fmt"

// InvariantError reports a violated algebraic identity together with the
// offending component and the residual magnitude, so a failure names the
// exact broken entry instead of a bare boolean.
//
// It is distinct from the domain sentinels in geometry: an InvariantError
// means the engine itself miscomputed, and callers are expected to abort.
type InvariantError struct {
	// Identity is the human-readable name of the identity that failed,
	// e.g. "riemann antisymmetry (a,b)".
	Identity string

	// Component holds the frame indices of the worst offending entry.
	// Unused trailing slots are zero for identities over fewer indices.
	Component [4]int

	// Residual is the absolute violation at Component.
	Residual float64

	// Tol is the absolute tolerance the residual was compared against.
	Tol float64
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("tensor: invariant %q violated at component %v: residual %.3e exceeds tolerance %.3e",
		e.Identity, e.Component, e.Residual, e.Tol)
}
