// Package stability locates and classifies the global minimum of an
// effective potential over the open box (r, eps).
//
// The stability package provides:
//
//   - Search, a deterministic two-stage global minimizer: an exhaustive
//     coarse grid (ties broken by lowest value, then smaller r, then
//     smaller |eps|) feeding a multi-start projected-BFGS refinement
//     with central-difference gradients and an iteration cap.
//   - Result, which carries the minimizer, its value and a Converged
//     flag. A minimum pinned to the search boundary reports
//     Converged=false; that is a first-class answer, not an error. The
//     interior-vs-boundary margin is the explicit WithBoundaryTol
//     option.
//   - Classify, the well taxonomy. With the Weyl coupling inactive the
//     labels are stable-well-with-barrier, stable-well-no-barrier and
//     no-well. An active coupling refines them: a positive coupling on a
//     divergent family yields metastable or no-well-divergent, a
//     negative one with the repulsive wall engaged yields double-well,
//     single-well or no-well.
//   - Analyze, the convenience entry that runs Search on a
//     potential.Potential and classifies the outcome. When the box
//     infimum pins at the collapse edge it re-scans the grid for an
//     interior local well and classifies that well instead, so a
//     barrier-protected minimum is never masked by a lower boundary
//     value.
//
// Everything here is deterministic: fixed grids, fixed start order, no
// randomness. Two runs over the same objective return identical results.
package stability
