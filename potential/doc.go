// Package potential assembles the effective scalar potential of one
// (family, mode, variant, couplings) configuration.
//
// The potential package provides:
//
//   - Potential, an immutable evaluator built by New. At a point
//     (r, eps) it computes the Lagrangian density
//     L = R/(2κ²) + θ_NY·N + α·C², integrates it analytically as a
//     multiplication by the closed-form volume factor, and returns
//     V_eff(r, eps) = −L·Vol.
//   - The exact affine split V_eff = V_EC − α·C²·Vol. The Weyl block
//     C²·Vol is computed from the torsion-free curvature only, so it
//     never depends on the torsion amplitudes or θ_NY ("geometric
//     decoupling"), and it is memoized in an explicit Cache keyed by
//     (family, r, eps). The cache is owned by this layer; callers share
//     one across sweep workers via WithCache.
//   - Func, the bare objective closure for the optimizer: out-of-domain
//     points map to +Inf instead of an error.
//   - Invariants, the full per-point scalar report used by the pipeline,
//     and RadialCoefficients, the exact cubic-in-r decomposition of the
//     Einstein-Cartan block at fixed eps.
//
// Eval runs the inline self-checks (metric compatibility, curvature
// antisymmetry, Pontryagin orthogonality) and aborts with a
// *tensor.InvariantError when one fails. Func skips them; the optimizer
// revisits regions that Eval has already certified.
package potential
