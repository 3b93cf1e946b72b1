// Package curvature computes the invariants of a frame connection.
//
// The curvature package provides:
//
//   - Riemann, the curvature of a constant frame connection,
//     R^a_{bcd} = Γ^a_{ec}Γ^e_{bd} − Γ^a_{ed}Γ^e_{bc} + Γ^a_{be}C^e_{cd},
//     plus Ricci and RicciScalar contractions.
//   - Weyl, the conformal tensor by the fixed 4D formula, with a
//     tracelessness check over every contraction, and WeylScalar.
//   - The Nieh-Yan density in three variants (TT, Curvature, Full).
//   - Dual, the Hodge dual on the second index pair, the Pontryagin
//     inner product ⟨R, ⋆R⟩, and the self-duality diagnostics built
//     from the (anti-)self-dual projections.
//   - Verify helpers for antisymmetry and pair-exchange symmetry. Each
//     returns a *tensor.InvariantError naming the worst offending
//     component, never a bare boolean.
//
// For the geometries in this module the Pontryagin product vanishes
// identically: no structure constant reaches the circle direction, so the
// mixed curvature block R_{ab,c3} is zero and the spatial block is
// orthogonal to its dual. VerifyPontryaginZero enforces this numerically.
package curvature
