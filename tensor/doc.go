// Package tensor provides the fixed-shape dense arrays used throughout
// torsionwell.
//
// The tensor package provides:
//
//   - Value-type rank-2, rank-3 and rank-4 arrays over a frame of fixed
//     dimension Dim = 4. Copy semantics make every pipeline stage record
//     trivially immutable.
//   - The 3D and 4D Levi-Civita symbols (Eps3, Eps4) with the orientation
//     ε_{012} = +1 and ε_{0123} = +1.
//   - Max-abs norms used to scale relative tolerances, and the structured
//     InvariantError type reported when an algebraic identity fails.
//
// All indices are frame indices 0..3; index 3 is the circle direction.
// The frame metric is the identity, so raising and lowering indices is a
// no-op and no co/contravariant distinction is tracked in the types.
package tensor
