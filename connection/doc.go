// Package connection builds the frame connections of the pipeline.
//
// The connection package provides:
//
//   - TorsionFree, the Koszul connection of a left-invariant frame,
//     Γ^a_{bc} = ½(C^a_{bc} + C^c_{ba} − C^b_{ac}).
//   - Ansatz, the two-parameter torsion family with a closed Mode tag
//     (Axial, VectorTrace, Mixed) and its contortion
//     K_{abc} = ½(T_{abc} + T_{bca} − T_{cab}).
//   - Full, the torsionful connection ω = Γ + K, and
//     VerifyMetricCompatibility, which checks ω_{abc} + ω_{bac} = 0 to a
//     relative tolerance and reports the worst component on failure.
//
// Indices are frame indices with the identity metric, so the first slot
// of every rank-3 array here can be read as either upper or lower.
package connection
