// Package geometry provides the structure-constant frames for the three
// homogeneous 4-geometry families analyzed by torsionwell.
//
// The geometry package provides:
//
//   - Family, a closed tag for the three spatial topologies crossed with a
//     circle: Round (S³×S¹), Flat (T³×S¹) and Nilpotent (Nil³×S¹).
//   - NewFrame, which validates the scale and anisotropy parameters and
//     returns an immutable Frame record: structure constants C^a_{bc} of a
//     left-invariant orthonormal frame, the identity frame metric, and the
//     closed-form volume factor of the compact manifold.
//
// Anisotropy is volume preserving: the squash factors multiply to one, so
// Volume never depends on eps. The anisotropy parameter is ignored for the
// Flat family, whose frame is abelian at every eps.
//
// Frame records are plain values; downstream stages copy them freely.
package geometry
