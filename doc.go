// Package torsionwell computes curvature invariants of homogeneous
// 4-geometries under a torsionful connection and hunts for stable wells
// of the resulting effective potential.
//
// 🚀 What is torsionwell?
//
//	A frame-based geometry lab that brings together:
//		• Frames: structure constants of S³×S¹, T³×S¹ and Nil³×S¹, squashed or not
//		• Connections: Koszul torsion-free part, contortion, and their sum
//		• Curvature: Riemann, Ricci, Weyl, Nieh-Yan, Pontryagin, self-dual split
//		• Potential: the Einstein-Cartan density assembled into V_eff(r, ε)
//		• Stability: grid + quasi-Newton global search and well taxonomy
//		• Scans: worker-pool sweeps over coupling grids, CSV and SQLite exports
//
// ✨ Why choose torsionwell?
//
//   - Exact by construction – closed frame algebra, no numerical geometry
//   - Self-checking – metric compatibility, antisymmetry and Pontryagin
//     orthogonality verified inline on every evaluation path
//   - Deterministic – identical inputs reproduce identical minima, bit for bit
//   - Extensible – torsion modes, Nieh-Yan variants and families are closed
//     enums with one switch each
//
// Under the hood, everything is organized under focused subpackages:
//
//	tensor/     — fixed-dimension frame tensors & Levi-Civita symbols
//	geometry/   — the three homogeneous families and their volumes
//	connection/ — Koszul, torsion ansätze, contortion, compatibility checks
//	curvature/  — Riemann, Weyl, Nieh-Yan, Hodge duality, diagnostics
//	potential/  — couplings, V_eff assembly, radial cubics, Weyl-block cache
//	stability/  — global search, classification of the well landscape
//	pipeline/   — the staged run machine with YAML checkpoints
//	scan/       — coupling sweeps, CSV export, SQLite persistence
//
// Quick ASCII example:
//
//	 V_eff
//	   │  ╲      ╱╲
//	   │   ╲    ╱  ╲        ╱
//	   │    ╲__╱    ╲______╱
//	   └───────────────────── r
//	        hump    stable well
//
//	a barrier-protected well of the round family at ε = 0.
//
//	go get github.com/katalvlaran/torsionwell
package torsionwell
