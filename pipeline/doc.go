// Package pipeline orchestrates one full analysis run as a fixed linear
// stage machine.
//
// The stages are, in order: setup, frame, torsion-free, weyl, torsion,
// contortion, full-connection, curvature, invariants, lagrangian,
// potential, stability, summary. Each stage consumes the Record produced
// by its predecessor by value and returns an extended copy, so a stage
// can never mutate upstream results. Tensor stages run the inline
// self-checks and abort the run on the first violated identity.
//
// The tensor stages evaluate at the configured reference point
// (RefScale, RefAnisotropy); the stability stage searches the whole
// configured box through the same potential evaluator.
//
// With WithCheckpoints enabled every completed stage is persisted as a
// YAML record, and a run can be resumed from the last completed stage
// (Resume) or from a named one (RunFrom). Progress is reported through
// log/slog; pass a logger with WithLogger or inherit slog.Default.
package pipeline
