// Package scan sweeps the effective potential over grids of coupling
// tuples and persists the outcomes.
//
// The scan package provides:
//
//   - Tuple and Row, the unit of work and its labeled outcome;
//   - Sweeper, a worker pool that runs the global search per tuple with
//     a shared curvature cache, honoring context cancellation;
//   - Config, a YAML sweep description expanded into the cartesian
//     product of its axes;
//   - WriteCSV for flat exports and Store for SQLite persistence keyed
//     by run id;
//   - AlphaSweep and FamilySweep, the one-axis slices used to chart
//     regime transitions.
//
// Rows never carry an error value across the pool boundary: a failed
// tuple records its error string in place and the sweep continues, so an
// aggregate is always positionally complete.
package scan
