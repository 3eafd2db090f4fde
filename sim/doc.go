// Package sim provides the single-server queue simulation core for opsim.
//
// # Reading Guide
//
// Start with these files to understand the core:
//   - customer.go: CustomerRecord, Trace and the customer lifecycle states
//   - simulator.go: Simulate, the pure fold that threads server-free time
//   - reconcile.go: Reconcile, observed metrics against M/M/1 closed forms
//
// # Pipeline
//
// A run flows through three entry points:
//
//	variate.Generate / PartitionedRNG  →  Simulate  →  Reconcile
//
// Run composes them for a validated Config. Each call builds its own
// PartitionedRNG, so two runs never share mutable state.
//
// # Sub-packages
//   - sim/variate/: seeded distributions (uniform, Bernoulli, categorical,
//     normal, exponential, Erlang)
//   - sim/scenario/: YAML scenario files
//   - sim/trace/: trace summaries and CSV export
//   - sim/report/: console, YAML and Prometheus reports
//
// All trace times are minutes; rates are customers per hour.
package sim
