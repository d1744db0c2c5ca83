// Package metrics provides run-level diagnostics computed online during a
// simulation: energy drift, stability, and mean control effort. Each metric
// implements [ode.Metric] and resets between runs.
package metrics
