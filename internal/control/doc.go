// Package control provides forcing and feedback inputs for the oscillator
// models.
//
//   - [None]: zero input (free oscillation)
//   - [Constant]: fixed external torque
//   - [PD]: proportional-derivative feedback on the first coordinate
//   - [PID]: PD plus an integral leg
//
// Controllers compose with models additively through [ode.Controller]; a
// model's derivative body is never edited to add forcing. PD and PID
// implement [ode.Configurable] for live tuning.
package control
