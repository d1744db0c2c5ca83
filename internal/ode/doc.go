// Package ode provides the core primitives for numerical simulation of
// ordinary differential equations.
//
//   - [State]: vector representing system state
//   - [System]: ODE right-hand side (dX/dt = f(X, u, t))
//   - [Integrator] / [AdaptiveIntegrator] / [CheckedIntegrator]: solvers
//   - [Controller]: feedback or forcing input
//   - [Simulator]: orchestrates one run and produces a [Result]
//
// # Example
//
//	sys := models.NewDoubleIntegrator()
//	integ := solvers.NewRK4()
//	sim := ode.New(sys, integ, control.NewNone(sys.ControlDim()))
//	result, _ := sim.Run(ctx, x0, cfg)
//
// # Thread safety
//
// Simulator instances are NOT thread-safe. For concurrent runs use
// [Ensemble], which builds a fresh Simulator per goroutine.
package ode
