// Package solvers provides interchangeable ODE integration methods behind
// the [ode.Integrator] interface.
//
// Explicit, for non-stiff problems:
//
//   - [Euler]: forward Euler, first order
//   - [RK4]: classic Runge-Kutta, fourth order, fixed step
//   - [Dopri]: Dormand-Prince 5(4), adaptive step with error control
//
// Implicit, for stiff problems:
//
//   - [Trapezoid]: trapezoidal rule, A-stable, Newton per step
//   - [BDF]: Gear's backward differentiation formulas, orders 1-6
//   - [Rosenbrock]: two-stage linearly implicit scheme, L-stable
//
// The implicit methods use finite-difference Jacobians and gonum LU solves.
// Their Newton iterations can fail on pathologically stiff inputs with loose
// tolerances; the failure surfaces through [ode.CheckedIntegrator] as
// [ode.ErrNoConvergence] and ends the run with a truncated trajectory.
package solvers
