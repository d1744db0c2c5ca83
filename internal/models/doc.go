// Package models provides the toy robotics dynamics used to compare ODE
// solvers.
//
//   - [DoubleIntegrator]: damped harmonic oscillator, the simplest
//     translational motion model
//   - [TORA]: 1-DoF rotational oscillator, nonlinear via sin(theta)
//   - [CoupledTORA]: two rotational oscillators joined by a linear spring
//
// Every model is a pure derivative function: no side effects, total over
// real inputs. All implement [ode.Hamiltonian] for energy-drift tracking
// and [ode.Configurable] for parameter tuning. External forcing enters
// additively through the control input, never by modifying a model body.
package models
