package solvers

import "github.com/san-kum/toralab/internal/ode"

// Euler is the forward Euler method. Cheapest possible step, unstable on
// stiff systems; kept as the baseline for solver comparisons.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys ode.System, x ode.State, u ode.Control, t float64, dt float64) ode.State {
	dx := sys.Derive(x, u, t)
	result := make(ode.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
