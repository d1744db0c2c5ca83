package control

import "github.com/san-kum/toralab/internal/ode"

// Constant applies a fixed torque to every actuator, the simplest forcing
// for free-vs-forced oscillation experiments.
type Constant struct {
	Torque float64
	dim    int
}

func NewConstant(dim int, torque float64) *Constant {
	return &Constant{Torque: torque, dim: dim}
}

func (c *Constant) Compute(x ode.State, t float64) ode.Control {
	u := make(ode.Control, c.dim)
	for i := range u {
		u[i] = c.Torque
	}
	return u
}
