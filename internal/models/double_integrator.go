package models

import (
	"fmt"

	"github.com/san-kum/toralab/internal/ode"
)

// DoubleIntegrator is a damped harmonic oscillator: the simplest
// translational robot motion model. State is [position, velocity].
// With Stiffness and Damping zero it degenerates to the pure double
// integrator where the control input is the acceleration.
type DoubleIntegrator struct {
	Stiffness float64 // k
	Damping   float64 // c
}

func NewDoubleIntegrator() *DoubleIntegrator {
	return &DoubleIntegrator{
		Stiffness: 2.0,
		Damping:   0.5,
	}
}

func (d *DoubleIntegrator) StateDim() int   { return 2 }
func (d *DoubleIntegrator) ControlDim() int { return 1 }

func (d *DoubleIntegrator) Derive(x ode.State, u ode.Control, t float64) ode.State {
	pos := x[0]
	vel := x[1]

	accel := -d.Stiffness*pos - d.Damping*vel
	if len(u) > 0 {
		accel += u[0]
	}

	return ode.State{vel, accel}
}

func (d *DoubleIntegrator) Energy(x ode.State) float64 {
	ke := 0.5 * x[1] * x[1]
	pe := 0.5 * d.Stiffness * x[0] * x[0]
	return ke + pe
}

func (d *DoubleIntegrator) GetParams() map[string]float64 {
	return map[string]float64{
		"k": d.Stiffness,
		"c": d.Damping,
	}
}

func (d *DoubleIntegrator) SetParam(name string, value float64) error {
	switch name {
	case "k":
		d.Stiffness = value
	case "c":
		d.Damping = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
