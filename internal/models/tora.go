package models

import (
	"fmt"
	"math"

	"github.com/san-kum/toralab/internal/ode"
)

// TORA is a single rotational oscillator, the 1-DoF reduction of the
// translational-oscillator-with-rotational-actuator benchmark. State is
// [theta, omega]; nonlinear through sin(theta).
//
// Input is a constant external torque baked into the parameter vector for
// free-vs-forced experiments; time-varying forcing composes additively
// through a Controller instead of editing the derivative.
type TORA struct {
	Damping   float64 // d
	Stiffness float64 // c, gravity-like restoring coefficient
	Input     float64 // constant external torque
}

func NewTORA() *TORA {
	return &TORA{
		Damping:   0.1,
		Stiffness: 3.0,
		Input:     0.0,
	}
}

func (m *TORA) StateDim() int   { return 2 }
func (m *TORA) ControlDim() int { return 1 }

func (m *TORA) Derive(x ode.State, u ode.Control, t float64) ode.State {
	theta := x[0]
	omega := x[1]

	alpha := -m.Damping*omega - m.Stiffness*math.Sin(theta) + m.Input
	if len(u) > 0 {
		alpha += u[0]
	}

	return ode.State{omega, alpha}
}

func (m *TORA) Energy(x ode.State) float64 {
	ke := 0.5 * x[1] * x[1]
	pe := m.Stiffness * (1.0 - math.Cos(x[0]))
	return ke + pe
}

func (m *TORA) GetParams() map[string]float64 {
	return map[string]float64{
		"d":     m.Damping,
		"c":     m.Stiffness,
		"input": m.Input,
	}
}

func (m *TORA) SetParam(name string, value float64) error {
	switch name {
	case "d":
		m.Damping = value
	case "c":
		m.Stiffness = value
	case "input":
		m.Input = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
