package models

import (
	"fmt"
	"math"

	"github.com/san-kum/toralab/internal/ode"
)

// CoupledTORA is two rotational oscillators joined by a linear spring.
// State is [theta1, theta2, omega1, omega2]. Raising Coupling separates
// the time scales and pushes the system toward stiffness, which is the
// point of the exercise.
type CoupledTORA struct {
	Damping1   float64 // d1
	Stiffness1 float64 // c1
	Damping2   float64 // d2
	Stiffness2 float64 // c2
	Coupling   float64 // k, spring between the two rotors
	Input1     float64
	Input2     float64
}

func NewCoupledTORA() *CoupledTORA {
	return &CoupledTORA{
		Damping1:   0.1,
		Stiffness1: 3.0,
		Damping2:   0.1,
		Stiffness2: 3.0,
		Coupling:   20.0,
		Input1:     0.0,
		Input2:     0.0,
	}
}

func (m *CoupledTORA) StateDim() int   { return 4 }
func (m *CoupledTORA) ControlDim() int { return 2 }

func (m *CoupledTORA) Derive(x ode.State, u ode.Control, t float64) ode.State {
	theta1, theta2 := x[0], x[1]
	omega1, omega2 := x[2], x[3]

	// The spring acts on the angular offset; equal angles mean zero
	// coupling torque regardless of Coupling.
	spring := m.Coupling * (theta2 - theta1)

	alpha1 := -m.Damping1*omega1 - m.Stiffness1*math.Sin(theta1) + spring + m.Input1
	alpha2 := -m.Damping2*omega2 - m.Stiffness2*math.Sin(theta2) - spring + m.Input2

	if len(u) > 0 {
		alpha1 += u[0]
	}
	if len(u) > 1 {
		alpha2 += u[1]
	}

	return ode.State{omega1, omega2, alpha1, alpha2}
}

func (m *CoupledTORA) Energy(x ode.State) float64 {
	ke := 0.5 * (x[2]*x[2] + x[3]*x[3])
	pe := m.Stiffness1*(1.0-math.Cos(x[0])) + m.Stiffness2*(1.0-math.Cos(x[1]))
	offset := x[1] - x[0]
	spring := 0.5 * m.Coupling * offset * offset
	return ke + pe + spring
}

func (m *CoupledTORA) GetParams() map[string]float64 {
	return map[string]float64{
		"d1":     m.Damping1,
		"c1":     m.Stiffness1,
		"d2":     m.Damping2,
		"c2":     m.Stiffness2,
		"k":      m.Coupling,
		"input1": m.Input1,
		"input2": m.Input2,
	}
}

func (m *CoupledTORA) SetParam(name string, value float64) error {
	switch name {
	case "d1":
		m.Damping1 = value
	case "c1":
		m.Stiffness1 = value
	case "d2":
		m.Damping2 = value
	case "c2":
		m.Stiffness2 = value
	case "k":
		m.Coupling = value
	case "input1":
		m.Input1 = value
	case "input2":
		m.Input2 = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
