package models

import (
	"math"
	"testing"

	"github.com/san-kum/toralab/internal/ode"
)

func TestCoupledTORAZeroOffset(t *testing.T) {
	// With theta1 == theta2 the spring term vanishes regardless of the
	// coupling magnitude: both rotors behave like free TORA oscillators.
	for _, k := range []float64{0.0, 1.0, 20.0, 1e6} {
		m := NewCoupledTORA()
		m.Coupling = k
		m.Input1 = 0
		m.Input2 = 0

		theta := 0.7
		dx := m.Derive(ode.State{theta, theta, 0, 0}, nil, 0)

		free := -m.Stiffness1 * math.Sin(theta)
		if math.Abs(dx[2]-free) > 1e-12 {
			t.Errorf("k=%g: alpha1 = %f, want uncoupled %f", k, dx[2], free)
		}
		if math.Abs(dx[3]-free) > 1e-12 {
			t.Errorf("k=%g: alpha2 = %f, want uncoupled %f", k, dx[3], free)
		}
	}
}

func TestCoupledTORASpringAntisymmetry(t *testing.T) {
	m := NewCoupledTORA()
	m.Damping1 = 0
	m.Damping2 = 0
	m.Stiffness1 = 0
	m.Stiffness2 = 0
	m.Coupling = 10.0

	// Only the spring acts: it must pull the rotors together with equal
	// and opposite torque.
	dx := m.Derive(ode.State{0.0, 1.0, 0, 0}, nil, 0)

	if math.Abs(dx[2]-10.0) > 1e-12 {
		t.Errorf("alpha1 = %f, want 10.0", dx[2])
	}
	if math.Abs(dx[3]+10.0) > 1e-12 {
		t.Errorf("alpha2 = %f, want -10.0", dx[3])
	}
}

func TestCoupledTORAStateOrdering(t *testing.T) {
	m := NewCoupledTORA()

	// State layout is [theta1, theta2, omega1, omega2]; the first two
	// derivative entries are the angular velocities.
	dx := m.Derive(ode.State{0.1, 0.2, 3.0, -4.0}, nil, 0)

	if dx[0] != 3.0 {
		t.Errorf("dx[0] should be omega1, got %f", dx[0])
	}
	if dx[1] != -4.0 {
		t.Errorf("dx[1] should be omega2, got %f", dx[1])
	}
}

func TestCoupledTORADimensions(t *testing.T) {
	m := NewCoupledTORA()
	if m.StateDim() != 4 {
		t.Errorf("expected state dim 4, got %d", m.StateDim())
	}
	if m.ControlDim() != 2 {
		t.Errorf("expected control dim 2, got %d", m.ControlDim())
	}
}

func TestCoupledTORAEnergy(t *testing.T) {
	m := NewCoupledTORA()
	m.Coupling = 20.0

	rest := m.Energy(ode.State{0, 0, 0, 0})
	if rest != 0 {
		t.Errorf("expected zero energy at rest, got %f", rest)
	}

	stretched := m.Energy(ode.State{0, 1.0, 0, 0})
	if stretched <= 0 {
		t.Errorf("expected positive spring energy for angular offset, got %f", stretched)
	}
}
