package models

import (
	"math"
	"testing"

	"github.com/san-kum/toralab/internal/ode"
)

func TestTORAEquilibrium(t *testing.T) {
	m := NewTORA()
	m.Damping = 0.1
	m.Stiffness = 3.0
	m.Input = 0.0

	dx := m.Derive(ode.State{0, 0}, ode.Control{0}, 0)

	if math.Abs(dx[0]) > 1e-15 {
		t.Errorf("expected zero angular velocity at equilibrium, got %f", dx[0])
	}
	if math.Abs(dx[1]) > 1e-15 {
		t.Errorf("expected zero angular acceleration at equilibrium, got %f", dx[1])
	}
}

func TestTORAClosedForm(t *testing.T) {
	// dx[1] must match -d*omega - c*sin(theta) + input for every sample.
	thetas := []float64{-math.Pi, -1.0, 0, 0.5, math.Pi / 2, 3.0}
	omegas := []float64{-2.0, 0, 1.5}
	params := []struct{ d, c, input float64 }{
		{0.1, 3.0, 0.0},
		{0.0, 1.0, 0.0},
		{0.5, 9.81, 1.5},
	}

	for _, p := range params {
		m := &TORA{Damping: p.d, Stiffness: p.c, Input: p.input}
		for _, theta := range thetas {
			for _, omega := range omegas {
				dx := m.Derive(ode.State{theta, omega}, nil, 0)

				expected := -p.d*omega - p.c*math.Sin(theta) + p.input
				if math.Abs(dx[1]-expected) > 1e-12 {
					t.Errorf("d=%.2f c=%.2f input=%.2f theta=%.2f omega=%.2f: got %f, want %f",
						p.d, p.c, p.input, theta, omega, dx[1], expected)
				}
				if dx[0] != omega {
					t.Errorf("dx[0] should be omega exactly, got %f want %f", dx[0], omega)
				}
			}
		}
	}
}

func TestTORAForced(t *testing.T) {
	m := NewTORA()
	m.Input = 2.0

	dx := m.Derive(ode.State{0, 0}, nil, 0)
	if math.Abs(dx[1]-2.0) > 1e-15 {
		t.Errorf("expected input torque to appear in acceleration, got %f", dx[1])
	}
}

func TestTORAEnergyAtRest(t *testing.T) {
	m := NewTORA()
	if e := m.Energy(ode.State{0, 0}); e != 0 {
		t.Errorf("expected zero energy at rest, got %f", e)
	}
	if e := m.Energy(ode.State{math.Pi, 0}); e <= 0 {
		t.Errorf("expected positive energy at inverted position, got %f", e)
	}
}
