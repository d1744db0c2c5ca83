package solvers

import (
	"math"
	"testing"

	"github.com/san-kum/toralab/internal/ode"
)

// stiffDecay is dx/dt = -1000*x. At dt=0.01 the explicit stability limit
// (dt < 2/1000) is violated by a factor of five.
type stiffDecay struct{}

func (s *stiffDecay) StateDim() int   { return 1 }
func (s *stiffDecay) ControlDim() int { return 0 }

func (s *stiffDecay) Derive(x ode.State, u ode.Control, t float64) ode.State {
	return ode.State{-1000.0 * x[0]}
}

func TestEulerDivergesOnStiff(t *testing.T) {
	integ := NewEuler()
	sys := &stiffDecay{}

	x := ode.State{1.0}
	dt := 0.01
	for i := 0; i < 50; i++ {
		x = integ.Step(sys, x, nil, float64(i)*dt, dt)
	}

	// Amplification factor |1 - 1000*dt| = 9 per step.
	if math.Abs(x[0]) < 1e6 {
		t.Errorf("expected explicit euler to diverge on stiff system, got %e", x[0])
	}
}

func TestImplicitStableOnStiff(t *testing.T) {
	sys := &stiffDecay{}
	dt := 0.01
	steps := 50

	integs := map[string]ode.Integrator{
		"trapezoid":  NewTrapezoid(),
		"bdf":        NewBDF(2),
		"rosenbrock": NewRosenbrock(),
	}

	for name, integ := range integs {
		t.Run(name, func(t *testing.T) {
			if r, ok := integ.(ode.Resettable); ok {
				r.Reset()
			}

			x := ode.State{1.0}
			for i := 0; i < steps; i++ {
				x = integ.Step(sys, x, nil, float64(i)*dt, dt)
				if math.Abs(x[0]) > 1.0 {
					t.Fatalf("step %d grew beyond initial value: %e", i, x[0])
				}
			}

			// Exact solution is effectively zero by t=0.5.
			if math.Abs(x[0]) > 1e-2 {
				t.Errorf("expected decay toward zero, got %e", x[0])
			}
		})
	}
}

func TestImplicitCheckedStepOnStiff(t *testing.T) {
	sys := &stiffDecay{}

	for name, integ := range map[string]ode.CheckedIntegrator{
		"trapezoid":  NewTrapezoid(),
		"bdf":        NewBDF(2),
		"rosenbrock": NewRosenbrock(),
	} {
		t.Run(name, func(t *testing.T) {
			x, err := integ.StepChecked(sys, ode.State{1.0}, nil, 0, 0.01)
			if err != nil {
				t.Fatalf("StepChecked failed: %v", err)
			}
			if !x.IsValid() {
				t.Error("StepChecked produced invalid state")
			}
		})
	}
}
