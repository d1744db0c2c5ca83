package solvers

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/toralab/internal/ode"
)

// harmonicOscillator has the exact solution x(t) = cos(t), v(t) = -sin(t)
// for x0 = (1, 0).
type harmonicOscillator struct{}

func (h *harmonicOscillator) StateDim() int   { return 2 }
func (h *harmonicOscillator) ControlDim() int { return 0 }

func (h *harmonicOscillator) Derive(x ode.State, u ode.Control, t float64) ode.State {
	return ode.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x ode.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func integrateOscillator(t *testing.T, integ ode.Integrator, dt float64, steps int) ode.State {
	t.Helper()

	if r, ok := integ.(ode.Resettable); ok {
		r.Reset()
	}

	sys := &harmonicOscillator{}
	x := ode.State{1.0, 0.0}
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, nil, float64(i)*dt, dt)
	}
	return x
}

func TestEulerFirstOrder(t *testing.T) {
	x := integrateOscillator(t, NewEuler(), 0.001, 1000)

	if math.Abs(x[0]-math.Cos(1.0)) > 1e-2 {
		t.Errorf("euler position error too large: got %.6f, expected %.6f", x[0], math.Cos(1.0))
	}
}

func TestRK4Accuracy(t *testing.T) {
	x := integrateOscillator(t, NewRK4(), 0.01, 100)

	if math.Abs(x[0]-math.Cos(1.0)) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], math.Cos(1.0))
	}
	if math.Abs(x[1]+math.Sin(1.0)) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], -math.Sin(1.0))
	}
}

func TestDopriEnergyConservation(t *testing.T) {
	integ := NewDopri()
	sys := &harmonicOscillator{}
	x := ode.State{1.0, 0.0}

	initial := sys.Energy(x)
	dt := 0.01
	for i := 0; i < 10000; i++ {
		x = integ.Step(sys, x, nil, float64(i)*dt, dt)
	}

	drift := math.Abs(sys.Energy(x)-initial) / initial
	if drift > 1e-6 {
		t.Errorf("dopri energy drift too high: %e", drift)
	}
}

func TestDopriStepAdaptive(t *testing.T) {
	integ := NewDopri()
	sys := &harmonicOscillator{}

	x, taken, newDt, err := integ.StepAdaptive(sys, ode.State{1.0, 0.0}, nil, 0, 0.1, 1e-8)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if taken <= 0 || taken > 0.1 {
		t.Errorf("StepAdaptive took invalid step: %f", taken)
	}
	if newDt <= 0 {
		t.Errorf("StepAdaptive returned invalid dt: %f", newDt)
	}
}

func TestDopriRejectsOversizedStep(t *testing.T) {
	// A step well past the stability limit must be retried at a smaller
	// size, not accepted with a large error.
	integ := NewDopri()
	sys := &stiffDecay{}

	x, taken, _, err := integ.StepAdaptive(sys, ode.State{1.0}, nil, 0, 0.1, 1e-8)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if taken >= 0.1 {
		t.Fatalf("expected rejected trial to shrink the step, took %f", taken)
	}
	exact := math.Exp(-1000.0 * taken)
	if math.Abs(x[0]-exact) > 1e-6 {
		t.Errorf("accepted step inaccurate: got %e, exact %e", x[0], exact)
	}
}

func TestTrapezoidAccuracy(t *testing.T) {
	x := integrateOscillator(t, NewTrapezoid(), 0.01, 100)

	if math.Abs(x[0]-math.Cos(1.0)) > 1e-3 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], math.Cos(1.0))
	}
}

func TestBDFAccuracy(t *testing.T) {
	for _, order := range []int{1, 2, 3} {
		x := integrateOscillator(t, NewBDF(order), 0.01, 100)

		tol := 5e-3
		if order == 1 {
			tol = 5e-2 // backward Euler damps hard
		}
		if math.Abs(x[0]-math.Cos(1.0)) > tol {
			t.Errorf("order %d position error too large: got %.6f, expected %.6f",
				order, x[0], math.Cos(1.0))
		}
	}
}

func TestBDFOrderClamp(t *testing.T) {
	if got := NewBDF(0).Order(); got != 2 {
		t.Errorf("expected fallback order 2, got %d", got)
	}
	if got := NewBDF(99).Order(); got != 2 {
		t.Errorf("expected fallback order 2, got %d", got)
	}
	if got := NewBDF(4).Order(); got != 4 {
		t.Errorf("expected order 4, got %d", got)
	}
}

func TestBDFResetClearsHistory(t *testing.T) {
	integ := NewBDF(3)
	sys := &harmonicOscillator{}

	x := ode.State{1.0, 0.0}
	for i := 0; i < 5; i++ {
		x = integ.Step(sys, x, nil, float64(i)*0.01, 0.01)
	}
	if len(integ.history) == 0 {
		t.Fatal("expected step history after integration")
	}

	integ.Reset()
	if len(integ.history) != 0 {
		t.Error("Reset should clear history")
	}
}

type noTorque struct{}

func (noTorque) Compute(x ode.State, t float64) ode.Control { return nil }

func TestBDFAdaptiveRunRejected(t *testing.T) {
	// BDF keeps step history, so trial steps at mixed sizes would corrupt
	// it; the simulator must refuse up front instead of running anyway.
	s := ode.New(&harmonicOscillator{}, NewBDF(2), noTorque{})

	cfg := ode.Config{Dt: 0.1, Duration: 1.0, Adaptive: true, Tolerance: 1e-6}
	_, err := s.Run(context.Background(), ode.State{1.0, 0.0}, cfg)
	if !errors.Is(err, ode.ErrAdaptiveUnsupported) {
		t.Fatalf("expected ErrAdaptiveUnsupported, got %v", err)
	}

	cfg.Adaptive = false
	res, err := s.Run(context.Background(), ode.State{1.0, 0.0}, cfg)
	if err != nil {
		t.Fatalf("fixed-step run failed: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected run errors: %v", res.Errors)
	}
}

func TestRosenbrockAccuracy(t *testing.T) {
	x := integrateOscillator(t, NewRosenbrock(), 0.01, 100)

	if math.Abs(x[0]-math.Cos(1.0)) > 5e-3 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], math.Cos(1.0))
	}
}

func TestImplicitMatchesExplicitNonStiff(t *testing.T) {
	// On a non-stiff problem all methods should land close to each other;
	// implicit methods just pay more per step.
	xRK := integrateOscillator(t, NewRK4(), 0.005, 200)
	xTrap := integrateOscillator(t, NewTrapezoid(), 0.005, 200)
	xRos := integrateOscillator(t, NewRosenbrock(), 0.005, 200)

	if math.Abs(xRK[0]-xTrap[0]) > 1e-3 {
		t.Errorf("trapezoid disagrees with rk4: %.6f vs %.6f", xTrap[0], xRK[0])
	}
	if math.Abs(xRK[0]-xRos[0]) > 1e-3 {
		t.Errorf("rosenbrock disagrees with rk4: %.6f vs %.6f", xRos[0], xRK[0])
	}
}
