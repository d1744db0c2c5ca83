package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/toralab/internal/ode"
)

func TestRegistryLookups(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"double_integrator", "tora", "coupled_tora"} {
		if _, err := r.GetModel(name); err != nil {
			t.Errorf("GetModel(%s): %v", name, err)
		}
	}
	for _, name := range []string{"euler", "rk4", "dopri", "trapezoid", "bdf", "rosenbrock"} {
		if _, err := r.GetSolver(name, nil); err != nil {
			t.Errorf("GetSolver(%s): %v", name, err)
		}
	}
	for _, name := range []string{"none", "constant", "pd", "pid"} {
		if _, err := r.GetController(name, 1, map[string]float64{}); err != nil {
			t.Errorf("GetController(%s): %v", name, err)
		}
	}

	if _, err := r.GetModel("lorenz"); err == nil {
		t.Error("expected error for unknown model")
	}
	if _, err := r.GetSolver("leapfrog", nil); err == nil {
		t.Error("expected error for unknown solver")
	}
}

func TestSetupDimensionMismatch(t *testing.T) {
	r := NewRegistry()
	sys, _ := r.GetModel("coupled_tora")
	solver, _ := r.GetSolver("rk4", nil)
	ctrl, _ := r.GetController("none", sys.ControlDim(), nil)

	e := New(Config{
		Model:     "coupled_tora",
		InitState: []float64{1.0, 0.0}, // needs 4
	})
	err := e.Setup(sys, solver, ctrl, nil)
	if !errors.Is(err, ode.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestModelParamsApplied(t *testing.T) {
	r := NewRegistry()
	sys, _ := r.GetModel("double_integrator")
	solver, _ := r.GetSolver("rk4", nil)
	ctrl, _ := r.GetController("none", sys.ControlDim(), nil)

	e := New(Config{
		Model:     "double_integrator",
		InitState: []float64{1.0, 0.0},
		Dt:        0.01,
		Duration:  0.1,
		Params:    map[string]float64{"k": 9.0, "kp": 5.0},
	})
	if err := e.Setup(sys, solver, ctrl, nil); err != nil {
		t.Fatal(err)
	}

	// stiffness=9 applied, stray controller gain ignored.
	dx := sys.Derive(ode.State{1.0, 0.0}, ode.Control{0}, 0)
	if math.Abs(dx[1]-(-9.0)) > 1e-12 {
		t.Errorf("expected acceleration -9.0 after param update, got %f", dx[1])
	}
}

// A damped double integrator must lose amplitude: from x0 = (1, 0) the
// position never returns to its starting magnitude.
func TestDampedRunDecays(t *testing.T) {
	r := NewRegistry()
	sys, err := r.GetModel("double_integrator")
	if err != nil {
		t.Fatal(err)
	}
	solver, _ := r.GetSolver("dopri", nil)
	ctrl, _ := r.GetController("none", sys.ControlDim(), nil)

	cfg := Config{
		Model:      "double_integrator",
		Solver:     "dopri",
		Controller: "none",
		InitState:  []float64{1.0, 0.0},
		Dt:         0.01,
		Duration:   10.0,
		Tolerance:  1e-8,
		Adaptive:   true,
		Params:     map[string]float64{"k": 2.0, "c": 0.5},
	}
	e := New(cfg)
	if err := e.Setup(sys, solver, ctrl, DefaultMetrics(sys)); err != nil {
		t.Fatal(err)
	}

	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected run errors: %v", res.Errors)
	}

	final := res.Final()
	if math.Abs(final[0]) >= 1.0 {
		t.Errorf("damped oscillator should decay, final position %f", final[0])
	}
	for i := 1; i < len(res.Times); i++ {
		if res.Times[i] <= res.Times[i-1] {
			t.Fatalf("times not monotone at %d: %f then %f", i-1, res.Times[i-1], res.Times[i])
		}
	}
	if res.Metrics["stability"] != 1.0 {
		t.Errorf("run should be stable, got %f", res.Metrics["stability"])
	}
}

func TestDefaultInitState(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.ListModels() {
		sys, _ := r.GetModel(name)
		x0 := DefaultInitState(name)
		if len(x0) != sys.StateDim() {
			t.Errorf("%s: default init state has %d entries, model wants %d",
				name, len(x0), sys.StateDim())
		}
	}
}
