package ode

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

type Control []float64

// System is a pure derivative function dX/dt = f(X, u, t).
// Derive must not mutate x or u and must return a fresh vector.
type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// Hamiltonian is implemented by systems with a conserved (or damped)
// total energy, used for drift bookkeeping.
type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(sys System, x State, u Control, t float64, dt float64) State
}

// AdaptiveIntegrator adjusts its own step size against a local error
// tolerance. StepAdaptive retries rejected trials internally and returns
// the new state, the step actually taken and a suggested next dt.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, u Control, t, dt, tol float64) (State, float64, float64, error)
}

// CheckedIntegrator is implemented by solvers whose step can fail outright,
// e.g. implicit methods whose Newton iteration does not converge.
type CheckedIntegrator interface {
	Integrator
	StepChecked(sys System, x State, u Control, t, dt float64) (State, error)
}

// Resettable is implemented by solvers that carry step history across
// calls (multistep methods). Reset is called at the start of every run.
type Resettable interface {
	Reset()
}

type Controller interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, t float64)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Tolerance:     1e-6,
		MaxDt:         0.1,
		MinDt:         1e-8,
		Adaptive:      false,
		ValidateState: true,
	}
}

// Result is one sampled trajectory. It is owned by the caller of Run and
// never retained by the simulator.
type Result struct {
	States      []State
	Controls    []Control
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	FuncEvals   int
	Errors      []error
}

func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// Column extracts one state variable as a time series.
func (r *Result) Column(idx int) []float64 {
	data := make([]float64, len(r.States))
	for i := range r.States {
		if idx < len(r.States[i]) {
			data[i] = r.States[i][idx]
		}
	}
	return data
}
