package ode

import (
	"context"
	"fmt"
	"math"
)

// Simulator drives one System with one Integrator and one Controller.
// Instances are not safe for concurrent use; see Ensemble.
type Simulator struct {
	sys        System
	integrator Integrator
	controller Controller
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator, controller Controller) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		controller: controller,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// countingSystem tracks derivative evaluations so solver cost shows up in
// the trajectory, not just wall time.
type countingSystem struct {
	System
	evals int
}

func (c *countingSystem) Derive(x State, u Control, t float64) State {
	c.evals++
	return c.System.Derive(x, u, t)
}

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.sys.StateDim() {
		return nil, fmt.Errorf("%w: state has %d entries, system wants %d",
			ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}
	if cfg.Adaptive {
		// Step doubling re-runs the same interval at mixed step sizes, which
		// poisons a multistep method's history. Only solvers with a native
		// error estimate may run adaptively.
		_, native := s.integrator.(AdaptiveIntegrator)
		if _, multistep := s.integrator.(Resettable); multistep && !native {
			return nil, fmt.Errorf("%w: use fixed-step mode or an adaptive solver", ErrAdaptiveUnsupported)
		}
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	if r, ok := s.integrator.(Resettable); ok {
		r.Reset()
	}

	counted := &countingSystem{System: s.sys}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		States:   make([]State, 0, steps+1),
		Controls: make([]Control, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := s.computeEnergy(x)

	for step := 0; ; step++ {
		if cfg.Adaptive {
			if t >= cfg.Duration-1e-12 {
				break
			}
		} else if step >= steps {
			break
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		u := s.controller.Compute(x, t)

		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, t)
		}

		var newX State
		var taken float64
		var stepErr error

		if cfg.Adaptive {
			// Never step past the end of the span.
			if t+dt > cfg.Duration {
				dt = cfg.Duration - t
			}
			newX, taken, dt, stepErr = s.adaptiveStep(counted, x, u, t, dt, cfg)
		} else {
			taken = dt
			if checked, ok := s.integrator.(CheckedIntegrator); ok {
				newX, stepErr = checked.StepChecked(counted, x, u, t, dt)
			} else {
				newX = s.integrator.Step(counted, x, u, t, dt)
			}
		}

		if stepErr != nil {
			result.Errors = append(result.Errors,
				&SimulationError{Step: step, Time: t, State: x.Clone(), Wrapped: stepErr})
			break
		}

		if cfg.ValidateState && !newX.IsValid() {
			result.Errors = append(result.Errors,
				&SimulationError{Step: step, Time: t, State: newX.Clone(), Wrapped: ErrInvalidState})
			break
		}

		x = newX
		t += taken
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u)
		result.Times = append(result.Times, t)
	}

	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}
	result.FuncEvals = counted.evals

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

func (s *Simulator) computeEnergy(x State) float64 {
	if h, ok := s.sys.(Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}

// adaptiveStep returns the new state, the step actually taken, and the
// suggested next dt. Solvers without native error estimates fall back to
// step doubling.
func (s *Simulator) adaptiveStep(sys System, x State, u Control, t, dt float64, cfg Config) (State, float64, float64, error) {
	minDt := cfg.MinDt
	if minDt <= 0 {
		minDt = 1e-10
	}
	maxDt := cfg.MaxDt
	if maxDt <= 0 {
		maxDt = cfg.Duration
	}

	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		newX, taken, nextDt, err := adaptive.StepAdaptive(sys, x, u, t, dt, cfg.Tolerance)
		if err != nil {
			return nil, 0, dt, err
		}
		return newX, taken, clamp(nextDt, minDt, maxDt), nil
	}

	for {
		x1 := s.integrator.Step(sys, x, u, t, dt)
		xHalf := s.integrator.Step(sys, x, u, t, dt/2)
		x2 := s.integrator.Step(sys, xHalf, u, t+dt/2, dt/2)

		errEst := x1.Sub(x2).Norm()

		if errEst > cfg.Tolerance {
			if dt/2 < minDt {
				return nil, 0, dt, ErrStepTooSmall
			}
			dt /= 2
			continue
		}

		next := dt
		if errEst < cfg.Tolerance/10 {
			next = math.Min(dt*2, maxDt)
		}
		return x2, dt, next, nil
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RunWithCallback streams states without building a trajectory; the run
// stops when the callback returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, Control, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		u := s.controller.Compute(x, t)

		if !callback(x, u, t) {
			return nil
		}

		x = s.integrator.Step(s.sys, x, u, t, dt)
		t += dt

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("invalid state at t=%.4f: %w", t, ErrInvalidState)
		}
	}

	return nil
}
