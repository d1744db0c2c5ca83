package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/toralab/internal/ode"
)

// Config names the pieces of a run. Model, Solver, and Controller are
// registry keys; Params feeds both model tuning (stiffness, damping) and
// controller gains.
type Config struct {
	Model      string
	Solver     string
	Controller string
	InitState  []float64
	Dt         float64
	Duration   float64
	Seed       int64
	Tolerance  float64
	Adaptive   bool
	Params     map[string]float64
}

type Experiment struct {
	cfg       Config
	sys       ode.System
	simulator *ode.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the simulator from resolved components. Model parameters from
// cfg.Params are applied here so presets and CLI flags land in one place.
func (e *Experiment) Setup(sys ode.System, solver ode.Integrator, controller ode.Controller, metrics []ode.Metric) error {
	if len(e.cfg.InitState) != sys.StateDim() {
		return fmt.Errorf("%w: model %s wants %d states, got %d",
			ode.ErrDimensionMismatch, e.cfg.Model, sys.StateDim(), len(e.cfg.InitState))
	}

	if cfg, ok := sys.(ode.Configurable); ok {
		for name, value := range e.cfg.Params {
			// Controller gains share the same map; names the model does not
			// recognize are simply not its parameters.
			_ = cfg.SetParam(name, value)
		}
	}

	e.sys = sys
	e.simulator = ode.New(sys, solver, controller)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*ode.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	x0 := make(ode.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)

	simCfg := ode.DefaultConfig()
	simCfg.Dt = e.cfg.Dt
	simCfg.Duration = e.cfg.Duration
	simCfg.Seed = e.cfg.Seed
	simCfg.Adaptive = e.cfg.Adaptive
	if e.cfg.Tolerance > 0 {
		simCfg.Tolerance = e.cfg.Tolerance
	}

	return e.simulator.Run(ctx, x0, simCfg)
}

func (e *Experiment) System() ode.System {
	return e.sys
}

// Simulator exposes the underlying simulator for adding observers.
func (e *Experiment) Simulator() *ode.Simulator {
	return e.simulator
}
