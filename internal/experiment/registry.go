package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/toralab/internal/control"
	"github.com/san-kum/toralab/internal/metrics"
	"github.com/san-kum/toralab/internal/models"
	"github.com/san-kum/toralab/internal/ode"
	"github.com/san-kum/toralab/internal/solvers"
)

type Registry struct {
	models      map[string]func() ode.System
	solvers     map[string]func(map[string]float64) ode.Integrator
	controllers map[string]func(int, map[string]float64) ode.Controller
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func() ode.System),
		solvers:     make(map[string]func(map[string]float64) ode.Integrator),
		controllers: make(map[string]func(int, map[string]float64) ode.Controller),
	}

	r.models["double_integrator"] = func() ode.System { return models.NewDoubleIntegrator() }
	r.models["tora"] = func() ode.System { return models.NewTORA() }
	r.models["coupled_tora"] = func() ode.System { return models.NewCoupledTORA() }

	r.solvers["euler"] = func(map[string]float64) ode.Integrator { return solvers.NewEuler() }
	r.solvers["rk4"] = func(map[string]float64) ode.Integrator { return solvers.NewRK4() }
	r.solvers["dopri"] = func(map[string]float64) ode.Integrator { return solvers.NewDopri() }
	r.solvers["trapezoid"] = func(map[string]float64) ode.Integrator { return solvers.NewTrapezoid() }
	r.solvers["bdf"] = func(params map[string]float64) ode.Integrator {
		order := int(params["bdf_order"])
		if order == 0 {
			order = 2
		}
		return solvers.NewBDF(order)
	}
	r.solvers["rosenbrock"] = func(map[string]float64) ode.Integrator { return solvers.NewRosenbrock() }

	r.controllers["none"] = func(dim int, params map[string]float64) ode.Controller {
		return control.NewNone(dim)
	}
	r.controllers["constant"] = func(dim int, params map[string]float64) ode.Controller {
		return control.NewConstant(dim, params["torque"])
	}
	r.controllers["pd"] = func(dim int, params map[string]float64) ode.Controller {
		return control.NewPD(dim, params["kp"], params["kd"], params["target"])
	}
	r.controllers["pid"] = func(dim int, params map[string]float64) ode.Controller {
		return control.NewPID(dim, params["kp"], params["ki"], params["kd"], params["target"])
	}

	return r
}

func (r *Registry) GetModel(name string) (ode.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetSolver(name string, params map[string]float64) (ode.Integrator, error) {
	fn, ok := r.solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) GetController(name string, dim int, params map[string]float64) (ode.Controller, error) {
	fn, ok := r.controllers[name]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s", name)
	}
	return fn(dim, params), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListSolvers() []string {
	names := make([]string, 0, len(r.solvers))
	for name := range r.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListControllers() []string {
	names := make([]string, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultInitState gives each model a mild off-equilibrium start.
func DefaultInitState(model string) []float64 {
	switch model {
	case "coupled_tora":
		return []float64{0.5, -0.3, 0.0, 0.0}
	case "tora":
		return []float64{0.5, 0.0}
	default:
		return []float64{1.0, 0.0}
	}
}

func DefaultMetrics(sys ode.System) []ode.Metric {
	return []ode.Metric{
		metrics.NewEnergyDrift(sys),
		metrics.NewStability(50.0),
		metrics.NewControlEffort(),
	}
}
