package config

var Presets = map[string]map[string]*Config{
	"double_integrator": {
		"default": {
			Model: "double_integrator", Solver: "rk4", Dt: 0.01, Duration: 10.0,
			InitState: InitStateConfig{Pos: 1.0, Vel: 0.0},
		},
		"stiff": {
			Model: "double_integrator", Solver: "rosenbrock", Dt: 0.01, Duration: 10.0,
			InitState:   InitStateConfig{Pos: 1.0, Vel: 0.0},
			ModelParams: map[string]float64{"k": 1000.0, "c": 100.0},
		},
		"overdamped": {
			Model: "double_integrator", Solver: "rk4", Dt: 0.01, Duration: 20.0,
			InitState:   InitStateConfig{Pos: 1.0, Vel: 0.0},
			ModelParams: map[string]float64{"k": 1.0, "c": 5.0},
		},
	},
	"tora": {
		"free": {
			Model: "tora", Solver: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: InitStateConfig{Theta: 0.5, Omega: 0.0},
		},
		"forced": {
			Model: "tora", Solver: "rk4", Controller: "constant", Dt: 0.01, Duration: 20.0,
			InitState:        InitStateConfig{Theta: 0.0, Omega: 0.0},
			ControllerParams: ControllerConfig{Torque: 1.0},
		},
		"regulated": {
			Model: "tora", Solver: "rk4", Controller: "pd", Dt: 0.01, Duration: 15.0,
			InitState:        InitStateConfig{Theta: 1.0, Omega: 0.0},
			ControllerParams: ControllerConfig{Kp: 10.0, Kd: 4.0},
		},
	},
	"coupled_tora": {
		"sync": {
			Model: "coupled_tora", Solver: "rk4", Dt: 0.005, Duration: 30.0,
			InitState: InitStateConfig{Theta1: 0.5, Theta2: 0.5},
		},
		"exchange": {
			Model: "coupled_tora", Solver: "rk4", Dt: 0.005, Duration: 30.0,
			InitState: InitStateConfig{Theta1: 0.5, Theta2: -0.5},
		},
		"stiff_coupling": {
			Model: "coupled_tora", Solver: "bdf", Dt: 0.01, Duration: 20.0,
			InitState:   InitStateConfig{Theta1: 0.5, Theta2: -0.3},
			ModelParams: map[string]float64{"k": 2000.0, "bdf_order": 3},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
