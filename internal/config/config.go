package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 0.01
	DefaultDuration  = 10.0
	DefaultTolerance = 1e-6
	DefaultPos       = 1.0
	DefaultTheta     = 0.5
	DefaultKp        = 10.0
	DefaultKi        = 0.1
	DefaultKd        = 5.0
)

type Config struct {
	Model            string             `yaml:"model"`
	Solver           string             `yaml:"solver"`
	Controller       string             `yaml:"controller"`
	Dt               float64            `yaml:"dt"`
	Duration         float64            `yaml:"duration"`
	Seed             int64              `yaml:"seed"`
	Tolerance        float64            `yaml:"tolerance"`
	Adaptive         bool               `yaml:"adaptive"`
	InitState        InitStateConfig    `yaml:"init_state"`
	ControllerParams ControllerConfig   `yaml:"controller_params"`
	ModelParams      map[string]float64 `yaml:"model_params"`
}

type InitStateConfig struct {
	Pos    float64 `yaml:"pos"`
	Vel    float64 `yaml:"vel"`
	Theta  float64 `yaml:"theta"`
	Omega  float64 `yaml:"omega"`
	Theta1 float64 `yaml:"theta1"`
	Theta2 float64 `yaml:"theta2"`
	Omega1 float64 `yaml:"omega1"`
	Omega2 float64 `yaml:"omega2"`
}

type ControllerConfig struct {
	Kp     float64 `yaml:"kp"`
	Ki     float64 `yaml:"ki"`
	Kd     float64 `yaml:"kd"`
	Target float64 `yaml:"target"`
	Torque float64 `yaml:"torque"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "double_integrator",
		Solver:     "rk4",
		Controller: "none",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Tolerance:  DefaultTolerance,
		InitState: InitStateConfig{
			Pos:   DefaultPos,
			Theta: DefaultTheta,
		},
		ControllerParams: ControllerConfig{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetInitState maps the named fields onto each model's state vector.
// Coupled TORA state order is [theta1, theta2, omega1, omega2].
func (c *Config) GetInitState() []float64 {
	switch c.Model {
	case "coupled_tora":
		return []float64{c.InitState.Theta1, c.InitState.Theta2, c.InitState.Omega1, c.InitState.Omega2}
	case "tora":
		return []float64{c.InitState.Theta, c.InitState.Omega}
	default:
		return []float64{c.InitState.Pos, c.InitState.Vel}
	}
}

// GetParams flattens controller gains and model parameters into the single
// map the registry factories consume.
func (c *Config) GetParams() map[string]float64 {
	params := map[string]float64{
		"kp":     c.ControllerParams.Kp,
		"ki":     c.ControllerParams.Ki,
		"kd":     c.ControllerParams.Kd,
		"target": c.ControllerParams.Target,
		"torque": c.ControllerParams.Torque,
	}
	for name, value := range c.ModelParams {
		params[name] = value
	}
	return params
}
