package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/toralab/internal/ode"
)

type ExportData struct {
	Model       string             `json:"model"`
	Solver      string             `json:"solver"`
	Controller  string             `json:"controller"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	FuncEvals   int                `json:"func_evals"`
	EnergyDrift float64            `json:"energy_drift"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	Controls    [][]float64        `json:"controls"`
	Metrics     map[string]float64 `json:"metrics"`
}

func buildExport(model, solver, controller string, dt, duration float64, result *ode.Result) ExportData {
	data := ExportData{
		Model:       model,
		Solver:      solver,
		Controller:  controller,
		Dt:          dt,
		Duration:    duration,
		Steps:       result.StepsTaken,
		FuncEvals:   result.FuncEvals,
		EnergyDrift: result.EnergyDrift,
		Times:       result.Times,
		States:      make([][]float64, len(result.States)),
		Controls:    make([][]float64, len(result.Controls)),
		Metrics:     result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	for i, c := range result.Controls {
		data.Controls[i] = c
	}
	return data
}

func ExportJSON(path string, model, solver, controller string, dt, duration float64, result *ode.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, model, solver, controller, dt, duration, result)
}

func ExportJSONStdout(model, solver, controller string, dt, duration float64, result *ode.Result) error {
	return writeExport(os.Stdout, model, solver, controller, dt, duration, result)
}

func writeExport(w io.Writer, model, solver, controller string, dt, duration float64, result *ode.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildExport(model, solver, controller, dt, duration, result))
}
