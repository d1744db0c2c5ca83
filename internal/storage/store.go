// Package storage persists simulation runs to disk. Each run gets a
// directory under the base dir holding metadata.json and states.csv, so
// trajectories survive the process and can be re-plotted or compared later.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/toralab/internal/ode"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Model       string             `json:"model"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Solver      string             `json:"solver"`
	Controller  string             `json:"controller"`
	Steps       int                `json:"steps"`
	FuncEvals   int                `json:"func_evals"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
	Errors      []string           `json:"errors,omitempty"`
}

func (s *Store) Save(model string, dt, duration float64, seed int64, solver, controller string, result *ode.Result) (string, error) {
	// Nanosecond stamp keeps IDs unique across back-to-back saves.
	runID := fmt.Sprintf("%s_%s_%d", model, solver, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Model:       model,
		Timestamp:   time.Now(),
		Seed:        seed,
		Dt:          dt,
		Duration:    duration,
		Solver:      solver,
		Controller:  controller,
		Steps:       result.StepsTaken,
		FuncEvals:   result.FuncEvals,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeStatesCSV(filepath.Join(runDir, "states.csv"), result); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStatesCSV(path string, result *ode.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if len(result.States) == 0 {
		return nil
	}

	header := []string{"time"}
	for i := range result.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	numControls := 0
	if len(result.Controls) > 0 {
		numControls = len(result.Controls[0])
		for i := 0; i < numControls; i++ {
			header = append(header, fmt.Sprintf("u%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(result.Times[i], 'g', -1, 64))
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if i < len(result.Controls) {
			for _, val := range result.Controls[i] {
				row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
			}
		} else {
			for j := 0; j < numControls; j++ {
				row = append(row, "0")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue // skip directories that aren't runs
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads back the trajectory: states (without control columns)
// and times, one entry per CSV row.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	stateCols := 0
	for _, col := range records[0][1:] {
		if len(col) > 0 && col[0] == 'x' {
			stateCols++
		}
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bad time value %q: %w", record[0], err)
		}
		state := make([]float64, stateCols)
		for j := 0; j < stateCols; j++ {
			state[j], err = strconv.ParseFloat(record[1+j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad state value %q: %w", record[1+j], err)
			}
		}
		times = append(times, t)
		states = append(states, state)
	}

	return states, times, nil
}
