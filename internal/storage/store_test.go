package storage

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/toralab/internal/ode"
)

func sampleResult() *ode.Result {
	return &ode.Result{
		States: []ode.State{
			{1.0, 0.0},
			{0.9, -0.1},
			{0.7, -0.25},
		},
		Controls: []ode.Control{
			{0.0},
			{0.5},
			{0.5},
		},
		Times:       []float64{0.0, 0.01, 0.02},
		Metrics:     map[string]float64{"energy_drift": 0.02},
		StepsTaken:  2,
		FuncEvals:   8,
		EnergyDrift: 0.02,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("tora", 0.01, 1.0, 42, "rk4", "pd", sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Model != "tora" || meta.Solver != "rk4" || meta.Controller != "pd" {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Metrics["energy_drift"] != 0.02 {
		t.Errorf("expected energy_drift 0.02, got %f", meta.Metrics["energy_drift"])
	}
	if meta.FuncEvals != 8 {
		t.Errorf("expected 8 func evals, got %d", meta.FuncEvals)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 3 || len(times) != 3 {
		t.Fatalf("expected 3 rows, got %d states, %d times", len(states), len(times))
	}
	// Control columns must not leak into the state vectors.
	if len(states[0]) != 2 {
		t.Errorf("expected 2 state columns, got %d", len(states[0]))
	}
	if math.Abs(states[2][1]-(-0.25)) > 1e-12 {
		t.Errorf("expected state[2][1] = -0.25, got %g", states[2][1])
	}
}

func TestListSortedNewestFirst(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty store, got %d runs", len(runs))
	}

	first, err := st.Save("tora", 0.01, 1.0, 1, "euler", "none", sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save("tora", 0.01, 1.0, 2, "rk4", "none", sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("expected newest first, got %s then %s", runs[0].ID, runs[1].ID)
	}
}

func TestSaveRecordsErrors(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	res := sampleResult()
	res.Errors = []error{ode.ErrNoConvergence}

	runID, err := st.Save("coupled_tora", 0.01, 1.0, 7, "bdf", "none", res)
	if err != nil {
		t.Fatal(err)
	}
	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(meta.Errors) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(meta.Errors))
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	if err := ExportJSON(path, "double_integrator", "dopri", "none", 0.01, 1.0, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("exported file is not valid json: %v", err)
	}
	if data.Model != "double_integrator" || data.Solver != "dopri" {
		t.Errorf("export mismatch: %+v", data)
	}
	if len(data.States) != 3 {
		t.Errorf("expected 3 states, got %d", len(data.States))
	}
}
