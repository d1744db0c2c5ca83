package render

import (
	"os"
	"path/filepath"
	"testing"
)

func sampleTrajectory() ([]float64, [][]float64) {
	times := make([]float64, 50)
	states := make([][]float64, 50)
	for i := range times {
		t := float64(i) * 0.1
		times[i] = t
		states[i] = []float64{1.0 - 0.01*t, -0.01}
	}
	return times, states
}

func TestSaveTrajectoryPNG(t *testing.T) {
	times, states := sampleTrajectory()
	path := filepath.Join(t.TempDir(), "traj.png")

	if err := SaveTrajectory(times, states, []string{"position", "velocity"}, "test", path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("figure file is empty")
	}
}

func TestSaveTrajectorySVG(t *testing.T) {
	times, states := sampleTrajectory()
	path := filepath.Join(t.TempDir(), "traj.svg")

	if err := SaveTrajectory(times, states, nil, "test", path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

func TestSaveTrajectoryMismatch(t *testing.T) {
	if err := SaveTrajectory([]float64{0, 1}, [][]float64{{1.0}}, nil, "test", "x.png"); err == nil {
		t.Error("expected error for length mismatch")
	}
}

func TestSavePhase(t *testing.T) {
	_, states := sampleTrajectory()
	path := filepath.Join(t.TempDir(), "phase.png")

	if err := SavePhase(states, 0, 1, "position", "velocity", "phase", path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}

	if err := SavePhase(states, 0, 9, "a", "b", "bad", path); err == nil {
		t.Error("expected error for out-of-range index")
	}
}
