package ode

import (
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1.0, 2.0, 3.0}
	c := s.Clone()

	c[0] = 99.0
	if s[0] != 1.0 {
		t.Error("clone should not share backing array")
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		s     State
		valid bool
	}{
		{"finite", State{1.0, -2.0}, true},
		{"empty", State{}, true},
		{"nan", State{1.0, math.NaN()}, false},
		{"inf", State{math.Inf(1), 0}, false},
		{"neg inf", State{0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.s.IsValid() != tt.valid {
				t.Errorf("IsValid() = %v, want %v", tt.s.IsValid(), tt.valid)
			}
		})
	}
}

func TestStateNorm(t *testing.T) {
	s := State{3.0, 4.0}
	if math.Abs(s.Norm()-5.0) > 1e-12 {
		t.Errorf("expected norm 5, got %f", s.Norm())
	}
}

func TestStateArithmetic(t *testing.T) {
	a := State{1.0, 2.0}
	b := State{0.5, 0.5}

	sum := a.Add(b)
	if sum[0] != 1.5 || sum[1] != 2.5 {
		t.Errorf("unexpected sum: %v", sum)
	}

	diff := a.Sub(b)
	if diff[0] != 0.5 || diff[1] != 1.5 {
		t.Errorf("unexpected difference: %v", diff)
	}

	scaled := a.Scale(2.0)
	if scaled[0] != 2.0 || scaled[1] != 4.0 {
		t.Errorf("unexpected scaling: %v", scaled)
	}

	// Originals untouched.
	if a[0] != 1.0 || b[0] != 0.5 {
		t.Error("arithmetic mutated operands")
	}
}

func TestResultColumn(t *testing.T) {
	r := &Result{
		States: []State{{1, 10}, {2, 20}, {3, 30}},
	}

	col := r.Column(1)
	if len(col) != 3 || col[0] != 10 || col[2] != 30 {
		t.Errorf("unexpected column: %v", col)
	}

	final := r.Final()
	if final[0] != 3 {
		t.Errorf("unexpected final state: %v", final)
	}
}
