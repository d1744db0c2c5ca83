package ode

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf entries.
	ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the trajectory diverged numerically.
	ErrUnstable = errors.New("ode: simulation unstable (state diverged)")

	// ErrStepTooSmall indicates the adaptive timestep fell below the minimum.
	ErrStepTooSmall = errors.New("ode: adaptive timestep below minimum")

	// ErrNoConvergence indicates an implicit solver's Newton iteration failed.
	ErrNoConvergence = errors.New("ode: implicit step did not converge")

	// ErrAdaptiveUnsupported indicates an adaptive run was requested with a
	// multistep integrator, whose step history would be corrupted by trial steps.
	ErrAdaptiveUnsupported = errors.New("ode: multistep integrator cannot take adaptive trial steps")

	// ErrDimensionMismatch indicates the initial state does not match the system.
	ErrDimensionMismatch = errors.New("ode: dimension mismatch between state and system")
)

// SimulationError wraps an error with the step and time it occurred at.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
