package metrics

import (
	"math"

	"github.com/san-kum/toralab/internal/ode"
)

// EnergyDrift tracks the worst relative deviation from the initial energy
// over a run. For the damped models energy decreases monotonically, so a
// large drift usually means the solver is fine; for conservative setups
// (damping zero) it exposes solver dissipation directly.
type EnergyDrift struct {
	name          string
	sys           ode.System
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(sys ode.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		sys:  sys,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x ode.State, u ode.Control, t float64) {
	h, ok := e.sys.(ode.Hamiltonian)
	if !ok {
		return
	}

	energy := h.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
