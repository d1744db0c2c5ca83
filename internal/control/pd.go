package control

import (
	"fmt"

	"github.com/san-kum/toralab/internal/ode"
)

// PD drives the first coordinate toward Target using the measured rate
// directly, so no derivative estimation state is needed. This is the
// composable control hook the oscillator models leave open: the model body
// stays untouched and the torque arrives additively.
type PD struct {
	Kp     float64
	Kd     float64
	Target float64
	dim    int
}

func NewPD(dim int, kp, kd, target float64) *PD {
	return &PD{Kp: kp, Kd: kd, Target: target, dim: dim}
}

func (p *PD) Compute(x ode.State, t float64) ode.Control {
	u := make(ode.Control, p.dim)
	if len(x) < 2 || p.dim == 0 {
		return u
	}

	// For the 2nd-order models the rate lives in the second half of the
	// state vector: x[1] for [q, qdot], x[2] for [q1, q2, q1dot, q2dot].
	rateIdx := len(x) / 2
	err := p.Target - x[0]
	u[0] = p.Kp*err - p.Kd*x[rateIdx]
	return u
}

func (p *PD) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":     p.Kp,
		"Kd":     p.Kd,
		"Target": p.Target,
	}
}

func (p *PD) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		p.Kp = value
	case "Kd":
		p.Kd = value
	case "Target":
		p.Target = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
