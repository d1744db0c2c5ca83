package control

import (
	"fmt"

	"github.com/san-kum/toralab/internal/ode"
)

type PID struct {
	Kp     float64
	Ki     float64
	Kd     float64
	Target float64
	dim    int

	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(dim int, kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		dim:    dim,
		first:  true,
	}
}

func (p *PID) Compute(x ode.State, t float64) ode.Control {
	u := make(ode.Control, p.dim)
	if len(x) < 1 || p.dim == 0 {
		return u
	}

	err := p.Target - x[0]

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		u[0] = p.Kp * err
		return u
	}

	dt := t - p.prevT
	if dt <= 0 {
		u[0] = p.Kp * err
		return u
	}

	p.integral += err * dt
	derivative := (err - p.prevErr) / dt

	p.prevErr = err
	p.prevT = t

	u[0] = p.Kp*err + p.Ki*p.integral + p.Kd*derivative
	return u
}

// Reset clears integral and derivative state between runs.
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":     p.Kp,
		"Ki":     p.Ki,
		"Kd":     p.Kd,
		"Target": p.Target,
	}
}

func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "Target":
		p.Target = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
