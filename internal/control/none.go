package control

import "github.com/san-kum/toralab/internal/ode"

type None struct {
	dim int
}

func NewNone(dim int) *None {
	return &None{
		dim: dim,
	}
}

func (n *None) Compute(x ode.State, t float64) ode.Control {
	return make(ode.Control, n.dim)
}
