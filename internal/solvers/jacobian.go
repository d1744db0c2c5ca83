package solvers

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/toralab/internal/ode"
)

// jacEps scales the forward-difference perturbation (roughly sqrt of
// machine epsilon).
const jacEps = 1e-8

// numJacobian fills dst with the finite-difference Jacobian df/dx at
// (x, u, t). All models here are smooth, so forward differences suffice.
func numJacobian(sys ode.System, x ode.State, u ode.Control, t float64, dst *mat.Dense) {
	n := len(x)
	f0 := sys.Derive(x, u, t)

	xp := x.Clone()
	for j := 0; j < n; j++ {
		h := jacEps * math.Max(math.Abs(x[j]), 1.0)
		xp[j] = x[j] + h
		fj := sys.Derive(xp, u, t)
		xp[j] = x[j]

		for i := 0; i < n; i++ {
			dst.Set(i, j, (fj[i]-f0[i])/h)
		}
	}
}

// iterationMatrix writes I - gamma*J into dst.
func iterationMatrix(dst, jac *mat.Dense, gamma float64, n int) {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := -gamma * jac.At(i, j)
			if i == j {
				v += 1.0
			}
			dst.Set(i, j, v)
		}
	}
}
