package solvers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/toralab/internal/ode"
)

// Trapezoid is the implicit trapezoidal rule, second order and A-stable.
// Each step solves x1 = x + dt/2*(f(x) + f(x1)) by Newton iteration with a
// finite-difference Jacobian.
type Trapezoid struct {
	maxIter int
	tol     float64

	jac, a *mat.Dense
	g, dx  *mat.VecDense
}

func NewTrapezoid() *Trapezoid {
	return &Trapezoid{
		maxIter: 25,
		tol:     1e-10,
	}
}

func (tr *Trapezoid) ensureScratch(n int) {
	if tr.jac == nil || tr.g.Len() != n {
		tr.jac = mat.NewDense(n, n, nil)
		tr.a = mat.NewDense(n, n, nil)
		tr.g = mat.NewVecDense(n, nil)
		tr.dx = mat.NewVecDense(n, nil)
	}
}

func (tr *Trapezoid) Step(sys ode.System, x ode.State, u ode.Control, t, dt float64) ode.State {
	newX, _ := tr.StepChecked(sys, x, u, t, dt)
	return newX
}

func (tr *Trapezoid) StepChecked(sys ode.System, x ode.State, u ode.Control, t, dt float64) (ode.State, error) {
	n := len(x)
	tr.ensureScratch(n)

	f0 := sys.Derive(x, u, t)
	halfDt := 0.5 * dt

	// Forward Euler predictor.
	x1 := make(ode.State, n)
	for i := 0; i < n; i++ {
		x1[i] = x[i] + dt*f0[i]
	}

	for iter := 0; iter < tr.maxIter; iter++ {
		f1 := sys.Derive(x1, u, t+dt)
		for i := 0; i < n; i++ {
			tr.g.SetVec(i, -(x1[i] - x[i] - halfDt*(f0[i]+f1[i])))
		}

		numJacobian(sys, x1, u, t+dt, tr.jac)
		iterationMatrix(tr.a, tr.jac, halfDt, n)

		if err := tr.dx.SolveVec(tr.a, tr.g); err != nil {
			return x1, fmt.Errorf("%w: %v", ode.ErrNoConvergence, err)
		}

		maxDelta := 0.0
		for i := 0; i < n; i++ {
			x1[i] += tr.dx.AtVec(i)
			maxDelta = math.Max(maxDelta, math.Abs(tr.dx.AtVec(i)))
		}

		if maxDelta < tr.tol*(1.0+x1.Norm()) {
			return x1, nil
		}
	}

	return x1, ode.ErrNoConvergence
}
