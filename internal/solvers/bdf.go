package solvers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/toralab/internal/ode"
)

// gearFormula holds one row of the Gear (BDF) coefficient table:
// x_{n+1} = sum_i alpha[i]*x_{n-i} + beta*dt*f(x_{n+1}).
type gearFormula struct {
	alpha []float64
	beta  float64
}

var gearTable = [6]gearFormula{
	{[]float64{1.0}, 1.0},
	{[]float64{4.0 / 3.0, -1.0 / 3.0}, 2.0 / 3.0},
	{[]float64{18.0 / 11.0, -9.0 / 11.0, 2.0 / 11.0}, 6.0 / 11.0},
	{[]float64{48.0 / 25.0, -36.0 / 25.0, 16.0 / 25.0, -3.0 / 25.0}, 12.0 / 25.0},
	{[]float64{300.0 / 137.0, -300.0 / 137.0, 200.0 / 137.0, -75.0 / 137.0, 12.0 / 137.0}, 60.0 / 137.0},
	{[]float64{360.0 / 147.0, -450.0 / 147.0, 400.0 / 147.0, -225.0 / 147.0, 72.0 / 147.0, -10.0 / 147.0}, 60.0 / 147.0},
}

// BDF is a fixed-step backward differentiation formula solver (Gear's
// method), the standard choice for stiff problems. Order 1 is backward
// Euler; higher orders ramp up as step history accumulates. Assumes a
// constant dt across a run; Reset clears the history between runs.
type BDF struct {
	order   int
	history []ode.State // newest first: x_{n-1}, x_{n-2}, ...
	maxIter int
	tol     float64

	jac, a *mat.Dense
	g, dx  *mat.VecDense
}

func NewBDF(order int) *BDF {
	if order < 1 || order > len(gearTable) {
		order = 2
	}
	return &BDF{
		order:   order,
		maxIter: 25,
		tol:     1e-10,
	}
}

func (b *BDF) Order() int { return b.order }

func (b *BDF) Reset() {
	b.history = b.history[:0]
}

func (b *BDF) ensureScratch(n int) {
	if b.jac == nil || b.g.Len() != n {
		b.jac = mat.NewDense(n, n, nil)
		b.a = mat.NewDense(n, n, nil)
		b.g = mat.NewVecDense(n, nil)
		b.dx = mat.NewVecDense(n, nil)
	}
}

func (b *BDF) Step(sys ode.System, x ode.State, u ode.Control, t, dt float64) ode.State {
	newX, _ := b.StepChecked(sys, x, u, t, dt)
	return newX
}

func (b *BDF) StepChecked(sys ode.System, x ode.State, u ode.Control, t, dt float64) (ode.State, error) {
	n := len(x)
	b.ensureScratch(n)

	// Effective order is limited by available history.
	k := b.order
	if avail := len(b.history) + 1; k > avail {
		k = avail
	}
	formula := gearTable[k-1]
	bh := formula.beta * dt

	// Known part of the formula: sum of alpha-weighted past states.
	base := make(ode.State, n)
	for i := 0; i < k; i++ {
		var src ode.State
		if i == 0 {
			src = x
		} else {
			src = b.history[i-1]
		}
		coef := formula.alpha[i]
		for j := 0; j < n; j++ {
			base[j] += coef * src[j]
		}
	}

	// Forward Euler predictor for the Newton start.
	f0 := sys.Derive(x, u, t)
	x1 := make(ode.State, n)
	for i := 0; i < n; i++ {
		x1[i] = x[i] + dt*f0[i]
	}

	converged := false
	for iter := 0; iter < b.maxIter; iter++ {
		f1 := sys.Derive(x1, u, t+dt)
		for i := 0; i < n; i++ {
			b.g.SetVec(i, -(x1[i] - base[i] - bh*f1[i]))
		}

		numJacobian(sys, x1, u, t+dt, b.jac)
		iterationMatrix(b.a, b.jac, bh, n)

		if err := b.dx.SolveVec(b.a, b.g); err != nil {
			return x1, fmt.Errorf("%w: %v", ode.ErrNoConvergence, err)
		}

		maxDelta := 0.0
		for i := 0; i < n; i++ {
			x1[i] += b.dx.AtVec(i)
			maxDelta = math.Max(maxDelta, math.Abs(b.dx.AtVec(i)))
		}

		if maxDelta < b.tol*(1.0+x1.Norm()) {
			converged = true
			break
		}
	}

	if !converged {
		return x1, ode.ErrNoConvergence
	}

	// Record x_n for the next step's formula.
	b.history = append([]ode.State{x.Clone()}, b.history...)
	if len(b.history) > b.order-1 && b.order > 1 {
		b.history = b.history[:b.order-1]
	} else if b.order == 1 {
		b.history = b.history[:0]
	}

	return x1, nil
}
