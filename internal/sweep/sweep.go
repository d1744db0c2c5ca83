// Package sweep runs a grid of solver and step-size combinations against one
// model and scores each cell, making accuracy-versus-cost tradeoffs visible
// in a single table.
package sweep

import (
	"context"
	"math"
	"time"

	"github.com/san-kum/toralab/internal/experiment"
	"github.com/san-kum/toralab/internal/ode"
)

type Cell struct {
	Solver    string
	Dt        float64
	Score     float64
	Steps     int
	FuncEvals int
	Elapsed   time.Duration
	Err       error
}

type Grid struct {
	Solvers []string
	Dts     []float64
	Metric  string
}

// Run executes every (solver, dt) cell and returns all cells plus the index
// of the best finishing one. Cells that error keep running the rest of the
// grid; a stiff dt blowing up explicit Euler is a result, not a failure.
func (g *Grid) Run(ctx context.Context, base experiment.Config, reg *experiment.Registry) ([]Cell, int, error) {
	cells := make([]Cell, 0, len(g.Solvers)*len(g.Dts))
	bestIdx := -1
	best := math.Inf(1)

	for _, solverName := range g.Solvers {
		for _, dt := range g.Dts {
			if err := ctx.Err(); err != nil {
				return cells, bestIdx, err
			}

			cell := Cell{Solver: solverName, Dt: dt}
			start := time.Now()
			res, err := g.runCell(ctx, base, reg, solverName, dt)
			cell.Elapsed = time.Since(start)

			if err != nil {
				cell.Err = err
				cell.Score = math.Inf(1)
			} else {
				cell.Score = res.Metrics[g.Metric]
				cell.Steps = res.StepsTaken
				cell.FuncEvals = res.FuncEvals
				if len(res.Errors) > 0 {
					cell.Err = res.Errors[0]
					cell.Score = math.Inf(1)
				}
			}

			cells = append(cells, cell)
			if cell.Err == nil && cell.Score < best {
				best = cell.Score
				bestIdx = len(cells) - 1
			}
		}
	}

	return cells, bestIdx, nil
}

func (g *Grid) runCell(ctx context.Context, base experiment.Config, reg *experiment.Registry, solverName string, dt float64) (*ode.Result, error) {
	cfg := base
	cfg.Solver = solverName
	cfg.Dt = dt

	sys, err := reg.GetModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	solver, err := reg.GetSolver(solverName, cfg.Params)
	if err != nil {
		return nil, err
	}
	ctrl, err := reg.GetController(cfg.Controller, sys.ControlDim(), cfg.Params)
	if err != nil {
		return nil, err
	}

	e := experiment.New(cfg)
	if err := e.Setup(sys, solver, ctrl, experiment.DefaultMetrics(sys)); err != nil {
		return nil, err
	}
	return e.Run(ctx)
}
