package ode

import (
	"context"
	"sync"
)

// Ensemble runs independent simulations concurrently. Each run gets its own
// Simulator from the factory because integrators keep scratch buffers and
// must not be shared across goroutines. Results are positionally stable, so
// output is identical regardless of scheduling order.
type Ensemble struct {
	build     func() *Simulator
	numRuns   int
	seedStart int64
}

func NewEnsemble(build func() *Simulator, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, x0 State, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			results[idx], errs[idx] = e.build().Run(ctx, x0, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
