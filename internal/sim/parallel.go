package sim

import (
	"context"
	"sync"

	"github.com/san-kum/pagefx/internal/particle"
)

// FieldFactory builds an independent field for one ensemble member.
type FieldFactory func(seed int64) (*particle.Field, error)

// MetricFactory builds fresh metrics for one ensemble member; metrics keep
// per-run state and cannot be shared.
type MetricFactory func() []Metric

// Ensemble runs the same configuration under consecutive seeds in parallel.
type Ensemble struct {
	newField   FieldFactory
	newMetrics MetricFactory
	numRuns    int
	seedStart  int64
}

func NewEnsemble(newField FieldFactory, newMetrics MetricFactory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{newField: newField, newMetrics: newMetrics, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			f, err := e.newField(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			loop := New(f)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					loop.AddMetric(m)
				}
			}
			results[idx], errs[idx] = loop.Run(ctx, cfg)
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
