package sim

import (
	"context"
	"sync"

	"github.com/san-kum/pdesim/internal/fdm"
)

// ICFactory builds the initial condition of one ensemble member from its seed.
type ICFactory func(seed int64) (fdm.InitialCondition, error)

// Ensemble runs the same scheme from numRuns consecutive seeds in parallel.
// Each member gets its own history and metrics; the scheme is shared.
type Ensemble struct {
	base       *Simulator
	numRuns    int
	seedStart  int64
	newIC      ICFactory
	newMetrics func() []Metric
}

func NewEnsemble(s *Simulator, numRuns int, seedStart int64, newIC ICFactory) *Ensemble {
	return &Ensemble{base: s, numRuns: numRuns, seedStart: seedStart, newIC: newIC}
}

// WithMetrics sets a factory producing fresh metrics for every member.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.newMetrics = fn
	return e
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			ic, err := e.newIC(cfgCopy.Seed)
			if err != nil {
				errs[idx] = err
				return
			}

			s := New(e.base.scheme)
			s.SetLogger(e.base.logger)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, ic, cfgCopy)
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
