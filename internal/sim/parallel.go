package sim

import (
	"context"

	"github.com/san-kum/grapple/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// Job pairs an independent simulator with the driver feeding it.
type Job struct {
	Sim    *Simulator
	Driver Driver
}

// Ensemble runs independent simulations concurrently. Each simulator is
// still ticked by exactly one goroutine.
type Ensemble struct {
	jobs  []Job
	limit int
}

// NewEnsemble runs at most limit jobs at once; limit <= 0 means unbounded.
func NewEnsemble(jobs []Job, limit int) *Ensemble {
	return &Ensemble{jobs: jobs, limit: limit}
}

func (e *Ensemble) Run(ctx context.Context, cfg dynamo.Config) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, len(e.jobs))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i, job := range e.jobs {
		g.Go(func() error {
			res, err := job.Sim.Run(ctx, job.Driver, cfg)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
