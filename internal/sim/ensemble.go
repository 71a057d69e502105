package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/spawn"
)

// SpawnerFactory builds the spawn policy for one ensemble member.
type SpawnerFactory func(seed int64) ([]spawn.Spawner, error)

// Ensemble runs independent worlds concurrently. Each world is owned by a
// single goroutine for its whole run.
type Ensemble struct {
	solver    *physics.Solver
	factory   SpawnerFactory
	numRuns   int
	seedStart int64
}

func NewEnsemble(solver *physics.Solver, factory SpawnerFactory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{solver: solver, factory: factory, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			var spawners []spawn.Spawner
			if e.factory != nil {
				sp, err := e.factory(e.seedStart + int64(i))
				if err != nil {
					return err
				}
				spawners = sp
			}

			res, err := New(e.solver, spawners...).Run(ctx, dynamo.NewWorld(), cfg)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
