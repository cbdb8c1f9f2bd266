// Package eval provides interchangeable batch evaluators: a sequential one
// and a worker-pool one that fans individuals out across goroutines.
// Objective functions are pure, so the two produce identical matrices.
package eval

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/problem"
)

// BatchEvaluator evaluates a whole population into an objective matrix.
// Implementations must return either a complete matrix or an error, never a
// partial result.
type BatchEvaluator interface {
	EvaluateBatch(ctx context.Context, p *problem.LayoutProblem, pop framework.Population) (*framework.ObjectiveMatrix, error)
}

// Sequential evaluates individuals one at a time on the calling goroutine.
type Sequential struct{}

func (Sequential) EvaluateBatch(_ context.Context, p *problem.LayoutProblem, pop framework.Population) (*framework.ObjectiveMatrix, error) {
	return p.Evaluate(pop)
}

// Parallel partitions individuals into contiguous chunks, one worker per
// chunk. Each worker only reads its assigned individuals and writes disjoint
// columns of the shared matrix, so results are bit-for-bit independent of the
// worker count. The first failing evaluation cancels the batch.
type Parallel struct {
	// Workers is the number of goroutines; values < 1 fall back to
	// runtime.NumCPU().
	Workers int
}

func (pe Parallel) EvaluateBatch(ctx context.Context, p *problem.LayoutProblem, pop framework.Population) (*framework.ObjectiveMatrix, error) {
	n := len(pop)
	om := framework.NewObjectiveMatrix(p.NumObjectives(), n)
	if n == 0 {
		return om, nil
	}

	workers := pe.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				col, err := p.EvaluateIndividual(pop[i])
				if err != nil {
					return fmt.Errorf("individual %d: %w", i, err)
				}
				om.SetColumn(i, col)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return om, nil
}
