// Package bulk runs many single-document pipelines concurrently with a
// bounded worker pool. Each document is independent; one failure never
// aborts the batch, and results keep input order.
package bulk

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-enhancer/internal/processor"
	"github.com/jonathan/resume-enhancer/internal/types"
)

// DefaultWorkers bounds concurrency when the caller does not.
const DefaultWorkers = 4

// Job is one document to process with its point pool.
type Job struct {
	Filename string
	Content  []byte
	Stacks   []types.TechStack
}

// Runner fans jobs out over a shared processor.
type Runner struct {
	proc    *processor.Processor
	workers int
}

// NewRunner creates a runner with the given worker count. Counts below 1
// use the default.
func NewRunner(proc *processor.Processor, workers int) *Runner {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Runner{proc: proc, workers: workers}
}

// Run processes every job and returns one result per job, in order.
// Per-document failures are reported inside their result; the only group
// error is context cancellation.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]*types.ProcessResult, error) {
	results := make([]*types.ProcessResult, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, _ := r.proc.ProcessNamed(job.Filename, job.Content, job.Stacks)
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
