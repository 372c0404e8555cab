package opt

import (
	"context"
	"time"

	"github.com/Rastion/sa-batch-scheduler/internal/batch"
)

type Optimizer interface {
	Solve(ctx context.Context, p batch.Problem) (Result, error)
}

type Result struct {
	// Schedule is the best batch schedule found, sorted by start time.
	Schedule    []batch.Batch
	Cost        float64
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// Makespan returns the completion time of the last batch in the schedule.
func (r Result) Makespan() int {
	ms := 0
	for _, b := range r.Schedule {
		if b.End > ms {
			ms = b.End
		}
	}
	return ms
}
