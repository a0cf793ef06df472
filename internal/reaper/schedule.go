package reaper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Schedule registers the reaper on s to run every interval until ctx is
// done. A run that is still going when the next tick fires causes that tick
// to be skipped.
func (r *Reaper) Schedule(ctx context.Context, s gocron.Scheduler, interval time.Duration) (gocron.Job, error) {
	job, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if _, err := r.Run(ctx); err != nil {
				r.log.Error("scheduled reap failed", "error", err)
			}
		}),
		gocron.WithName("reaper"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("scheduling reaper: %w", err)
	}

	return job, nil
}
