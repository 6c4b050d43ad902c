package job

import (
	"context"
	"errors"
	"time"

	"rtrsv/internal/rsv"
)

// Waiter is the period primitive a periodic job synchronizes with.
type Waiter interface {
	WaitUntilNextPeriod(ctx context.Context) error
}

// SleepWork returns a runnable that just sleeps for the given duration,
// standing in for budget worth of computation.
func SleepWork(budget time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(budget):
			// If the time is up, we just return nil.
			return nil
		}
	}
}

// Stats summarizes a periodic run.
type Stats struct {
	Jobs        int
	Interrupted int
}

// Periodic runs work once per period: work, then wait for the next period
// boundary. It returns when ctx ends, when the reservation disappears, or
// when work fails. Interrupted waits are retried.
func Periodic(ctx context.Context, w Waiter, work func(context.Context) error) (Stats, error) {
	var st Stats
	for {
		if err := work(ctx); err != nil {
			if ctx.Err() != nil {
				return st, nil
			}
			return st, err
		}
		st.Jobs++

		for {
			err := w.WaitUntilNextPeriod(ctx)
			if err == nil {
				break
			}
			if errors.Is(err, rsv.ErrInterrupted) {
				if ctx.Err() != nil {
					return st, nil
				}
				st.Interrupted++
				continue
			}
			return st, err
		}
	}
}
