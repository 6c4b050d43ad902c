// Package journal records reservation events: to the console, to CSV and
// to SQLite.
package journal

import (
	"context"
	"errors"

	"rtrsv/internal/rsv"
)

// Recorder persists events.
type Recorder interface {
	Record(ev rsv.Event) error
	Close() error
}

// Drain feeds every event to every recorder until the stream closes or ctx
// ends, then closes the recorders. A recorder that fails once is skipped
// afterwards; its first error is returned.
func Drain(ctx context.Context, events <-chan rsv.Event, recs ...Recorder) (err error) {
	failed := make([]error, len(recs))
	defer func() {
		errs := []error{err}
		errs = append(errs, failed...)
		for _, r := range recs {
			errs = append(errs, r.Close())
		}
		err = errors.Join(errs...)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			for i, r := range recs {
				if failed[i] != nil {
					continue
				}
				failed[i] = r.Record(ev)
			}
		}
	}
}
