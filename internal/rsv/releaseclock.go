// internal/rsv/releaseclock.go

package rsv

import (
	"sync"
	"sync/atomic"
	"time"
)

// ReleaseClock fires once per period and counts the firings atomically.
type ReleaseClock struct {
	period time.Duration
	count  atomic.Int64
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewReleaseClock creates a clock but does not arm it.
func NewReleaseClock(period time.Duration) *ReleaseClock {
	return &ReleaseClock{
		period: period,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start arms the clock. The first firing happens one period from now.
// fire runs on the clock's goroutine and must only wake and return; when it
// reports false the clock stops re-arming for good.
func (c *ReleaseClock) Start(fire func() bool) {
	// time.Ticker schedules each tick relative to the previous intended
	// tick, not to when it was received, so the phase does not drift.
	ticker := time.NewTicker(c.period)
	go func() {
		defer close(c.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.count.Add(1)
				if !fire() {
					return
				}
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop disarms the clock and returns only after no further firing can run.
// It is safe to call more than once, and after fire has already ended the
// clock.
func (c *ReleaseClock) Stop() {
	c.once.Do(func() { close(c.stop) })
	<-c.done
}

// Count returns the number of firings so far.
func (c *ReleaseClock) Count() int64 {
	return c.count.Load()
}
