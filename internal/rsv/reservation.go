package rsv

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
)

// Reservation binds a (budget, period) pair to one task.
type Reservation struct {
	TaskID   TaskID
	Instance xid.ID        // unique per registration
	Budget   time.Duration // C
	Period   time.Duration // T
	Created  time.Time

	ref      TaskRef
	order    uint64 // registration order, RM tie-break
	priority int    // guarded by the store lock
	seq      atomic.Uint64
	clock    *ReleaseClock

	mu        sync.Mutex // guards wake and cancelled
	wake      chan struct{}
	cancelled bool
}

// Snapshot is a read-only copy of a reservation's observable state.
type Snapshot struct {
	TaskID   TaskID        `json:"task_id"`
	Instance string        `json:"instance"`
	Budget   time.Duration `json:"budget"`
	Period   time.Duration `json:"period"`
	Priority int           `json:"priority"`
	Sequence uint64        `json:"sequence"`
	Created  time.Time     `json:"created"`
}

func validate(budget, period time.Duration) error {
	if budget <= 0 || period <= 0 {
		return fmt.Errorf("budget %v, period %v must be positive: %w", budget, period, ErrInvalidArgument)
	}
	if budget > period {
		return fmt.Errorf("budget %v exceeds period %v: %w", budget, period, ErrInvalidArgument)
	}
	return nil
}

func newReservation(ref TaskRef, budget, period time.Duration) *Reservation {
	return &Reservation{
		TaskID:   ref.ID(),
		Instance: xid.New(),
		Budget:   budget,
		Period:   period,
		Created:  time.Now(),
		ref:      ref,
		wake:     make(chan struct{}),
	}
}

// Sequence returns the number of period boundaries observed so far.
func (r *Reservation) Sequence() uint64 { return r.seq.Load() }

// release is the timer expiry path. It only advances the sequence and wakes
// waiters; it reports false once the reservation is cancelled.
func (r *Reservation) release() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancelled {
		return false
	}
	r.seq.Add(1)
	close(r.wake)
	r.wake = make(chan struct{})
	return true
}

// markCancelled sets the terminal flag. It reports false if the reservation
// was already cancelled.
func (r *Reservation) markCancelled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancelled {
		return false
	}
	r.cancelled = true
	return true
}

// wakeAll wakes every waiter for good. Only valid once cancelled, since
// release stops replacing the wake channel from then on.
func (r *Reservation) wakeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	select {
	case <-r.wake:
	default:
		close(r.wake)
	}
}

// wait blocks until the next period boundary after entry and returns the
// sequence it observed.
func (r *Reservation) wait(ctx context.Context) (uint64, error) {
	r.mu.Lock()
	if r.cancelled {
		r.mu.Unlock()
		return 0, fmt.Errorf("task %d: %w", r.TaskID, ErrNotFound)
	}
	// s0 and the wake channel are read together, so a boundary after this
	// point always closes the channel we wait on.
	s0 := r.seq.Load()
	wake := r.wake
	r.mu.Unlock()

	for {
		interrupted := false
		select {
		case <-wake:
		case <-ctx.Done():
			interrupted = true
		}

		r.mu.Lock()
		cancelled := r.cancelled
		seq := r.seq.Load()
		wake = r.wake
		r.mu.Unlock()

		switch {
		case cancelled:
			return seq, fmt.Errorf("task %d cancelled: %w", r.TaskID, ErrNotFound)
		case seq > s0:
			// a boundary that raced the interruption still counts
			return seq, nil
		case interrupted:
			return seq, fmt.Errorf("task %d: %w: %w", r.TaskID, ErrInterrupted, ctx.Err())
		}
	}
}

func (r *Reservation) snapshot() Snapshot {
	return Snapshot{
		TaskID:   r.TaskID,
		Instance: r.Instance.String(),
		Budget:   r.Budget,
		Period:   r.Period,
		Priority: r.priority,
		Sequence: r.seq.Load(),
		Created:  r.Created,
	}
}
