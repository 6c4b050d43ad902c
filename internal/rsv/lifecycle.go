package rsv

import (
	"context"
	"errors"
)

// teardownLocked retires a reservation that was just removed from the store.
// Caller holds the store lock; nothing here can fail back to a caller.
func (m *Manager) teardownLocked(r *Reservation, remaining []*Reservation, cause EventKind) {
	// 1) terminal flag, checked by the clock and by waiters
	r.markCancelled()

	// 2) no firing can run after Stop returns
	if r.clock != nil {
		r.clock.Stop()
	}

	// 3) waiters wake and observe the cancelled flag
	r.wakeAll()

	// 4) a task on its way out keeps whatever class it has
	if !r.ref.Exiting() {
		if err := m.sched.RestoreDefault(r.ref); err != nil {
			m.log.Warn("restore default scheduling failed", "task", r.TaskID, "err", err)
		}
	}

	// 5) and 6)
	r.ref.Release()
	m.emit(Event{Kind: cause, TaskID: r.TaskID, Instance: r.Instance.String(), Sequence: r.Sequence()})
	m.emit(Event{Kind: EventTeardown, TaskID: r.TaskID, Instance: r.Instance.String()})

	// 7)
	m.recomputeLocked(remaining)
}

// Start follows the registry's termination stream until ctx ends or Close
// is called.
func (m *Manager) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	m.stopWatch = cancel

	m.wg.Add(1)
	go m.watchTerminations(ctx)
}

func (m *Manager) watchTerminations(ctx context.Context) {
	defer m.wg.Done()

	terms := m.registry.Terminations()
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-terms:
			if !ok {
				return
			}
			m.terminated(id)
		}
	}
}

// terminated tears down the reservation of a task that exited without
// cancelling it.
func (m *Manager) terminated(id TaskID) {
	err := m.store.remove(id, func(r *Reservation, remaining []*Reservation) {
		m.teardownLocked(r, remaining, EventTerminate)
	})
	switch {
	case errors.Is(err, ErrNotFound):
		m.log.Debug("terminated task held no reservation", "task", id)
	case err == nil:
		m.log.Info("reservation torn down after task exit", "task", id)
	}
}

// Close tears down every remaining reservation, restoring default
// scheduling, stops the termination watcher and closes the event stream.
func (m *Manager) Close() {
	if m.stopWatch != nil {
		m.stopWatch()
	}
	m.wg.Wait()

	for _, id := range m.store.close() {
		// a concurrent Cancel may win; that is fine
		_ = m.store.remove(id, func(r *Reservation, remaining []*Reservation) {
			m.teardownLocked(r, remaining, EventCancel)
		})
	}

	m.eventsMu.Lock()
	defer m.eventsMu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
}
