package rsv

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Manager owns the reservation store and wires it to the host: it resolves
// tasks, pushes RM priorities, arms release clocks and tears reservations
// down on cancel or task termination.
type Manager struct {
	log      *slog.Logger
	registry ProcessRegistry
	sched    SchedulerControl
	store    *Store
	engine   *Engine

	eventsMu sync.RWMutex
	events   chan Event
	closed   bool
	dropped  atomic.Uint64

	stopWatch context.CancelFunc
	wg        sync.WaitGroup
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// New creates a Manager. Call Start to follow task terminations.
func New(cfg Config, registry ProcessRegistry, sched SchedulerControl, opts ...Option) *Manager {
	cfg = cfg.sanitized()
	m := &Manager{
		log:      slog.Default(),
		registry: registry,
		sched:    sched,
		store:    NewStore(cfg.Capacity),
		engine:   NewEngine(cfg.HighestPriority, cfg.LowestPriority),
		events:   make(chan Event, cfg.EventBuffer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Events exposes the read-only event stream. Events are dropped rather than
// blocking when nobody drains it.
func (m *Manager) Events() <-chan Event { return m.events }

// Dropped returns the number of events lost to a full stream.
func (m *Manager) Dropped() uint64 { return m.dropped.Load() }

// Register reserves budget every period for task id and ranks it among
// every other reservation.
func (m *Manager) Register(id TaskID, budget, period time.Duration) error {
	if err := validate(budget, period); err != nil {
		return err
	}

	id = m.resolve(id)
	ref, ok := m.registry.Resolve(id)
	if !ok {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}

	r := newReservation(ref, budget, period)
	err := m.store.insert(r, func(r *Reservation, all []*Reservation) {
		r.clock = NewReleaseClock(r.Period)
		r.clock.Start(func() bool { return m.onRelease(r) })
		m.emit(Event{Kind: EventRegister, TaskID: r.TaskID, Instance: r.Instance.String()})
		m.recomputeLocked(all)
	})
	if err != nil {
		ref.Release()
		return err
	}

	m.log.Info("reservation registered",
		"task", id, "instance", r.Instance.String(), "budget", budget, "period", period)
	return nil
}

// Cancel tears down the reservation of task id.
func (m *Manager) Cancel(id TaskID) error {
	id = m.resolve(id)
	err := m.store.remove(id, func(r *Reservation, remaining []*Reservation) {
		m.teardownLocked(r, remaining, EventCancel)
	})
	if err != nil {
		return err
	}

	m.log.Info("reservation cancelled", "task", id)
	return nil
}

// WaitUntilNextPeriod blocks the caller until its next period boundary.
// It fails with ErrNotFound when caller has no reservation or loses it while
// waiting, and with ErrInterrupted when ctx ends first.
func (m *Manager) WaitUntilNextPeriod(ctx context.Context, caller TaskID) error {
	_, err := m.WaitNext(ctx, caller)
	return err
}

// WaitNext is WaitUntilNextPeriod that also returns the period sequence
// observed at wake-up, which stays valid even if the reservation is
// cancelled right after.
func (m *Manager) WaitNext(ctx context.Context, caller TaskID) (uint64, error) {
	id := m.resolve(caller)
	r, ok := m.store.Lookup(id)
	if !ok {
		return 0, fmt.Errorf("task %d has no reservation: %w", id, ErrNotFound)
	}
	return r.wait(ctx)
}

// Lookup returns a copy of the reservation of task id.
func (m *Manager) Lookup(id TaskID) (Snapshot, bool) {
	return m.store.Get(m.resolve(id))
}

// Reservations copies every active reservation.
func (m *Manager) Reservations() []Snapshot {
	return m.store.Snapshot()
}

// Len returns the number of active reservations.
func (m *Manager) Len() int { return m.store.Len() }

// Task binds a handle to task id so the owning task can use the period
// primitives without naming itself again.
func (m *Manager) Task(id TaskID) *Task {
	return &Task{m: m, id: m.resolve(id)}
}

func (m *Manager) resolve(id TaskID) TaskID {
	if id == Self {
		return m.registry.Self()
	}
	return id
}

// onRelease runs on a reservation's clock goroutine.
func (m *Manager) onRelease(r *Reservation) bool {
	if !r.release() {
		return false
	}
	m.emit(Event{Kind: EventRelease, TaskID: r.TaskID, Instance: r.Instance.String(), Sequence: r.Sequence()})
	return true
}

// recomputeLocked re-derives every priority and pushes it to the host.
// Caller holds the store lock.
func (m *Manager) recomputeLocked(all []*Reservation) {
	for _, a := range m.engine.Assign(all) {
		r := a.Reservation
		if err := m.sched.SetFixedPriority(r.ref, a.Priority); err != nil {
			m.log.Warn("set fixed priority failed", "task", r.TaskID, "priority", a.Priority, "err", err)
		}
		if r.priority == a.Priority {
			continue
		}
		r.priority = a.Priority
		m.emit(Event{Kind: EventPriority, TaskID: r.TaskID, Instance: r.Instance.String(), Priority: a.Priority})
	}
}

func (m *Manager) emit(ev Event) {
	m.eventsMu.RLock()
	defer m.eventsMu.RUnlock()

	if m.closed {
		return
	}
	ev.Time = time.Now()
	select {
	case m.events <- ev:
	default:
		m.dropped.Add(1)
	}
}

// Task is a reservation handle bound to one task.
type Task struct {
	m  *Manager
	id TaskID
}

// ID returns the bound task id.
func (t *Task) ID() TaskID { return t.id }

// Reserve registers a reservation for the bound task.
func (t *Task) Reserve(budget, period time.Duration) error {
	return t.m.Register(t.id, budget, period)
}

// Cancel cancels the bound task's reservation.
func (t *Task) Cancel() error { return t.m.Cancel(t.id) }

// WaitUntilNextPeriod blocks until the bound task's next period boundary.
func (t *Task) WaitUntilNextPeriod(ctx context.Context) error {
	return t.m.WaitUntilNextPeriod(ctx, t.id)
}
