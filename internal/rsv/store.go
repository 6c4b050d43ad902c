package rsv

import (
	"fmt"
	"sync"
)

// Store is the bounded set of active reservations keyed by task id.
// Every mutation, together with the recompute it triggers, runs under mu.
// Release timers never take mu.
type Store struct {
	mu        sync.Mutex
	capacity  int
	entries   map[TaskID]*Reservation
	nextOrder uint64
	closed    bool
}

// NewStore creates an empty store holding at most capacity reservations.
func NewStore(capacity int) *Store {
	return &Store{
		capacity: capacity,
		entries:  make(map[TaskID]*Reservation),
	}
}

// insert adds r and runs commit under the same critical section, so no
// caller ever observes a half-initialized reservation.
func (s *Store) insert(r *Reservation, commit func(r *Reservation, all []*Reservation)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("task %d: %w", r.TaskID, ErrClosed)
	}
	// A task that dies after this check can only be reported once the
	// entry is in place, since remove needs the same lock.
	if r.ref.Exiting() {
		return fmt.Errorf("task %d is exiting: %w", r.TaskID, ErrNotFound)
	}
	if _, dup := s.entries[r.TaskID]; dup {
		return fmt.Errorf("task %d: %w", r.TaskID, ErrAlreadyExists)
	}
	if len(s.entries) >= s.capacity {
		return fmt.Errorf("task %d: %d reservations active: %w", r.TaskID, len(s.entries), ErrResourceExhausted)
	}

	s.nextOrder++
	r.order = s.nextOrder
	s.entries[r.TaskID] = r
	commit(r, s.listLocked())
	return nil
}

// remove deletes the reservation of id and runs teardown on it under the
// same critical section. Only the caller that removes the entry tears it
// down, so concurrent cancel and termination tear down exactly once.
func (s *Store) remove(id TaskID, teardown func(r *Reservation, remaining []*Reservation)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("task %d has no reservation: %w", id, ErrNotFound)
	}
	delete(s.entries, id)
	teardown(r, s.listLocked())
	return nil
}

// close refuses every later insert and returns the ids still active.
func (s *Store) close() []TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	ids := make([]TaskID, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	return ids
}

// Lookup returns the active reservation of id.
func (s *Store) Lookup(id TaskID) (*Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.entries[id]
	return r, ok
}

// Snapshot copies every active reservation.
func (s *Store) Snapshot() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Snapshot, 0, len(s.entries))
	for _, r := range s.entries {
		out = append(out, r.snapshot())
	}
	return out
}

// Get copies the reservation of id.
func (s *Store) Get(id TaskID) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.entries[id]
	if !ok {
		return Snapshot{}, false
	}
	return r.snapshot(), true
}

// Len returns the number of active reservations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *Store) listLocked() []*Reservation {
	all := make([]*Reservation, 0, len(s.entries))
	for _, r := range s.entries {
		all = append(all, r)
	}
	return all
}
