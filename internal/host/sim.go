package host

import (
	"fmt"
	"sync"

	"rtrsv/internal/rsv"
)

// Sim is an in-memory host: a process table and a scheduler that only
// records class changes. It serves demos and tests.
type Sim struct {
	mu    sync.Mutex
	self  rsv.TaskID
	tasks map[rsv.TaskID]*simTask
	terms chan rsv.TaskID
}

type simTask struct {
	alive    bool
	fixed    bool // in the fixed-priority class
	priority int
	restores int
	refs     int
}

// NewSim creates a host whose calling task is self. Self is spawned.
func NewSim(self rsv.TaskID) *Sim {
	s := &Sim{
		self:  self,
		tasks: make(map[rsv.TaskID]*simTask),
		terms: make(chan rsv.TaskID, 256),
	}
	s.Spawn(self)
	return s
}

// Spawn adds live tasks.
func (s *Sim) Spawn(ids ...rsv.TaskID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		s.tasks[id] = &simTask{alive: true}
	}
}

// Kill terminates a task and publishes the termination.
func (s *Sim) Kill(id rsv.TaskID) {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok || !t.alive {
		s.mu.Unlock()
		return
	}
	t.alive = false
	s.mu.Unlock()

	s.terms <- id
}

func (s *Sim) Resolve(id rsv.TaskID) (rsv.TaskRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || !t.alive {
		return nil, false
	}
	t.refs++
	return &simRef{id: id, host: s}, true
}

func (s *Sim) Self() rsv.TaskID { return s.self }

func (s *Sim) Terminations() <-chan rsv.TaskID { return s.terms }

func (s *Sim) SetFixedPriority(ref rsv.TaskRef, priority int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[ref.ID()]
	if !ok {
		return fmt.Errorf("task %d: no such task", ref.ID())
	}
	t.fixed = true
	t.priority = priority
	return nil
}

func (s *Sim) RestoreDefault(ref rsv.TaskRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[ref.ID()]
	if !ok {
		return fmt.Errorf("task %d: no such task", ref.ID())
	}
	t.fixed = false
	t.priority = 0
	t.restores++
	return nil
}

// Priority returns the fixed priority of id, and false if it runs in the
// default class.
func (s *Sim) Priority(id rsv.TaskID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || !t.fixed {
		return 0, false
	}
	return t.priority, true
}

// Restores counts how often id was returned to the default class.
func (s *Sim) Restores(id rsv.TaskID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tasks[id]; ok {
		return t.restores
	}
	return 0
}

// Refs counts the unreleased handles to id.
func (s *Sim) Refs(id rsv.TaskID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tasks[id]; ok {
		return t.refs
	}
	return 0
}

type simRef struct {
	id       rsv.TaskID
	host     *Sim
	released sync.Once
}

func (r *simRef) ID() rsv.TaskID { return r.id }

func (r *simRef) Exiting() bool {
	r.host.mu.Lock()
	defer r.host.mu.Unlock()

	return !r.host.tasks[r.id].alive
}

func (r *simRef) Release() {
	r.released.Do(func() {
		r.host.mu.Lock()
		r.host.tasks[r.id].refs--
		r.host.mu.Unlock()
	})
}
