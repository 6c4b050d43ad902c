package host

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"

	"rtrsv/internal/rsv"
)

// Procs resolves pids to live processes and reports when a resolved process
// goes away. Terminations are detected by polling, only for pids that are
// currently held through a handle.
type Procs struct {
	log  *slog.Logger
	poll time.Duration

	mu      sync.Mutex
	watched map[rsv.TaskID]int // live handles per pid

	terms chan rsv.TaskID
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// NewProcs creates a registry polling every poll interval once started.
func NewProcs(poll time.Duration, log *slog.Logger) *Procs {
	return &Procs{
		log:     log,
		poll:    poll,
		watched: make(map[rsv.TaskID]int),
		terms:   make(chan rsv.TaskID, 64),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Resolve returns a handle if pid id names a live process.
func (p *Procs) Resolve(id rsv.TaskID) (rsv.TaskRef, bool) {
	if id == 0 || id > 1<<31-1 {
		return nil, false
	}
	ok, err := process.PidExists(int32(id))
	if err != nil || !ok {
		return nil, false
	}
	proc, err := process.NewProcess(int32(id))
	if err != nil {
		return nil, false
	}

	p.mu.Lock()
	p.watched[id]++
	p.mu.Unlock()

	return &procRef{id: id, proc: proc, owner: p}, true
}

// Self returns the pid of this process.
func (p *Procs) Self() rsv.TaskID { return rsv.TaskID(os.Getpid()) }

// Terminations delivers each watched pid once after it exits.
func (p *Procs) Terminations() <-chan rsv.TaskID { return p.terms }

// Start begins polling watched pids.
func (p *Procs) Start() {
	ticker := time.NewTicker(p.poll)
	go func() {
		defer close(p.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.sweep()
			case <-p.stop:
				return
			}
		}
	}()
}

// Stop ends polling. The termination channel stays open.
func (p *Procs) Stop() {
	p.once.Do(func() { close(p.stop) })
	<-p.done
}

func (p *Procs) sweep() {
	p.mu.Lock()
	ids := make([]rsv.TaskID, 0, len(p.watched))
	for id := range p.watched {
		ids = append(ids, id)
	}
	p.mu.Unlock()

	for _, id := range ids {
		alive, err := process.PidExists(int32(id))
		if err != nil {
			p.log.Warn("poll process", "task", id, "err", err)
			continue
		}
		if alive {
			continue
		}

		p.mu.Lock()
		_, still := p.watched[id]
		delete(p.watched, id)
		p.mu.Unlock()
		if !still {
			continue
		}

		select {
		case p.terms <- id:
		case <-p.stop:
			return
		}
	}
}

func (p *Procs) unwatch(id rsv.TaskID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n, ok := p.watched[id]; ok {
		if n <= 1 {
			delete(p.watched, id)
		} else {
			p.watched[id] = n - 1
		}
	}
}

// procRef is a borrowed handle to a host process.
type procRef struct {
	id    rsv.TaskID
	proc  *process.Process
	owner *Procs
	once  sync.Once
}

func (r *procRef) ID() rsv.TaskID { return r.id }

// Exiting reports true once the process is gone or its pid was reused.
func (r *procRef) Exiting() bool {
	running, err := r.proc.IsRunning()
	return err != nil || !running
}

func (r *procRef) Release() {
	r.once.Do(func() { r.owner.unwatch(r.id) })
}
