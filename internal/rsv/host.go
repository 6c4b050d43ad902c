package rsv

//go:generate mockgen -destination "mock_host_test.go" -package $GOPACKAGE -write_package_comment=false rtrsv/internal/rsv TaskRef,ProcessRegistry,SchedulerControl

// TaskID uniquely identifies a task on the host (a pid on Linux).
type TaskID uint64

// Self stands for the calling task. It is resolved through
// ProcessRegistry.Self before any operation touches the store.
const Self TaskID = 0

// TaskRef is a borrowed handle to a live host task. Holding it keeps the task
// addressable for scheduler control; it never decides whether the task lives.
type TaskRef interface {
	ID() TaskID
	// Exiting reports whether the task has begun terminating.
	Exiting() bool
	// Release drops the handle. It is called exactly once, at teardown.
	Release()
}

// ProcessRegistry resolves task ids and reports task terminations.
type ProcessRegistry interface {
	// Resolve returns a handle for a live task, or false if it is unknown.
	Resolve(id TaskID) (TaskRef, bool)
	// Terminations delivers each terminated task id at most once.
	Terminations() <-chan TaskID
	// Self returns the id of the calling task.
	Self() TaskID
}

// SchedulerControl places tasks into and out of the fixed-priority
// preemptive class.
type SchedulerControl interface {
	SetFixedPriority(ref TaskRef, priority int) error
	RestoreDefault(ref TaskRef) error
}
