// internal/rsv/event.go

package rsv

import (
	"time"
)

// EventKind represents the type of reservation event
type EventKind int

const (
	EventRegister EventKind = iota
	EventPriority
	EventRelease
	EventCancel
	EventTerminate
	EventTeardown
)

// Event is emitted on every lifecycle step and on every period boundary.
type Event struct {
	Time     time.Time
	Kind     EventKind
	TaskID   TaskID
	Instance string
	Priority int
	Sequence uint64
}

func (k EventKind) String() string {
	switch k {
	case EventRegister:
		return "Register"
	case EventPriority:
		return "Priority"
	case EventRelease:
		return "Release"
	case EventCancel:
		return "Cancel"
	case EventTerminate:
		return "Terminate"
	case EventTeardown:
		return "Teardown"
	default:
		return "Unknown"
	}
}
