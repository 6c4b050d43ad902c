//go:build linux

package host

import (
	"fmt"

	"golang.org/x/sys/unix"

	"rtrsv/internal/rsv"
)

// FIFO places reserved tasks under SCHED_FIFO and returns them to
// SCHED_OTHER. It needs CAP_SYS_NICE.
type FIFO struct{}

// SetFixedPriority moves the task into SCHED_FIFO at priority.
func (FIFO) SetFixedPriority(ref rsv.TaskRef, priority int) error {
	attr := unix.SchedAttr{Policy: unix.SCHED_FIFO, Priority: uint32(priority)}
	if err := unix.SchedSetAttr(int(ref.ID()), &attr, 0); err != nil {
		return fmt.Errorf("task %d: SCHED_FIFO %d: %w", ref.ID(), priority, err)
	}
	return nil
}

// RestoreDefault moves the task back to SCHED_OTHER.
func (FIFO) RestoreDefault(ref rsv.TaskRef) error {
	attr := unix.SchedAttr{Policy: unix.SCHED_NORMAL}
	if err := unix.SchedSetAttr(int(ref.ID()), &attr, 0); err != nil {
		return fmt.Errorf("task %d: SCHED_OTHER: %w", ref.ID(), err)
	}
	return nil
}
