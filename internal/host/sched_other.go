//go:build !linux

package host

import (
	"errors"

	"rtrsv/internal/rsv"
)

var errUnsupported = errors.New("fixed-priority scheduling is only supported on linux")

// FIFO is unavailable off linux; every call fails.
type FIFO struct{}

func (FIFO) SetFixedPriority(rsv.TaskRef, int) error { return errUnsupported }

func (FIFO) RestoreDefault(rsv.TaskRef) error { return errUnsupported }
