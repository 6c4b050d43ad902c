package rsv

import "errors"

// Errors returned by the reservation core. Callers match them with errors.Is;
// the returned error usually wraps one of these with the offending task id.
var (
	// ErrInvalidArgument reports a non-positive budget or period, or budget > period.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound reports an unknown task, a missing reservation, or one that
	// was cancelled while the caller waited on it.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists reports a second registration for a reserved task.
	ErrAlreadyExists = errors.New("reservation already exists")
	// ErrResourceExhausted reports a store at capacity.
	ErrResourceExhausted = errors.New("reservation store full")
	// ErrInterrupted reports a wait aborted by its context. Retrying is safe.
	ErrInterrupted = errors.New("wait interrupted")
	// ErrClosed reports a registration after the manager was closed.
	ErrClosed = errors.New("reservation manager closed")
)
