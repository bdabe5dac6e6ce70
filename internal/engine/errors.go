package engine

import (
	"errors"
	"fmt"
)

// Error taxonomy returned by engine operations. Persistence failures carry
// store.ErrStore from the layer below; everything here is a validation or
// state error and leaves the store untouched.
var (
	// ErrNotFound reports an unknown employee, job, or bay id.
	ErrNotFound = errors.New("not found")

	// ErrEmployeeUnavailable reports an assignment attempt against an
	// employee who is not available (busy on another job, on break, or
	// off duty).
	ErrEmployeeUnavailable = errors.New("employee unavailable")

	// ErrSlotConflict reports an hourly slot already occupied for the
	// employee. Assign skips conflicting slots rather than failing the
	// whole call; the sentinel exists for callers that want the strict
	// policy.
	ErrSlotConflict = errors.New("slot conflict")

	// ErrBayUnavailable reports a bay that is occupied or in maintenance.
	ErrBayUnavailable = errors.New("bay unavailable")

	// ErrStaleEmployeeState reports a staged-edit commit that raced with
	// another session: a to-assign employee is no longer available. The
	// caller must re-open the session.
	ErrStaleEmployeeState = errors.New("stale employee state")

	// ErrSessionClosed reports use of a session after commit or cancel.
	ErrSessionClosed = errors.New("session closed")
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}
