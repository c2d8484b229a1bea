package lifecycle

import "errors"

// Error taxonomy for lifecycle operations. Operations wrap these with
// context (fmt.Errorf + %w); callers match with errors.Is. Anything else
// escaping an operation is a storage failure, already rolled back.
var (
	// ErrNotFound: the referenced complaint or worker does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument: a status outside the four-value enum, an unknown
	// complaint type, or a missing required field.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable: the backing store could not be reached.
	ErrUnavailable = errors.New("unavailable")
	// ErrConflict is reserved for optimistic-concurrency use. The engine
	// serializes contending writers with row locks and never returns it.
	ErrConflict = errors.New("conflict")
)
