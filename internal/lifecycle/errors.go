package lifecycle

import "errors"

var (
	// ErrNotFound is returned when an operation targets a task id the
	// store does not hold. Callers treat it as a no-op, not a crash.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidArgument is returned for input rejected locally: empty
	// description, comment or step text, malformed due dates, unknown
	// statuses or label colors, and out-of-range step indexes. Invalid
	// input never reaches the network.
	ErrInvalidArgument = errors.New("invalid argument")
)
