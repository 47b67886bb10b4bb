package qualification

import "errors"

var (
	// ErrInvalidTransition is returned when a pipeline stage change
	// skips ahead or moves backward.
	ErrInvalidTransition = errors.New("qualification: invalid stage transition")

	// ErrResultNotFound is returned when no stored result exists for a
	// contact.
	ErrResultNotFound = errors.New("qualification: result not found")
)
