package compare

import "errors"

var (
	// ErrInvalidArgument is returned for a non-positive window duration,
	// full scale, difference gain or sample rate.
	ErrInvalidArgument = errors.New("compare: invalid argument")

	// ErrInsufficientSamples is returned when a buffer is shorter than
	// the requested comparison window.
	ErrInsufficientSamples = errors.New("compare: insufficient samples for window")

	// ErrWindowMismatch is returned when the two comparison windows end
	// up with different sample counts and no truncation policy was
	// chosen by the caller.
	ErrWindowMismatch = errors.New("compare: window lengths differ")
)
