package variate

import "errors"

var (
	// ErrInvalidParameter reports a missing or out-of-range distribution parameter.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidDistribution reports a malformed probability vector.
	ErrInvalidDistribution = errors.New("invalid distribution")

	// ErrInvalidVariate reports a drawn value that violates a hard precondition
	// of its consumer (for example a negative duration). It signals a defect in
	// generation, not a transient condition.
	ErrInvalidVariate = errors.New("invalid variate")
)
