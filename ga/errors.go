package ga

import "errors"

// ErrInternalInvariantViolation marks a chromosome missing a class key, or
// referencing a non-existent id. It indicates a bug in a seeding/variation
// operator, never user input, so callers should treat it as fatal.
var ErrInternalInvariantViolation = errors.New("ga: internal invariant violation")
