// ABOUTME: Sentinel error kinds raised by the problem loader

package problem

import "errors"

// ErrEmptyProblem is returned when the filtered problem has zero classes or
// zero rooms. Fatal: the caller cannot proceed.
var ErrEmptyProblem = errors.New("problem: empty after load (zero classes or zero rooms)")
