package ranksel

import (
	"errors"
	"strconv"
)

// ErrNotInitialized is returned when a query or build is attempted
// before Init.
var ErrNotInitialized = errors.New("ranksel: not initialized")

// ErrNotBuilt is returned when a query is attempted before Build.
var ErrNotBuilt = errors.New("ranksel: not built")

// ErrInvalidArgument is returned for a bit value outside {0,1} or
// a zero-length Init.
var ErrInvalidArgument = errors.New("ranksel: invalid argument")

// ErrOutOfRange is returned when pos >= N or k >= popcount(bit).
var ErrOutOfRange = errors.New("ranksel: out of range")

// rangeError carries the offending index and limit so callers get a
// useful message while still matching errors.Is(err, ErrOutOfRange).
type rangeError struct {
	op    string
	index uint64
	limit uint64
}

func (e *rangeError) Error() string {
	return "ranksel: " + e.op + ": index " + strconv.FormatUint(e.index, 10) +
		" out of range [0, " + strconv.FormatUint(e.limit, 10) + ")"
}

func (e *rangeError) Unwrap() error {
	return ErrOutOfRange
}
