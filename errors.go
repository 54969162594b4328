package scriptvec

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a named vector does not exist.
	ErrNotFound = errors.New("vector not found")

	// ErrExists is returned when creating a vector under a name that is
	// already taken.
	ErrExists = errors.New("vector already exists")

	// ErrEmpty is returned by reductions that are undefined on an empty
	// vector.
	ErrEmpty = errors.New("vector is empty")

	// ErrNilDomain is returned when a vector is constructed without a
	// safe-integer domain.
	ErrNilDomain = errors.New("nil safedouble domain")
)

// ErrIndexOutOfRange indicates an index that passed the safe-integer gate but
// addresses past the end of the vector.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrIndexOutOfRange struct {
	Index  int
	Length int
	cause  error
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index out of range: %d with length %d", e.Index, e.Length)
}

func (e *ErrIndexOutOfRange) Unwrap() error { return e.cause }

// ErrInvalidRange indicates a [first, last] span whose bounds are inverted.
type ErrInvalidRange struct {
	First int
	Last  int
}

func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("invalid range: first %d > last %d", e.First, e.Last)
}
