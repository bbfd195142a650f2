package finder

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is negative.
	ErrInvalidK = errors.New("finder: k must not be negative")
	// ErrInsufficientPoints is returned when the index holds fewer than k
	// points.
	ErrInsufficientPoints = errors.New("finder: fewer points than k")
	// ErrNegativeDistance is returned when the range distance is negative or
	// not a finite number.
	ErrNegativeDistance = errors.New("finder: distance must be finite and non-negative")
	// ErrPointsMismatch is returned when the point slice cannot resolve every
	// id the index may report.
	ErrPointsMismatch = errors.New("finder: points do not cover the index")
	// ErrInvalidPoint is returned when a haystack point has a non-finite
	// coordinate.
	ErrInvalidPoint = errors.New("finder: invalid point")
	// ErrNilIndex is returned when no index is given.
	ErrNilIndex = errors.New("finder: nil index")
	// ErrSearchIncomplete is returned when the index did not traverse a
	// search to completion.
	ErrSearchIncomplete = errors.New("finder: search incomplete")
	// ErrShortResult is returned when a completed k-nearest search reached
	// fewer than k points, which happens only when ids are not dense.
	ErrShortResult = errors.New("finder: fewer than k neighbors found")
	// ErrDisposed is returned when a closed finder is used.
	ErrDisposed = errors.New("finder: finder is closed")
)

// PreconditionError reports invalid finder arguments. Constructors return it
// before any search runs.
type PreconditionError struct {
	Op     string
	Err    error
	Detail string
}

func (e *PreconditionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

func precondition(op string, err error, format string, args ...any) error {
	return &PreconditionError{Op: op, Err: err, Detail: fmt.Sprintf(format, args...)}
}

// SearchIncompleteError reports a needle whose search did not complete. It
// ends the enumeration; no partial result is yielded for the needle.
type SearchIncompleteError struct {
	// Needle is the zero-based position of the needle in the input sequence.
	Needle int
	cause  error
}

func (e *SearchIncompleteError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%v for needle %d: %v", ErrSearchIncomplete, e.Needle, e.cause)
	}
	return fmt.Sprintf("%v for needle %d", ErrSearchIncomplete, e.Needle)
}

// Unwrap exposes ErrSearchIncomplete and, when the search was cut short by
// its context, the context error.
func (e *SearchIncompleteError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrSearchIncomplete, e.cause}
	}
	return []error{ErrSearchIncomplete}
}
