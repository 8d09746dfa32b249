package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned by checked element access when the
	// index is not below Len.
	ErrIndexOutOfRange = errors.New("vector: index out of range")

	// ErrIteratorRange is returned when an iterator is moved, dereferenced
	// or passed to Insert/Erase outside the valid bounds of its vector.
	ErrIteratorRange = errors.New("vector: iterator out of range")

	// ErrForeignIterator is returned alongside ErrIteratorRange when an
	// iterator is zero or belongs to a different vector.
	ErrForeignIterator = errors.New("vector: iterator does not belong to this vector")

	// ErrOutOfMemory is returned when storage for a growth operation
	// cannot be obtained.
	ErrOutOfMemory = errors.New("vector: out of memory")

	// ErrInvalidLength is returned for negative lengths.
	ErrInvalidLength = errors.New("vector: invalid length")
)

// IndexError reports a checked access outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("vector: index %d out of range [0:%d]", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// IteratorError reports an iterator operation that would leave, or
// already lies outside, the bounds of the owning vector.
//
// Pos is the offending position and Len the vector length at the time of
// the check. The original cause (if any) can be matched with errors.Is.
type IteratorError struct {
	Op    string
	Pos   int
	Len   int
	cause error
}

func (e *IteratorError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("vector: %s: %v", e.Op, e.cause)
	}
	return fmt.Sprintf("vector: %s: position %d out of range [0:%d]", e.Op, e.Pos, e.Len)
}

func (e *IteratorError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrIteratorRange, e.cause}
	}
	return []error{ErrIteratorRange}
}

// AllocError reports a refused allocation. Bytes is the size of the
// request; Used and Limit describe the budget at the time it was refused
// (both zero when no budget is configured).
type AllocError struct {
	Bytes int64
	Used  int64
	Limit int64
	cause error
}

func (e *AllocError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("vector: allocation of %d bytes failed: %v", e.Bytes, e.cause)
	}
	return fmt.Sprintf("vector: allocation of %d bytes exceeds budget (%d of %d in use)", e.Bytes, e.Used, e.Limit)
}

func (e *AllocError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrOutOfMemory, e.cause}
	}
	return []error{ErrOutOfMemory}
}

func iterError(op string, pos, n int) error {
	return &IteratorError{Op: op, Pos: pos, Len: n}
}

func foreignError(op string) error {
	return &IteratorError{Op: op, Pos: -1, Len: -1, cause: ErrForeignIterator}
}
