package vector

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
	"slices"
)

// Vector is a contiguous growable sequence of T.
//
// Slots [0, Len) hold live elements; slots [Len, Cap) are reserved but
// hold no value. Capacity grows by doubling (minimum one slot) and only
// shrinks through ShrinkToFit or Free. A reallocation obtains and fills
// the new block before the old one is released, so a failed growth
// leaves elements, length and capacity untouched.
//
// The zero value is an empty vector using heap storage. A Vector is not
// safe for concurrent use.
type Vector[T any] struct {
	data    []T // len(data) == Cap()
	size    int
	mem     provider[T]
	destroy func(T)
	log     *slog.Logger

	reallocs int
}

// New creates an empty vector with no storage.
func New[T any](opts ...Option) *Vector[T] {
	return newVector[T](buildOptions(opts))
}

func newVector[T any](o *options) *Vector[T] {
	return &Vector[T]{
		mem:     newProvider[T](o),
		destroy: destructorFor[T](o),
		log:     o.logger,
	}
}

// NewSized creates a vector of n zero values with capacity n.
func NewSized[T any](n int, opts ...Option) (*Vector[T], error) {
	v := New[T](opts...)
	if err := v.Resize(n); err != nil {
		return nil, err
	}
	return v, nil
}

// NewFilled creates a vector of n copies of x with capacity n.
func NewFilled[T any](n int, x T, opts ...Option) (*Vector[T], error) {
	v := New[T](opts...)
	if err := v.ResizeValue(n, x); err != nil {
		return nil, err
	}
	return v, nil
}

// Of creates a vector holding elems, with capacity len(elems).
// It panics if heap storage cannot be obtained.
func Of[T any](elems ...T) *Vector[T] {
	v, err := From(elems)
	if err != nil {
		panic(err)
	}
	return v
}

// From creates a vector holding a copy of elems, with capacity len(elems).
func From[T any](elems []T, opts ...Option) (*Vector[T], error) {
	v := New[T](opts...)
	if err := v.Reserve(len(elems)); err != nil {
		return nil, err
	}
	v.size = copy(v.data, elems)
	return v, nil
}

// FromRange creates a vector holding a copy of the elements in
// [first, last) of another vector. Storage is reserved once for the
// distance between the two positions.
func FromRange[T any](first, last Position[T], opts ...Option) (*Vector[T], error) {
	if first == nil || last == nil {
		return nil, foreignError("range")
	}
	src, f := first.position()
	other, l := last.position()
	if src == nil || src != other {
		return nil, foreignError("range")
	}
	if f < 0 || f > l || l > src.size {
		return nil, iterError("range", f, src.size)
	}
	return From(src.data[f:l], opts...)
}

// FromSeq creates a vector from the values yielded by seq, growing as
// values arrive.
func FromSeq[T any](seq iter.Seq[T], opts ...Option) (*Vector[T], error) {
	v := New[T](opts...)
	for x := range seq {
		if err := v.PushBack(x); err != nil {
			v.Free()
			return nil, err
		}
	}
	return v, nil
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.size }

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int { return len(v.data) }

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool { return v.size == 0 }

// Reserve ensures capacity for at least n elements. If n exceeds the
// current capacity, storage is reallocated to exactly n slots.
func (v *Vector[T]) Reserve(n int) error {
	if n <= len(v.data) {
		return nil
	}
	return v.reallocate(n)
}

// ShrinkToFit reduces capacity to Len. It offers the same guarantee as
// Reserve: on failure nothing changes.
func (v *Vector[T]) ShrinkToFit() error {
	if v.size == len(v.data) {
		return nil
	}
	return v.reallocate(v.size)
}

// reallocate moves the live elements into a block of exactly n slots.
// The old block is released only once the new one holds every element.
func (v *Vector[T]) reallocate(n int) error {
	block, err := v.mem.allocate(n)
	if err != nil {
		v.logger().Debug("vector reallocation failed",
			slog.Int("len", v.size), slog.Int("cap", len(v.data)), slog.Int("want", n),
			slog.Any("error", err))
		return err
	}
	copy(block, v.data[:v.size])
	old := v.data
	v.data = block
	v.mem.release(old)
	v.reallocs++

	v.logger().Debug("vector reallocated",
		slog.Int("len", v.size), slog.Int("old_cap", cap(old)), slog.Int("new_cap", n))
	return nil
}

// PushBack appends x, doubling capacity when full.
func (v *Vector[T]) PushBack(x T) error {
	if v.size == len(v.data) {
		if err := v.reallocate(nextCapacity(len(v.data))); err != nil {
			return err
		}
	}
	v.data[v.size] = x
	v.size++
	return nil
}

// PopBack removes the last element. Calling it on an empty vector is a
// caller error; it panics with an index out of range.
func (v *Vector[T]) PopBack() {
	i := v.size - 1
	x := v.data[i]
	var zero T
	v.data[i] = zero
	v.size = i
	if v.destroy != nil {
		v.destroy(x)
	}
}

// At returns the element at index i, or an *IndexError if i is not in
// [0, Len).
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.size {
		var zero T
		return zero, &IndexError{Index: i, Len: v.size}
	}
	return v.data[i], nil
}

// Set replaces the element at index i, or returns an *IndexError if i is
// not in [0, Len).
func (v *Vector[T]) Set(i int, x T) error {
	if i < 0 || i >= v.size {
		return &IndexError{Index: i, Len: v.size}
	}
	v.data[i] = x
	return nil
}

// Index returns the element at index i without a checked error.
// An index outside [0, Len) is a caller error and panics.
func (v *Vector[T]) Index(i int) T {
	return v.data[:v.size][i]
}

// Front returns the first element. The vector must not be empty.
func (v *Vector[T]) Front() T {
	return v.data[:v.size][0]
}

// Back returns the last element. The vector must not be empty.
func (v *Vector[T]) Back() T {
	return v.data[:v.size][v.size-1]
}

// Resize changes the length to n. New elements are T's zero value;
// removed elements are destructed. Capacity grows to exactly n if needed
// and is never reduced.
func (v *Vector[T]) Resize(n int) error {
	var zero T
	return v.resize(n, zero)
}

// ResizeValue is like Resize but fills new elements with x.
func (v *Vector[T]) ResizeValue(n int, x T) error {
	return v.resize(n, x)
}

func (v *Vector[T]) resize(n int, x T) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	if n < v.size {
		v.destruct(v.data[n:v.size])
	} else {
		for i := v.size; i < n; i++ {
			v.data[i] = x
		}
	}
	v.size = n
	return nil
}

// ResizeFunc changes the length to n, constructing each new element i
// with fill(i).
//
// A failing reservation leaves the vector unchanged. If fill fails, the
// vector cannot be restored to a consistent prior state and is torn down
// instead: every live and newly constructed element is destructed,
// storage is released, and the error from fill is returned with the
// vector empty and without capacity.
func (v *Vector[T]) ResizeFunc(n int, fill func(i int) (T, error)) error {
	if n <= v.size {
		return v.Resize(n)
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	for i := v.size; i < n; i++ {
		x, err := fill(i)
		if err != nil {
			v.logger().Debug("vector fill failed, tearing down",
				slog.Int("len", v.size), slog.Int("index", i), slog.Any("error", err))
			v.size = i
			v.Free()
			return err
		}
		v.data[i] = x
	}
	v.size = n
	return nil
}

// Clear destructs all elements. Capacity is retained for reuse.
func (v *Vector[T]) Clear() {
	v.destruct(v.data[:v.size])
	v.size = 0
}

// Free destructs all elements and releases the storage block. The vector
// remains usable as an empty vector; calling Free again has no effect.
func (v *Vector[T]) Free() {
	v.Clear()
	old := v.data
	v.data = nil
	v.mem.release(old)
}

// Clone returns a copy of the vector with capacity Len, sharing its
// budget, storage source, destructor and logger.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	c := &Vector[T]{mem: v.mem, destroy: v.destroy, log: v.log}
	if err := c.Reserve(v.size); err != nil {
		return nil, err
	}
	c.size = copy(c.data, v.data[:v.size])
	return c, nil
}

// ToSlice returns a copy of the elements.
func (v *Vector[T]) ToSlice() []T {
	return slices.Clone(v.data[:v.size])
}

// All returns an iterator over index-value pairs in order.
// Iteration stops early if the vector shrinks underneath it.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.data[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(v.data[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-value pairs from last to first.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.size - 1; i >= 0; i-- {
			if i >= v.size {
				continue
			}
			if !yield(i, v.data[i]) {
				return
			}
		}
	}
}

// String implements fmt.Stringer.
func (v *Vector[T]) String() string {
	return fmt.Sprint(v.data[:v.size])
}

// destruct runs the destructor over xs and zeroes the slots.
func (v *Vector[T]) destruct(xs []T) {
	if v.destroy != nil {
		for _, x := range xs {
			v.destroy(x)
		}
	}
	clear(xs)
}

func (v *Vector[T]) logger() *slog.Logger {
	if v.log == nil {
		return discardLogger
	}
	return v.log
}

var discardLogger = slog.New(slog.DiscardHandler)

// nextCapacity applies the doubling rule: max(2*c, 1).
func nextCapacity(c int) int {
	if c == 0 {
		return 1
	}
	if c > math.MaxInt/2 {
		return math.MaxInt
	}
	return c * 2
}
