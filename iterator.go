package vector

import "cmp"

// Position is a location in a Vector accepted by Insert, Erase,
// EraseRange and FromRange. Both Iterator and ConstIterator are
// positions.
type Position[T any] interface {
	position() (*Vector[T], int)
}

// cursor is an index into a vector plus a back-reference to it. Bounds
// are checked against the vector's current length on every use, so an
// iterator survives reallocation and fails loudly once the vector has
// shrunk past it.
type cursor[T any] struct {
	v   *Vector[T]
	pos int
}

func (c cursor[T]) position() (*Vector[T], int) { return c.v, c.pos }

// Pos returns the index the iterator denotes.
func (c cursor[T]) Pos() int { return c.pos }

// Valid reports whether the iterator lies within [0, Len] of its vector.
func (c cursor[T]) Valid() bool {
	return c.v != nil && c.pos >= 0 && c.pos <= c.v.size
}

// Value returns the element the iterator denotes. Dereferencing the end
// position is an error.
func (c cursor[T]) Value() (T, error) {
	if err := c.live("dereference", c.pos); err != nil {
		var zero T
		return zero, err
	}
	return c.v.data[c.pos], nil
}

// Next moves the iterator one element forward.
func (c *cursor[T]) Next() error { return c.Advance(1) }

// Prev moves the iterator one element back.
func (c *cursor[T]) Prev() error { return c.Advance(-1) }

// Advance moves the iterator by n elements (backwards for negative n).
// The move is only committed if the target lies within [0, Len].
func (c *cursor[T]) Advance(n int) error {
	pos := c.pos + n
	if err := c.check("advance", pos); err != nil {
		return err
	}
	c.pos = pos
	return nil
}

func (c cursor[T]) check(op string, pos int) error {
	if c.v == nil {
		return foreignError(op)
	}
	if pos < 0 || pos > c.v.size {
		return iterError(op, pos, c.v.size)
	}
	return nil
}

// live checks that pos denotes a constructed element.
func (c cursor[T]) live(op string, pos int) error {
	if c.v == nil {
		return foreignError(op)
	}
	if pos < 0 || pos >= c.v.size {
		return iterError(op, pos, c.v.size)
	}
	return nil
}

func (c cursor[T]) moved(n int) (cursor[T], error) {
	err := c.Advance(n)
	return c, err
}

func (c cursor[T]) distance(o cursor[T]) (int, error) {
	if c.v == nil || c.v != o.v {
		return 0, foreignError("distance")
	}
	return c.pos - o.pos, nil
}

// Iterator is a mutable position in a Vector.
type Iterator[T any] struct {
	cursor[T]
}

// Add returns an iterator n elements further on. On error the
// returned iterator equals it.
func (it Iterator[T]) Add(n int) (Iterator[T], error) {
	c, err := it.moved(n)
	if err != nil {
		return it, err
	}
	return Iterator[T]{c}, nil
}

// Sub returns an iterator n elements back.
func (it Iterator[T]) Sub(n int) (Iterator[T], error) { return it.Add(-n) }

// Distance returns it.Pos() - o.Pos(). Both iterators must belong to the
// same vector.
func (it Iterator[T]) Distance(o Iterator[T]) (int, error) { return it.distance(o.cursor) }

// Equal reports whether both iterators denote the same position of the
// same vector.
func (it Iterator[T]) Equal(o Iterator[T]) bool { return it.v == o.v && it.pos == o.pos }

// Less reports whether it precedes o. Iterators of different vectors
// are unordered and Less reports false for them.
func (it Iterator[T]) Less(o Iterator[T]) bool { return it.v == o.v && it.pos < o.pos }

// Compare returns -1, 0 or +1 as it precedes, equals or follows o.
// Both iterators must belong to the same vector; otherwise the result
// only orders their indices.
func (it Iterator[T]) Compare(o Iterator[T]) int { return cmp.Compare(it.pos, o.pos) }

// Set replaces the element the iterator denotes.
func (it Iterator[T]) Set(x T) error {
	if err := it.live("assign", it.pos); err != nil {
		return err
	}
	it.v.data[it.pos] = x
	return nil
}

// Ptr returns a pointer to the element the iterator denotes. The pointer
// is only valid until the vector next reallocates.
func (it Iterator[T]) Ptr() (*T, error) {
	if err := it.live("access", it.pos); err != nil {
		return nil, err
	}
	return &it.v.data[it.pos], nil
}

// ReadOnly converts the iterator to a ConstIterator at the same position.
func (it Iterator[T]) ReadOnly() ConstIterator[T] {
	return ConstIterator[T]{it.cursor}
}

// ConstIterator is a read-only position in a Vector.
type ConstIterator[T any] struct {
	cursor[T]
}

// Add returns an iterator n elements further on.
func (it ConstIterator[T]) Add(n int) (ConstIterator[T], error) {
	c, err := it.moved(n)
	if err != nil {
		return it, err
	}
	return ConstIterator[T]{c}, nil
}

// Sub returns an iterator n elements back.
func (it ConstIterator[T]) Sub(n int) (ConstIterator[T], error) { return it.Add(-n) }

// Distance returns it.Pos() - o.Pos().
func (it ConstIterator[T]) Distance(o ConstIterator[T]) (int, error) {
	return it.distance(o.cursor)
}

// Equal reports whether both iterators denote the same position of the
// same vector.
func (it ConstIterator[T]) Equal(o ConstIterator[T]) bool { return it.v == o.v && it.pos == o.pos }

// Less reports whether it precedes o. Iterators of different vectors
// are unordered and Less reports false for them.
func (it ConstIterator[T]) Less(o ConstIterator[T]) bool { return it.v == o.v && it.pos < o.pos }

// Compare returns -1, 0 or +1 as it precedes, equals or follows o.
// Both iterators must belong to the same vector; otherwise the result
// only orders their indices.
func (it ConstIterator[T]) Compare(o ConstIterator[T]) int { return cmp.Compare(it.pos, o.pos) }

// rcursor walks a vector backwards. Like a reverse iterator over a
// pointer range, it stores the position one past the element it denotes.
type rcursor[T any] struct {
	base cursor[T]
}

// Value returns the element the iterator denotes.
func (r rcursor[T]) Value() (T, error) {
	if err := r.base.live("dereference", r.base.pos-1); err != nil {
		var zero T
		return zero, err
	}
	return r.base.v.data[r.base.pos-1], nil
}

// Valid reports whether the iterator lies within the reversed [0, Len].
func (r rcursor[T]) Valid() bool { return r.base.Valid() }

// Next moves the iterator one element towards the front of the vector.
func (r *rcursor[T]) Next() error { return r.base.Advance(-1) }

// Prev moves the iterator one element towards the back of the vector.
func (r *rcursor[T]) Prev() error { return r.base.Advance(1) }

// Advance moves the iterator by n elements in reverse order.
func (r *rcursor[T]) Advance(n int) error { return r.base.Advance(-n) }

// ReverseIterator is a mutable position walking a Vector back to front.
type ReverseIterator[T any] struct {
	rcursor[T]
}

// Base returns the forward iterator one position after the element r
// denotes.
func (r ReverseIterator[T]) Base() Iterator[T] { return Iterator[T]{r.base} }

// Add returns an iterator n elements further in reverse order.
func (r ReverseIterator[T]) Add(n int) (ReverseIterator[T], error) {
	c, err := r.base.moved(-n)
	if err != nil {
		return r, err
	}
	return ReverseIterator[T]{rcursor[T]{c}}, nil
}

// Equal reports whether both iterators denote the same position.
func (r ReverseIterator[T]) Equal(o ReverseIterator[T]) bool {
	return r.base.v == o.base.v && r.base.pos == o.base.pos
}

// Sub returns an iterator n elements back in reverse order.
func (r ReverseIterator[T]) Sub(n int) (ReverseIterator[T], error) { return r.Add(-n) }

// Distance returns the number of reverse steps from o to r.
func (r ReverseIterator[T]) Distance(o ReverseIterator[T]) (int, error) {
	return o.base.distance(r.base)
}

// Less reports whether r precedes o in reverse order, that is whether r
// is nearer the back of the vector. Iterators of different vectors are
// unordered.
func (r ReverseIterator[T]) Less(o ReverseIterator[T]) bool {
	return r.base.v == o.base.v && r.base.pos > o.base.pos
}

// Compare returns -1, 0 or +1 as r precedes, equals or follows o in
// reverse order. Both iterators must belong to the same vector.
func (r ReverseIterator[T]) Compare(o ReverseIterator[T]) int {
	return cmp.Compare(o.base.pos, r.base.pos)
}

// Set replaces the element the iterator denotes.
func (r ReverseIterator[T]) Set(x T) error {
	if err := r.base.live("assign", r.base.pos-1); err != nil {
		return err
	}
	r.base.v.data[r.base.pos-1] = x
	return nil
}

// Ptr returns a pointer to the element the iterator denotes, valid until
// the vector next reallocates.
func (r ReverseIterator[T]) Ptr() (*T, error) {
	if err := r.base.live("access", r.base.pos-1); err != nil {
		return nil, err
	}
	return &r.base.v.data[r.base.pos-1], nil
}

// ReadOnly converts the iterator to a ConstReverseIterator.
func (r ReverseIterator[T]) ReadOnly() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{r.rcursor}
}

// ConstReverseIterator is a read-only position walking a Vector back to
// front.
type ConstReverseIterator[T any] struct {
	rcursor[T]
}

// Base returns the forward iterator one position after the element r
// denotes.
func (r ConstReverseIterator[T]) Base() ConstIterator[T] { return ConstIterator[T]{r.base} }

// Add returns an iterator n elements further in reverse order.
func (r ConstReverseIterator[T]) Add(n int) (ConstReverseIterator[T], error) {
	c, err := r.base.moved(-n)
	if err != nil {
		return r, err
	}
	return ConstReverseIterator[T]{rcursor[T]{c}}, nil
}

// Equal reports whether both iterators denote the same position.
func (r ConstReverseIterator[T]) Equal(o ConstReverseIterator[T]) bool {
	return r.base.v == o.base.v && r.base.pos == o.base.pos
}

// Sub returns an iterator n elements back in reverse order.
func (r ConstReverseIterator[T]) Sub(n int) (ConstReverseIterator[T], error) { return r.Add(-n) }

// Distance returns the number of reverse steps from o to r.
func (r ConstReverseIterator[T]) Distance(o ConstReverseIterator[T]) (int, error) {
	return o.base.distance(r.base)
}

// Less reports whether r precedes o in reverse order.
func (r ConstReverseIterator[T]) Less(o ConstReverseIterator[T]) bool {
	return r.base.v == o.base.v && r.base.pos > o.base.pos
}

// Compare returns -1, 0 or +1 as r precedes, equals or follows o in
// reverse order. Both iterators must belong to the same vector.
func (r ConstReverseIterator[T]) Compare(o ConstReverseIterator[T]) int {
	return cmp.Compare(o.base.pos, r.base.pos)
}

// Begin returns an iterator at the first element.
func (v *Vector[T]) Begin() Iterator[T] { return Iterator[T]{cursor[T]{v, 0}} }

// End returns an iterator one past the last element.
func (v *Vector[T]) End() Iterator[T] { return Iterator[T]{cursor[T]{v, v.size}} }

// CBegin returns a read-only iterator at the first element.
func (v *Vector[T]) CBegin() ConstIterator[T] { return ConstIterator[T]{cursor[T]{v, 0}} }

// CEnd returns a read-only iterator one past the last element.
func (v *Vector[T]) CEnd() ConstIterator[T] { return ConstIterator[T]{cursor[T]{v, v.size}} }

// RBegin returns a reverse iterator at the last element.
func (v *Vector[T]) RBegin() ReverseIterator[T] {
	return ReverseIterator[T]{rcursor[T]{cursor[T]{v, v.size}}}
}

// REnd returns a reverse iterator one before the first element.
func (v *Vector[T]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{rcursor[T]{cursor[T]{v, 0}}}
}

// CRBegin returns a read-only reverse iterator at the last element.
func (v *Vector[T]) CRBegin() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{rcursor[T]{cursor[T]{v, v.size}}}
}

// CREnd returns a read-only reverse iterator one before the first element.
func (v *Vector[T]) CREnd() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{rcursor[T]{cursor[T]{v, 0}}}
}

// resolve checks that p belongs to v and returns its index unchecked.
func (v *Vector[T]) resolve(op string, p Position[T]) (int, error) {
	if p == nil {
		return 0, foreignError(op)
	}
	owner, pos := p.position()
	if owner != v {
		return 0, foreignError(op)
	}
	return pos, nil
}
