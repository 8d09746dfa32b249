package vector

// Insert places x before pos and returns an iterator at the inserted
// element. pos must lie within [Begin, End]. Growth follows PushBack:
// capacity doubles when the vector is full. The returned iterator is
// built against the vector's current bounds.
func (v *Vector[T]) Insert(pos Position[T], x T) (Iterator[T], error) {
	i, err := v.resolve("insert", pos)
	if err != nil {
		return Iterator[T]{}, err
	}
	if err := v.insert(i, x); err != nil {
		return Iterator[T]{}, err
	}
	return Iterator[T]{cursor[T]{v, i}}, nil
}

// InsertAt places x at index i, shifting later elements back.
// i may equal Len. An index outside [0, Len] yields an *IndexError.
func (v *Vector[T]) InsertAt(i int, x T) error {
	if i < 0 || i > v.size {
		return &IndexError{Index: i, Len: v.size}
	}
	return v.insert(i, x)
}

func (v *Vector[T]) insert(i int, x T) error {
	if i < 0 || i > v.size {
		return iterError("insert", i, v.size)
	}
	if v.size == len(v.data) {
		if err := v.reallocate(nextCapacity(len(v.data))); err != nil {
			return err
		}
	}
	copy(v.data[i+1:v.size+1], v.data[i:v.size])
	v.data[i] = x
	v.size++
	return nil
}

// Erase removes the element at pos and returns an iterator at the same
// index, which now denotes the following element (or End). pos must
// denote a live element.
func (v *Vector[T]) Erase(pos Position[T]) (Iterator[T], error) {
	i, err := v.resolve("erase", pos)
	if err != nil {
		return Iterator[T]{}, err
	}
	if err := v.erase(i, i+1); err != nil {
		return Iterator[T]{}, err
	}
	return Iterator[T]{cursor[T]{v, i}}, nil
}

// EraseAt removes the element at index i.
func (v *Vector[T]) EraseAt(i int) error {
	if i < 0 || i >= v.size {
		return &IndexError{Index: i, Len: v.size}
	}
	return v.erase(i, i+1)
}

// EraseRange removes the elements in [first, last) and returns an
// iterator at first's index. An empty range removes nothing.
func (v *Vector[T]) EraseRange(first, last Position[T]) (Iterator[T], error) {
	f, err := v.resolve("erase", first)
	if err != nil {
		return Iterator[T]{}, err
	}
	l, err := v.resolve("erase", last)
	if err != nil {
		return Iterator[T]{}, err
	}
	if err := v.erase(f, l); err != nil {
		return Iterator[T]{}, err
	}
	return Iterator[T]{cursor[T]{v, f}}, nil
}

// erase removes [f, l) by destructing it and shifting the tail forward
// by assignment. The vacated tail slots are zeroed without destruction,
// their values having moved.
func (v *Vector[T]) erase(f, l int) error {
	switch {
	case f < 0 || f > v.size:
		return iterError("erase", f, v.size)
	case l < f || l > v.size:
		return iterError("erase", l, v.size)
	case f == l:
		return nil
	}
	v.destruct(v.data[f:l])
	n := copy(v.data[f:], v.data[l:v.size])
	clear(v.data[f+n : v.size])
	v.size -= l - f
	return nil
}
