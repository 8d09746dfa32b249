// Package vector implements a contiguous growable sequence with explicit
// storage management, and a bit-packed boolean specialization.
//
// # Overview
//
// Vector[T] keeps its elements in one owned block of slots. Slots below
// Len hold live elements; the rest are reserved. Capacity doubles when a
// PushBack or Insert finds the block full, and changes otherwise only
// through Reserve, Resize, ShrinkToFit and Free.
//
//	v := vector.New[int]()
//	_ = v.PushBack(1)
//	_ = v.PushBack(3)
//	it, _ := v.CBegin().Add(1)
//	it2, _ := v.Insert(it, 2) // [1 2 3], it2 denotes 2
//
// # Failure Guarantees
//
// Storage comes from a provider (heap by default, or an Arena) and can be
// capped with a Budget. Every growth path obtains and fills the new block
// before releasing the old one, so a refused allocation (ErrOutOfMemory)
// leaves elements, length and capacity exactly as they were. The one
// exception is ResizeFunc: if its fill function fails, the vector is torn
// down to empty and its storage released.
//
// # Errors
//
// Checked operations report typed errors matchable with errors.Is and
// errors.As:
//
//   - ErrIndexOutOfRange (*IndexError) from At, Set and the Bits accessors
//   - ErrIteratorRange (*IteratorError) from iterator moves and
//     dereferences and from Insert and Erase positions
//   - ErrOutOfMemory (*AllocError) from any growth
//
// PopBack, Front and Back on an empty container and Index outside
// [0, Len) are caller errors; they are not checked beyond Go's own bounds
// checks.
//
// # Iterators
//
// An iterator is an index plus a reference to its vector. It is checked
// against the vector's current length each time it is used, so it stays
// meaningful across reallocation and reports ErrIteratorRange once the
// vector has shrunk past it. Iterator converts one way to ConstIterator
// via ReadOnly. For plain loops, All, Values and Backward return Go
// range-over-func iterators.
//
// # Bits
//
// Bits stores booleans eight per byte. Index and Ref return a BitRef, a
// small value addressing one bit; writing through it changes that bit.
// Both Vector and Bits retain capacity on Clear.
//
// # Thread Safety
//
// Neither Vector nor Bits is safe for concurrent use. A Budget may be
// shared between containers on different goroutines.
package vector
