package vector

import (
	"fmt"
	"iter"
	"log/slog"
	"math/bits"
	"strings"
)

// Bits is a growable sequence of booleans packed eight to a byte: element
// i lives in byte i/8 at bit i%8.
//
// It follows the Vector contract for length, capacity and growth, with
// capacity counted in bits and always a multiple of eight. Bits at or past
// Len are kept clear, so storage reused by a later Resize or Reserve never
// exposes stale values. Unlike Vector, Reserve may also shrink storage.
//
// The zero value is an empty Bits using heap storage.
type Bits struct {
	data []byte // len(data)*8 == Cap()
	size int
	mem  provider[byte]
	log  *slog.Logger

	reallocs int
}

// BitRef addresses a single bit of a Bits by byte and bit offset. It is a
// value: copies address the same bit, and writing through any copy
// changes that bit. A BitRef is invalidated when its Bits reallocates.
type BitRef struct {
	b   *byte
	off uint8
}

// Get reports whether the bit is set.
func (r BitRef) Get() bool { return *r.b&(1<<r.off) != 0 }

// Set sets or clears the bit.
func (r BitRef) Set(x bool) {
	if x {
		*r.b |= 1 << r.off
	} else {
		*r.b &^= 1 << r.off
	}
}

// Flip inverts the bit.
func (r BitRef) Flip() { *r.b ^= 1 << r.off }

// NewBits creates an empty Bits with no storage.
func NewBits(opts ...Option) *Bits {
	o := buildOptions(opts)
	return &Bits{mem: newProvider[byte](o), log: o.logger}
}

// NewBitsSized creates a Bits of n clear bits.
func NewBitsSized(n int, opts ...Option) (*Bits, error) {
	return NewBitsFilled(n, false, opts...)
}

// NewBitsFilled creates a Bits of n bits all equal to x.
func NewBitsFilled(n int, x bool, opts ...Option) (*Bits, error) {
	b := NewBits(opts...)
	if err := b.ResizeValue(n, x); err != nil {
		return nil, err
	}
	return b, nil
}

// BitsOf creates a Bits holding xs. It panics if heap storage cannot be
// obtained.
func BitsOf(xs ...bool) *Bits {
	b := NewBits()
	if err := b.Reserve(len(xs)); err != nil {
		panic(err)
	}
	for i, x := range xs {
		b.put(i, x)
	}
	b.size = len(xs)
	return b
}

// Len returns the number of bits.
func (b *Bits) Len() int { return b.size }

// Cap returns the capacity in bits.
func (b *Bits) Cap() int { return len(b.data) * 8 }

// Empty reports whether b holds no bits.
func (b *Bits) Empty() bool { return b.size == 0 }

// Reserve resizes storage to ceil(n/8) bytes. Growing copies every byte;
// shrinking keeps the bytes that still fit and truncates Len to the new
// capacity. On failure nothing changes.
func (b *Bits) Reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	nb := bytesFor(n)
	if nb == len(b.data) {
		return nil
	}
	return b.reallocate(nb)
}

// ShrinkToFit reduces storage to the bytes needed for Len.
func (b *Bits) ShrinkToFit() error {
	nb := bytesFor(b.size)
	if nb == len(b.data) {
		return nil
	}
	return b.reallocate(nb)
}

func (b *Bits) reallocate(nb int) error {
	block, err := b.mem.allocate(nb)
	if err != nil {
		b.logger().Debug("bits reallocation failed",
			slog.Int("len", b.size), slog.Int("cap", b.Cap()), slog.Int("want", nb*8),
			slog.Any("error", err))
		return err
	}
	copy(block, b.data)
	old := b.data
	b.data = block
	b.mem.release(old)
	b.size = min(b.size, nb*8)
	b.reallocs++

	b.logger().Debug("bits reallocated",
		slog.Int("len", b.size), slog.Int("old_cap", len(old)*8), slog.Int("new_cap", nb*8))
	return nil
}

// PushBack appends x, doubling capacity when full.
func (b *Bits) PushBack(x bool) error {
	if b.size == b.Cap() {
		if err := b.reallocate(bytesFor(nextCapacity(b.Cap()))); err != nil {
			return err
		}
	}
	b.put(b.size, x)
	b.size++
	return nil
}

// PopBack removes the last bit and clears it. Calling it on an empty Bits
// is a caller error and panics.
func (b *Bits) PopBack() {
	i := uint(b.size - 1)
	b.data[i>>3] &^= 1 << (i & 7)
	b.size--
}

// Resize changes the length to n, clearing new bits.
func (b *Bits) Resize(n int) error {
	return b.ResizeValue(n, false)
}

// ResizeValue changes the length to n, setting new bits to x. Storage
// grows to exactly ceil(n/8) bytes if needed and is never reduced.
func (b *Bits) ResizeValue(n int, x bool) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if n > b.Cap() {
		if err := b.reallocate(bytesFor(n)); err != nil {
			return err
		}
	}
	if n < b.size {
		for i := n; i < b.size; i++ {
			b.put(i, false)
		}
	} else if x {
		for i := b.size; i < n; i++ {
			b.put(i, true)
		}
	}
	b.size = n
	return nil
}

// Clear removes all bits. Capacity is retained for reuse.
func (b *Bits) Clear() {
	clear(b.data[:bytesFor(b.size)])
	b.size = 0
}

// Free removes all bits and releases storage.
func (b *Bits) Free() {
	old := b.data
	b.data = nil
	b.size = 0
	b.mem.release(old)
}

// At returns bit i, or an *IndexError if i is not in [0, Len).
func (b *Bits) At(i int) (bool, error) {
	if i < 0 || i >= b.size {
		return false, &IndexError{Index: i, Len: b.size}
	}
	return b.get(i), nil
}

// Set sets bit i to x, or returns an *IndexError if i is not in [0, Len).
func (b *Bits) Set(i int, x bool) error {
	if i < 0 || i >= b.size {
		return &IndexError{Index: i, Len: b.size}
	}
	b.put(i, x)
	return nil
}

// Flip inverts bit i.
func (b *Bits) Flip(i int) error {
	r, err := b.Ref(i)
	if err != nil {
		return err
	}
	r.Flip()
	return nil
}

// Ref returns a reference to bit i, or an *IndexError if i is not in
// [0, Len).
func (b *Bits) Ref(i int) (BitRef, error) {
	if i < 0 || i >= b.size {
		return BitRef{}, &IndexError{Index: i, Len: b.size}
	}
	return b.Index(i), nil
}

// Index returns a reference to bit i without a checked error. i must be
// in [0, Len).
func (b *Bits) Index(i int) BitRef {
	return BitRef{b: &b.data[i>>3], off: uint8(i & 7)}
}

// Front returns the first bit. b must not be empty.
func (b *Bits) Front() bool { return b.Index(0).Get() }

// Back returns the last bit. b must not be empty.
func (b *Bits) Back() bool { return b.Index(b.size - 1).Get() }

// Count returns the number of set bits.
func (b *Bits) Count() int {
	n := 0
	for _, x := range b.data[:bytesFor(b.size)] {
		n += bits.OnesCount8(x)
	}
	return n
}

// All returns an iterator over index-bit pairs in order.
func (b *Bits) All() iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		for i := 0; i < b.size; i++ {
			if !yield(i, b.get(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over the bits in order.
func (b *Bits) Values() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := 0; i < b.size; i++ {
			if !yield(b.get(i)) {
				return
			}
		}
	}
}

// ToSlice returns the bits unpacked one per bool.
func (b *Bits) ToSlice() []bool {
	out := make([]bool, b.size)
	for i := range out {
		out[i] = b.get(i)
	}
	return out
}

// String renders the bits as 0s and 1s, first bit leftmost.
func (b *Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.size)
	for i := 0; i < b.size; i++ {
		if b.get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (b *Bits) get(i int) bool {
	return b.data[i>>3]&(1<<(i&7)) != 0
}

func (b *Bits) put(i int, x bool) {
	if x {
		b.data[i>>3] |= 1 << (i & 7)
	} else {
		b.data[i>>3] &^= 1 << (i & 7)
	}
}

func (b *Bits) logger() *slog.Logger {
	if b.log == nil {
		return discardLogger
	}
	return b.log
}

// bytesFor returns ceil(n/8) without overflowing for large n.
func bytesFor(n int) int {
	nb := n / 8
	if n%8 != 0 {
		nb++
	}
	return nb
}
