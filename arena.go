package vector

import (
	"errors"
	"math"
	"unsafe"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

var (
	errArenaReleased = errors.New("arena released")
	errArenaTooLarge = errors.New("arena: request exceeds addressable size")
)

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
}

// Arena is a chunked bump allocator that vectors can draw their slot
// blocks from (see WithArena). Blocks are never returned individually:
// a vector releasing a block only drops its reference, and the memory is
// reclaimed by Reset or Release. Not goroutine-safe.
//
// Arena memory is invisible to the garbage collector, so only element
// types without pointers are placed in it.
type Arena struct {
	chunks    []chunk
	chunkSize int
	current   int // index of the chunk allocations are served from
	released  bool
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	if err := a.grow(chunkSize); err != nil {
		panic("arena: " + err.Error())
	}
	return a
}

// alloc returns n bytes aligned to align. The memory is not zeroed.
func (a *Arena) alloc(n int, align uintptr) ([]byte, error) {
	if a.released {
		return nil, errArenaReleased
	}
	if n <= 0 {
		return nil, nil
	}
	if align == 0 {
		align = 1
	}
	if n > math.MaxInt-int(align) {
		return nil, errArenaTooLarge
	}

	// Fast path: current chunk, then any later chunk left by a Reset.
	for i := a.current; i < len(a.chunks); i++ {
		c := &a.chunks[i]
		off := alignUp(c.offset, align)
		if off+uintptr(n) <= uintptr(len(c.buf)) {
			a.current = i
			c.offset = off + uintptr(n)
			return unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[off])), n), nil
		}
	}

	// Slow path: a fresh chunk large enough for n plus alignment slack.
	if err := a.grow(n + int(align)); err != nil {
		return nil, err
	}
	c := &a.chunks[a.current]
	off := alignUp(c.offset, align)
	if off+uintptr(n) > uintptr(len(c.buf)) {
		return nil, errArenaTooLarge
	}
	c.offset = off + uintptr(n)
	return unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[off])), n), nil
}

// Reset rewinds every chunk so the arena can be reused.
// Storage handed out before the reset must no longer be in use.
func (a *Arena) Reset() {
	if a.released {
		return
	}
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.current = 0
}

// Release drops all chunks. Later allocations fail with ErrOutOfMemory.
func (a *Arena) Release() {
	a.chunks = nil
	a.current = 0
	a.released = true
}

// grow appends a new chunk of at least min bytes and makes it current.
func (a *Arena) grow(min int) error {
	if min <= 0 {
		return errArenaTooLarge
	}
	size := a.chunkSize
	if min > size {
		size = min
	}
	buf, err := makeBlock[byte](size)
	if err != nil {
		return err
	}
	a.chunks = append(a.chunks, chunk{buf: buf})
	a.current = len(a.chunks) - 1
	return nil
}

// alignUp rounds off up to a multiple of align (a power of two).
func alignUp(off, align uintptr) uintptr {
	if align <= 1 {
		return off
	}
	mask := align - 1
	return (off + mask) & ^mask
}
