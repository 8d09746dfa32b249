package vector

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"unsafe"
)

var errSizeOverflow = errors.New("block size overflows")

// provider hands out and takes back blocks of element slots. It is the
// only place vector storage is obtained from, so every growth path
// observes the same failure conditions.
//
// Blocks come from the heap, or from an Arena when one is configured and
// T holds no pointers. Either way a block counts against the Budget from
// allocate until release.
type provider[T any] struct {
	budget *Budget
	arena  *Arena
}

func newProvider[T any](o *options) provider[T] {
	p := provider[T]{budget: o.budget}
	if o.arena == nil {
		return p
	}
	t := reflect.TypeFor[T]()
	if !pointerFree(t) {
		o.logger.Warn("arena storage requires a pointer-free element type, using heap",
			slog.String("type", t.String()))
		return p
	}
	p.arena = o.arena
	return p
}

// allocate returns a zeroed block of n slots.
func (p provider[T]) allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	bytes, ok := blockBytes(size, n)
	if !ok || bytes > math.MaxInt {
		return nil, &AllocError{Bytes: math.MaxInt64, cause: errSizeOverflow}
	}
	if !p.budget.TryAcquire(bytes) {
		return nil, p.budget.refuse(bytes)
	}
	if p.arena == nil || size == 0 {
		block, err := makeBlock[T](n)
		if err != nil {
			p.budget.Release(bytes)
			return nil, &AllocError{Bytes: bytes, cause: err}
		}
		return block, nil
	}

	b, err := p.arena.alloc(int(bytes), unsafe.Alignof(zero))
	if err != nil {
		p.budget.Release(bytes)
		return nil, &AllocError{Bytes: bytes, cause: err}
	}
	block := unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
	// Arena chunks are reused after Reset.
	clear(block)
	return block, nil
}

// release gives a block back. Heap blocks are cleared so that values they
// still reference become collectable; arena blocks stay in the arena until
// it is reset.
func (p provider[T]) release(block []T) {
	n := cap(block)
	if n == 0 {
		return
	}
	if p.arena == nil {
		clear(block[:n])
	}
	var zero T
	bytes, _ := blockBytes(unsafe.Sizeof(zero), n)
	p.budget.Release(bytes)
}

// makeBlock converts the runtime's refusal of an oversized make into an
// error. Exhausting the process heap is still fatal.
func makeBlock[T any](n int) (block []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return make([]T, n), nil
}

// blockBytes returns size*n, or false if the product overflows.
func blockBytes(size uintptr, n int) (int64, bool) {
	if size == 0 {
		return 0, true
	}
	if uint64(n) > uint64(math.MaxInt64)/uint64(size) {
		return 0, false
	}
	return int64(size) * int64(n), true
}

// pointerFree reports whether values of t contain no pointers the garbage
// collector would need to see.
func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
