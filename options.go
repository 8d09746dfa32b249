package vector

import (
	"fmt"
	"log/slog"
)

type options struct {
	logger     *slog.Logger
	budget     *Budget
	arena      *Arena
	destructor any // func(T), checked against the element type at construction
}

// Option configures a Vector or Bits at construction.
type Option func(*options)

// WithLogger sets the logger used for debug records about reallocation and
// teardown. If nil is passed, logging is discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithBudget charges all storage of the container against b. Growth that
// would exceed the budget fails with ErrOutOfMemory and leaves the
// container unchanged.
func WithBudget(b *Budget) Option {
	return func(o *options) {
		o.budget = b
	}
}

// WithArena draws storage blocks from a instead of the heap.
//
// Only used when the element type holds no pointers; otherwise a warning
// is logged and heap storage is used. Blocks are reclaimed when the arena
// is reset, so containers must not outlive a.Reset().
func WithArena(a *Arena) Option {
	return func(o *options) {
		o.arena = a
	}
}

// WithDestructor registers fn to run exactly once for every element that
// leaves the vector: PopBack, Erase, EraseRange, Clear, shrinking Resize,
// Free and the teardown after a failed ResizeFunc. Elements moved by
// reallocation or shifting are not destructed.
//
// The type parameter must match the element type of the vector it is
// passed to; New panics otherwise.
func WithDestructor[T any](fn func(T)) Option {
	return func(o *options) {
		o.destructor = fn
	}
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = discardLogger
	}
	return o
}

func destructorFor[T any](o *options) func(T) {
	if o.destructor == nil {
		return nil
	}
	fn, ok := o.destructor.(func(T))
	if !ok {
		var zero T
		panic(fmt.Sprintf("vector: destructor %T does not accept %T", o.destructor, zero))
	}
	return fn
}
