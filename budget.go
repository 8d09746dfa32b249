package vector

import (
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Budget caps the number of bytes held by vector storage.
// A single Budget may be shared by several vectors and bit vectors.
//
// A nil *Budget imposes no limit and tracks nothing.
type Budget struct {
	limit int64
	sem   *semaphore.Weighted // nil if unlimited
	used  atomic.Int64
}

// NewBudget creates a budget allowing at most limitBytes bytes of storage.
// If limitBytes <= 0 the budget only tracks usage.
func NewBudget(limitBytes int64) *Budget {
	b := &Budget{limit: limitBytes}
	if limitBytes > 0 {
		b.sem = semaphore.NewWeighted(limitBytes)
	}
	return b
}

// TryAcquire reserves n bytes without blocking.
// It returns false if the limit would be exceeded.
func (b *Budget) TryAcquire(n int64) bool {
	if b == nil || n <= 0 {
		return true
	}
	if b.sem != nil && !b.sem.TryAcquire(n) {
		return false
	}
	b.used.Add(n)
	return true
}

// Release returns n bytes to the budget.
func (b *Budget) Release(n int64) {
	if b == nil || n <= 0 {
		return
	}
	if b.sem != nil {
		b.sem.Release(n)
	}
	b.used.Add(-n)
}

// Used returns the number of bytes currently reserved.
func (b *Budget) Used() int64 {
	if b == nil {
		return 0
	}
	return b.used.Load()
}

// Limit returns the configured limit, or 0 if unlimited.
func (b *Budget) Limit() int64 {
	if b == nil {
		return 0
	}
	return b.limit
}

func (b *Budget) refuse(n int64) error {
	return &AllocError{Bytes: n, Used: b.Used(), Limit: b.Limit()}
}
