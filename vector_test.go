package vector

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushBackAndLen(t *testing.T) {
	v := New[int]()
	require.NoError(t, v.PushBack(1))
	require.NoError(t, v.PushBack(2))
	require.NoError(t, v.PushBack(3))

	assert.Equal(t, 3, v.Len())
	assert.Equal(t, []int{1, 2, 3}, v.ToSlice())
	assert.Equal(t, 1, v.Index(0))
	assert.Equal(t, 3, v.Index(2))
}

func TestPushBackDoubling(t *testing.T) {
	v := New[int]()
	prev := v.Cap()
	for i := 0; i < 100; i++ {
		require.NoError(t, v.PushBack(i))
		assert.Equal(t, i+1, v.Len())
		if c := v.Cap(); c != prev {
			assert.Equal(t, max(2*prev, 1), c, "growth at len %d", i)
			prev = c
		}
	}
	assert.Equal(t, 128, v.Cap())
	assert.Equal(t, 8, v.Metrics().Reallocations)
}

func TestZeroValueVector(t *testing.T) {
	var v Vector[string]
	assert.True(t, v.Empty())
	require.NoError(t, v.PushBack("a"))
	assert.Equal(t, "a", v.Front())
	v.Free()
	assert.Equal(t, 0, v.Cap())
}

func TestReserve(t *testing.T) {
	v := Of(1, 2, 3)

	t.Run("no-op when not larger", func(t *testing.T) {
		require.NoError(t, v.Reserve(2))
		require.NoError(t, v.Reserve(3))
		assert.Equal(t, 3, v.Cap())
		assert.Equal(t, []int{1, 2, 3}, v.ToSlice())
	})

	t.Run("exact growth preserves order", func(t *testing.T) {
		require.NoError(t, v.Reserve(10))
		assert.Equal(t, 10, v.Cap())
		assert.Equal(t, []int{1, 2, 3}, v.ToSlice())
	})

	t.Run("push within reserve keeps capacity", func(t *testing.T) {
		w := New[int]()
		require.NoError(t, w.Reserve(10))
		require.NoError(t, w.PushBack(1))
		require.NoError(t, w.PushBack(2))
		assert.Equal(t, 10, w.Cap())
	})
}

func TestPopBack(t *testing.T) {
	v := Of(1, 2)
	v.PopBack()
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 1, v.Index(0))
	assert.Equal(t, 2, v.Cap())
}

func TestPopBackEmptyPanics(t *testing.T) {
	v := New[int]()
	assert.Panics(t, func() { v.PopBack() })
}

func TestAt(t *testing.T) {
	v := Of(10, 20)

	x, err := v.At(1)
	require.NoError(t, err)
	assert.Equal(t, 20, x)

	for _, i := range []int{2, 100, -1} {
		_, err := v.At(i)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		var ie *IndexError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, i, ie.Index)
		assert.Equal(t, 2, ie.Len)
	}

	_, err = New[int]().At(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSet(t *testing.T) {
	v := Of(1, 2, 3)
	require.NoError(t, v.Set(1, 5))
	assert.Equal(t, []int{1, 5, 3}, v.ToSlice())
	assert.ErrorIs(t, v.Set(3, 0), ErrIndexOutOfRange)
}

func TestFrontBack(t *testing.T) {
	v := Of(42)
	assert.Equal(t, 42, v.Front())
	assert.Equal(t, 42, v.Back())

	require.NoError(t, v.PushBack(7))
	assert.Equal(t, 42, v.Front())
	assert.Equal(t, 7, v.Back())
}

func TestIndexPanicsPastLen(t *testing.T) {
	v := New[int]()
	require.NoError(t, v.Reserve(4))
	assert.Panics(t, func() { _ = v.Index(0) })
}

func TestResize(t *testing.T) {
	tests := []struct {
		name string
		fill *int
		n    int
		want []int
	}{
		{"grow with zero value", nil, 5, []int{1, 2, 0, 0, 0}},
		{"grow with value", ptr(42), 5, []int{1, 2, 42, 42, 42}},
		{"shrink", nil, 1, []int{1}},
		{"to zero", ptr(9), 0, []int{}},
		{"same length", ptr(9), 2, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Of(1, 2)
			var err error
			if tt.fill == nil {
				err = v.Resize(tt.n)
			} else {
				err = v.ResizeValue(tt.n, *tt.fill)
			}
			require.NoError(t, err)
			assert.Equal(t, tt.n, v.Len())
			assert.Equal(t, tt.want, append([]int{}, v.ToSlice()...))
			assert.GreaterOrEqual(t, v.Cap(), 2)
		})
	}
}

func TestResizeGrowsToExactLength(t *testing.T) {
	v := Of(1, 2)
	require.NoError(t, v.Resize(7))
	assert.Equal(t, 7, v.Cap())

	require.NoError(t, v.Resize(3))
	assert.Equal(t, 7, v.Cap(), "shrinking resize keeps capacity")
}

func TestResizeNegative(t *testing.T) {
	v := Of(1)
	assert.ErrorIs(t, v.Resize(-1), ErrInvalidLength)
	assert.Equal(t, []int{1}, v.ToSlice())
}

func TestResizeFunc(t *testing.T) {
	v := Of(1, 2)
	require.NoError(t, v.ResizeFunc(5, func(i int) (int, error) { return i * 10, nil }))
	assert.Equal(t, []int{1, 2, 20, 30, 40}, v.ToSlice())

	require.NoError(t, v.ResizeFunc(1, func(int) (int, error) {
		t.Fatal("fill called on shrink")
		return 0, nil
	}))
	assert.Equal(t, []int{1}, v.ToSlice())
}

func TestResizeFuncFailureTearsDown(t *testing.T) {
	var destroyed []int
	v := New[int](WithDestructor(func(x int) { destroyed = append(destroyed, x) }))
	for _, x := range []int{1, 2} {
		require.NoError(t, v.PushBack(x))
	}

	boom := errors.New("boom")
	err := v.ResizeFunc(6, func(i int) (int, error) {
		if i == 4 {
			return 0, boom
		}
		return i * 10, nil
	})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())
	slices.Sort(destroyed)
	assert.Equal(t, []int{1, 2, 20, 30}, destroyed)

	// Still usable afterwards.
	require.NoError(t, v.PushBack(5))
	assert.Equal(t, []int{5}, v.ToSlice())
}

func TestShrinkToFit(t *testing.T) {
	v := New[int]()
	require.NoError(t, v.Reserve(100))
	require.NoError(t, v.PushBack(1))
	require.NoError(t, v.PushBack(2))

	require.NoError(t, v.ShrinkToFit())
	assert.Equal(t, 2, v.Cap())
	assert.Equal(t, []int{1, 2}, v.ToSlice())

	before := v.Metrics().Reallocations
	require.NoError(t, v.ShrinkToFit())
	assert.Equal(t, before, v.Metrics().Reallocations, "already tight")

	v.Clear()
	require.NoError(t, v.ShrinkToFit())
	assert.Equal(t, 0, v.Cap())
}

func TestClearRetainsCapacity(t *testing.T) {
	v := Of(1, 2, 3)
	require.NoError(t, v.Reserve(8))
	v.Clear()

	assert.True(t, v.Empty())
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 8, v.Cap())
}

func TestFree(t *testing.T) {
	b := NewBudget(0)
	v, err := From([]int64{1, 2, 3}, WithBudget(b))
	require.NoError(t, err)
	assert.Equal(t, int64(24), b.Used())

	v.Free()
	assert.Equal(t, int64(0), b.Used())
	assert.Equal(t, 0, v.Cap())

	v.Free()
	assert.Equal(t, int64(0), b.Used(), "second Free releases nothing")
}

func TestDestructorRunsOncePerElement(t *testing.T) {
	counts := map[string]int{}
	v := New[string](WithDestructor(func(s string) { counts[s]++ }))
	for _, s := range []string{"a", "b", "c", "d", "e", "f"} {
		require.NoError(t, v.PushBack(s)) // several reallocations
	}

	v.PopBack()                      // f
	require.NoError(t, v.EraseAt(1)) // b
	first, err := v.CBegin().Add(1)
	require.NoError(t, err)
	last, err := first.Add(2)
	require.NoError(t, err)
	_, err = v.EraseRange(first, last) // c d
	require.NoError(t, err)
	require.NoError(t, v.Resize(1)) // e
	v.Free()                        // a

	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1, "d": 1, "e": 1, "f": 1}, counts)
}

func TestDestructorTypeMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		New[int](WithDestructor(func(string) {}))
	})
}

func TestConstructors(t *testing.T) {
	t.Run("NewSized", func(t *testing.T) {
		v, err := NewSized[int](3)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0}, v.ToSlice())
		assert.Equal(t, 3, v.Cap())
	})

	t.Run("NewFilled", func(t *testing.T) {
		v, err := NewFilled(3, "x")
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "x", "x"}, v.ToSlice())
	})

	t.Run("NewSized negative", func(t *testing.T) {
		_, err := NewSized[int](-2)
		assert.ErrorIs(t, err, ErrInvalidLength)
	})

	t.Run("From copies", func(t *testing.T) {
		src := []int{1, 2, 3}
		v, err := From(src)
		require.NoError(t, err)
		src[0] = 99
		assert.Equal(t, []int{1, 2, 3}, v.ToSlice())
		assert.Equal(t, 3, v.Cap())
	})

	t.Run("FromRange reserves once", func(t *testing.T) {
		src := Of(1, 2, 3, 4, 5)
		first, _ := src.CBegin().Add(1)
		last, _ := src.CBegin().Add(4)
		v, err := FromRange[int](first, last)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3, 4}, v.ToSlice())
		assert.Equal(t, 3, v.Cap())
		assert.Equal(t, 1, v.Metrics().Reallocations)
	})

	t.Run("FromRange inverted", func(t *testing.T) {
		src := Of(1, 2, 3)
		first, _ := src.CBegin().Add(2)
		_, err := FromRange[int](first, src.CBegin())
		assert.ErrorIs(t, err, ErrIteratorRange)
	})

	t.Run("FromRange across vectors", func(t *testing.T) {
		a, b := Of(1), Of(2)
		_, err := FromRange[int](a.CBegin(), b.CEnd())
		assert.ErrorIs(t, err, ErrForeignIterator)
	})

	t.Run("FromSeq grows incrementally", func(t *testing.T) {
		v, err := FromSeq(slices.Values([]int{1, 2, 3, 4, 5}))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, v.ToSlice())
		assert.Equal(t, 8, v.Cap())
	})
}

func TestClone(t *testing.T) {
	v := Of(1, 2, 3)
	c, err := v.Clone()
	require.NoError(t, err)
	require.NoError(t, c.Set(0, 9))

	assert.Equal(t, []int{1, 2, 3}, v.ToSlice())
	assert.Equal(t, []int{9, 2, 3}, c.ToSlice())
}

func TestRangeFuncs(t *testing.T) {
	v := Of("a", "b", "c")

	var fwd []string
	for i, s := range v.All() {
		assert.Equal(t, v.Index(i), s)
		fwd = append(fwd, s)
	}
	assert.Equal(t, []string{"a", "b", "c"}, fwd)

	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(v.Values()))

	var back []string
	for _, s := range v.Backward() {
		back = append(back, s)
	}
	assert.Equal(t, []string{"c", "b", "a"}, back)

	var firstTwo []string
	for s := range v.Values() {
		firstTwo = append(firstTwo, s)
		if len(firstTwo) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, firstTwo)
}

func TestString(t *testing.T) {
	assert.Equal(t, "[1 2 3]", Of(1, 2, 3).String())
	assert.Equal(t, "[]", New[int]().String())
}

func ptr[T any](x T) *T { return &x }
