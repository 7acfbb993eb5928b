package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayIndexTracking(t *testing.T) {
	rt, _ := newTestRuntime()
	raw := []any{"a", "b", "c"}
	arr := rt.ReactiveArray(&raw)

	var seen []any
	rt.Effect(func() {
		seen = append(seen, arr.Get(1))
	})

	require.NoError(t, arr.Set(0, "x"))
	assert.Equal(t, []any{"b"}, seen)

	require.NoError(t, arr.Set(1, "y"))
	assert.Equal(t, []any{"b", "y"}, seen)
	assert.Equal(t, []any{"x", "y", "c"}, raw)
}

func TestArrayAddTriggersLength(t *testing.T) {
	rt, _ := newTestRuntime()
	raw := []any{1}
	arr := rt.ReactiveArray(&raw)

	var lengths []int
	rt.Effect(func() {
		lengths = append(lengths, arr.Len())
	})

	require.NoError(t, arr.Set(3, 4))
	assert.Equal(t, []int{1, 4}, lengths)
	assert.Equal(t, []any{1, nil, nil, 4}, raw)

	require.NoError(t, arr.Set(0, 9))
	assert.Equal(t, []int{1, 4}, lengths, "updating an index keeps the length")
}

func TestArrayLengthInvalidatesIndices(t *testing.T) {
	rt, _ := newTestRuntime()
	raw := []any{0, 1, 2, 3}
	arr := rt.ReactiveArray(&raw)

	first, last := 0, 0
	rt.Effect(func() {
		arr.Get(0)
		first++
	})
	rt.Effect(func() {
		arr.Get(3)
		last++
	})

	require.NoError(t, arr.SetLen(2))
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, last)
	assert.Equal(t, []any{0, 1}, raw)

	require.NoError(t, arr.SetLen(2))
	assert.Equal(t, 2, last)
}

func TestArrayNegativeIndex(t *testing.T) {
	rt, _ := newTestRuntime()
	raw := []any{}
	arr := rt.ReactiveArray(&raw)

	assert.ErrorIs(t, arr.Set(-1, 1), ErrIndexRange)
	assert.ErrorIs(t, arr.SetLen(-1), ErrIndexRange)
	assert.Nil(t, arr.Get(5))
}

func TestArrayMutators(t *testing.T) {
	rt, _ := newTestRuntime()
	raw := []any{}
	arr := rt.ReactiveArray(&raw)

	require.NoError(t, arr.Push(1, 2, 3))
	assert.Equal(t, []any{1, 2, 3}, raw)

	v, err := arr.Pop()
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	require.NoError(t, arr.Unshift(0))
	assert.Equal(t, []any{0, 1, 2}, raw)

	v, err = arr.Shift()
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.Equal(t, []any{1, 2}, raw)

	removed, err := arr.Splice(1, 1, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []any{2}, removed)
	assert.Equal(t, []any{1, "a", "b"}, raw)

	removed, err = arr.Splice(-1, 5)
	require.NoError(t, err)
	assert.Equal(t, []any{"b"}, removed)
	assert.Equal(t, []any{1, "a"}, raw)

	v, err = rt.ReactiveArray(&[]any{}).Pop()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestArrayPushInsideEffectsDoesNotLoop(t *testing.T) {
	rt, _ := newTestRuntime()
	raw := []any{}
	arr := rt.ReactiveArray(&raw)

	e1 := rt.Effect(func() { _ = arr.Push(1) })
	e2 := rt.Effect(func() { _ = arr.Push(2) })

	assert.EqualValues(t, 1, e1.Runs())
	assert.EqualValues(t, 1, e2.Runs())
	assert.Equal(t, []any{1, 2}, raw)
	assert.Equal(t, 0, rt.Bucket().Subscribers(arr.ID(), LengthKey))
}

func TestArrayIncludesRawAndWrapped(t *testing.T) {
	rt, _ := newTestRuntime()
	obj := map[string]any{"n": 1}
	raw := []any{obj}
	arr := rt.ReactiveArray(&raw)

	assert.True(t, arr.Includes(obj))
	assert.True(t, arr.Includes(rt.Reactive(obj)))
	assert.Equal(t, 0, arr.IndexOf(arr.Get(0)))
	assert.Equal(t, -1, arr.IndexOf(map[string]any{"n": 1}))
}

func TestReadonlyArray(t *testing.T) {
	rt, warnings := newTestRuntime()
	raw := []any{1}
	ro := rt.ReadonlyArray(&raw)

	assert.ErrorIs(t, ro.Set(0, 2), ErrReadonly)
	assert.ErrorIs(t, ro.Push(2), ErrReadonly)
	assert.Equal(t, []any{1}, raw)
	assert.Len(t, *warnings, 2)
}

func TestArrayRangeTracksLength(t *testing.T) {
	rt, _ := newTestRuntime()
	raw := []any{1, 2}
	arr := rt.ReactiveArray(&raw)

	var sums []int
	rt.Effect(func() {
		sum := 0
		arr.Range(func(_ int, v any) bool {
			sum += v.(int)
			return true
		})
		sums = append(sums, sum)
	})

	require.NoError(t, arr.Push(3))
	assert.Equal(t, []int{3, 6}, sums)

	// The re-run happened inside Push; it must still have re-subscribed.
	require.NoError(t, arr.Push(4))
	assert.Equal(t, []int{3, 6, 10}, sums)
}
