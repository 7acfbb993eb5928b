package reactive

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputedIsLazyAndCached(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"n": 2})

	calls := 0
	double := NewComputed(rt, func() int {
		calls++
		return state.Get("n").(int) * 2
	})
	assert.Equal(t, 0, calls)
	assert.True(t, double.Dirty())

	assert.Equal(t, 4, double.Value())
	assert.Equal(t, 4, double.Value())
	assert.Equal(t, 1, calls)

	require.NoError(t, state.Set("n", 3))
	assert.True(t, double.Dirty())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 6, double.Value())
	assert.Equal(t, 2, calls)
}

func TestStoppedComputedKeepsLastValue(t *testing.T) {
	var warnings []error
	rt := NewRuntime(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithWarnHook(func(err error) { warnings = append(warnings, err) }),
		WithStrict(true),
	)
	state := rt.Reactive(map[string]any{"n": 2})

	never := NewComputed(rt, func() int { return state.Get("n").(int) })
	never.Stop()
	assert.NotPanics(t, func() { assert.Equal(t, 0, never.Value()) })

	double := NewComputed(rt, func() int { return state.Get("n").(int) * 2 })
	require.Equal(t, 4, double.Value())
	require.NoError(t, state.Set("n", 5))
	require.True(t, double.Dirty())
	double.Stop()
	assert.NotPanics(t, func() { assert.Equal(t, 4, double.Value()) })
	assert.Empty(t, warnings)
}

func TestEffectOnComputed(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"n": 1})
	plusOne := NewComputed(rt, func() int { return state.Get("n").(int) + 1 })

	var seen []int
	rt.Effect(func() {
		seen = append(seen, plusOne.Value())
	})

	require.NoError(t, state.Set("n", 5))
	assert.Equal(t, []int{2, 6}, seen)

	plusOne.Stop()
	require.NoError(t, state.Set("n", 7))
	assert.Equal(t, []int{2, 6}, seen)
}

func TestWatch(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"n": 0, "other": 0})

	var calls [][2]any
	stop := Watch(rt, func() any { return state.Get("n") }, func(n, o any) {
		calls = append(calls, [2]any{n, o})
	})
	assert.Empty(t, calls)

	require.NoError(t, state.Set("n", 1))
	require.NoError(t, state.Set("other", 1))
	assert.Equal(t, [][2]any{{1, 0}}, calls)

	stop()
	require.NoError(t, state.Set("n", 2))
	assert.Len(t, calls, 1)
}

func TestWatchImmediate(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"n": 3})

	var calls [][2]int
	Watch(rt, func() int { return state.Get("n").(int) }, func(n, o int) {
		calls = append(calls, [2]int{n, o})
	}, Immediate())

	assert.Equal(t, [][2]int{{3, 0}}, calls)
}

func TestWatchDeep(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{
		"user": map[string]any{"tags": &[]any{"a"}},
	})

	fired := 0
	Watch(rt, func() any { return state.Get("user") }, func(_, _ any) {
		fired++
	}, Deep())

	user := state.Get("user").(*Object)
	tags := user.Get("tags").(*Array)
	require.NoError(t, tags.Push("b"))
	assert.Equal(t, 1, fired)

	require.NoError(t, user.Set("name", "ann"))
	assert.Equal(t, 2, fired)
}

func TestWatchOnQueue(t *testing.T) {
	rt, _ := newTestRuntime()
	q := NewJobQueue()
	state := rt.Reactive(map[string]any{"n": 0})

	var calls [][2]any
	Watch(rt, func() any { return state.Get("n") }, func(n, o any) {
		calls = append(calls, [2]any{n, o})
	}, OnQueue(q))

	require.NoError(t, state.Set("n", 1))
	require.NoError(t, state.Set("n", 2))
	assert.Empty(t, calls)

	q.Flush()
	assert.Equal(t, [][2]any{{2, 0}}, calls)
}

func TestCurrentIsPerGoroutine(t *testing.T) {
	rt := Current()
	assert.Same(t, rt, Current())

	var other *Runtime
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer Forget()
		other = Current()
	}()
	wg.Wait()
	assert.NotSame(t, rt, other)

	mine := NewRuntime()
	Bind(mine)
	assert.Same(t, mine, Current())
	Forget()
	assert.NotSame(t, mine, Current())
	Forget()
}
