package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobQueueDedup(t *testing.T) {
	rt, _ := newTestRuntime()
	q := NewJobQueue()
	state := rt.Reactive(map[string]any{"a": 0, "b": 0})

	var seen [][2]any
	rt.Effect(func() {
		seen = append(seen, [2]any{state.Get("a"), state.Get("b")})
	}, WithScheduler(q.Schedule))

	require.NoError(t, state.Set("a", 1))
	require.NoError(t, state.Set("b", 1))
	require.NoError(t, state.Set("a", 2))
	assert.Equal(t, 1, q.Pending())

	assert.Equal(t, 1, q.Flush())
	assert.Equal(t, [][2]any{{0, 0}, {2, 1}}, seen)
	assert.Equal(t, 0, q.Pending())
}

func TestJobQueueOrder(t *testing.T) {
	rt, _ := newTestRuntime()
	q := NewJobQueue()
	state := rt.Reactive(map[string]any{"a": 0, "b": 0})

	var order []string
	rt.Effect(func() {
		state.Get("b")
		order = append(order, "b")
	}, WithScheduler(q.Schedule))
	rt.Effect(func() {
		state.Get("a")
		order = append(order, "a")
	}, WithScheduler(q.Schedule))
	order = nil

	require.NoError(t, state.Set("a", 1))
	require.NoError(t, state.Set("b", 1))
	q.Flush()
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestJobQueueSkipsStopped(t *testing.T) {
	rt, _ := newTestRuntime()
	q := NewJobQueue()
	state := rt.Reactive(map[string]any{"n": 0})

	e := rt.Effect(func() { state.Get("n") }, WithScheduler(q.Schedule))
	require.NoError(t, state.Set("n", 1))
	e.Stop()

	assert.Equal(t, 0, q.Flush())
}

func TestJobQueueBatch(t *testing.T) {
	rt, _ := newTestRuntime()
	q := NewJobQueue()
	state := rt.Reactive(map[string]any{"n": 0})

	runs := 0
	rt.Effect(func() {
		state.Get("n")
		runs++
	}, WithScheduler(q.Schedule))

	q.Batch(func() {
		_ = state.Set("n", 1)
		q.Batch(func() {
			_ = state.Set("n", 2)
		})
		assert.Equal(t, 1, runs, "inner batch must not flush")
	})
	assert.Equal(t, 2, runs)
}
