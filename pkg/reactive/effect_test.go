package reactive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectRunsImmediately(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"count": 0})

	var seen []any
	e := rt.Effect(func() {
		seen = append(seen, state.Get("count"))
	})

	assert.Equal(t, []any{0}, seen)
	assert.EqualValues(t, 1, e.Runs())
	assert.Equal(t, 1, rt.Bucket().Subscribers(state.ID(), "count"))
}

func TestEffectRerunsOncePerWrite(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"count": 0})

	var seen []any
	rt.Effect(func() {
		seen = append(seen, state.Get("count"))
	})

	require.NoError(t, state.Set("count", 1))
	require.NoError(t, state.Set("count", 2))

	assert.Equal(t, []any{0, 1, 2}, seen)
}

func TestEffectSkipsUnchangedWrite(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"count": 1, "ratio": math.NaN()})

	runs := 0
	rt.Effect(func() {
		state.Get("count")
		state.Get("ratio")
		runs++
	})

	require.NoError(t, state.Set("count", 1))
	require.NoError(t, state.Set("ratio", math.NaN()))
	assert.Equal(t, 1, runs)

	require.NoError(t, state.Set("ratio", 0.5))
	assert.Equal(t, 2, runs)
}

func TestEffectUnrelatedKey(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"a": 1, "b": 1})

	runs := 0
	rt.Effect(func() {
		state.Get("a")
		runs++
	})

	require.NoError(t, state.Set("b", 2))
	assert.Equal(t, 1, runs)
}

func TestEffectPrunesStaleBranch(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"ok": true, "text": "hello"})

	var out []any
	rt.Effect(func() {
		if state.Get("ok") == true {
			out = append(out, state.Get("text"))
		} else {
			out = append(out, "not")
		}
	})

	require.NoError(t, state.Set("ok", false))
	assert.Equal(t, []any{"hello", "not"}, out)
	assert.Equal(t, 0, rt.Bucket().Subscribers(state.ID(), "text"))

	// text is no longer read, so writing it must not re-run the effect.
	require.NoError(t, state.Set("text", "world"))
	assert.Equal(t, []any{"hello", "not"}, out)
}

func TestEffectSelfTriggerDoesNotLoop(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"count": 0})

	e := rt.Effect(func() {
		n := state.Get("count").(int)
		_ = state.Set("count", n+1)
	})

	assert.EqualValues(t, 1, e.Runs())
	assert.Equal(t, 1, state.Raw()["count"])
}

func TestEffectStoppedMidRunDoesNotResubscribe(t *testing.T) {
	rt, warnings := newTestRuntime()
	state := rt.Reactive(map[string]any{"a": 1})

	var e *Effect
	e = rt.Effect(func() {
		if e != nil {
			e.Stop()
		}
		_ = state.Get("a")
	})
	require.Equal(t, 1, rt.Bucket().Subscribers(state.ID(), "a"))

	require.NoError(t, state.Set("a", 2))
	assert.True(t, e.Stopped())
	assert.EqualValues(t, 2, e.Runs())
	assert.Equal(t, 0, rt.Bucket().Subscribers(state.ID(), "a"))
	assert.Empty(t, e.Deps())

	require.NoError(t, state.Set("a", 3))
	assert.EqualValues(t, 2, e.Runs())
	assert.Empty(t, *warnings)
}

func TestNestedEffects(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"outer": 0, "inner": 0})

	outerRuns, innerRuns := 0, 0
	rt.Effect(func() {
		outerRuns++
		rt.Effect(func() {
			innerRuns++
			state.Get("inner")
		})
		state.Get("outer")
	})

	assert.Equal(t, 1, outerRuns)
	assert.Equal(t, 1, innerRuns)

	require.NoError(t, state.Set("inner", 1))
	assert.Equal(t, 1, outerRuns, "inner read must not subscribe the outer effect")
	assert.Equal(t, 2, innerRuns)

	require.NoError(t, state.Set("outer", 1))
	assert.Equal(t, 2, outerRuns)
	assert.Nil(t, rt.Active())
}

func TestEffectLazyAndScheduler(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"n": 0})

	var scheduled []*Effect
	runs := 0
	e := rt.Effect(func() {
		state.Get("n")
		runs++
	}, Lazy(), WithScheduler(func(e *Effect) {
		scheduled = append(scheduled, e)
	}))
	assert.Equal(t, 0, runs)

	e.Run()
	assert.Equal(t, 1, runs)

	require.NoError(t, state.Set("n", 1))
	assert.Equal(t, 1, runs, "scheduler decides when to run")
	assert.Equal(t, []*Effect{e}, scheduled)
}

func TestEffectStop(t *testing.T) {
	rt, warnings := newTestRuntime()
	state := rt.Reactive(map[string]any{"n": 0})

	stopped := 0
	e := rt.Effect(func() {
		state.Get("n")
	}, OnStop(func() { stopped++ }))

	e.Stop()
	e.Stop()
	assert.Equal(t, 1, stopped)
	assert.True(t, e.Stopped())
	assert.Empty(t, e.Deps())

	require.NoError(t, state.Set("n", 1))
	assert.EqualValues(t, 1, e.Runs())

	e.Run()
	assert.EqualValues(t, 1, e.Runs())
	require.Len(t, *warnings, 1)
	assert.ErrorIs(t, (*warnings)[0], ErrStopped)
}

func TestUntracked(t *testing.T) {
	rt, _ := newTestRuntime()
	state := rt.Reactive(map[string]any{"n": 0})

	runs := 0
	rt.Effect(func() {
		runs++
		rt.Untracked(func() {
			state.Get("n")
		})
		assert.True(t, rt.Tracking())
	})

	require.NoError(t, state.Set("n", 1))
	assert.Equal(t, 1, runs)
	assert.False(t, rt.Tracking())
}
