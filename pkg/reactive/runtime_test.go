package reactive

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrictModePanicsOnWarning(t *testing.T) {
	rt := NewRuntime(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithStrict(true),
	)
	require.True(t, rt.Strict())
	ro := rt.Readonly(map[string]any{"a": 1})

	assert.PanicsWithError(t, ErrReadonly.WithDetail("key %q", "a").Error(), func() {
		_ = ro.Set("a", 2)
	})
	assert.Equal(t, 1, ro.Raw()["a"])
}

func TestNonStrictWarningIsReturned(t *testing.T) {
	rt, warnings := newTestRuntime()
	require.False(t, rt.Strict())
	ro := rt.Readonly(map[string]any{"a": 1})

	err := ro.Set("a", 2)
	assert.ErrorIs(t, err, ErrReadonly)
	require.Len(t, *warnings, 1)
	assert.ErrorIs(t, (*warnings)[0], ErrReadonly)
}

func TestTriggerLengthInvalidatesTail(t *testing.T) {
	rt, _ := newTestRuntime()
	id := rt.newTarget()

	var runs [3]int
	for i, key := range []string{"0", "2", LengthKey} {
		rt.Effect(func() {
			runs[i]++
			rt.Track(id, key)
		})
	}

	rt.TriggerLength(id, 1)
	assert.Equal(t, [3]int{1, 2, 2}, runs)
}
