package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/memhost"
	"github.com/vango-dev/reactor/pkg/vdom"
)

func TestParseKeys(t *testing.T) {
	keys, err := ParseKeys(" 1, 2 ,3")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, keys)

	keys, err = ParseKeys("")
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = ParseKeys("1,,2")
	assert.ErrorIs(t, err, errors.New("X001"))
}

func TestRunQuick(t *testing.T) {
	res, err := Run(Scenario{Old: []string{"1", "2", "3", "4"}, New: []string{"2", "4", "3", "1"}})
	require.NoError(t, err)

	assert.Equal(t, "quick", res.Strategy)
	assert.Equal(t, []string{"2", "4", "3", "1"}, res.Order)
	assert.Equal(t, 2, res.Moves)
	assert.Equal(t, []string{"2", "3"}, res.Stable)
	assert.Equal(t, int64(len(res.Ops)), res.HostOps)
	assert.Empty(t, res.Warnings)
	assert.Len(t, res.Fingerprint, 16)
}

func TestRunAllAgreeOnResult(t *testing.T) {
	s := Scenario{Old: []string{"a", "b", "c", "d"}, New: []string{"d", "a", "x", "c"}}
	results, err := RunAll(s)
	require.NoError(t, err)
	require.Len(t, results, len(vdom.Strategies()))

	for _, res := range results {
		assert.Equal(t, s.New, res.Order, res.Strategy)
		assert.Equal(t, results[0].Fingerprint, res.Fingerprint, res.Strategy)
	}
	assert.Equal(t, 0, results[1].Moves, "index never moves")
}

func TestRunReportsWarnings(t *testing.T) {
	res, err := Run(Scenario{Old: []string{"a"}, New: []string{"a", "a"}})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "V003")
}

func TestRunRejectsBadInput(t *testing.T) {
	_, err := Run(Scenario{Strategy: "fastest"})
	assert.ErrorIs(t, err, errors.New("X001"))

	_, err = Run(Scenario{Old: []string{""}})
	assert.ErrorIs(t, err, errors.New("X001"))
}

func TestRunWithHostWrapper(t *testing.T) {
	wrapped := 0
	_, err := Run(Scenario{Old: []string{"a"}, New: []string{"b"}}, WithHost(func(h vdom.Host) vdom.Host {
		wrapped++
		return h
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, wrapped)
}

func TestSources(t *testing.T) {
	assert.Equal(t, []int{1, vdom.Unmatched, 0, vdom.Unmatched}, Sources([]string{"a", "b"}, []string{"b", "x", "a", "b"}))
	assert.Equal(t, []string{"a"}, Stable([]string{"a", "b"}, []string{"b", "x", "a"}))
}

func TestCountsMatchOps(t *testing.T) {
	res, err := Run(Scenario{Strategy: "keyed", Old: []string{"a", "b"}, New: []string{"b", "c"}})
	require.NoError(t, err)

	total := 0
	for _, n := range res.Counts {
		total += n
	}
	assert.Equal(t, len(res.Ops), total)
	assert.Equal(t, 1, res.Counts[memhost.OpRemove])
}

func TestRunWarnHook(t *testing.T) {
	var seen []error
	res, err := Run(Scenario{Strategy: "keyed", Old: []string{"a"}, New: []string{"a", "a"}},
		WithWarnHook(func(err error) { seen = append(seen, err) }))
	require.NoError(t, err)
	require.Len(t, seen, len(res.Warnings))
	assert.ErrorIs(t, seen[0], vdom.ErrDuplicateKey)
}

func TestRunStrictFailsOnWarning(t *testing.T) {
	res, err := Run(Scenario{Old: []string{"a"}, New: []string{"a", "a"}}, WithStrict(true))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, vdom.ErrDuplicateKey)

	res, err = Run(Scenario{Old: []string{"a"}, New: []string{"b", "a"}}, WithStrict(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, res.Order)
}
