package reactive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameValue(t *testing.T) {
	m := map[string]any{}
	s := []any{1}
	f := func() {}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil", nil, nil, true},
		{"nil vs value", nil, 0, false},
		{"ints", 1, 1, true},
		{"different types", 1, int64(1), false},
		{"nan", math.NaN(), math.NaN(), true},
		{"float", 0.5, 0.25, false},
		{"strings", "a", "a", true},
		{"same map", m, m, true},
		{"equal maps", map[string]any{}, map[string]any{}, false},
		{"same slice", s, s, true},
		{"same func", f, f, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameValue(tt.a, tt.b))
		})
	}
}

func TestToRaw(t *testing.T) {
	rt, _ := newTestRuntime()
	m := map[string]any{}
	raw := []any{}

	assert.Equal(t, m, ToRaw(rt.Reactive(m)))
	assert.Same(t, &raw, ToRaw(rt.ReactiveArray(&raw)))
	assert.Equal(t, 3, ToRaw(3))
}
