package vdom_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/vango-dev/reactor/pkg/vdom"
)

func TestLongestIncreasingSubsequence(t *testing.T) {
	tests := []struct {
		name string
		seq  []int
		want []int
	}{
		{"empty", nil, []int{}},
		{"all unmatched", []int{-1, -1}, []int{}},
		{"sorted", []int{0, 1, 2}, []int{0, 1, 2}},
		{"reversed", []int{3, 2, 1}, []int{2}},
		{"with gaps", []int{2, -1, 3, -1, 1, -1, 5}, []int{0, 2, 6}},
		{"move one", []int{1, 3, 2, 0}, []int{0, 2}},
		{"single", []int{7}, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vdom.LongestIncreasingSubsequence(tt.seq))
		})
	}
}

// lisLength computes the LIS length the slow way.
func lisLength(seq []int) int {
	best := make([]int, len(seq))
	longest := 0
	for i, v := range seq {
		if v == vdom.Unmatched {
			continue
		}
		best[i] = 1
		for j := 0; j < i; j++ {
			if seq[j] != vdom.Unmatched && seq[j] < v && best[j]+1 > best[i] {
				best[i] = best[j] + 1
			}
		}
		longest = max(longest, best[i])
	}
	return longest
}

func TestLongestIncreasingSubsequenceProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("result is a maximal increasing subsequence", prop.ForAll(
		func(seq []int) bool {
			got := vdom.LongestIncreasingSubsequence(seq)
			for k, idx := range got {
				if idx < 0 || idx >= len(seq) || seq[idx] == vdom.Unmatched {
					return false
				}
				if k > 0 && (got[k-1] >= idx || seq[got[k-1]] >= seq[idx]) {
					return false
				}
			}
			return len(got) == lisLength(seq)
		},
		gen.SliceOf(gen.IntRange(-1, 20)),
	))

	properties.TestingRun(t)
}
