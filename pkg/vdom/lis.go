package vdom

// Unmatched marks a slot of the position map that has no reusable old node.
const Unmatched = -1

// LongestIncreasingSubsequence returns the indices into seq of one longest
// strictly increasing subsequence, ignoring Unmatched entries.
//
// Tails are kept in a patience-sorting table and extended or replaced by
// binary search. A value replaces the first tail that is greater or equal,
// so among subsequences of equal length the one ending in the smallest
// values found so far wins. For [2,-1,3,-1,1,-1,5] the result is [0,2,6].
func LongestIncreasingSubsequence(seq []int) []int {
	prev := make([]int, len(seq))
	tails := make([]int, 0, len(seq))

	for i, v := range seq {
		if v == Unmatched {
			continue
		}
		if n := len(tails); n == 0 || seq[tails[n-1]] < v {
			if n > 0 {
				prev[i] = tails[n-1]
			}
			tails = append(tails, i)
			continue
		}
		lo, hi := 0, len(tails)-1
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if v < seq[tails[lo]] {
			if lo > 0 {
				prev[i] = tails[lo-1]
			}
			tails[lo] = i
		}
	}

	out := make([]int, len(tails))
	if len(tails) == 0 {
		return out
	}
	at := tails[len(tails)-1]
	for k := len(tails) - 1; k >= 0; k-- {
		out[k] = at
		at = prev[at]
	}
	return out
}
