package bench

import (
	"fmt"
	"sort"
)

// Profile sizes a benchmark run.
type Profile struct {
	Name string

	// Widths and Depths span the propagation grid: Width effects, each
	// reading the end of a Depth long chain of computeds.
	Widths []int
	Depths []int

	// ListSizes are the keyed list lengths reconciled per strategy.
	ListSizes []int

	// Iterations is the number of timed samples per case.
	Iterations int
}

var profiles = map[string]Profile{
	"fast": {
		Name:       "fast",
		Widths:     []int{1, 10},
		Depths:     []int{1, 10},
		ListSizes:  []int{20},
		Iterations: 20,
	},
	"standard": {
		Name:       "standard",
		Widths:     []int{1, 10, 100},
		Depths:     []int{1, 10, 100},
		ListSizes:  []int{50, 500},
		Iterations: 100,
	},
	"stress": {
		Name:       "stress",
		Widths:     []int{1, 10, 100, 1_000},
		Depths:     []int{1, 10, 100, 1_000},
		ListSizes:  []int{100, 1_000, 5_000},
		Iterations: 200,
	},
}

// LookupProfile returns the named profile.
func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("bench: unknown profile %q (want one of %v)", name, ProfileNames())
	}
	return p, nil
}

// ProfileNames returns the known profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
