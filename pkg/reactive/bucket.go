package reactive

import (
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
)

// DepSet is the set of effects subscribed to one (target, key) pair.
type DepSet = mapset.Set[*Effect]

func newEffectSet() DepSet {
	return mapset.NewThreadUnsafeSet[*Effect]()
}

// targetDeps holds the per-key dependency sets of one target.
type targetDeps struct {
	keys map[string]DepSet
}

// Bucket maps target → key → subscribed effects. Entries are created lazily
// on the first tracked read and live until the target is released.
type Bucket struct {
	targets map[TargetID]*targetDeps
}

// NewBucket creates an empty bucket.
func NewBucket() *Bucket {
	return &Bucket{targets: make(map[TargetID]*targetDeps)}
}

// dep returns the set for (target, key), creating it if needed.
func (b *Bucket) dep(target TargetID, key string) DepSet {
	td := b.targets[target]
	if td == nil {
		td = &targetDeps{keys: make(map[string]DepSet)}
		b.targets[target] = td
	}
	set := td.keys[key]
	if set == nil {
		set = newEffectSet()
		td.keys[key] = set
	}
	return set
}

// Subscribers returns how many effects are subscribed to (target, key).
func (b *Bucket) Subscribers(target TargetID, key string) int {
	td := b.targets[target]
	if td == nil {
		return 0
	}
	set := td.keys[key]
	if set == nil {
		return 0
	}
	return set.Cardinality()
}

// Keys returns the tracked keys of target.
func (b *Bucket) Keys(target TargetID) []string {
	td := b.targets[target]
	if td == nil {
		return nil
	}
	keys := make([]string, 0, len(td.keys))
	for k := range td.keys {
		keys = append(keys, k)
	}
	return keys
}

// Targets returns the number of targets with at least one tracked key.
func (b *Bucket) Targets() int {
	return len(b.targets)
}

// Release drops every dependency set of target.
func (b *Bucket) Release(target TargetID) {
	delete(b.targets, target)
}

// indexKey reports whether key is an array index key.
func indexKey(key string) (int, bool) {
	if key == "" || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return n, true
}
