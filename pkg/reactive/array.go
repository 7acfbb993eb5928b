package reactive

import "strconv"

// Array wraps a *[]any. Index reads track the index key, length reads track
// LengthKey, and writes follow the array rules: an index write past the end
// is an addition that also invalidates length readers, and shrinking the
// length invalidates every tracked index at or past the new length.
type Array struct {
	rt   *Runtime
	id   TargetID
	raw  *[]any
	mode mode
}

// ReactiveArray returns the deep mutable wrapper of *p.
func (rt *Runtime) ReactiveArray(p *[]any) *Array {
	return rt.wrapArray(p, 0)
}

// ShallowReactiveArray returns a wrapper whose elements are not wrapped.
func (rt *Runtime) ShallowReactiveArray(p *[]any) *Array {
	return rt.wrapArray(p, modeShallow)
}

// ReadonlyArray returns a deep readonly view of *p.
func (rt *Runtime) ReadonlyArray(p *[]any) *Array {
	return rt.wrapArray(p, modeReadonly)
}

func (rt *Runtime) wrapArray(p *[]any, md mode) *Array {
	if p == nil {
		p = new([]any)
	}
	ptr, _ := rawPointer(p)
	key := cacheKey{ptr: ptr, mode: md}
	if w, ok := rt.cache[key].(*Array); ok {
		return w
	}
	a := &Array{
		rt:   rt,
		id:   rt.identify(ptr),
		raw:  p,
		mode: md,
	}
	rt.cache[key] = a
	return a
}

// ID returns the target identity.
func (a *Array) ID() TargetID { return a.id }

// Raw returns the current backing slice. Access through it is untracked.
func (a *Array) Raw() []any { return *a.raw }

// Readonly reports whether writes are rejected.
func (a *Array) Readonly() bool { return a.mode&modeReadonly != 0 }

func (a *Array) track(key string) {
	if !a.Readonly() {
		a.rt.Track(a.id, key)
	}
}

// Len returns the length, tracking LengthKey.
func (a *Array) Len() int {
	a.track(LengthKey)
	return len(*a.raw)
}

// Get returns element i, tracking its index. Out of range reads return nil.
func (a *Array) Get(i int) any {
	a.track(strconv.Itoa(i))
	if i < 0 || i >= len(*a.raw) {
		return nil
	}
	v := (*a.raw)[i]
	if a.mode&modeShallow != 0 {
		return v
	}
	return a.rt.wrapNested(v, a.mode)
}

// Set writes element i, growing the array with nils when i is past the end.
func (a *Array) Set(i int, value any) error {
	if a.Readonly() {
		err := ErrReadonly.WithDetail("index %d", i)
		a.rt.warn(err)
		return err
	}
	if i < 0 {
		return ErrIndexRange.WithDetail("index %d", i)
	}
	value = ToRaw(value)
	n := len(*a.raw)
	if i >= n {
		grown := make([]any, i+1)
		copy(grown, *a.raw)
		grown[i] = value
		*a.raw = grown
		a.rt.trigger(a.id, strconv.Itoa(i), ChangeAdd, true)
		return nil
	}
	old := (*a.raw)[i]
	(*a.raw)[i] = value
	if !SameValue(old, value) {
		a.rt.trigger(a.id, strconv.Itoa(i), ChangeSet, true)
	}
	return nil
}

// SetLen truncates or extends the array to n elements.
func (a *Array) SetLen(n int) error {
	if a.Readonly() {
		err := ErrReadonly.WithDetail("length")
		a.rt.warn(err)
		return err
	}
	if n < 0 {
		return ErrIndexRange.WithDetail("length %d", n)
	}
	cur := len(*a.raw)
	if n == cur {
		return nil
	}
	if n < cur {
		clear((*a.raw)[n:])
		*a.raw = (*a.raw)[:n]
	} else {
		grown := make([]any, n)
		copy(grown, *a.raw)
		*a.raw = grown
	}
	a.rt.TriggerLength(a.id, n)
	return nil
}

// mutate runs a structural mutation with tracking paused so the mutator's
// own reads never subscribe the active effect to the array length.
func (a *Array) mutate(fn func() error) error {
	if a.Readonly() {
		err := ErrReadonly.WithDetail("mutation")
		a.rt.warn(err)
		return err
	}
	a.rt.PauseTracking()
	defer a.rt.ResumeTracking()
	return fn()
}

// Push appends values.
func (a *Array) Push(values ...any) error {
	return a.mutate(func() error {
		for _, v := range values {
			if err := a.Set(len(*a.raw), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Pop removes and returns the last element.
func (a *Array) Pop() (any, error) {
	var out any
	err := a.mutate(func() error {
		n := len(*a.raw)
		if n == 0 {
			return nil
		}
		out = (*a.raw)[n-1]
		return a.SetLen(n - 1)
	})
	return out, err
}

// Shift removes and returns the first element.
func (a *Array) Shift() (any, error) {
	var out any
	err := a.mutate(func() error {
		n := len(*a.raw)
		if n == 0 {
			return nil
		}
		out = (*a.raw)[0]
		next := make([]any, n-1)
		copy(next, (*a.raw)[1:])
		return a.replace(next)
	})
	return out, err
}

// Unshift prepends values.
func (a *Array) Unshift(values ...any) error {
	return a.mutate(func() error {
		next := make([]any, 0, len(*a.raw)+len(values))
		for _, v := range values {
			next = append(next, ToRaw(v))
		}
		next = append(next, *a.raw...)
		return a.replace(next)
	})
}

// Splice removes deleteCount elements at start, inserts items there and
// returns the removed elements. start is clamped to the array bounds.
func (a *Array) Splice(start, deleteCount int, items ...any) ([]any, error) {
	var removed []any
	err := a.mutate(func() error {
		n := len(*a.raw)
		if start < 0 {
			start = max(n+start, 0)
		}
		start = min(start, n)
		deleteCount = min(max(deleteCount, 0), n-start)

		removed = append([]any(nil), (*a.raw)[start:start+deleteCount]...)
		next := make([]any, 0, n-deleteCount+len(items))
		next = append(next, (*a.raw)[:start]...)
		for _, v := range items {
			next = append(next, ToRaw(v))
		}
		next = append(next, (*a.raw)[start+deleteCount:]...)
		return a.replace(next)
	})
	return removed, err
}

// replace rewrites the array to next, triggering only the indices whose
// value changed plus the length when it shrinks.
func (a *Array) replace(next []any) error {
	cur := append([]any(nil), *a.raw...)
	for i, v := range next {
		if i < len(cur) && SameValue(cur[i], v) {
			continue
		}
		if err := a.Set(i, v); err != nil {
			return err
		}
	}
	if len(next) < len(cur) {
		return a.SetLen(len(next))
	}
	return nil
}

// IndexOf returns the index of the first element equal to v, or -1. Wrappers
// and raw values compare equal to each other.
func (a *Array) IndexOf(v any) int {
	want := ToRaw(v)
	n := a.Len()
	for i := 0; i < n; i++ {
		if SameValue(ToRaw(a.Get(i)), want) {
			return i
		}
	}
	return -1
}

// Includes reports whether v is an element.
func (a *Array) Includes(v any) bool {
	return a.IndexOf(v) >= 0
}

// Range calls fn for each element until fn returns false. It tracks the
// length and every visited index.
func (a *Array) Range(fn func(i int, v any) bool) {
	n := a.Len()
	for i := 0; i < n; i++ {
		if !fn(i, a.Get(i)) {
			return
		}
	}
}
