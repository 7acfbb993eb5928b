package reactive

// Computed is a lazily evaluated derived value. The getter runs on the first
// Value call and again only after one of its dependencies changed. Effects
// reading Value depend on the computed itself, not on the getter's sources.
type Computed[T any] struct {
	rt     *Runtime
	id     TargetID
	effect *Effect
	value  T
	dirty  bool
}

// NewComputed creates a computed value on rt.
func NewComputed[T any](rt *Runtime, getter func() T) *Computed[T] {
	c := &Computed[T]{
		rt:    rt,
		id:    rt.newTarget(),
		dirty: true,
	}
	c.effect = rt.Effect(func() {
		c.value = getter()
	}, Lazy(), WithScheduler(func(*Effect) {
		if c.dirty {
			return
		}
		c.dirty = true
		rt.Trigger(c.id, "value", ChangeSet)
	}))
	return c
}

// Value returns the current value, recomputing if a dependency changed.
// A stopped computed never recomputes.
func (c *Computed[T]) Value() T {
	if c.dirty && !c.effect.Stopped() {
		c.dirty = false
		c.effect.Run()
	}
	c.rt.Track(c.id, "value")
	return c.value
}

// Dirty reports whether the next Value call will recompute.
func (c *Computed[T]) Dirty() bool {
	return c.dirty
}

// Stop detaches the computed from its sources. The last value is kept.
func (c *Computed[T]) Stop() {
	c.effect.Stop()
}
