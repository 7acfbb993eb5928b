package reactive

import "sync/atomic"

// Effect is a registered computation. It runs with itself as the active
// effect so that every reactive read inside fn is recorded, and it is
// re-run whenever one of those reads is invalidated by a write.
type Effect struct {
	id uint64
	rt *Runtime

	fn func()

	// deps are the sets this effect is registered in, pruned before each run.
	deps []DepSet

	// scheduler, when set, receives the effect instead of it running
	// synchronously on trigger.
	scheduler func(*Effect)

	lazy    bool
	stopped bool
	onStop  func()

	runs atomic.Int64
}

// EffectOption configures an Effect.
type EffectOption func(*Effect)

// Lazy defers the first run until Run is called.
func Lazy() EffectOption {
	return func(e *Effect) {
		e.lazy = true
	}
}

// WithScheduler routes triggered re-runs through fn, which decides when
// (and whether) to call e.Run.
func WithScheduler(fn func(*Effect)) EffectOption {
	return func(e *Effect) {
		e.scheduler = fn
	}
}

// OnStop registers a callback invoked once when the effect is stopped.
func OnStop(fn func()) EffectOption {
	return func(e *Effect) {
		e.onStop = fn
	}
}

// Effect registers fn as a computation and, unless Lazy is given, runs it
// immediately.
func (rt *Runtime) Effect(fn func(), opts ...EffectOption) *Effect {
	rt.nextEffect++
	e := &Effect{
		id: rt.nextEffect,
		rt: rt,
		fn: fn,
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.lazy {
		e.Run()
	}
	return e
}

// ID returns the effect identifier, unique within its runtime.
func (e *Effect) ID() uint64 {
	return e.id
}

// Run executes the effect. Dependencies recorded by the previous run are
// discarded first so that branches no longer taken stop triggering it.
func (e *Effect) Run() {
	if e.stopped {
		e.rt.warn(ErrStopped.WithDetail("effect %d", e.id))
		return
	}
	e.cleanup()

	// A run always tracks, even when triggered from inside a paused region.
	paused := e.rt.paused
	e.rt.paused = 0
	e.rt.push(e)
	defer func() {
		e.rt.pop()
		e.rt.paused = paused
	}()

	e.runs.Add(1)
	e.fn()
}

// Runs returns how many times the effect body has executed.
func (e *Effect) Runs() int64 {
	return e.runs.Load()
}

// Deps returns the dependency sets the effect is currently registered in.
func (e *Effect) Deps() []DepSet {
	out := make([]DepSet, len(e.deps))
	copy(out, e.deps)
	return out
}

// Stopped reports whether Stop has been called.
func (e *Effect) Stopped() bool {
	return e.stopped
}

// Stop unsubscribes the effect from everything and prevents further runs.
func (e *Effect) Stop() {
	if e.stopped {
		return
	}
	e.cleanup()
	e.stopped = true
	if e.onStop != nil {
		e.onStop()
	}
}

// cleanup removes the effect from every set it was registered in.
func (e *Effect) cleanup() {
	for i, dep := range e.deps {
		dep.Remove(e)
		e.deps[i] = nil
	}
	e.deps = e.deps[:0]
}
