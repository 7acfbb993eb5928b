package reactive

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/vango-dev/reactor/internal/errors"
)

// TargetID is the stable identity assigned to a raw object when it is first
// wrapped. Dependencies are keyed by TargetID rather than by pointer.
type TargetID uint64

// ChangeKind classifies a write for Trigger.
type ChangeKind uint8

const (
	ChangeSet    ChangeKind = iota // existing key, new value
	ChangeAdd                      // new key
	ChangeDelete                   // key removed
)

// String returns the string representation of the ChangeKind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeSet:
		return "SET"
	case ChangeAdd:
		return "ADD"
	case ChangeDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

const (
	// IterateKey is the marker key tracked by key enumeration. It is
	// triggered by additions and deletions but not by value updates.
	IterateKey = "\x00iterate"

	// LengthKey is the key tracked by array length reads.
	LengthKey = "length"
)

// mode selects how a wrapper treats nested values and writes.
type mode uint8

const (
	modeShallow mode = 1 << iota
	modeReadonly
)

type cacheKey struct {
	ptr  uintptr
	mode mode
}

// Runtime holds the tracking state for one logical thread of execution.
type Runtime struct {
	// stack holds the effects currently executing; the top is active.
	stack []*Effect

	// paused suspends Track while > 0.
	paused int

	bucket *Bucket

	// arena maps raw identities to their TargetID.
	arena      map[uintptr]TargetID
	nextTarget TargetID
	nextEffect uint64

	// cache returns the same wrapper for the same raw value and mode.
	cache map[cacheKey]any

	logger *slog.Logger
	onWarn func(error)

	// strict escalates guarded no-ops to panics.
	strict bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// WithWarnHook registers a callback receiving every warning the runtime
// reports, in addition to the log record.
func WithWarnHook(fn func(error)) Option {
	return func(rt *Runtime) {
		rt.onWarn = fn
	}
}

// WithStrict makes every guarded no-op panic with its coded error instead of
// only logging it. Intended for tests and development builds.
func WithStrict(strict bool) Option {
	return func(rt *Runtime) {
		rt.strict = strict
	}
}

// NewRuntime creates an empty runtime.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		bucket: NewBucket(),
		arena:  make(map[uintptr]TargetID),
		cache:  make(map[cacheKey]any),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Logger returns the runtime logger.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.logger
}

// Bucket exposes the dependency bucket.
func (rt *Runtime) Bucket() *Bucket {
	return rt.bucket
}

// Active returns the innermost running effect, or nil.
func (rt *Runtime) Active() *Effect {
	if len(rt.stack) == 0 {
		return nil
	}
	return rt.stack[len(rt.stack)-1]
}

// push makes e the active effect.
func (rt *Runtime) push(e *Effect) {
	rt.stack = append(rt.stack, e)
}

// pop restores the enclosing effect.
func (rt *Runtime) pop() {
	rt.stack[len(rt.stack)-1] = nil
	rt.stack = rt.stack[:len(rt.stack)-1]
}

// PauseTracking suspends dependency recording until ResumeTracking.
// Calls nest.
func (rt *Runtime) PauseTracking() {
	rt.paused++
}

// ResumeTracking undoes one PauseTracking.
func (rt *Runtime) ResumeTracking() {
	if rt.paused > 0 {
		rt.paused--
	}
}

// Untracked runs fn without recording dependencies.
func (rt *Runtime) Untracked(fn func()) {
	rt.PauseTracking()
	defer rt.ResumeTracking()
	fn()
}

// Tracking reports whether a read right now would record a dependency.
func (rt *Runtime) Tracking() bool {
	return rt.paused == 0 && rt.Active() != nil
}

// Track records that the active effect depends on (target, key).
// It is a no-op when no effect is running, tracking is paused, or the
// active effect stopped itself mid-run.
func (rt *Runtime) Track(target TargetID, key string) {
	if !rt.Tracking() {
		return
	}
	e := rt.Active()
	if e.stopped {
		return
	}
	dep := rt.bucket.dep(target, key)
	if dep.Contains(e) {
		return
	}
	dep.Add(e)
	e.deps = append(e.deps, dep)
}

// Trigger re-runs every effect subscribed to (target, key) except the one
// currently active. Additions and deletions also re-run effects that
// enumerated the target.
func (rt *Runtime) Trigger(target TargetID, key string, kind ChangeKind) {
	rt.trigger(target, key, kind, false)
}

// TriggerLength handles a write of newLen to an array length: subscribers
// of LengthKey and of every index at or past newLen are re-run.
func (rt *Runtime) TriggerLength(target TargetID, newLen int) {
	deps := rt.bucket.targets[target]
	if deps == nil {
		return
	}
	run := newEffectSet()
	rt.collect(run, deps.keys[LengthKey])
	for key, dep := range deps.keys {
		if idx, ok := indexKey(key); ok && idx >= newLen {
			rt.collect(run, dep)
		}
	}
	rt.runAll(run)
}

func (rt *Runtime) trigger(target TargetID, key string, kind ChangeKind, array bool) {
	deps := rt.bucket.targets[target]
	if deps == nil {
		return
	}
	run := newEffectSet()
	rt.collect(run, deps.keys[key])
	if kind == ChangeAdd || kind == ChangeDelete {
		rt.collect(run, deps.keys[IterateKey])
	}
	if array && kind == ChangeAdd {
		rt.collect(run, deps.keys[LengthKey])
	}
	if rt.logger.Enabled(context.Background(), slog.LevelDebug) {
		rt.logger.Debug("reactive trigger",
			"target", target, "key", key, "kind", kind, "effects", run.Cardinality())
	}
	rt.runAll(run)
}

// collect adds the subscribers of dep to run, skipping the active effect.
func (rt *Runtime) collect(run DepSet, dep DepSet) {
	if dep == nil {
		return
	}
	active := rt.Active()
	dep.Each(func(e *Effect) bool {
		if e != active {
			run.Add(e)
		}
		return false
	})
}

func (rt *Runtime) runAll(run DepSet) {
	for _, e := range run.ToSlice() {
		if e.stopped {
			continue
		}
		if e.scheduler != nil {
			e.scheduler(e)
		} else {
			e.Run()
		}
	}
}

// newTarget allocates an identity that is not backed by a raw value.
func (rt *Runtime) newTarget() TargetID {
	rt.nextTarget++
	return rt.nextTarget
}

// identify returns the TargetID for a raw pointer, allocating on first use.
func (rt *Runtime) identify(ptr uintptr) TargetID {
	if id, ok := rt.arena[ptr]; ok {
		return id
	}
	id := rt.newTarget()
	rt.arena[ptr] = id
	return id
}

// Release forgets a raw value: its wrappers are evicted from the cache and
// its dependency sets are dropped. v may be a wrapper, a map[string]any or a
// *[]any. Effects still holding the dropped sets detach on their next run.
func (rt *Runtime) Release(v any) {
	ptr, ok := rawPointer(v)
	if !ok {
		return
	}
	id, ok := rt.arena[ptr]
	if !ok {
		return
	}
	delete(rt.arena, ptr)
	for _, m := range []mode{0, modeShallow, modeReadonly, modeShallow | modeReadonly} {
		delete(rt.cache, cacheKey{ptr: ptr, mode: m})
	}
	rt.bucket.Release(id)
}

// Strict reports whether guarded no-ops panic.
func (rt *Runtime) Strict() bool {
	return rt.strict
}

// Warn reports a guarded no-op through the logger and the warn hook. Other
// packages driving the runtime (the renderer, for instance) report their own
// non-fatal conditions through it so that one hook sees everything.
func (rt *Runtime) Warn(err *errors.Error) {
	rt.logger.Warn(err.Message, err.LogAttrs()...)
	if rt.onWarn != nil {
		rt.onWarn(err)
	}
	if rt.strict {
		panic(err)
	}
}

func (rt *Runtime) warn(err *errors.Error) {
	rt.Warn(err)
}

// rawPointer extracts the identity pointer of a wrappable value.
func rawPointer(v any) (uintptr, bool) {
	switch x := v.(type) {
	case *Object:
		return reflect.ValueOf(x.raw).Pointer(), true
	case *Array:
		return reflect.ValueOf(x.raw).Pointer(), true
	case map[string]any:
		if x == nil {
			return 0, false
		}
		return reflect.ValueOf(x).Pointer(), true
	case *[]any:
		if x == nil {
			return 0, false
		}
		return reflect.ValueOf(x).Pointer(), true
	}
	return 0, false
}
