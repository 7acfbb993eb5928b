// Package reactive provides the dependency-tracking core for reactor.
//
// Reads of reactive state performed while an Effect runs are recorded as
// dependencies; writes re-run exactly the effects that read the written
// key. Unlike a proxy-based system, state is accessed through explicit
// wrapper methods:
//
//	rt := reactive.NewRuntime()
//	state := rt.Reactive(map[string]any{"count": 0})
//
//	rt.Effect(func() {
//	    fmt.Println("count is", state.Get("count"))
//	})
//
//	state.Set("count", 1) // prints "count is 1"
//
// # Runtime
//
// A Runtime is the explicit tracking context: it owns the active-effect
// stack, the dependency bucket and the wrapper cache. It is not safe for
// concurrent use; Current returns one runtime per goroutine.
//
// # Identity
//
// Raw maps and slices are assigned a TargetID the first time they are
// wrapped. Wrapping the same raw value twice with the same mode returns the
// same wrapper. Release drops the identity together with its dependency
// sets, which is how long-lived runtimes avoid holding on to dead state.
//
// # Scheduling
//
// Effects re-run synchronously by default. WithScheduler hands the effect to
// a callback instead; JobQueue is a ready-made scheduler that deduplicates
// and defers runs until Flush.
package reactive
