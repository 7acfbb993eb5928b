package reactive

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

type watchConfig struct {
	immediate bool
	deep      bool
	queue     *JobQueue
}

// Immediate invokes the callback once with the initial value.
func Immediate() WatchOption {
	return func(c *watchConfig) {
		c.immediate = true
	}
}

// Deep subscribes to every key reachable from the source value, so nested
// writes fire the callback even though the returned wrapper is unchanged.
func Deep() WatchOption {
	return func(c *watchConfig) {
		c.deep = true
	}
}

// OnQueue delivers callbacks through q instead of synchronously.
func OnQueue(q *JobQueue) WatchOption {
	return func(c *watchConfig) {
		c.queue = q
	}
}

// Watch calls cb with the new and old value of source whenever a dependency
// read by source changes and the value differs. With Deep, the callback also
// fires for nested writes. The returned function stops watching.
func Watch[T any](rt *Runtime, source func() T, cb func(newValue, oldValue T), opts ...WatchOption) (stop func()) {
	var cfg watchConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var cur T
	getter := func() {
		cur = source()
		if cfg.deep {
			Traverse(cur)
		}
	}

	var e *Effect
	job := func() {
		if e.Stopped() {
			return
		}
		prev := cur
		e.Run()
		if cfg.deep || !SameValue(any(cur), any(prev)) {
			rt.Untracked(func() { cb(cur, prev) })
		}
	}

	var scheduler func(*Effect)
	if cfg.queue != nil {
		jobEffect := rt.Effect(job, Lazy())
		scheduler = func(*Effect) { cfg.queue.Schedule(jobEffect) }
	} else {
		scheduler = func(*Effect) { job() }
	}

	e = rt.Effect(getter, Lazy(), WithScheduler(scheduler))
	e.Run()
	if cfg.immediate {
		var zero T
		rt.Untracked(func() { cb(cur, zero) })
	}
	return e.Stop
}

// Traverse reads every key and element reachable from v, recording a
// dependency on each. Cycles are visited once.
func Traverse(v any) {
	traverse(v, make(map[TargetID]bool))
}

func traverse(v any, seen map[TargetID]bool) {
	switch x := v.(type) {
	case *Object:
		if seen[x.id] {
			return
		}
		seen[x.id] = true
		x.Range(func(_ string, val any) bool {
			traverse(val, seen)
			return true
		})
	case *Array:
		if seen[x.id] {
			return
		}
		seen[x.id] = true
		x.Range(func(_ int, val any) bool {
			traverse(val, seen)
			return true
		})
	}
}
