package reactive

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// Current returns the runtime bound to the calling goroutine, creating it on
// first use. Code that owns its runtime should pass it explicitly instead.
func Current() *Runtime {
	gid := goid.Get()
	if rt, ok := runtimes.Load(gid); ok {
		return rt.(*Runtime)
	}
	rt := NewRuntime()
	runtimes.Store(gid, rt)
	return rt
}

// Bind makes rt the runtime returned by Current on the calling goroutine.
func Bind(rt *Runtime) {
	runtimes.Store(goid.Get(), rt)
}

// Forget drops the calling goroutine's runtime. Goroutines that used Current
// should call it before exiting.
func Forget() {
	runtimes.Delete(goid.Get())
}
