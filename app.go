// Package reactor is the convenience entry point that wires a reactive
// runtime, a host backend and a renderer together.
//
//	app := reactor.NewMemory(reactor.Config{Batched: true})
//	app.Mount(vdom.Component(counter, nil, nil))
//	app.Batch(func() { ... })
//
// The building blocks live in pkg/reactive, pkg/vdom and pkg/memhost and can
// be used directly.
package reactor

import (
	"github.com/vango-dev/reactor/pkg/memhost"
	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/vdom"
)

// Re-exported so simple programs need a single import.
type (
	VNode    = vdom.VNode
	Props    = vdom.Props
	Strategy = vdom.Strategy
)

const (
	StrategyQuick       = vdom.StrategyQuick
	StrategyIndex       = vdom.StrategyIndex
	StrategyKeyed       = vdom.StrategyKeyed
	StrategyDoubleEnded = vdom.StrategyDoubleEnded
)

// App owns one runtime and one renderer bound to a host.
// It is not safe for concurrent use.
type App struct {
	runtime  *reactive.Runtime
	renderer *vdom.Renderer
	host     vdom.Host
	queue    *reactive.JobQueue
	root     vdom.Node
	config   Config
}

// New creates an App rendering into host. The container passed to Mount is
// remembered so later renders can omit it.
func New(host vdom.Host, cfg Config) *App {
	cfg = cfg.withDefaults()

	ropts := []reactive.Option{
		reactive.WithLogger(cfg.Logger),
		reactive.WithStrict(cfg.Strict),
	}
	if cfg.OnWarning != nil {
		ropts = append(ropts, reactive.WithWarnHook(cfg.OnWarning))
	}
	rt := reactive.NewRuntime(ropts...)

	app := &App{
		runtime: rt,
		host:    host,
		config:  cfg,
	}

	vopts := []vdom.Option{
		vdom.WithStrategy(cfg.Strategy),
		vdom.WithLogger(cfg.Logger),
	}
	if cfg.Tracer != nil {
		vopts = append(vopts, vdom.WithTracer(cfg.Tracer))
	}
	if cfg.Batched {
		app.queue = reactive.NewJobQueue()
		vopts = append(vopts, vdom.WithUpdateScheduler(app.queue))
	}
	app.renderer = vdom.NewRenderer(rt, host, vopts...)
	return app
}

// NewMemory creates an App on a fresh in-memory host with a "root"
// container already attached.
func NewMemory(cfg Config) *App {
	h := memhost.New()
	app := New(h, cfg)
	app.root = h.Container("root")
	return app
}

// Runtime returns the reactive runtime.
func (a *App) Runtime() *reactive.Runtime { return a.runtime }

// Renderer returns the renderer.
func (a *App) Renderer() *vdom.Renderer { return a.renderer }

// Host returns the host backend.
func (a *App) Host() vdom.Host { return a.host }

// Root returns the container used by Mount, or nil before the first mount.
func (a *App) Root() vdom.Node { return a.root }

// Config returns the app configuration.
func (a *App) Config() Config { return a.config }

// Memory returns the in-memory host, or nil when the app renders elsewhere.
func (a *App) Memory() *memhost.Host {
	h, _ := a.host.(*memhost.Host)
	return h
}

// MountInto renders v into container and makes it the app root.
func (a *App) MountInto(v *VNode, container vdom.Node) {
	a.root = container
	a.renderer.Render(v, container)
}

// Mount renders v into the app root. Mounting nil unmounts the current tree.
// It panics if no root container was set.
func (a *App) Mount(v *VNode) {
	if a.root == nil {
		panic("reactor: Mount called without a root container")
	}
	a.renderer.Render(v, a.root)
}

// Unmount clears the app root.
func (a *App) Unmount() {
	if a.root != nil {
		a.renderer.Render(nil, a.root)
	}
}

// Reactive wraps m in a deep mutable reactive object owned by the app runtime.
func (a *App) Reactive(m map[string]any) *reactive.Object {
	return a.runtime.Reactive(m)
}

// Effect registers fn as an effect on the app runtime.
func (a *App) Effect(fn func(), opts ...reactive.EffectOption) *reactive.Effect {
	return a.runtime.Effect(fn, opts...)
}

// Batch runs fn and then flushes queued re-renders. Without Batched it just
// runs fn.
func (a *App) Batch(fn func()) {
	if a.queue == nil {
		fn()
		return
	}
	a.queue.Batch(fn)
}

// Flush runs pending re-renders and returns how many ran.
func (a *App) Flush() int {
	if a.queue == nil {
		return 0
	}
	return a.queue.Flush()
}

// Pending returns the number of queued re-renders.
func (a *App) Pending() int {
	if a.queue == nil {
		return 0
	}
	return a.queue.Pending()
}
