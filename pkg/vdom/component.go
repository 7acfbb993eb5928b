package vdom

import (
	"maps"
	"slices"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// RenderFunc produces a component's subtree.
type RenderFunc func(ctx *RenderContext) *VNode

// FuncComponent is a stateless component: a render function of its props.
type FuncComponent func(props *reactive.Object) *VNode

// SetupResult is what a Setup function hands back: a render function that
// replaces ComponentDef.Render, extra state exposed to the render context,
// or both.
type SetupResult struct {
	Render RenderFunc
	State  map[string]any
}

// ComponentDef describes a stateful component.
type ComponentDef struct {
	Name string

	// Props lists the declared props. Anything else passed to the component
	// ends up in Attrs; event props ("onX") are always accepted.
	Props []string

	// Data returns the initial local state. It is called once per instance.
	Data func() map[string]any

	Setup  func(props *reactive.Object, ctx *SetupContext) SetupResult
	Render RenderFunc

	BeforeCreate func()
	Created      func(ctx *RenderContext)
	BeforeMount  func(ctx *RenderContext)
	Mounted      func(ctx *RenderContext)
	BeforeUpdate func(ctx *RenderContext)
	Updated      func(ctx *RenderContext)
	Unmounted    func(ctx *RenderContext)
	Activated    func(ctx *RenderContext)
	Deactivated  func(ctx *RenderContext)
}

// Instance is a mounted component.
type Instance struct {
	r   *Renderer
	def *ComponentDef

	state      *reactive.Object
	props      *reactive.Object
	setupState *reactive.Object
	attrs      map[string]any
	slots      Slots

	ctx    *RenderContext
	render func() *VNode

	subTree   *VNode
	mounted   bool
	effect    *reactive.Effect
	container Node

	onMounted   []func()
	onUnmounted []func()

	// deactivated is set while a kept-alive instance sits in its cache.
	deactivated bool
}

// Name returns the component name, empty for function components.
func (inst *Instance) Name() string {
	if inst.def == nil {
		return ""
	}
	return inst.def.Name
}

// State returns the local reactive state.
func (inst *Instance) State() *reactive.Object { return inst.state }

// Props returns the shallow-reactive resolved props.
func (inst *Instance) Props() *reactive.Object { return inst.props }

// Attrs returns the props passed through because they were not declared.
func (inst *Instance) Attrs() map[string]any { return inst.attrs }

// SubTree returns the last rendered tree.
func (inst *Instance) SubTree() *VNode { return inst.subTree }

// Mounted reports whether the instance has rendered into the host.
func (inst *Instance) Mounted() bool { return inst.mounted }

// Active reports whether the instance is mounted and not parked in a
// keep-alive cache.
func (inst *Instance) Active() bool { return inst.mounted && !inst.deactivated }

// Effect returns the render effect.
func (inst *Instance) Effect() *reactive.Effect { return inst.effect }

// Context returns the render context.
func (inst *Instance) Context() *RenderContext { return inst.ctx }

func (inst *Instance) hook(pick func(*ComponentDef) func(*RenderContext)) {
	if inst.def == nil {
		return
	}
	if fn := pick(inst.def); fn != nil {
		inst.r.rt.Untracked(func() { fn(inst.ctx) })
	}
}

func (inst *Instance) emit(event string, args []any) {
	name := handlerProp(event)
	if name == "" {
		inst.r.warn(ErrNoEmitHandler.WithDetail("%s emitted an unnamed event", inst.Name()))
		return
	}
	handler, ok := inst.props.Raw()[name]
	if !ok || handler == nil {
		inst.r.warn(ErrNoEmitHandler.WithDetail("%s has no %s", inst.Name(), name))
		return
	}
	switch h := handler.(type) {
	case func(...any):
		h(args...)
	case func():
		h()
	case func(Event):
		var payload any = args
		if len(args) == 1 {
			payload = args[0]
		}
		h(Event{Type: event, TimeStamp: inst.r.now(), Payload: payload})
	default:
		inst.r.warn(ErrNotHandler.WithDetail("%s is %T", name, handler))
	}
}

// SetupContext is passed to ComponentDef.Setup.
type SetupContext struct {
	Attrs map[string]any
	Slots Slots

	inst *Instance
}

// Emit calls the "on<Event>" prop handler with args.
func (c *SetupContext) Emit(event string, args ...any) {
	c.inst.emit(event, args)
}

// OnMounted registers fn to run after the first render is in the host.
func (c *SetupContext) OnMounted(fn func()) {
	c.inst.onMounted = append(c.inst.onMounted, fn)
}

// OnUnmounted registers fn to run after the instance is torn down.
func (c *SetupContext) OnUnmounted(fn func()) {
	c.inst.onUnmounted = append(c.inst.onUnmounted, fn)
}

// RenderContext is the view of an instance seen by render functions and
// lifecycle hooks. Lookups search local state, then props, then state
// exposed by Setup, then the "$slots" accessor.
type RenderContext struct {
	inst *Instance
}

// Get returns the value of key. A miss is reported as a warning and
// returns nil.
func (c *RenderContext) Get(key string) any {
	if obj := c.owner(key); obj != nil {
		return obj.Get(key)
	}
	if key == "$slots" {
		return c.inst.slots
	}
	c.inst.r.warn(ErrNoProperty.WithDetail("%s.%s", c.inst.Name(), key))
	return nil
}

// Set writes key on the first source that has it. A miss is reported as a
// warning and returned as ErrNoProperty.
func (c *RenderContext) Set(key string, value any) error {
	if obj := c.owner(key); obj != nil {
		return obj.Set(key, value)
	}
	err := ErrNoProperty.WithDetail("%s.%s", c.inst.Name(), key)
	c.inst.r.warn(err)
	return err
}

// owner returns the source holding key, in lookup order.
func (c *RenderContext) owner(key string) *reactive.Object {
	for _, obj := range []*reactive.Object{c.inst.state, c.inst.props, c.inst.setupState} {
		if obj != nil && obj.Has(key) {
			return obj
		}
	}
	return nil
}

// Emit calls the "on<Event>" prop handler with args.
func (c *RenderContext) Emit(event string, args ...any) {
	c.inst.emit(event, args)
}

// Slot renders the named slot, or returns nil when it was not passed.
func (c *RenderContext) Slot(name string) *VNode {
	if fn := c.inst.slots[name]; fn != nil {
		return fn()
	}
	return nil
}

// Props returns the shallow-reactive props.
func (c *RenderContext) Props() *reactive.Object { return c.inst.props }

// State returns the local reactive state.
func (c *RenderContext) State() *reactive.Object { return c.inst.state }

// Attrs returns the undeclared props.
func (c *RenderContext) Attrs() map[string]any { return c.inst.attrs }

// Instance returns the instance behind the context.
func (c *RenderContext) Instance() *Instance { return c.inst }

// resolveProps splits raw props into declared props and pass-through
// attributes.
func (r *Renderer) resolveProps(def *ComponentDef, raw Props, report bool) (map[string]any, map[string]any) {
	props := make(map[string]any)
	attrs := make(map[string]any)
	for _, k := range slices.Sorted(maps.Keys(raw)) {
		if k == "key" {
			continue
		}
		if slices.Contains(def.Props, k) || IsEventKey(k) {
			props[k] = raw[k]
			continue
		}
		if report {
			r.warn(ErrUndeclaredProp.WithDetail("%s.%s", def.Name, k))
		}
		attrs[k] = raw[k]
	}
	return props, attrs
}

func (r *Renderer) mountComponent(n2 *VNode, container, anchor Node) {
	if n2.KeepAlive != nil {
		if inst := n2.KeepAlive.take(r, cacheKey(n2)); inst != nil {
			r.activate(inst, n2, container, anchor)
			return
		}
	}

	def := n2.Comp
	props, attrs := r.resolveProps(def, n2.Props, true)

	if def.BeforeCreate != nil {
		def.BeforeCreate()
	}

	data := map[string]any{}
	if def.Data != nil {
		if d := def.Data(); d != nil {
			data = d
		}
	}

	inst := &Instance{
		r:         r,
		def:       def,
		state:     r.rt.Reactive(data),
		props:     r.rt.ShallowReactive(props),
		attrs:     attrs,
		slots:     n2.Slots,
		container: container,
	}
	inst.ctx = &RenderContext{inst: inst}
	n2.component = inst

	render := def.Render
	if def.Setup != nil {
		sc := &SetupContext{Attrs: attrs, Slots: n2.Slots, inst: inst}
		var res SetupResult
		r.rt.Untracked(func() {
			res = def.Setup(r.rt.ShallowReadonly(props), sc)
		})
		if res.Render != nil {
			render = res.Render
		}
		if res.State != nil {
			inst.setupState = r.rt.Reactive(res.State)
		}
	}
	if render == nil {
		render = func(*RenderContext) *VNode { return nil }
	}
	inst.render = func() *VNode { return render(inst.ctx) }

	inst.hook(func(d *ComponentDef) func(*RenderContext) { return d.Created })
	r.startEffect(inst, anchor)
}

func (r *Renderer) mountFunc(n2 *VNode, container, anchor Node) {
	props := make(map[string]any, len(n2.Props))
	for k, v := range n2.Props {
		if k != "key" {
			props[k] = v
		}
	}
	inst := &Instance{
		r:         r,
		props:     r.rt.ShallowReactive(props),
		container: container,
	}
	inst.ctx = &RenderContext{inst: inst}
	fn := n2.Fn
	inst.render = func() *VNode { return fn(inst.props) }
	n2.component = inst
	r.startEffect(inst, anchor)
}

// startEffect wraps the instance render in an effect so every reactive read
// during render schedules an update.
func (r *Renderer) startEffect(inst *Instance, anchor Node) {
	var opts []reactive.EffectOption
	if r.queue != nil {
		opts = append(opts, reactive.WithScheduler(r.queue.Schedule))
	}
	inst.effect = r.rt.Effect(func() {
		r.updateComponent(inst, anchor)
	}, opts...)
}

func (r *Renderer) updateComponent(inst *Instance, anchor Node) {
	sub := inst.render()
	if sub == nil {
		sub = Comment("")
	}

	if !inst.mounted {
		inst.hook(func(d *ComponentDef) func(*RenderContext) { return d.BeforeMount })
		r.Patch(nil, sub, inst.container, anchor)
		inst.subTree = sub
		inst.mounted = true
		inst.hook(func(d *ComponentDef) func(*RenderContext) { return d.Mounted })
		r.rt.Untracked(func() {
			for _, fn := range inst.onMounted {
				fn()
			}
		})
		return
	}

	inst.hook(func(d *ComponentDef) func(*RenderContext) { return d.BeforeUpdate })
	prev := inst.subTree
	r.Patch(prev, sub, inst.container, nil)
	inst.subTree = sub
	inst.hook(func(d *ComponentDef) func(*RenderContext) { return d.Updated })
}

func (r *Renderer) patchComponent(n1, n2 *VNode) {
	inst := n1.component
	n2.component = inst
	if inst == nil {
		return
	}

	props, attrs := r.resolveProps(inst.def, n2.Props, false)
	inst.attrs = attrs
	slotsChanged := n1.Slots != nil || n2.Slots != nil
	inst.slots = n2.Slots

	if !r.updateProps(inst.props, props) && slotsChanged {
		r.rerender(inst)
	}
}

func (r *Renderer) patchFunc(n1, n2 *VNode) {
	inst := n1.component
	n2.component = inst
	if inst == nil {
		return
	}
	fn := n2.Fn
	inst.render = func() *VNode { return fn(inst.props) }

	props := make(map[string]any, len(n2.Props))
	for k, v := range n2.Props {
		if k != "key" {
			props[k] = v
		}
	}
	r.updateProps(inst.props, props)
}

// updateProps writes next into the props object and reports whether any
// value changed. Unchanged values do not trigger.
func (r *Renderer) updateProps(obj *reactive.Object, next map[string]any) bool {
	changed := false
	for _, k := range slices.Sorted(maps.Keys(obj.Raw())) {
		if _, ok := next[k]; !ok {
			_ = obj.Delete(k)
			changed = true
		}
	}
	for _, k := range slices.Sorted(maps.Keys(next)) {
		old, had := obj.Raw()[k]
		if !had || !reactive.SameValue(old, next[k]) {
			changed = true
		}
		_ = obj.Set(k, next[k])
	}
	return changed
}

// rerender runs the instance update now, or queues it when an update
// scheduler is configured.
func (r *Renderer) rerender(inst *Instance) {
	if inst.effect == nil || inst.effect.Stopped() {
		return
	}
	if r.queue != nil {
		r.queue.Schedule(inst.effect)
		return
	}
	inst.effect.Run()
}

func (r *Renderer) unmountComponent(vnode *VNode, remove bool) {
	inst := vnode.component
	if inst == nil {
		return
	}
	if vnode.KeepAlive != nil && vnode.Kind == KindComponent {
		r.deactivate(vnode.KeepAlive, cacheKey(vnode), inst)
		return
	}
	r.destroy(inst, remove)
}

// destroy stops the instance effect and tears down its subtree.
func (r *Renderer) destroy(inst *Instance, remove bool) {
	inst.effect.Stop()
	r.unmount(inst.subTree, remove)
	inst.mounted = false
	inst.hook(func(d *ComponentDef) func(*RenderContext) { return d.Unmounted })
	r.rt.Untracked(func() {
		for _, fn := range inst.onUnmounted {
			fn()
		}
	})
}
