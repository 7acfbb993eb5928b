package vdom

import "fmt"

// KeepAliveCache keeps unmounted component instances alive. Attach it to a
// component vnode: unmounting that vnode moves the rendered host nodes into
// an off-tree container instead of destroying them, and the next mount with
// the same cache key moves them back.
//
// Instances are keyed by the vnode key, falling back to the component name.
type KeepAliveCache struct {
	r       *Renderer
	storage Node
	limit   int

	entries map[string]*Instance
	order   []string
}

// NewKeepAliveCache creates a cache holding at most limit instances. When
// it is full, the least recently cached instance is destroyed. limit <= 0
// means unbounded.
func NewKeepAliveCache(limit int) *KeepAliveCache {
	return &KeepAliveCache{
		limit:   limit,
		entries: make(map[string]*Instance),
	}
}

// Len returns the number of cached instances.
func (c *KeepAliveCache) Len() int {
	return len(c.entries)
}

// Has reports whether key is cached.
func (c *KeepAliveCache) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Storage returns the off-tree container holding detached host nodes, or
// nil before the first detach.
func (c *KeepAliveCache) Storage() Node {
	return c.storage
}

// Drop destroys the cached instance for key.
func (c *KeepAliveCache) Drop(key string) {
	inst, ok := c.entries[key]
	if !ok {
		return
	}
	c.forget(key)
	c.r.destroy(inst, true)
}

// take removes and returns the cached instance for key.
func (c *KeepAliveCache) take(r *Renderer, key string) *Instance {
	c.r = r
	inst, ok := c.entries[key]
	if !ok {
		return nil
	}
	c.forget(key)
	return inst
}

func (c *KeepAliveCache) put(r *Renderer, key string, inst *Instance) {
	c.r = r
	if old, ok := c.entries[key]; ok && old != inst {
		c.forget(key)
		r.destroy(old, true)
	}
	c.entries[key] = inst
	c.order = append(c.order, key)
	for c.limit > 0 && len(c.order) > c.limit {
		c.Drop(c.order[0])
	}
}

func (c *KeepAliveCache) forget(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func cacheKey(v *VNode) string {
	if v.Key != "" {
		return v.Key
	}
	if v.Comp != nil && v.Comp.Name != "" {
		return v.Comp.Name
	}
	return fmt.Sprintf("%p", v.Comp)
}

// deactivate moves inst's host nodes into the cache storage.
func (r *Renderer) deactivate(c *KeepAliveCache, key string, inst *Instance) {
	if c.storage == nil {
		c.storage = r.createElement("#keep-alive")
	}
	if inst.subTree != nil {
		r.move(inst.subTree, c.storage, nil)
	}
	inst.container = c.storage
	inst.deactivated = true
	c.put(r, key, inst)
	inst.hook(func(d *ComponentDef) func(*RenderContext) { return d.Deactivated })
}

// activate moves a cached instance back into container and refreshes its
// props from n2.
func (r *Renderer) activate(inst *Instance, n2 *VNode, container, anchor Node) {
	n2.component = inst
	if inst.subTree != nil {
		r.move(inst.subTree, container, anchor)
	}
	inst.container = container
	inst.deactivated = false

	props, attrs := r.resolveProps(inst.def, n2.Props, false)
	inst.attrs = attrs
	inst.slots = n2.Slots
	r.updateProps(inst.props, props)
	inst.hook(func(d *ComponentDef) func(*RenderContext) { return d.Activated })
}
