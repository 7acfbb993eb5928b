package vdom

import (
	"time"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// invoker is the stable listener bound to a host node for one event type.
// Patches swap its value instead of re-registering with the host.
type invoker struct {
	value    any
	attached time.Time
}

// call dispatches e to the current handler value. Events stamped before the
// invoker was attached were queued before the listener existed and are
// dropped.
func (inv *invoker) call(r *Renderer, e Event) {
	if !e.TimeStamp.IsZero() && e.TimeStamp.Before(inv.attached) {
		return
	}
	dispatch(r, inv.value, e)
}

func dispatch(r *Renderer, value any, e Event) {
	switch h := value.(type) {
	case func(Event):
		h(e)
	case func():
		h()
	case []any:
		for _, v := range h {
			dispatch(r, v, e)
		}
	case []func(Event):
		for _, fn := range h {
			fn(e)
		}
	default:
		r.warn(ErrNotHandler.WithDetail("%s handler is %T", e.Type, value))
	}
}

// isHandler reports whether v can be invoked by dispatch.
func isHandler(v any) bool {
	switch h := v.(type) {
	case func(Event), func(), []func(Event):
		return true
	case []any:
		for _, x := range h {
			if !isHandler(x) {
				return false
			}
		}
		return true
	}
	return false
}

// patchProp applies one prop change to el.
func (r *Renderer) patchProp(el Node, key string, prev, next any) {
	if IsEventKey(key) {
		r.patchEvent(el, key, next)
		return
	}
	if r.props == nil {
		return
	}
	r.ops++
	r.props.SetProp(el, key, next)
}

// patchEvent binds, redirects or unbinds the invoker for key.
func (r *Renderer) patchEvent(el Node, key string, next any) {
	if next != nil && !isHandler(next) {
		r.warn(ErrNotHandler.WithDetail("%s is %T", key, next))
		next = nil
	}

	invokers := r.invokers[el]
	inv := invokers[key]

	if next == nil {
		if inv != nil {
			delete(invokers, key)
			if len(invokers) == 0 {
				delete(r.invokers, el)
			}
			if r.events != nil {
				r.ops++
				r.events.Unlisten(el, EventType(key))
			}
		}
		return
	}

	if inv != nil {
		inv.value = next
		return
	}
	inv = &invoker{value: next, attached: r.now()}
	if invokers == nil {
		invokers = make(map[string]*invoker)
		r.invokers[el] = invokers
	}
	invokers[key] = inv
	if r.events != nil {
		r.ops++
		r.events.Listen(el, EventType(key), func(e Event) { inv.call(r, e) })
	}
}

// releaseInvokers unbinds every listener on el.
func (r *Renderer) releaseInvokers(el Node) {
	invokers, ok := r.invokers[el]
	if !ok {
		return
	}
	delete(r.invokers, el)
	if r.events == nil {
		return
	}
	for key := range invokers {
		r.ops++
		r.events.Unlisten(el, EventType(key))
	}
}

// propChanged reports whether a prop value differs between renders.
// Functions always count as changed; event props are swapped on the
// invoker without a host call.
func propChanged(prev, next any) bool {
	return !reactive.SameValue(prev, next)
}
