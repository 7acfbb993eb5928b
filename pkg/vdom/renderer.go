package vdom

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/reactive"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Strategy selects the child-list reconciliation algorithm.
type Strategy uint8

const (
	// StrategyQuick trims the common prefix and suffix and moves only nodes
	// off the longest increasing subsequence of reused positions.
	StrategyQuick Strategy = iota

	// StrategyIndex pairs children by position. It never moves nodes.
	StrategyIndex

	// StrategyKeyed scans the old list for each new key and moves a node
	// when its old index regresses below the largest index seen so far.
	StrategyKeyed

	// StrategyDoubleEnded compares both ends of both lists on every step.
	StrategyDoubleEnded
)

// String returns the string representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyQuick:
		return "quick"
	case StrategyIndex:
		return "index"
	case StrategyKeyed:
		return "keyed"
	case StrategyDoubleEnded:
		return "double"
	default:
		return "unknown"
	}
}

// ParseStrategy parses the names returned by Strategy.String.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "quick", "":
		return StrategyQuick, nil
	case "index":
		return StrategyIndex, nil
	case "keyed":
		return StrategyKeyed, nil
	case "double", "double-ended":
		return StrategyDoubleEnded, nil
	}
	return StrategyQuick, fmt.Errorf("vdom: unknown strategy %q", s)
}

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{StrategyQuick, StrategyIndex, StrategyKeyed, StrategyDoubleEnded}
}

// TraceConfig configures render spans.
type TraceConfig struct {
	Tracer trace.Tracer

	// Filter decides per root whether a span is recorded. Nil traces all.
	Filter func(root *VNode) bool

	// Attributes adds custom span attributes per root.
	Attributes func(root *VNode) []attribute.KeyValue
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStrategy selects the list reconciliation strategy.
func WithStrategy(s Strategy) Option {
	return func(r *Renderer) {
		r.strategy = s
	}
}

// WithLogger sets the renderer logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock sets the time source used to stamp event handler attachment.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithTracer records a span around every Render call.
func WithTracer(t trace.Tracer) Option {
	return WithTracing(TraceConfig{Tracer: t})
}

// WithTracing records render spans as configured by cfg.
func WithTracing(cfg TraceConfig) Option {
	return func(r *Renderer) {
		r.trace = cfg
	}
}

// WithUpdateScheduler routes component re-renders through q, so several
// writes before q.Flush coalesce into one render per component.
func WithUpdateScheduler(q *reactive.JobQueue) Option {
	return func(r *Renderer) {
		r.queue = q
	}
}

// Renderer reconciles virtual trees into a Host.
//
// A Renderer is bound to one reactive runtime and is not safe for
// concurrent use.
type Renderer struct {
	rt   *reactive.Runtime
	host Host

	texts    TextHost
	comments CommentHost
	props    PropHost
	events   EventHost
	siblings SiblingHost

	strategy Strategy
	logger   *slog.Logger
	now      func() time.Time
	trace    TraceConfig
	queue    *reactive.JobQueue

	// roots holds the tree last rendered into each container.
	roots map[Node]*VNode

	// invokers holds the stable event listeners bound to each host node.
	invokers map[Node]map[string]*invoker

	ops int64
}

// NewRenderer creates a renderer for host driven by rt.
func NewRenderer(rt *reactive.Runtime, host Host, opts ...Option) *Renderer {
	r := &Renderer{
		rt:       rt,
		host:     host,
		logger:   rt.Logger(),
		now:      time.Now,
		roots:    make(map[Node]*VNode),
		invokers: make(map[Node]map[string]*invoker),
	}
	r.texts, _ = host.(TextHost)
	r.comments, _ = host.(CommentHost)
	r.props, _ = host.(PropHost)
	r.events, _ = host.(EventHost)
	r.siblings, _ = host.(SiblingHost)

	for _, opt := range opts {
		opt(r)
	}

	if r.siblings == nil && (r.strategy == StrategyKeyed || r.strategy == StrategyDoubleEnded) {
		r.warn(ErrNoSibling.WithDetail("strategy %s", r.strategy))
		r.strategy = StrategyQuick
	}
	return r
}

// Runtime returns the reactive runtime driving component effects.
func (r *Renderer) Runtime() *reactive.Runtime {
	return r.rt
}

// Strategy returns the active list strategy.
func (r *Renderer) Strategy() Strategy {
	return r.strategy
}

// HostOps returns how many host operations the renderer has issued.
func (r *Renderer) HostOps() int64 {
	return r.ops
}

// Listeners returns how many event invokers are currently bound.
func (r *Renderer) Listeners() int {
	n := 0
	for _, m := range r.invokers {
		n += len(m)
	}
	return n
}

// Root returns the tree last rendered into container.
func (r *Renderer) Root(container Node) *VNode {
	return r.roots[container]
}

// Render makes container reflect vnode. The tree previously rendered into
// container is diffed against vnode; a nil vnode unmounts it.
func (r *Renderer) Render(vnode *VNode, container Node) {
	if r.trace.Tracer == nil || (r.trace.Filter != nil && !r.trace.Filter(vnode)) {
		r.render(vnode, container)
		return
	}

	attrs := []attribute.KeyValue{attribute.String("vdom.strategy", r.strategy.String())}
	if vnode != nil {
		attrs = append(attrs, attribute.String("vdom.root_kind", vnode.Kind.String()))
	}
	if r.trace.Attributes != nil {
		attrs = append(attrs, r.trace.Attributes(vnode)...)
	}
	_, span := r.trace.Tracer.Start(context.Background(), "vdom.Render",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	start := r.ops
	r.render(vnode, container)
	span.SetAttributes(attribute.Int64("vdom.host_ops", r.ops-start))
}

func (r *Renderer) render(vnode *VNode, container Node) {
	old := r.roots[container]
	if vnode != nil {
		r.Patch(old, vnode, container, nil)
		r.roots[container] = vnode
		return
	}
	if old != nil {
		r.Unmount(old)
	}
	delete(r.roots, container)
}

// Patch brings n2 into the host: it mounts n2 when n1 is nil and otherwise
// reuses n1's host nodes. When the types differ n1 is replaced in place.
func (r *Renderer) Patch(n1, n2 *VNode, container, anchor Node) {
	if n1 == n2 {
		return
	}
	if n1 != nil && !sameType(n1, n2) {
		r.Patch(nil, n2, container, r.hostOf(n1))
		r.Unmount(n1)
		return
	}

	switch n2.Kind {
	case KindElement:
		if n1 == nil {
			r.mountElement(n2, container, anchor)
		} else {
			r.patchElement(n1, n2)
		}
	case KindText, KindComment:
		if n1 == nil {
			if n2.Kind == KindText {
				n2.El = r.createText(n2.Text)
			} else {
				n2.El = r.createComment(n2.Text)
			}
			r.insert(n2.El, container, anchor)
			return
		}
		n2.El = n1.El
		if n2.Text != n1.Text {
			r.setText(n2.El, n2.Text)
		}
	case KindFragment:
		if n1 == nil {
			n2.El = r.createText("")
			r.insert(n2.El, container, anchor)
			for _, c := range n2.Children {
				r.Patch(nil, c, container, n2.El)
			}
			return
		}
		n2.El = n1.El
		r.patchChildren(n1.Children, n2.Children, container, n2.El)
	case KindComponent:
		if n1 == nil {
			r.mountComponent(n2, container, anchor)
		} else {
			r.patchComponent(n1, n2)
		}
	case KindFunc:
		if n1 == nil {
			r.mountFunc(n2, container, anchor)
		} else {
			r.patchFunc(n1, n2)
		}
	}
}

// Unmount removes vnode's host nodes and tears down everything attached to
// them: event listeners, component effects and lifecycle hooks.
func (r *Renderer) Unmount(vnode *VNode) {
	r.unmount(vnode, true)
}

// unmount tears vnode down. remove is false for descendants of an element
// that is itself being removed: detaching the element detaches them.
func (r *Renderer) unmount(vnode *VNode, remove bool) {
	if vnode == nil {
		return
	}
	switch vnode.Kind {
	case KindElement:
		r.releaseInvokers(vnode.El)
		for _, c := range vnode.Children {
			r.unmount(c, false)
		}
		if remove {
			r.remove(vnode.El)
		}
	case KindText, KindComment:
		if remove {
			r.remove(vnode.El)
		}
	case KindFragment:
		for _, c := range vnode.Children {
			r.unmount(c, remove)
		}
		if remove {
			r.remove(vnode.El)
		}
	case KindComponent, KindFunc:
		r.unmountComponent(vnode, remove)
	}
}

// hostOf returns the first host node of a mounted vnode, used as an
// insertion anchor.
func (r *Renderer) hostOf(v *VNode) Node {
	switch v.Kind {
	case KindFragment:
		if len(v.Children) > 0 {
			return r.hostOf(v.Children[0])
		}
		return v.El
	case KindComponent, KindFunc:
		if v.component != nil && v.component.subTree != nil {
			return r.hostOf(v.component.subTree)
		}
		return nil
	}
	return v.El
}

// lastHostOf returns the last host node of a mounted vnode.
func (r *Renderer) lastHostOf(v *VNode) Node {
	switch v.Kind {
	case KindComponent, KindFunc:
		if v.component != nil && v.component.subTree != nil {
			return r.lastHostOf(v.component.subTree)
		}
		return nil
	}
	return v.El
}

// move re-inserts every host node of v before anchor.
func (r *Renderer) move(v *VNode, container, anchor Node) {
	switch v.Kind {
	case KindFragment:
		for _, c := range v.Children {
			r.move(c, container, anchor)
		}
		r.insert(v.El, container, anchor)
	case KindComponent, KindFunc:
		if v.component != nil && v.component.subTree != nil {
			r.move(v.component.subTree, container, anchor)
		}
	default:
		r.insert(v.El, container, anchor)
	}
}

func (r *Renderer) warn(err *errors.Error) {
	r.rt.Warn(err)
}

// Host calls. Every call is counted so spans and tests can report work done.

func (r *Renderer) createElement(tag string) Node {
	r.ops++
	return r.host.CreateElement(tag)
}

func (r *Renderer) createText(text string) Node {
	if r.texts != nil {
		r.ops++
		return r.texts.CreateText(text)
	}
	n := r.createElement("#text")
	if text != "" {
		r.setText(n, text)
	}
	return n
}

func (r *Renderer) createComment(text string) Node {
	if r.comments != nil {
		r.ops++
		return r.comments.CreateComment(text)
	}
	n := r.createElement("#comment")
	if text != "" {
		r.setText(n, text)
	}
	return n
}

func (r *Renderer) setText(n Node, text string) {
	r.ops++
	r.host.SetText(n, text)
}

func (r *Renderer) insert(n, parent, anchor Node) {
	r.ops++
	r.host.Insert(n, parent, anchor)
}

func (r *Renderer) remove(n Node) {
	r.ops++
	r.host.Remove(n)
}

func (r *Renderer) nextSibling(n Node) Node {
	if n == nil || r.siblings == nil {
		return nil
	}
	next, ok := r.siblings.NextSibling(n)
	if !ok {
		return nil
	}
	return next
}
