package memhost

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/reactor/pkg/vdom"
)

// Host is an in-memory tree implementing vdom.Host and every optional
// capability. It is not safe for concurrent use.
type Host struct {
	nextID int
	ops    []Op
	logger *slog.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithLogger logs every recorded op at Debug.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// New creates an empty host.
func New(opts ...Option) *Host {
	h := &Host{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var (
	_ vdom.Host        = (*Host)(nil)
	_ vdom.TextHost    = (*Host)(nil)
	_ vdom.CommentHost = (*Host)(nil)
	_ vdom.PropHost    = (*Host)(nil)
	_ vdom.EventHost   = (*Host)(nil)
	_ vdom.SiblingHost = (*Host)(nil)
)

// Container creates a detached root node. Containers are not recorded.
func (h *Host) Container(tag string) *Node {
	return h.newNode(tag)
}

func (h *Host) newNode(tag string) *Node {
	h.nextID++
	return &Node{ID: h.nextID, Tag: tag}
}

func (h *Host) emit(op Op) {
	h.ops = append(h.ops, op)
	if h.logger != nil {
		h.logger.Debug("host op", "op", op.String())
	}
}

// node converts a vdom.Node back to *Node. Foreign values are a programming
// error.
func node(n vdom.Node) *Node {
	if n == nil {
		return nil
	}
	x, ok := n.(*Node)
	if !ok {
		panic(fmt.Sprintf("memhost: foreign node %T", n))
	}
	return x
}

func id(n *Node) int {
	if n == nil {
		return 0
	}
	return n.ID
}

// CreateElement implements vdom.Host.
func (h *Host) CreateElement(tag string) vdom.Node {
	n := h.newNode(tag)
	h.emit(Op{Kind: OpCreate, Node: n.ID, Tag: tag})
	return n
}

// CreateText implements vdom.TextHost.
func (h *Host) CreateText(text string) vdom.Node {
	n := h.newNode(TextTag)
	n.Text = text
	h.emit(Op{Kind: OpCreateText, Node: n.ID, Text: text})
	return n
}

// CreateComment implements vdom.CommentHost.
func (h *Host) CreateComment(text string) vdom.Node {
	n := h.newNode(CommentTag)
	n.Text = text
	h.emit(Op{Kind: OpCreateComment, Node: n.ID, Text: text})
	return n
}

// SetText implements vdom.Host. On an element it replaces every child.
func (h *Host) SetText(v vdom.Node, text string) {
	n := node(v)
	for len(n.Children) > 0 {
		n.Children[0].detach()
	}
	n.Text = text
	h.emit(Op{Kind: OpSetText, Node: n.ID, Text: text})
}

// Insert implements vdom.Host. Inserting an attached node records a move.
func (h *Host) Insert(v, parent, anchor vdom.Node) {
	n, p, a := node(v), node(parent), node(anchor)
	if a == n {
		a = nil
		if next, ok := h.NextSibling(n); ok {
			a = next.(*Node)
		}
	}
	kind := OpInsert
	if n.Parent != nil {
		kind = OpMove
		n.detach()
	}
	n.Parent = p
	if a == nil {
		p.Children = append(p.Children, n)
	} else {
		i := p.index(a)
		if i < 0 {
			panic(fmt.Sprintf("memhost: anchor #%d is not a child of #%d", a.ID, p.ID))
		}
		p.Children = append(p.Children, nil)
		copy(p.Children[i+1:], p.Children[i:])
		p.Children[i] = n
	}
	if len(p.Children) > 0 {
		p.Text = ""
	}
	h.emit(Op{Kind: kind, Node: n.ID, Parent: p.ID, Anchor: id(a)})
}

// Remove implements vdom.Host.
func (h *Host) Remove(v vdom.Node) {
	n := node(v)
	n.detach()
	h.emit(Op{Kind: OpRemove, Node: n.ID})
}

// SetProp implements vdom.PropHost.
func (h *Host) SetProp(v vdom.Node, key string, value any) {
	n := node(v)
	if value == nil {
		delete(n.Props, key)
	} else {
		if n.Props == nil {
			n.Props = make(map[string]any)
		}
		n.Props[key] = value
	}
	h.emit(Op{Kind: OpSetProp, Node: n.ID, Key: key, Value: value})
}

// Listen implements vdom.EventHost.
func (h *Host) Listen(v vdom.Node, event string, handler func(vdom.Event)) {
	n := node(v)
	if n.listeners == nil {
		n.listeners = make(map[string]func(vdom.Event))
	}
	n.listeners[event] = handler
	h.emit(Op{Kind: OpListen, Node: n.ID, Key: event})
}

// Unlisten implements vdom.EventHost.
func (h *Host) Unlisten(v vdom.Node, event string) {
	n := node(v)
	delete(n.listeners, event)
	h.emit(Op{Kind: OpUnlisten, Node: n.ID, Key: event})
}

// NextSibling implements vdom.SiblingHost.
func (h *Host) NextSibling(v vdom.Node) (vdom.Node, bool) {
	n := node(v)
	if n == nil || n.Parent == nil {
		return nil, false
	}
	i := n.Parent.index(n)
	if i < 0 || i+1 >= len(n.Parent.Children) {
		return nil, false
	}
	return n.Parent.Children[i+1], true
}

// Dispatch delivers an event to the listener bound on n and reports whether
// one was bound. A zero at is replaced by the current time.
func (h *Host) Dispatch(n *Node, event string, payload any, at time.Time) bool {
	fn, ok := n.listeners[event]
	if !ok {
		return false
	}
	if at.IsZero() {
		at = time.Now()
	}
	fn(vdom.Event{Type: event, TimeStamp: at, Payload: payload})
	return true
}

// Ops returns the recorded ops.
func (h *Host) Ops() []Op {
	out := make([]Op, len(h.ops))
	copy(out, h.ops)
	return out
}

// Reset clears the op log.
func (h *Host) Reset() {
	h.ops = h.ops[:0]
}

// Count returns how many recorded ops have one of kinds. With no kinds it
// counts every op.
func (h *Host) Count(kinds ...OpKind) int {
	if len(kinds) == 0 {
		return len(h.ops)
	}
	n := 0
	for _, op := range h.ops {
		for _, k := range kinds {
			if op.Kind == k {
				n++
				break
			}
		}
	}
	return n
}

// Mutations returns how many recorded ops changed the tree.
func (h *Host) Mutations() int {
	n := 0
	for _, op := range h.ops {
		if op.Kind.Mutates() {
			n++
		}
	}
	return n
}

// Listeners returns how many listeners are bound in the tree under root.
func (h *Host) Listeners(root *Node) int {
	n := 0
	root.Walk(func(x *Node) {
		n += len(x.listeners)
	})
	return n
}
