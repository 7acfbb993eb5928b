package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/reactor/pkg/vdom"
)

// Op labels used by the host wrapper.
const (
	OpCreate        = "create"
	OpCreateText    = "create_text"
	OpCreateComment = "create_comment"
	OpSetText       = "set_text"
	OpInsert        = "insert"
	OpRemove        = "remove"
	OpSetProp       = "set_prop"
	OpListen        = "listen"
	OpUnlisten      = "unlisten"
	OpNextSibling   = "next_sibling"
)

// Host wraps h so every call is counted in reactor_host_ops_total.
//
// The wrapper always offers text, comment, prop and event capabilities:
// calls h cannot serve are emulated the way the renderer would emulate
// them. Sibling lookups are offered only when h supports them, so the
// renderer's strategy fallback still applies.
func (m *Metrics) Host(h vdom.Host) vdom.Host {
	c := &countingHost{
		host: h,
		ops:  make(map[string]prometheus.Counter),
	}
	c.texts, _ = h.(vdom.TextHost)
	c.comments, _ = h.(vdom.CommentHost)
	c.props, _ = h.(vdom.PropHost)
	c.events, _ = h.(vdom.EventHost)
	for _, op := range []string{
		OpCreate, OpCreateText, OpCreateComment, OpSetText, OpInsert,
		OpRemove, OpSetProp, OpListen, OpUnlisten, OpNextSibling,
	} {
		c.ops[op] = m.hostOps.WithLabelValues(op)
	}

	if s, ok := h.(vdom.SiblingHost); ok {
		return &siblingHost{countingHost: c, siblings: s}
	}
	return c
}

type countingHost struct {
	host     vdom.Host
	texts    vdom.TextHost
	comments vdom.CommentHost
	props    vdom.PropHost
	events   vdom.EventHost

	ops map[string]prometheus.Counter
}

func (c *countingHost) count(op string) {
	c.ops[op].Inc()
}

func (c *countingHost) CreateElement(tag string) vdom.Node {
	c.count(OpCreate)
	return c.host.CreateElement(tag)
}

func (c *countingHost) SetText(n vdom.Node, text string) {
	c.count(OpSetText)
	c.host.SetText(n, text)
}

func (c *countingHost) Insert(n, parent, anchor vdom.Node) {
	c.count(OpInsert)
	c.host.Insert(n, parent, anchor)
}

func (c *countingHost) Remove(n vdom.Node) {
	c.count(OpRemove)
	c.host.Remove(n)
}

func (c *countingHost) CreateText(text string) vdom.Node {
	c.count(OpCreateText)
	if c.texts != nil {
		return c.texts.CreateText(text)
	}
	n := c.host.CreateElement("#text")
	if text != "" {
		c.host.SetText(n, text)
	}
	return n
}

func (c *countingHost) CreateComment(text string) vdom.Node {
	c.count(OpCreateComment)
	if c.comments != nil {
		return c.comments.CreateComment(text)
	}
	n := c.host.CreateElement("#comment")
	if text != "" {
		c.host.SetText(n, text)
	}
	return n
}

func (c *countingHost) SetProp(n vdom.Node, key string, value any) {
	c.count(OpSetProp)
	if c.props != nil {
		c.props.SetProp(n, key, value)
	}
}

func (c *countingHost) Listen(n vdom.Node, event string, handler func(vdom.Event)) {
	c.count(OpListen)
	if c.events != nil {
		c.events.Listen(n, event, handler)
	}
}

func (c *countingHost) Unlisten(n vdom.Node, event string) {
	c.count(OpUnlisten)
	if c.events != nil {
		c.events.Unlisten(n, event)
	}
}

type siblingHost struct {
	*countingHost
	siblings vdom.SiblingHost
}

func (s *siblingHost) NextSibling(n vdom.Node) (vdom.Node, bool) {
	s.count(OpNextSibling)
	return s.siblings.NextSibling(n)
}
