package memhost

import (
	"github.com/vango-dev/reactor/pkg/vdom"
)

const (
	// TextTag is the tag of text nodes.
	TextTag = "#text"

	// CommentTag is the tag of comment nodes.
	CommentTag = "#comment"
)

// Node is a host node.
type Node struct {
	ID       int
	Tag      string
	Text     string
	Props    map[string]any
	Parent   *Node
	Children []*Node

	listeners map[string]func(vdom.Event)
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.Tag == TextTag }

// IsComment reports whether n is a comment node.
func (n *Node) IsComment() bool { return n.Tag == CommentTag }

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.IsComment() {
		return ""
	}
	if len(n.Children) == 0 {
		return n.Text
	}
	out := ""
	for _, c := range n.Children {
		out += c.TextContent()
	}
	return out
}

// Listening reports whether a listener for event is bound on n.
func (n *Node) Listening(event string) bool {
	_, ok := n.listeners[event]
	return ok
}

// index returns the position of c among n's children, or -1.
func (n *Node) index(c *Node) int {
	for i, x := range n.Children {
		if x == c {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	p := n.Parent
	if p == nil {
		return
	}
	if i := p.index(n); i >= 0 {
		p.Children = append(p.Children[:i], p.Children[i+1:]...)
	}
	n.Parent = nil
}

// Walk calls fn for n and every descendant in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
