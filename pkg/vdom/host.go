package vdom

import "time"

// Node is an opaque host node. Hosts must return comparable values (pointers
// or integer handles) because the renderer keys side tables by node.
type Node any

// Host is the contract the renderer needs from its environment.
type Host interface {
	// CreateElement creates a detached host node for tag.
	CreateElement(tag string) Node

	// SetText replaces the text content of n.
	SetText(n Node, text string)

	// Insert places n into parent before anchor, or at the end when anchor
	// is nil. Inserting a node that is already attached moves it.
	Insert(n, parent, anchor Node)

	// Remove detaches n from its parent.
	Remove(n Node)
}

// TextHost creates dedicated text nodes. Hosts without it get a "#text"
// element whose content is set with SetText.
type TextHost interface {
	CreateText(text string) Node
}

// CommentHost creates comment nodes. Hosts without it get a "#comment"
// element.
type CommentHost interface {
	CreateComment(text string) Node
}

// PropHost applies attributes. Hosts without it ignore non-event props.
type PropHost interface {
	// SetProp sets key on n. A nil value clears the attribute.
	SetProp(n Node, key string, value any)
}

// EventHost registers host event listeners.
type EventHost interface {
	Listen(n Node, event string, handler func(Event))
	Unlisten(n Node, event string)
}

// SiblingHost reports the next sibling of an attached node. The keyed and
// double-ended strategies need it to compute move anchors.
type SiblingHost interface {
	NextSibling(n Node) (Node, bool)
}

// Event is a host event delivered to a handler.
type Event struct {
	Type      string
	TimeStamp time.Time
	Payload   any
}
