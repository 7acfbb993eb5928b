package vdom

import (
	"reflect"
	"strings"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindComment               // Comment placeholder
	KindFragment              // Grouping without wrapper
	KindComponent             // Stateful component
	KindFunc                  // Stateless render function
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindFunc:
		return "Func"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
//
// Element children are either a string (Text, with Children nil), a list
// (Children) or absent. Text and comment nodes keep their content in Text.
type VNode struct {
	Kind      Kind            // Node type
	Tag       string          // Element tag name (e.g., "div")
	Props     Props           // Attributes and event handlers
	Children  []*VNode        // Child nodes
	Text      string          // Text content or string children
	Key       string          // Reconciliation key
	El        Node            // Host node once mounted
	Comp      *ComponentDef   // For KindComponent
	Fn        FuncComponent   // For KindFunc
	Slots     Slots           // Slot content passed to a component
	KeepAlive *KeepAliveCache // Detach instead of destroy on unmount

	component *Instance
}

// Props holds attributes and event handlers.
type Props map[string]any

// Slots maps a slot name to a function producing its content.
type Slots map[string]func() *VNode

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onClick", "onInput", etc.
	Handler any    // Function to call
}

// Instance returns the component instance backing a mounted component or
// function node.
func (v *VNode) Instance() *Instance {
	return v.component
}

// HasTextChildren reports whether an element's children are a string.
func (v *VNode) HasTextChildren() bool {
	return v.Children == nil && v.Text != ""
}

// IsEventKey reports whether a prop key names an event handler: "on"
// followed by an upper-case letter.
func IsEventKey(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on") && key[2] >= 'A' && key[2] <= 'Z'
}

// EventType returns the host event type for an event prop key
// ("onClick" -> "click").
func EventType(key string) string {
	return strings.ToLower(key[2:])
}

// sameType reports whether n2 can be patched onto n1 in place.
func sameType(n1, n2 *VNode) bool {
	if n1.Kind != n2.Kind {
		return false
	}
	switch n1.Kind {
	case KindElement:
		return n1.Tag == n2.Tag
	case KindComponent:
		return n1.Comp == n2.Comp
	case KindFunc:
		return funcID(n1.Fn) == funcID(n2.Fn)
	}
	return true
}

// sameNode reports whether n2 is the next version of n1 in a keyed list.
func sameNode(n1, n2 *VNode) bool {
	return n1.Key == n2.Key && sameType(n1, n2)
}

func funcID(fn FuncComponent) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}

// hasKeys reports whether any child carries a key.
func hasKeys(children []*VNode) bool {
	for _, c := range children {
		if c != nil && c.Key != "" {
			return true
		}
	}
	return false
}
