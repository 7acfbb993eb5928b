package memhost

import "fmt"

// OpKind names a host call.
type OpKind string

const (
	OpCreate        OpKind = "create"
	OpCreateText    OpKind = "create-text"
	OpCreateComment OpKind = "create-comment"
	OpSetText       OpKind = "set-text"
	OpInsert        OpKind = "insert"
	OpMove          OpKind = "move"
	OpRemove        OpKind = "remove"
	OpSetProp       OpKind = "set-prop"
	OpListen        OpKind = "listen"
	OpUnlisten      OpKind = "unlisten"
)

// Mutates reports whether ops of this kind change the host tree.
func (k OpKind) Mutates() bool {
	return k != OpListen && k != OpUnlisten
}

// Op is one recorded host call. Node, Parent and Anchor are node IDs; 0
// means none.
type Op struct {
	Kind   OpKind `json:"kind"`
	Node   int    `json:"node"`
	Parent int    `json:"parent,omitempty"`
	Anchor int    `json:"anchor,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Text   string `json:"text,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  any    `json:"value,omitempty"`
}

// String returns a one-line description of the op.
func (o Op) String() string {
	switch o.Kind {
	case OpCreate:
		return fmt.Sprintf("create #%d <%s>", o.Node, o.Tag)
	case OpCreateText, OpCreateComment:
		return fmt.Sprintf("%s #%d %q", o.Kind, o.Node, o.Text)
	case OpSetText:
		return fmt.Sprintf("set-text #%d %q", o.Node, o.Text)
	case OpInsert, OpMove:
		if o.Anchor == 0 {
			return fmt.Sprintf("%s #%d into #%d", o.Kind, o.Node, o.Parent)
		}
		return fmt.Sprintf("%s #%d into #%d before #%d", o.Kind, o.Node, o.Parent, o.Anchor)
	case OpSetProp:
		return fmt.Sprintf("set-prop #%d %s=%v", o.Node, o.Key, o.Value)
	case OpRemove, OpListen, OpUnlisten:
		if o.Key != "" {
			return fmt.Sprintf("%s #%d %s", o.Kind, o.Node, o.Key)
		}
		return fmt.Sprintf("%s #%d", o.Kind, o.Node)
	}
	return string(o.Kind)
}
