package vdom

import (
	"maps"
	"slices"
)

func (r *Renderer) mountElement(n2 *VNode, container, anchor Node) {
	el := r.createElement(n2.Tag)
	n2.El = el

	for _, k := range slices.Sorted(maps.Keys(n2.Props)) {
		if v := n2.Props[k]; v != nil {
			r.patchProp(el, k, nil, v)
		}
	}

	if n2.HasTextChildren() {
		r.setText(el, n2.Text)
	} else {
		for _, c := range n2.Children {
			r.Patch(nil, c, el, nil)
		}
	}
	r.insert(el, container, anchor)
}

func (r *Renderer) patchElement(n1, n2 *VNode) {
	el := n1.El
	n2.El = el

	for _, k := range slices.Sorted(maps.Keys(n2.Props)) {
		next := n2.Props[k]
		prev, had := n1.Props[k]
		if !had && next == nil {
			continue
		}
		if propChanged(prev, next) {
			r.patchProp(el, k, prev, next)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(n1.Props)) {
		if _, ok := n2.Props[k]; !ok && n1.Props[k] != nil {
			r.patchProp(el, k, n1.Props[k], nil)
		}
	}

	r.patchElementChildren(n1, n2, el)
}

// patchElementChildren handles the three shapes of element children: text,
// list and absent.
func (r *Renderer) patchElementChildren(n1, n2 *VNode, el Node) {
	switch {
	case n2.HasTextChildren():
		if n1.Children != nil {
			for _, c := range n1.Children {
				r.Unmount(c)
			}
			r.setText(el, n2.Text)
		} else if n1.Text != n2.Text {
			r.setText(el, n2.Text)
		}

	case n2.Children != nil:
		if n1.Children != nil {
			r.patchChildren(n1.Children, n2.Children, el, nil)
			return
		}
		if n1.Text != "" {
			r.setText(el, "")
		}
		for _, c := range n2.Children {
			r.Patch(nil, c, el, nil)
		}

	default:
		if n1.Children != nil {
			for _, c := range n1.Children {
				r.Unmount(c)
			}
		} else if n1.Text != "" {
			r.setText(el, "")
		}
	}
}
