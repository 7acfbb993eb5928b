// Package memhost is an in-memory vdom.Host.
//
// Every host call is recorded as an Op, so tests and tools can assert on the
// exact work a patch performed:
//
//	h := memhost.New()
//	root := h.Container("root")
//	r := vdom.NewRenderer(rt, h)
//	r.Render(tree, root)
//	fmt.Println(h.Dump(root))
//
// Host implements every optional capability (text, comments, props,
// events and sibling lookup) and can dispatch events to bound listeners.
package memhost
