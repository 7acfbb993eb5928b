// Package vdom provides the virtual node tree and the reconciler that keeps
// a host tree in sync with it.
//
// The reconciler only needs four operations from its host (create an
// element, set text, insert before an anchor, remove), described by Host.
// Optional capabilities such as PropHost, EventHost and SiblingHost are
// detected with type assertions and used when present.
//
// # Core Types
//
// VNode is a closed variant over Kind: elements, text, comments, fragments,
// stateful components (ComponentDef) and stateless render functions
// (FuncComponent). Props holds attributes and event handlers; keys of the
// form "onClick" are event handlers.
//
// # Element API
//
// Elements are built with variadic factory functions:
//
//	Div(Class("card"), Key("row-1"),
//	    H1(Text("Title")),
//	    Button(OnClick(func() { count.Set("n", 1) }), "Add"),
//	)
//
// # Reconciliation
//
// Renderer.Render diffs the new tree against the one previously rendered
// into the same container. Child lists are reconciled with one of four
// strategies; StrategyQuick (prefix/suffix trimming plus a longest
// increasing subsequence of reused positions) is the default. Lists
// without keys always fall back to positional pairing.
//
// # Components
//
// Stateful components get reactive local state, shallow-reactive props and a
// render effect, so any reactive read during render schedules a re-render.
// KeepAliveCache turns unmounting into a detach into an off-tree container.
package vdom
