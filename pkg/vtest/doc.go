// Package vtest provides testing helpers for renderer and component tests.
//
// A Harness wires a reactive runtime, an in-memory host and a renderer
// together, so a test can render trees and assert on the host tree and on
// the host operations each render issued.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(t)
//	    h.Render(vdom.Component(counter, nil, nil))
//	    h.Click("button", "+")
//	    require.Equal(t, []string{"1"}, h.Texts())
//	}
//
// # Lists
//
// List builds a keyed <ul>, which is the usual input for diff tests:
//
//	h := vtest.New(t, vdom.WithStrategy(vdom.StrategyKeyed))
//	h.Render(vtest.List("a", "b", "c"))
//	h.Render(vtest.List("c", "a", "b"))
//	h.AssertOps(memhost.OpMove, 1)
//
// # Idempotence
//
// Rendering the same tree twice must not touch the host:
//
//	h.RequireNoMutations(vtest.List("a", "b"))
//
// # Time
//
// The harness clock stamps event handler attachment. Advance it to deliver
// events after a handler was bound:
//
//	h.Clock.Advance(time.Second)
//	h.Click("button", "save")
package vtest
