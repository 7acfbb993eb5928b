package vtest

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vango-dev/reactor/pkg/memhost"
	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/vdom"
)

// Clock is a manual time source.
type Clock struct {
	now time.Time
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Harness is a renderer bound to a memhost root.
type Harness struct {
	t testing.TB

	Runtime  *reactive.Runtime
	Host     *memhost.Host
	Root     *memhost.Node
	Renderer *vdom.Renderer
	Clock    *Clock

	// Warnings collects every warning reported through the runtime.
	Warnings []error
}

// New creates a harness. opts are passed to the renderer after the
// harness clock, so they may override it.
func New(t testing.TB, opts ...vdom.Option) *Harness {
	t.Helper()
	h := &Harness{
		t:     t,
		Host:  memhost.New(),
		Clock: &Clock{now: time.Unix(1_700_000_000, 0)},
	}
	h.Runtime = reactive.NewRuntime(
		reactive.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		reactive.WithWarnHook(func(err error) { h.Warnings = append(h.Warnings, err) }),
	)
	h.Root = h.Host.Container("root")
	h.Renderer = vdom.NewRenderer(h.Runtime, h.Host,
		append([]vdom.Option{vdom.WithClock(h.Clock.Now)}, opts...)...)
	return h
}

// Render renders v into the root and returns the ops it issued.
func (h *Harness) Render(v *vdom.VNode) []memhost.Op {
	h.Host.Reset()
	h.Renderer.Render(v, h.Root)
	return h.Host.Ops()
}

// Texts returns the text content of each root child.
func (h *Harness) Texts() []string {
	return memhost.ChildTexts(h.Root)
}

// ChildTexts returns the text content of each child of the first root
// child, the usual shape of a rendered list.
func (h *Harness) ChildTexts() []string {
	require.NotEmpty(h.t, h.Root.Children, "nothing rendered")
	return memhost.ChildTexts(h.Root.Children[0])
}

// Dump returns the host tree under the root.
func (h *Harness) Dump() string {
	return h.Host.Dump(h.Root)
}

// Find returns the first node under the root with tag and text content.
func (h *Harness) Find(tag, text string) *memhost.Node {
	var found *memhost.Node
	h.Root.Walk(func(n *memhost.Node) {
		if found == nil && n.Tag == tag && n.TextContent() == text {
			found = n
		}
	})
	return found
}

// Click dispatches a click on the first node matching tag and text, at the
// current harness time.
func (h *Harness) Click(tag, text string) {
	h.t.Helper()
	n := h.Find(tag, text)
	require.NotNil(h.t, n, "no <%s> with text %q", tag, text)
	require.True(h.t, h.Host.Dispatch(n, "click", nil, h.Clock.Now()), "<%s> %q has no click listener", tag, text)
}

// RequireNoMutations renders v and fails if any host mutation was issued.
func (h *Harness) RequireNoMutations(v *vdom.VNode) {
	h.t.Helper()
	ops := h.Render(v)
	for _, op := range ops {
		if op.Kind.Mutates() {
			require.Failf(h.t, "unexpected host mutation", "%s (all ops: %v)", op, ops)
		}
	}
}

// AssertOps asserts how many recorded ops have kind.
func (h *Harness) AssertOps(kind memhost.OpKind, want int) bool {
	h.t.Helper()
	return assert.Equal(h.t, want, h.Host.Count(kind), "%s ops in %v", kind, h.Host.Ops())
}

// AssertWarned asserts that a warning matching target was reported.
func (h *Harness) AssertWarned(target error) bool {
	h.t.Helper()
	for _, w := range h.Warnings {
		if errors.Is(w, target) {
			return true
		}
	}
	return assert.Failf(h.t, "warning not reported", "want %v, got %v", target, h.Warnings)
}

// List builds a <ul> whose <li> children are keyed and labelled by keys.
func List(keys ...string) *vdom.VNode {
	items := make([]*vdom.VNode, len(keys))
	for i, k := range keys {
		items[i] = vdom.Li(vdom.Key(k), k)
	}
	return vdom.Ul(items)
}
