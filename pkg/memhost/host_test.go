package memhost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vango-dev/reactor/pkg/vdom"
)

func TestInsertAndMove(t *testing.T) {
	h := New()
	root := h.Container("root")
	a := h.CreateText("a").(*Node)
	b := h.CreateText("b").(*Node)

	h.Insert(a, root, nil)
	h.Insert(b, root, a)
	assert.Equal(t, []string{"b", "a"}, ChildTexts(root))

	h.Insert(b, root, nil)
	assert.Equal(t, []string{"a", "b"}, ChildTexts(root))
	assert.Equal(t, 1, h.Count(OpMove))
	assert.Equal(t, 2, h.Count(OpInsert))
}

func TestInsertForeignAnchorPanics(t *testing.T) {
	h := New()
	root := h.Container("root")
	other := h.Container("other")
	n := h.CreateElement("div")

	assert.Panics(t, func() { h.Insert(n, root, other) })
}

func TestSetTextReplacesChildren(t *testing.T) {
	h := New()
	root := h.Container("root")
	h.Insert(h.CreateText("x"), root, nil)

	h.SetText(root, "hello")
	assert.Empty(t, root.Children)
	assert.Equal(t, "hello", root.TextContent())
}

func TestNextSibling(t *testing.T) {
	h := New()
	root := h.Container("root")
	a := h.CreateElement("a")
	b := h.CreateElement("b")
	h.Insert(a, root, nil)
	h.Insert(b, root, nil)

	next, ok := h.NextSibling(a)
	require.True(t, ok)
	assert.Same(t, b, next)

	_, ok = h.NextSibling(b)
	assert.False(t, ok)
}

func TestDispatch(t *testing.T) {
	h := New()
	n := h.CreateElement("button").(*Node)

	var got vdom.Event
	h.Listen(n, "click", func(e vdom.Event) { got = e })
	at := time.Unix(100, 0)

	require.True(t, h.Dispatch(n, "click", 42, at))
	assert.Equal(t, "click", got.Type)
	assert.Equal(t, 42, got.Payload)
	assert.Equal(t, at, got.TimeStamp)

	h.Unlisten(n, "click")
	assert.False(t, h.Dispatch(n, "click", nil, at))
	assert.Equal(t, 0, h.Listeners(n))
}

func TestDumpAndFingerprint(t *testing.T) {
	build := func() (*Host, *Node) {
		h := New()
		root := h.Container("root")
		li := h.CreateElement("li")
		h.SetProp(li, "class", "item")
		h.SetText(li, "one")
		h.Insert(li, root, nil)
		h.Insert(h.CreateComment("end"), root, nil)
		return h, root
	}

	h1, r1 := build()
	h2, r2 := build()
	want := "<root>\n  <li class=item> \"one\"\n  <!--end-->\n"
	assert.Equal(t, want, h1.Dump(r1))
	assert.Equal(t, h1.Fingerprint(r1), h2.Fingerprint(r2))

	h2.SetProp(r2.Children[0], "class", nil)
	assert.NotEqual(t, h1.Fingerprint(r1), h2.Fingerprint(r2))
}

func TestMutationsIgnoreListeners(t *testing.T) {
	h := New()
	n := h.CreateElement("div")
	h.Listen(n, "click", func(vdom.Event) {})
	h.Reset()

	h.Unlisten(n, "click")
	assert.Equal(t, 0, h.Mutations())
	assert.Equal(t, 1, h.Count())
}
