package vdom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vango-dev/reactor/pkg/vdom"
	"github.com/vango-dev/reactor/pkg/vtest"
)

func TestKeepAlivePreservesInstance(t *testing.T) {
	h := vtest.New(t)
	cache := vdom.NewKeepAliveCache(0)
	def := counter()
	var hooks []string
	def.Activated = func(*vdom.RenderContext) { hooks = append(hooks, "activated") }
	def.Deactivated = func(*vdom.RenderContext) { hooks = append(hooks, "deactivated") }
	def.Unmounted = func(*vdom.RenderContext) { hooks = append(hooks, "unmounted") }

	shown := func() *vdom.VNode {
		return vdom.Div(vdom.KeepAlive(cache, vdom.Component(def, nil, nil)))
	}

	h.Render(shown())
	inst := h.Renderer.Root(h.Root).Children[0].Instance()
	h.Click("button", "0")
	button := h.Find("button", "1")
	require.NotNil(t, button)

	h.Render(vdom.Div(vdom.Span("elsewhere")))
	assert.Equal(t, []string{"elsewhere"}, h.ChildTexts())
	assert.Equal(t, 1, cache.Len())
	assert.True(t, cache.Has("Counter"))
	assert.False(t, inst.Active())
	assert.NotNil(t, cache.Storage())

	h.Render(shown())
	assert.Same(t, inst, h.Renderer.Root(h.Root).Children[0].Instance())
	assert.Same(t, button, h.Find("button", "1"))
	assert.True(t, inst.Active())
	assert.Equal(t, 0, cache.Len())

	h.Click("button", "1")
	assert.Equal(t, []string{"2"}, h.ChildTexts())
	assert.Equal(t, []string{"deactivated", "activated"}, hooks)
}

func TestKeepAliveEvictsLeastRecent(t *testing.T) {
	h := vtest.New(t)
	cache := vdom.NewKeepAliveCache(1)
	var unmounted []string
	named := func(name string) *vdom.ComponentDef {
		return &vdom.ComponentDef{
			Name:      name,
			Render:    func(*vdom.RenderContext) *vdom.VNode { return vdom.P(name) },
			Unmounted: func(*vdom.RenderContext) { unmounted = append(unmounted, name) },
		}
	}
	a, b := named("A"), named("B")
	show := func(def *vdom.ComponentDef) *vdom.VNode {
		return vdom.Div(vdom.KeepAlive(cache, vdom.Component(def, nil, nil)))
	}

	h.Render(show(a))
	h.Render(show(b))
	assert.True(t, cache.Has("A"))

	h.Render(vdom.Div(vdom.Span("none")))
	assert.True(t, cache.Has("B"))
	assert.False(t, cache.Has("A"))
	assert.Equal(t, []string{"A"}, unmounted)

	cache.Drop("B")
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, []string{"A", "B"}, unmounted)
}
