package vdom_test

import (
	"io"
	"log/slog"

	"github.com/vango-dev/reactor/pkg/memhost"
	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/vdom"
)

func newRuntime() (*reactive.Runtime, *[]error) {
	var warnings []error
	rt := reactive.NewRuntime(
		reactive.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		reactive.WithWarnHook(func(err error) { warnings = append(warnings, err) }),
	)
	return rt, &warnings
}

// bareHost exposes only the required host operations of a memhost.
type bareHost struct {
	h *memhost.Host
}

func newBareHost() *bareHost { return &bareHost{h: memhost.New()} }

func (b *bareHost) Container(tag string) *memhost.Node { return b.h.Container(tag) }

func (b *bareHost) CreateElement(tag string) vdom.Node { return b.h.CreateElement(tag) }

func (b *bareHost) SetText(n vdom.Node, text string) { b.h.SetText(n, text) }

func (b *bareHost) Insert(n, parent, anchor vdom.Node) { b.h.Insert(n, parent, anchor) }

func (b *bareHost) Remove(n vdom.Node) { b.h.Remove(n) }
