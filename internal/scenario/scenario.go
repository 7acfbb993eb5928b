// Package scenario replays a keyed-list transition on an in-memory host and
// reports what the reconciler did: the host calls it issued, how many nodes
// moved, which keys stayed put and a fingerprint of the final tree.
//
// The CLI, the playground server and the benchmarks all drive the renderer
// through this package.
package scenario

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/memhost"
	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/vdom"
)

// MaxKeys bounds the length of each key list.
const MaxKeys = 10000

var validate = validator.New()

// Scenario is one list transition.
type Scenario struct {
	Name     string   `json:"name,omitempty" yaml:"name"`
	Strategy string   `json:"strategy,omitempty" yaml:"strategy" validate:"omitempty,oneof=quick index keyed double double-ended"`
	Old      []string `json:"old" yaml:"old" validate:"max=10000,dive,required"`
	New      []string `json:"new" yaml:"new" validate:"max=10000,dive,required"`
}

// Validate checks the strategy name and key lists.
func (s *Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.New("X001").Wrap(err)
	}
	return nil
}

// Result describes one replayed transition.
type Result struct {
	Name        string                 `json:"name,omitempty"`
	Strategy    string                 `json:"strategy"`
	Order       []string               `json:"order"`
	Ops         []memhost.Op           `json:"ops"`
	Counts      map[memhost.OpKind]int `json:"counts"`
	Moves       int                    `json:"moves"`
	Stable      []string               `json:"stable"`
	HostOps     int64                  `json:"hostOps"`
	Fingerprint string                 `json:"fingerprint"`
	Warnings    []string               `json:"warnings,omitempty"`
}

// Option configures Run.
type Option func(*runConfig)

type runConfig struct {
	logger   *slog.Logger
	wrap     func(vdom.Host) vdom.Host
	warn     func(error)
	strict   bool
	renderer []vdom.Option
}

// WithLogger sets the logger handed to the runtime, renderer and host.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHost wraps the in-memory host before the renderer sees it, for
// instance with instrumentation middleware.
func WithHost(wrap func(vdom.Host) vdom.Host) Option {
	return func(c *runConfig) {
		c.wrap = wrap
	}
}

// WithWarnHook is called for every runtime warning, in addition to the
// warning being listed in the Result.
func WithWarnHook(fn func(error)) Option {
	return func(c *runConfig) {
		c.warn = fn
	}
}

// WithStrict makes the first runtime warning abort the run. Run returns
// the warning as its error.
func WithStrict(strict bool) Option {
	return func(c *runConfig) {
		c.strict = strict
	}
}

// WithRendererOptions passes extra options to the renderer.
func WithRendererOptions(opts ...vdom.Option) Option {
	return func(c *runConfig) {
		c.renderer = append(c.renderer, opts...)
	}
}

// ParseKeys splits a comma separated key list. An empty string is an empty
// list; empty keys are rejected.
func ParseKeys(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}, nil
	}
	parts := strings.Split(s, ",")
	keys := make([]string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, errors.New("X001").WithDetail("empty key at position %d in %q", i, s)
		}
		keys[i] = p
	}
	return keys, nil
}

// List builds a <ul> with one keyed <li> per key, labelled by its key.
func List(keys []string) *vdom.VNode {
	return vdom.Ul(vdom.Range(keys, func(k string, _ int) *vdom.VNode {
		return vdom.Li(vdom.Key(k), k)
	}))
}

// Run mounts s.Old, patches it to s.New and reports the patch.
func Run(s Scenario, opts ...Option) (res *Result, err error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	strategy, err := vdom.ParseStrategy(s.Strategy)
	if err != nil {
		return nil, errors.New("X001").Wrap(err)
	}

	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.strict {
		defer func() {
			if p := recover(); p != nil {
				warning, ok := p.(*errors.Error)
				if !ok {
					panic(p)
				}
				res, err = nil, warning
			}
		}()
	}

	var warnings []string
	rt := reactive.NewRuntime(
		reactive.WithLogger(cfg.logger),
		reactive.WithStrict(cfg.strict),
		reactive.WithWarnHook(func(err error) {
			warnings = append(warnings, err.Error())
			if cfg.warn != nil {
				cfg.warn(err)
			}
		}),
	)
	mem := memhost.New(memhost.WithLogger(cfg.logger))
	root := mem.Container("root")

	var host vdom.Host = mem
	if cfg.wrap != nil {
		host = cfg.wrap(mem)
	}
	r := vdom.NewRenderer(rt, host, append([]vdom.Option{
		vdom.WithStrategy(strategy),
		vdom.WithLogger(cfg.logger),
	}, cfg.renderer...)...)

	r.Render(List(s.Old), root)
	mem.Reset()
	before := r.HostOps()
	r.Render(List(s.New), root)

	ops := mem.Ops()
	res = &Result{
		Name:        s.Name,
		Strategy:    r.Strategy().String(),
		Order:       memhost.ChildTexts(root.Children[0]),
		Ops:         ops,
		Counts:      make(map[memhost.OpKind]int),
		Stable:      Stable(s.Old, s.New),
		HostOps:     r.HostOps() - before,
		Fingerprint: fmt.Sprintf("%016x", mem.Fingerprint(root)),
		Warnings:    warnings,
	}
	for _, op := range ops {
		res.Counts[op.Kind]++
	}
	res.Moves = res.Counts[memhost.OpMove]
	return res, nil
}

// RunAll replays s once per strategy.
func RunAll(s Scenario, opts ...Option) ([]*Result, error) {
	var out []*Result
	for _, strategy := range vdom.Strategies() {
		s.Strategy = strategy.String()
		res, err := Run(s, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// Sources maps each new key to the position of the same key in old, or
// vdom.Unmatched. Repeated keys match at most once.
func Sources(old, next []string) []int {
	at := make(map[string][]int, len(old))
	for i, k := range old {
		at[k] = append(at[k], i)
	}
	out := make([]int, len(next))
	for i, k := range next {
		out[i] = vdom.Unmatched
		if pos := at[k]; len(pos) > 0 {
			out[i] = pos[0]
			at[k] = pos[1:]
		}
	}
	return out
}

// Stable returns the new keys that lie on a longest increasing subsequence
// of their old positions: the keys a minimal patch leaves in place.
func Stable(old, next []string) []string {
	seq := vdom.LongestIncreasingSubsequence(Sources(old, next))
	out := make([]string, len(seq))
	for i, idx := range seq {
		out[i] = next[idx]
	}
	return out
}
