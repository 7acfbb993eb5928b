package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"strconv"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/vango-dev/reactor/internal/scenario"
	"github.com/vango-dev/reactor/pkg/memhost"
	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/vdom"
)

// Suites.
const (
	SuitePropagate = "propagate"
	SuiteReconcile = "reconcile"
)

// Row is one timed case.
type Row struct {
	Suite      string        `json:"suite"`
	Name       string        `json:"name"`
	Strategy   string        `json:"strategy,omitempty"`
	Iterations int           `json:"iterations"`
	Avg        time.Duration `json:"avg"`
	Min        time.Duration `json:"min"`
	P75        time.Duration `json:"p75"`
	P99        time.Duration `json:"p99"`
	Max        time.Duration `json:"max"`

	// EffectRuns counts effect executions during the timed samples.
	EffectRuns int64 `json:"effectRuns,omitempty"`

	// HostOps and Moves count host calls and node moves during the timed
	// samples.
	HostOps int64 `json:"hostOps,omitempty"`
	Moves   int64 `json:"moves,omitempty"`
}

// Report is the outcome of one run.
type Report struct {
	Profile   string        `json:"profile"`
	Seed      uint64        `json:"seed"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	GoVersion string        `json:"goVersion"`
	Rows      []Row         `json:"rows"`
}

// Option configures a Runner.
type Option func(*Runner)

// WithIterations overrides the profile's sample count when n is positive.
func WithIterations(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.profile.Iterations = n
		}
	}
}

// WithSeed fixes the shuffle seed.
func WithSeed(seed uint64) Option {
	return func(r *Runner) {
		r.seed = seed
	}
}

// WithLogger sets the logger for progress output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithStrategies limits the reconcile suite to the given strategies.
func WithStrategies(s ...vdom.Strategy) Option {
	return func(r *Runner) {
		r.strategies = s
	}
}

// WithClock replaces time.Now for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// Runner executes a profile.
type Runner struct {
	profile    Profile
	seed       uint64
	strategies []vdom.Strategy
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a Runner for p.
func New(p Profile, opts ...Option) *Runner {
	r := &Runner{
		profile:    p,
		seed:       1,
		strategies: vdom.Strategies(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every case of the profile. It stops between cases when ctx
// is done.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := r.now()
	rep := &Report{
		Profile:   r.profile.Name,
		Seed:      r.seed,
		StartedAt: start,
		GoVersion: runtime.Version(),
	}

	for _, w := range r.profile.Widths {
		for _, d := range r.profile.Depths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			row := r.Propagate(w, d)
			r.logger.Debug("bench case", "name", row.Name, "avg", row.Avg)
			rep.Rows = append(rep.Rows, row)
		}
	}

	for _, size := range r.profile.ListSizes {
		for _, s := range r.strategies {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			row := r.Reconcile(s, size)
			r.logger.Debug("bench case", "name", row.Name, "avg", row.Avg, "moves", row.Moves)
			rep.Rows = append(rep.Rows, row)
		}
	}

	rep.Duration = r.now().Sub(start)
	r.logger.Info("bench complete", "profile", rep.Profile, "cases", len(rep.Rows), "duration", rep.Duration)
	return rep, nil
}

func (r *Runner) newRuntime() *reactive.Runtime {
	return reactive.NewRuntime(reactive.WithLogger(r.logger))
}

// Propagate times writes to one source read by width effects, each at the
// end of a chain of depth computeds.
func (r *Runner) Propagate(width, depth int) Row {
	rt := r.newRuntime()
	src := rt.Reactive(map[string]any{"v": 0})

	effects := make([]*reactive.Effect, 0, width)
	for i := 0; i < width; i++ {
		last := reactive.NewComputed(rt, func() int { return src.Get("v").(int) + 1 })
		for j := 1; j < depth; j++ {
			prev := last
			last = reactive.NewComputed(rt, func() int { return prev.Value() + 1 })
		}
		tail := last
		effects = append(effects, rt.Effect(func() { _ = tail.Value() }))
	}

	runsBefore := totalRuns(effects)
	iters := r.profile.Iterations
	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	for i := 1; i <= iters; i++ {
		start := time.Now()
		_ = src.Set("v", i)
		tach.AddTime(time.Since(start))
	}

	row := fromCalc(tach.Calc(), iters)
	row.Suite = SuitePropagate
	row.Name = fmt.Sprintf("propagate: %d * %d", width, depth)
	row.EffectRuns = totalRuns(effects) - runsBefore
	return row
}

func totalRuns(effects []*reactive.Effect) int64 {
	var n int64
	for _, e := range effects {
		n += e.Runs()
	}
	return n
}

// Reconcile times patches of a keyed list of size items to a fresh
// shuffle of the same keys.
func (r *Runner) Reconcile(strategy vdom.Strategy, size int) Row {
	rng := rand.New(rand.NewPCG(r.seed, uint64(size)))
	keys := make([]string, size)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	mem := memhost.New()
	root := mem.Container("root")
	rd := vdom.NewRenderer(r.newRuntime(), mem, vdom.WithStrategy(strategy), vdom.WithLogger(r.logger))
	rd.Render(scenario.List(keys), root)

	iters := r.profile.Iterations
	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	var hostOps, moves int64
	for i := 0; i < iters; i++ {
		next := append([]string(nil), keys...)
		rng.Shuffle(len(next), func(a, b int) { next[a], next[b] = next[b], next[a] })
		vnode := scenario.List(next)

		mem.Reset()
		before := rd.HostOps()
		start := time.Now()
		rd.Render(vnode, root)
		tach.AddTime(time.Since(start))

		hostOps += rd.HostOps() - before
		moves += int64(mem.Count(memhost.OpMove))
		keys = next
	}

	row := fromCalc(tach.Calc(), iters)
	row.Suite = SuiteReconcile
	row.Strategy = rd.Strategy().String()
	row.Name = fmt.Sprintf("reconcile: %s %d", row.Strategy, size)
	row.HostOps = hostOps
	row.Moves = moves
	return row
}

func fromCalc(calc *tachymeter.Metrics, iters int) Row {
	return Row{
		Iterations: iters,
		Avg:        calc.Time.Avg,
		Min:        calc.Time.Min,
		P75:        calc.Time.P75,
		P99:        calc.Time.P99,
		Max:        calc.Time.Max,
	}
}
