package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	reactorerrors "github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/internal/scenario"
	"github.com/vango-dev/reactor/pkg/memhost"
	"github.com/vango-dev/reactor/pkg/vdom"
)

func TestMetricsHostCountsOps(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	mem := memhost.New()
	root := mem.Container("root")
	r := vdom.NewRenderer(newTestRuntime(), m.Host(mem), vdom.WithStrategy(vdom.StrategyKeyed))
	require.Equal(t, vdom.StrategyKeyed, r.Strategy())

	r.Render(scenario.List([]string{"a", "b", "c"}), root)

	counter := func(op string) float64 {
		return metricCounterValue(t, m.hostOps.WithLabelValues(op))
	}
	assert.Equal(t, float64(mem.Count(memhost.OpCreate)), counter(OpCreate))
	assert.Equal(t, float64(mem.Count(memhost.OpSetText)), counter(OpSetText))
	assert.Equal(t, float64(mem.Count(memhost.OpInsert)), counter(OpInsert))
	lookups := counter(OpNextSibling)

	r.Render(scenario.List([]string{"c", "a", "b"}), root)
	assert.Equal(t, []string{"c", "a", "b"}, memhost.ChildTexts(root.Children[0]))
	assert.Greater(t, counter(OpNextSibling), lookups)
}

func TestMetricsHostKeepsSiblingFallback(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	mem := memhost.New()
	root := mem.Container("root")

	wrapped := m.Host(&bareHost{h: mem})
	_, ok := wrapped.(vdom.SiblingHost)
	assert.False(t, ok)
	_, ok = wrapped.(vdom.TextHost)
	assert.True(t, ok)

	r := vdom.NewRenderer(newTestRuntime(), wrapped, vdom.WithStrategy(vdom.StrategyDoubleEnded))
	assert.Equal(t, vdom.StrategyQuick, r.Strategy())

	r.Render(vdom.Div(vdom.ID("x"), vdom.Fragment(vdom.Text("t"))), root)
	div := root.Children[0]
	assert.Empty(t, div.Props)
	assert.Equal(t, "t", div.Children[0].Text)
	assert.Equal(t, 1.0, metricCounterValue(t, m.hostOps.WithLabelValues(OpSetProp)))
	assert.Equal(t, 2.0, metricCounterValue(t, m.hostOps.WithLabelValues(OpCreateText)))
}

func TestRecordWarning(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	m.RecordWarning(vdom.ErrDuplicateKey.WithDetail("key %q", "a"))
	m.RecordWarning(vdom.ErrDuplicateKey)
	m.RecordWarning(errors.New("plain"))

	assert.Equal(t, 2.0, metricCounterValue(t, m.warnings.WithLabelValues("V003")))
	assert.Equal(t, 1.0, metricCounterValue(t, m.warnings.WithLabelValues("internal")))
}

func TestRecordRequest(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))
	m.RecordRequest("http", time.Millisecond, nil)
	m.RecordRequest("http", time.Millisecond, reactorerrors.New("X001"))
	m.RecordRequest("ws", time.Millisecond, nil)

	assert.Equal(t, 1.0, metricCounterValue(t, m.requestsTotal.WithLabelValues("http", "success")))
	assert.Equal(t, 1.0, metricCounterValue(t, m.requestsTotal.WithLabelValues("http", "error")))
	assert.Equal(t, uint64(2), metricHistogramCount(t, m.requestDuration.WithLabelValues("http")))
}

func TestSessionsGauge(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	assert.Equal(t, 1.0, metricGaugeValue(t, m.activeSessions))
}

func TestObserveRender(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	m.ObserveRender(vdom.StrategyQuick, time.Millisecond)
	assert.Equal(t, uint64(1), metricHistogramCount(t, m.renderDuration.WithLabelValues("quick")))
}

func TestMetricsConfigDefaults(t *testing.T) {
	config := defaultMetricsConfig()
	assert.Equal(t, "reactor", config.Namespace)
	assert.Equal(t, prometheus.DefBuckets, config.Buckets)

	WithSubsystem("render")(&config)
	WithConstLabels(prometheus.Labels{"env": "test"})(&config)
	WithBuckets([]float64{1})(&config)
	assert.Equal(t, "render", config.Subsystem)
	assert.Equal(t, "test", config.ConstLabels["env"])
	assert.Equal(t, []float64{1}, config.Buckets)
}
