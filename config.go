package reactor

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/reactor/pkg/vdom"
)

// Config is the user-facing configuration of an App.
type Config struct {
	// Strategy selects the keyed children diff. Default: vdom.StrategyQuick.
	Strategy vdom.Strategy

	// Strict turns reactive and render warnings into panics.
	Strict bool

	// Batched routes component re-renders through a job queue. Writes made
	// inside App.Batch coalesce into one render per component; writes made
	// outside it stay pending until App.Flush.
	Batched bool

	// Logger receives warnings and debug records.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Tracer, when set, wraps Render calls in spans.
	Tracer trace.Tracer

	// OnWarning is called for every non-fatal warning.
	OnWarning func(error)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Strategy: vdom.StrategyQuick,
		Logger:   slog.Default(),
	}
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
