package reactive

import (
	"io"
	"log/slog"
)

// newTestRuntime returns a runtime with a silent logger and a slice that
// collects every warning it reports.
func newTestRuntime() (*Runtime, *[]error) {
	var warnings []error
	rt := NewRuntime(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithWarnHook(func(err error) { warnings = append(warnings, err) }),
	)
	return rt, &warnings
}
