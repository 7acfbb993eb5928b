// Package middleware provides instrumentation for renderers and the diff
// server.
//
// This package includes:
//   - OpenTelemetry render spans and HTTP request spans
//   - Prometheus counters for host operations, warnings and requests
//
// # OpenTelemetry
//
// OpenTelemetry returns a renderer option. Every Render call becomes a
// "vdom.Render" span carrying the list strategy, the root kind and the number
// of host operations the call issued.
//
//	r := vdom.NewRenderer(rt, host,
//	    middleware.OpenTelemetry(
//	        middleware.WithTracerName("my-app"),
//	        middleware.WithRenderFilter(func(root *vdom.VNode) bool {
//	            return root != nil
//	        }),
//	    ),
//	)
//
// HTTP wraps handlers with a server span per request:
//
//	router.Use(middleware.HTTP())
//
// # Prometheus Metrics
//
// NewMetrics registers the collectors; Host wraps a host so every call it
// serves is counted:
//   - reactor_host_ops_total: Host calls by op
//   - reactor_render_duration_seconds: Render duration by strategy
//   - reactor_warnings_total: Runtime warnings by code
//   - reactor_diff_requests_total: Diff requests by transport and status
//   - reactor_active_sessions: Open WebSocket sessions
//
//	m := middleware.NewMetrics()
//	r := vdom.NewRenderer(rt, m.Host(host))
//
// Then expose the metrics:
//
//	http.Handle("/metrics", promhttp.Handler())
package middleware
