// Package server provides the diff playground: an HTTP and WebSocket front
// end that replays keyed-list transitions through the reconciler and
// reports what it did.
//
// # Routes
//
//   - GET  /healthz        liveness and open session count
//   - GET  /metrics        Prometheus metrics from the server's registry
//   - POST /api/diff       one transition, one strategy
//   - POST /api/diff/all   one transition, every strategy
//   - GET  /ws             WebSocket diff session
//
// Requests are JSON scenarios:
//
//	{"strategy": "quick", "old": ["1","2","3","4"], "new": ["2","4","3","1"]}
//
// A missing strategy uses Config.Strategy. Results list the recorded host
// operations, the number of moves, the keys left in place and a fingerprint
// of the final tree. Failures are answered with a coded error:
//
//	{"error": {"code": "X001", "message": "Invalid key list", ...}}
//
// # Sessions
//
// Each WebSocket connection is a Session with a random UUID. The first frame
// sent is {"seq":0,"session":"<id>"}. Every text frame received after that
// is a scenario; replies carry increasing sequence numbers and are written
// in the order the requests arrived.
//
// # Instrumentation
//
// Every request is logged with log/slog and traced through
// middleware.HTTP. Renders go through middleware.Metrics, so host
// operations, warnings, request counts and open sessions all show up on
// /metrics.
//
// # Usage
//
//	srv := server.New(&server.Config{Address: ":8080"},
//	    server.WithLogger(logger),
//	)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
