package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/internal/scenario"
	"github.com/vango-dev/reactor/pkg/vdom"
)

// Transport labels for request metrics.
const (
	transportHTTP = "http"
	transportWS   = "ws"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error *errors.Error `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.SessionCount(),
	})
}

// handleDiff replays one transition with the requested strategy.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sc, err := s.decodeScenario(w, r)
	if err == nil {
		var res *scenario.Result
		res, err = s.runScenario(sc)
		if err == nil {
			s.metrics.RecordRequest(transportHTTP, time.Since(start), nil)
			writeJSON(w, http.StatusOK, res)
			return
		}
	}
	s.metrics.RecordRequest(transportHTTP, time.Since(start), err)
	writeError(w, http.StatusBadRequest, err)
}

// handleDiffAll replays one transition once per strategy.
func (s *Server) handleDiffAll(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sc, err := s.decodeScenario(w, r)
	if err == nil {
		var out []*scenario.Result
		for _, strategy := range vdom.Strategies() {
			sc.Strategy = strategy.String()
			var res *scenario.Result
			if res, err = s.runScenario(sc); err != nil {
				break
			}
			out = append(out, res)
		}
		if err == nil {
			s.metrics.RecordRequest(transportHTTP, time.Since(start), nil)
			writeJSON(w, http.StatusOK, out)
			return
		}
	}
	s.metrics.RecordRequest(transportHTTP, time.Since(start), err)
	writeError(w, http.StatusBadRequest, err)
}

func (s *Server) decodeScenario(w http.ResponseWriter, r *http.Request) (scenario.Scenario, error) {
	var sc scenario.Scenario
	body := http.MaxBytesReader(w, r.Body, s.config.MaxMessageSize)
	if err := decodeJSON(body, &sc); err != nil {
		return sc, err
	}
	return sc, nil
}

func decodeFrame(msg []byte) (scenario.Scenario, error) {
	var sc scenario.Scenario
	err := decodeJSON(bytes.NewReader(msg), &sc)
	return sc, err
}

func decodeJSON(r io.Reader, sc *scenario.Scenario) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(sc); err != nil {
		return errors.New("X002").Wrap(err)
	}
	return nil
}

// runScenario replays sc through the instrumented host. Requests that do
// not name a strategy use the configured default.
func (s *Server) runScenario(sc scenario.Scenario) (*scenario.Result, error) {
	if sc.Strategy == "" {
		sc.Strategy = s.config.Strategy.String()
	}
	if err := s.checkScanSize(sc); err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := scenario.Run(sc,
		scenario.WithLogger(s.logger),
		scenario.WithHost(s.metrics.Host),
		scenario.WithWarnHook(s.metrics.RecordWarning),
	)
	if err != nil {
		return nil, err
	}
	if strategy, perr := vdom.ParseStrategy(res.Strategy); perr == nil {
		s.metrics.ObserveRender(strategy, time.Since(start))
	}
	return res, nil
}

// checkScanSize rejects lists too long for the scanning strategies.
func (s *Server) checkScanSize(sc scenario.Scenario) error {
	strategy, err := vdom.ParseStrategy(sc.Strategy)
	if err != nil {
		// Run reports unknown strategies.
		return nil
	}
	if strategy != vdom.StrategyKeyed && strategy != vdom.StrategyDoubleEnded {
		return nil
	}
	if n := max(len(sc.Old), len(sc.New)); n > s.config.MaxScanKeys {
		return errors.New("X001").WithDetail("%d keys exceed the %s limit of %d", n, strategy, s.config.MaxScanKeys)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: errors.FromError(err, "X001")})
}
