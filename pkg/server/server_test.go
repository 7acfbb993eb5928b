package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vango-dev/reactor/internal/scenario"
	"github.com/vango-dev/reactor/pkg/middleware"
	"github.com/vango-dev/reactor/pkg/vdom"
)

func newTestServer(config *Config) *Server {
	return New(config, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 0.0, body["sessions"])
}

func TestDiff(t *testing.T) {
	s := newTestServer(nil)
	rec := post(t, s, "/api/diff", `{"name":"swap","strategy":"quick","old":["1","2","3","4"],"new":["2","4","3","1"]}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res scenario.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "swap", res.Name)
	assert.Equal(t, "quick", res.Strategy)
	assert.Equal(t, []string{"2", "4", "3", "1"}, res.Order)
	assert.Equal(t, 2, res.Moves)
	assert.Equal(t, []string{"2", "3"}, res.Stable)
	assert.Len(t, res.Fingerprint, 16)
}

func TestDiffDefaultStrategy(t *testing.T) {
	s := newTestServer(&Config{Strategy: vdom.StrategyIndex})
	rec := post(t, s, "/api/diff", `{"old":["a","b"],"new":["b","a"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var res scenario.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "index", res.Strategy)
	assert.Equal(t, 0, res.Moves)
	assert.Equal(t, []string{"b", "a"}, res.Order)
}

func TestDiffRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed json", `{"old":`, "X002"},
		{"unknown field", `{"old":[],"new":[],"extra":1}`, "X002"},
		{"unknown strategy", `{"strategy":"fastest","old":[],"new":[]}`, "X001"},
		{"empty key", `{"old":["a",""],"new":[]}`, "X001"},
	}

	s := newTestServer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, "/api/diff", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestDiffScanLimit(t *testing.T) {
	s := newTestServer(&Config{MaxScanKeys: 3})
	keys := `["a","b","c","d"]`

	tests := []struct {
		name     string
		path     string
		strategy string
		status   int
	}{
		{"keyed over limit", "/api/diff", "keyed", http.StatusBadRequest},
		{"double-ended over limit", "/api/diff", "double", http.StatusBadRequest},
		{"quick is not scanned", "/api/diff", "quick", http.StatusOK},
		{"index is not scanned", "/api/diff", "index", http.StatusOK},
		{"all strategies include keyed", "/api/diff/all", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := fmt.Sprintf(`{"strategy":%q,"old":%s,"new":%s}`, tt.strategy, keys, keys)
			rec := post(t, s, tt.path, body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status == http.StatusBadRequest {
				assert.Contains(t, rec.Body.String(), `"code":"X001"`)
			}
		})
	}

	short := post(t, s, "/api/diff", `{"strategy":"keyed","old":["a","b","c"],"new":["c","b","a"]}`)
	assert.Equal(t, http.StatusOK, short.Code)
	assert.Equal(t, 1000, DefaultConfig().MaxScanKeys)
}

func TestDiffAll(t *testing.T) {
	s := newTestServer(nil)
	rec := post(t, s, "/api/diff/all", `{"old":["a","b","c"],"new":["c","b","a","d"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var results []scenario.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, len(vdom.Strategies()))
	for i, res := range results {
		assert.Equal(t, vdom.Strategies()[i].String(), res.Strategy)
		assert.Equal(t, []string{"c", "b", "a", "d"}, res.Order)
		assert.Equal(t, results[0].Fingerprint, res.Fingerprint)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(nil)
	require.Equal(t, http.StatusOK, post(t, s, "/api/diff", `{"old":["a"],"new":["a","b"]}`).Code)
	require.Equal(t, http.StatusBadRequest, post(t, s, "/api/diff", `{`).Code)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `reactor_diff_requests_total{status="success",transport="http"} 1`)
	assert.Contains(t, body, `reactor_diff_requests_total{status="error",transport="http"} 1`)
	assert.Contains(t, body, `reactor_host_ops_total{op="insert"}`)
	assert.Contains(t, body, `reactor_render_duration_seconds_count{strategy="quick"} 1`)
}

func TestDuplicateKeysAreCounted(t *testing.T) {
	s := newTestServer(nil)
	rec := post(t, s, "/api/diff", `{"old":["a"],"new":["a","a"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res scenario.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Warnings)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `reactor_warnings_total{code="V003"}`)
}

func TestSameOriginCheck(t *testing.T) {
	tests := []struct {
		name   string
		host   string
		origin string
		want   bool
	}{
		{"no origin", "example.com", "", true},
		{"same host", "example.com", "https://example.com", true},
		{"same host and port", "localhost:8080", "http://localhost:8080", true},
		{"other host", "example.com", "https://evil.com", false},
		{"other port", "localhost:8080", "http://localhost:9090", false},
		{"bad origin", "example.com", "://", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			req.Host = tt.host
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, SameOriginCheck(req))
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	c := (&Config{Address: ":9000", Strategy: vdom.StrategyKeyed}).withDefaults()
	assert.Equal(t, ":9000", c.Address)
	assert.Equal(t, vdom.StrategyKeyed, c.Strategy)
	assert.Equal(t, DefaultConfig().ReadTimeout, c.ReadTimeout)
	assert.Equal(t, int64(1<<20), c.MaxMessageSize)
	assert.NotNil(t, c.CheckOrigin)

	var nilConfig *Config
	assert.Equal(t, ":8080", nilConfig.withDefaults().Address)
}

func TestShutdownWithoutRun(t *testing.T) {
	s := newTestServer(nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Shutdown(ctx))
}

func TestSessionIDsAreUUIDs(t *testing.T) {
	s := newTestServer(nil)
	a, b := newSession(s, nil), newSession(s, nil)
	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.ErrorIs(t, a.send(Reply{}), ErrNoConnection)

	a.Close()
	a.Close()
	select {
	case <-a.Done():
	default:
		t.Fatal("expected session to be done after Close")
	}
}

func TestMetricsNamespace(t *testing.T) {
	s := New(nil,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetricsOptions(middleware.WithNamespace("playground")),
	)
	require.Equal(t, http.StatusOK, post(t, s, "/api/diff", `{"old":[],"new":["a"]}`).Code)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `playground_diff_requests_total{status="success",transport="http"} 1`)
	assert.NotContains(t, rec.Body.String(), "reactor_diff_requests_total")
}
