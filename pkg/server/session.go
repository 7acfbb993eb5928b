package server

import (
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/internal/scenario"
)

// Session is one WebSocket connection. Each text frame is a diff request;
// replies are written in the order the requests arrived.
type Session struct {
	// Identity
	ID        string
	CreatedAt time.Time

	// Connection
	conn   *websocket.Conn
	server *Server
	config *Config

	// Stats
	seq      atomic.Uint64
	requests atomic.Int64

	// Lifecycle
	done      chan struct{}
	closeOnce sync.Once
	writeMu   sync.Mutex

	logger *slog.Logger
}

// Reply is one frame sent to the client. The first frame of a session
// carries only the session ID.
type Reply struct {
	Seq     uint64           `json:"seq"`
	Session string           `json:"session,omitempty"`
	Result  *scenario.Result `json:"result,omitempty"`
	Error   *errors.Error    `json:"error,omitempty"`
}

func newSession(s *Server, conn *websocket.Conn) *Session {
	id := uuid.NewString()
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		conn:      conn,
		server:    s,
		config:    s.config,
		done:      make(chan struct{}),
		logger:    s.logger.With("session_id", id),
	}
}

// HandleWebSocket upgrades the request and serves the session until the
// client disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)

	sess := newSession(s, conn)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.metrics.SessionOpened()
	sess.logger.Info("session opened", "remote", r.RemoteAddr)

	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()
		s.metrics.SessionClosed()
		sess.logger.Info("session closed",
			"requests", sess.Requests(),
			"duration", time.Since(sess.CreatedAt),
		)
	}()

	if err := sess.send(Reply{Session: sess.ID}); err != nil {
		sess.logger.Error("hello failed", "error", err)
		sess.Close()
		return
	}
	sess.ReadLoop()
}

// Requests returns the number of diff requests the session has answered.
func (s *Session) Requests() int64 {
	return s.requests.Load()
}

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// send writes one reply frame.
func (s *Session) send(reply Reply) error {
	if s.conn == nil {
		return ErrNoConnection
	}
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteJSON(reply); err != nil {
		return NewSessionError(s.ID, "write", err)
	}
	return nil
}

// Close sends a close frame and closes the connection. It is safe to call
// more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.conn != nil {
			s.writeMu.Lock()
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			s.writeMu.Unlock()
			_ = s.conn.Close()
		}
		close(s.done)
	})
}
