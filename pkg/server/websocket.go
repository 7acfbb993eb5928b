package server

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/reactor/internal/errors"
)

// ReadLoop reads diff requests until the connection is closed or an error
// occurs, answering each before reading the next.
func (s *Session) ReadLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		mt, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		reply := s.handleFrame(mt, msg)
		if err := s.send(reply); err != nil {
			s.logger.Error("write error", "error", err)
			return
		}
	}
}

// handleFrame turns one frame into its reply.
func (s *Session) handleFrame(mt int, msg []byte) Reply {
	start := time.Now()
	reply := Reply{Seq: s.seq.Add(1)}

	if mt != websocket.TextMessage {
		err := errors.New("X002").WithDetail("expected a text frame, got type %d", mt)
		s.server.metrics.RecordRequest(transportWS, time.Since(start), err)
		reply.Error = err
		return reply
	}

	sc, err := decodeFrame(msg)
	if err == nil {
		reply.Result, err = s.server.runScenario(sc)
	}
	s.server.metrics.RecordRequest(transportWS, time.Since(start), err)
	s.requests.Add(1)
	if err != nil {
		s.logger.Warn("diff request failed", "seq", reply.Seq, "error", err)
		reply.Error = errors.FromError(err, "X001")
		return reply
	}
	s.logger.Debug("diff request", "seq", reply.Seq, "strategy", reply.Result.Strategy, "moves", reply.Result.Moves)
	return reply
}
