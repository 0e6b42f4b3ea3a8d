package http

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/dkeye/voxcall/internal/app"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const writeTimeout = 5 * time.Second

// WSConn is an indirection over *websocket.Conn to ease testing.
type WSConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(mt int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// eventStream forwards one subscription to one websocket client.
type eventStream struct {
	conn   WSConn
	sub    *app.Subscription
	logger zerolog.Logger
	once   sync.Once
}

func (s *eventStream) close() {
	s.once.Do(func() {
		s.sub.Close()
		_ = s.conn.Close()
	})
}

// run writes the initial snapshot and then every event until the
// subscription or the socket ends. It blocks.
func (s *eventStream) run(initial []app.Event) {
	defer s.close()
	go s.readLoop()

	for _, ev := range initial {
		if err := s.write(ev); err != nil {
			return
		}
	}
	for ev := range s.sub.Events() {
		if err := s.write(ev); err != nil {
			s.logger.Debug().Err(err).Msg("event stream write")
			return
		}
	}
	s.logger.Info().Msg("subscription closed")
}

// readLoop only detects the client going away.
func (s *eventStream) readLoop() {
	defer s.close()
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *eventStream) write(ev app.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}
