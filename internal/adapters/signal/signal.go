// Package signal implements the call signaling channel over a websocket.
package signal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dkeye/voxcall/internal/core"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

type Config struct {
	HandshakeTimeout time.Duration
	ReadLimit        int64
	PingPeriod       time.Duration
	WriteTimeout     time.Duration
	SendBuffer       int
}

func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		ReadLimit:        1 << 20,
		PingPeriod:       20 * time.Second,
		WriteTimeout:     5 * time.Second,
		SendBuffer:       32,
	}
}

// Dialer opens signaling connections. It implements core.SignalDialer.
type Dialer struct {
	cfg Config
	ws  websocket.Dialer
}

func NewDialer(cfg Config) *Dialer {
	def := DefaultConfig()
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = def.HandshakeTimeout
	}
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = def.ReadLimit
	}
	if cfg.PingPeriod <= 0 {
		cfg.PingPeriod = def.PingPeriod
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = def.SendBuffer
	}
	return &Dialer{
		cfg: cfg,
		ws: websocket.Dialer{
			Proxy:            websocket.DefaultDialer.Proxy,
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
	}
}

func (d *Dialer) Dial(ctx context.Context, url string) (core.SignalConnection, error) {
	ws, resp, err := d.ws.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial signaling: %w (status %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial signaling: %w", err)
	}
	ws.SetReadLimit(d.cfg.ReadLimit)

	c := &WsSignalConn{
		conn:     ws,
		cfg:      d.cfg,
		send:     make(chan core.Frame, d.cfg.SendBuffer),
		messages: make(chan core.Frame, d.cfg.SendBuffer),
		done:     make(chan struct{}),
	}
	log.Info().Str("module", "signal").Str("remote", ws.RemoteAddr().String()).Msg("signaling connected")

	go c.writePump()
	go c.readPump()
	return c, nil
}

// WsSignalConn is one signaling websocket. Messages is closed once the
// socket stops reading, whichever side closed it.
type WsSignalConn struct {
	conn     *websocket.Conn
	cfg      Config
	send     chan core.Frame
	messages chan core.Frame
	done     chan struct{}

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) Messages() <-chan core.Frame { return c.messages }

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	deadline := time.Now().Add(time.Second)
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	_ = c.conn.Close()
}
