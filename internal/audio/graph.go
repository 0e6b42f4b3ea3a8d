// Package audio holds the local audio plumbing of a call: the graph that
// fans remote RTP out to consumers, the playback sink and the microphone.
package audio

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dkeye/voxcall/internal/core"
	"github.com/rs/zerolog/log"
)

var ErrGraphClosed = errors.New("audio graph closed")

// Graph implements core.AudioGraph. Remote tracks get one relay each;
// packets are only forwarded while the graph is running.
type Graph struct {
	ctx    context.Context
	cancel context.CancelFunc

	running atomic.Bool

	mu     sync.RWMutex
	relays map[string]*Relay
	locals map[string]core.LocalTrack
}

func NewGraph() *Graph {
	ctx, cancel := context.WithCancel(context.Background())
	return &Graph{
		ctx:    ctx,
		cancel: cancel,
		relays: make(map[string]*Relay),
		locals: make(map[string]core.LocalTrack),
	}
}

func (g *Graph) Resume(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.ctx.Err() != nil {
		return ErrGraphClosed
	}
	if !g.running.Swap(true) {
		log.Debug().Str("module", "audio").Msg("graph resumed")
	}
	return nil
}

func (g *Graph) Suspend() { g.running.Store(false) }

func (g *Graph) ConnectLocal(track core.LocalTrack) (core.AudioNode, error) {
	if g.ctx.Err() != nil {
		return nil, ErrGraphClosed
	}
	id := track.ID()
	g.mu.Lock()
	g.locals[id] = track
	g.mu.Unlock()

	return newNode(func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.locals[id] == track {
			delete(g.locals, id)
		}
	}), nil
}

func (g *Graph) ConnectRemote(track core.RemoteTrack) (core.AudioNode, error) {
	if g.ctx.Err() != nil {
		return nil, ErrGraphClosed
	}
	relay := g.relayFor(track)
	return newNode(func() { g.stopRelay(track.ID(), relay) }), nil
}

// Tap attaches sink to the relay of track, starting the relay if needed.
func (g *Graph) Tap(track core.RemoteTrack, id string, sink Sink) (*Tap, error) {
	if g.ctx.Err() != nil {
		return nil, ErrGraphClosed
	}
	t := NewTap(sink)
	g.relayFor(track).AddTap(id, t)
	return t, nil
}

func (g *Graph) relayFor(track core.RemoteTrack) *Relay {
	id := track.ID()
	g.mu.Lock()
	defer g.mu.Unlock()
	if r, ok := g.relays[id]; ok && r.Src == track {
		return r
	}

	logger := log.With().
		Str("module", "relay").
		Str("track", id).
		Logger()

	ctx, cancel := context.WithCancel(g.ctx)
	relay := NewRelay(track, cancel)
	if old, ok := g.relays[id]; ok {
		logger.Info().Msg("replacing existing relay for track")
		old.stop()
	}
	g.relays[id] = relay

	logger.Info().Msg("starting relay loop")
	go relay.loop(ctx, g.running.Load, &logger)
	return relay
}

func (g *Graph) stopRelay(id string, relay *Relay) {
	g.mu.Lock()
	cur, ok := g.relays[id]
	if ok && cur == relay {
		delete(g.relays, id)
	}
	g.mu.Unlock()
	relay.stop()
}

// Snapshot describes the graph for status reporting.
type Snapshot struct {
	Running bool              `json:"running"`
	Local   []string          `json:"local"`
	Remote  map[string]uint64 `json:"remote"`
}

func (g *Graph) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s := Snapshot{
		Running: g.running.Load(),
		Local:   make([]string, 0, len(g.locals)),
		Remote:  make(map[string]uint64, len(g.relays)),
	}
	for id := range g.locals {
		s.Local = append(s.Local, id)
	}
	slices.Sort(s.Local)
	for id, r := range g.relays {
		s.Remote[id] = r.Packets()
	}
	return s
}

// Close stops every relay. The graph cannot be resumed afterwards.
func (g *Graph) Close() {
	g.cancel()
	g.running.Store(false)
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, r := range g.relays {
		r.stop()
		delete(g.relays, id)
	}
	clear(g.locals)
}

type node struct {
	once sync.Once
	fn   func()
}

func newNode(fn func()) *node { return &node{fn: fn} }

func (n *node) Disconnect() { n.once.Do(n.fn) }
