package audio

import (
	"sync"
	"sync/atomic"

	"github.com/dkeye/voxcall/internal/core"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4/pkg/media/oggwriter"
	"github.com/rs/zerolog/log"
)

const (
	playerTapID   = "player"
	opusClockRate = 48000
	opusChannels  = 2
)

// Player implements core.Player. Agent audio is recorded to an Ogg/Opus
// file when a path is configured; otherwise packets are only counted.
type Player struct {
	graph *Graph
	path  string

	mu      sync.Mutex
	tap     *Tap
	writer  *oggwriter.OggWriter
	playing bool

	written atomic.Uint64
}

func NewPlayer(graph *Graph, path string) *Player {
	return &Player{graph: graph, path: path}
}

func (p *Player) Attach(track core.RemoteTrack) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writer == nil && p.path != "" {
		w, err := oggwriter.New(p.path, opusClockRate, opusChannels)
		if err != nil {
			return err
		}
		p.writer = w
	}
	tap, err := p.graph.Tap(track, playerTapID, sinkFunc(p.write))
	if err != nil {
		return err
	}
	if !p.playing {
		tap.MarkMuted()
	}
	if p.tap != nil {
		p.tap.MarkDelete()
	}
	p.tap = tap
	log.Info().Str("module", "player").Str("track", track.ID()).Msg("remote audio attached")
	return nil
}

func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
	if p.tap != nil {
		p.tap.MarkOk()
	}
	return nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	if p.tap != nil {
		p.tap.MarkMuted()
	}
}

// Clear detaches the playback source and finalizes the recording.
func (p *Player) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tap != nil {
		p.tap.MarkDelete()
		p.tap = nil
	}
	if p.writer != nil {
		if err := p.writer.Close(); err != nil {
			log.Error().Err(err).Str("module", "player").Msg("close recording")
		}
		p.writer = nil
	}
}

// Written is the number of packets delivered to playback.
func (p *Player) Written() uint64 { return p.written.Load() }

func (p *Player) write(pkt *rtp.Packet) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return nil
	}
	if p.writer != nil {
		if err := p.writer.WriteRTP(pkt); err != nil {
			return err
		}
	}
	p.written.Add(1)
	return nil
}

type sinkFunc func(pkt *rtp.Packet) error

func (f sinkFunc) WriteRTP(pkt *rtp.Packet) error { return f(pkt) }
