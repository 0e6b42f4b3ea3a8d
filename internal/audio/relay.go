package audio

import (
	"context"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/dkeye/voxcall/internal/core"
	"github.com/pion/rtp"
	"github.com/rs/zerolog"
)

// Relay reads RTP packets from a remote track and forwards them to its taps.
type Relay struct {
	Src core.RemoteTrack

	mu   sync.RWMutex
	taps map[string]*Tap

	packets atomic.Uint64
	cancel  context.CancelFunc
}

func NewRelay(src core.RemoteTrack, cancel context.CancelFunc) *Relay {
	return &Relay{
		Src:    src,
		taps:   make(map[string]*Tap),
		cancel: cancel,
	}
}

func (r *Relay) loop(ctx context.Context, running func() bool, logger *zerolog.Logger) {
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("relay ctx done, marking all taps for delete")
			r.markAllDelete()
			return
		default:
		}
		pkt, _, err := r.Src.ReadRTP()
		if err != nil {
			logger.Info().Err(err).Msg("relay read RTP stopped")
			r.markAllDelete()
			return
		}
		if running() {
			r.forward(pkt, logger)
		}
		r.packets.Add(1)
	}
}

func (r *Relay) forward(pkt *rtp.Packet, logger *zerolog.Logger) {
	snapshot := make(map[string]*Tap, len(r.taps))
	r.mu.RLock()
	maps.Copy(snapshot, r.taps)
	r.mu.RUnlock()

	dirty := make([]string, 0, len(snapshot))
	for id, t := range snapshot {
		switch t.GetState() {
		case TapStateDelete:
			dirty = append(dirty, id)
		case TapStateMuted:
		case TapStateOk:
			if err := t.sink.WriteRTP(pkt); err != nil {
				logger.Error().
					Err(err).
					Str("tap", id).
					Msg("relay write RTP error, marking tap as delete")
				t.MarkDelete()
				dirty = append(dirty, id)
			}
		}
	}

	// Cleanup is done outside the RLock.
	if len(dirty) > 0 {
		r.cleanupDeleted(dirty)
	}
}

func (r *Relay) cleanupDeleted(dirty []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range dirty {
		delete(r.taps, id)
	}
}

func (r *Relay) markAllDelete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.taps {
		t.MarkDelete()
	}
}

func (r *Relay) AddTap(id string, t *Tap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.taps[id]; ok {
		old.MarkDelete()
	}
	r.taps[id] = t
}

// Packets is the number of packets read from the source so far.
func (r *Relay) Packets() uint64 { return r.packets.Load() }

func (r *Relay) stop() {
	r.markAllDelete()
	if r.cancel != nil {
		r.cancel()
	}
}
