package audio

import (
	"sync/atomic"

	"github.com/pion/rtp"
)

type TapState int32

const (
	TapStateOk TapState = iota
	TapStateMuted
	TapStateDelete
)

// Sink consumes forwarded RTP packets. *webrtc.TrackLocalStaticRTP and
// *oggwriter.OggWriter both satisfy it.
type Sink interface {
	WriteRTP(pkt *rtp.Packet) error
}

// Tap is a single consumer attached to a relay.
type Tap struct {
	sink  Sink
	state atomic.Int32 // Zero by default (TapStateOk)
}

func NewTap(sink Sink) *Tap {
	return &Tap{sink: sink}
}

func (t *Tap) GetState() TapState {
	return TapState(t.state.Load())
}

func (t *Tap) MarkOk() {
	t.state.Store(int32(TapStateOk))
}

func (t *Tap) MarkMuted() {
	t.state.Store(int32(TapStateMuted))
}

func (t *Tap) MarkDelete() {
	t.state.Store(int32(TapStateDelete))
}
