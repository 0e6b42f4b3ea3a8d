package core

import (
	"context"

	"github.com/dkeye/voxcall/internal/domain"
	"github.com/pion/interceptor"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
)

// LocalTrack is a captured audio track ready to be published.
type LocalTrack interface {
	ID() string
	Track() webrtc.TrackLocal
	// Stop releases the capture device; safe to call more than once.
	Stop()
}

// RemoteTrack is the subset of *webrtc.TrackRemote the client reads from.
type RemoteTrack interface {
	ID() string
	ReadRTP() (*rtp.Packet, interceptor.Attributes, error)
}

// RoomCallbacks are registered before the room connects.
type RoomCallbacks struct {
	OnTrack func(track RemoteTrack)
	OnData  func(data Frame)
}

// MediaRoom is a connected media transport session.
type MediaRoom interface {
	// Publish sends the local track to the room.
	Publish(ctx context.Context, track LocalTrack) error
	// SendData delivers a message over the reliable data channel.
	SendData(ctx context.Context, data Frame) error
	// Disconnect is safe to call more than once.
	Disconnect() error
}

// RoomConnector opens media rooms. ctx bounds the connect phase only; a
// returned room lives until Disconnect.
type RoomConnector interface {
	Connect(ctx context.Context, info domain.RoomInfo, cb RoomCallbacks) (MediaRoom, error)
}

// Microphone acquires the local capture device. ctx bounds acquisition only.
type Microphone interface {
	Open(ctx context.Context) (LocalTrack, error)
}
