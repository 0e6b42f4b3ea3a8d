package core

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . AudioGraph,AudioNode,LocalTrack,MediaRoom,Microphone,Player,RoomConnector,SignalConnection,SignalDialer

import "context"

// Frame is a raw text payload received from or sent to a transport.
type Frame []byte

// SignalConnection abstracts the persistent control connection of a call.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// Messages yields inbound frames and is closed when the connection ends,
	// whatever the cause.
	Messages() <-chan Frame
	TrySend(Frame) error
	// Close is safe to call more than once.
	Close()
}

type SignalDialer interface {
	Dial(ctx context.Context, url string) (SignalConnection, error)
}
