package core

import "context"

// AudioNode is a source node attached to the shared audio graph.
type AudioNode interface {
	// Disconnect detaches the node; safe to call more than once.
	Disconnect()
}

// AudioGraph is the shared audio context. It is created and destroyed by the
// host; a call only resumes it and attaches nodes.
type AudioGraph interface {
	Resume(ctx context.Context) error
	ConnectLocal(track LocalTrack) (AudioNode, error)
	ConnectRemote(track RemoteTrack) (AudioNode, error)
}

// Player is the playback element for remote audio.
type Player interface {
	Attach(track RemoteTrack) error
	Play() error
	Pause()
	// Clear detaches the current source.
	Clear()
}
