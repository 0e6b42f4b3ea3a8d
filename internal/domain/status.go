// Package domain contains call entities without transport logic.
package domain

import "errors"

var ErrUnknownStatus = errors.New("unknown status")

// Status is the observable state of a call.
type Status string

const (
	StatusDisconnected  Status = "disconnected"
	StatusDisconnecting Status = "disconnecting"
	StatusConnecting    Status = "connecting"
	StatusIdle          Status = "idle"
	StatusListening     Status = "listening"
	StatusThinking      Status = "thinking"
	StatusSpeaking      Status = "speaking"
)

func (s Status) String() string { return string(s) }

// Active reports whether the call is joined and audio resources are live.
func (s Status) Active() bool {
	switch s {
	case StatusIdle, StatusListening, StatusThinking, StatusSpeaking:
		return true
	}
	return false
}

// Conversing reports whether the agent is reachable for text input.
func (s Status) Conversing() bool {
	switch s {
	case StatusListening, StatusThinking, StatusSpeaking:
		return true
	}
	return false
}

// Leaving reports whether a teardown is in progress or finished.
func (s Status) Leaving() bool {
	return s == StatusDisconnecting || s == StatusDisconnected
}

// ParseAgentStatus maps a wire state to one of the statuses the agent may announce.
func ParseAgentStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Active() {
		return "", ErrUnknownStatus
	}
	return s, nil
}
