package app

import (
	"encoding/json"
	"sync"

	"github.com/dkeye/voxcall/internal/domain"
	"github.com/google/uuid"
)

type EventKind string

const (
	EventStatus       EventKind = "status"
	EventTranscripts  EventKind = "transcripts"
	EventExperimental EventKind = "experimental_message"
)

// Event is a host-visible notification. Status and Transcripts are set for
// status and transcripts events, Raw for experimental messages.
type Event struct {
	Kind        EventKind           `json:"kind"`
	Status      domain.Status       `json:"status,omitempty"`
	Transcripts []domain.Transcript `json:"transcripts,omitempty"`
	Raw         json.RawMessage     `json:"raw,omitempty"`
}

const subscriptionBuffer = 256

// Subscription receives every event emitted after it was created, in order.
type Subscription struct {
	id     string
	ch     chan Event
	state  *SessionState
	once   sync.Once
	closed bool // guarded by state.mu
}

func (s *Subscription) ID() string { return s.id }

// Events is closed when the subscription is closed, either by Close or by
// the backpressure policy.
func (s *Subscription) Events() <-chan Event { return s.ch }

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.state.mu.Lock()
		defer s.state.mu.Unlock()
		s.state.dropLocked(s)
	})
}

func newSubscription(state *SessionState) *Subscription {
	return &Subscription{
		id:    uuid.NewString(),
		ch:    make(chan Event, subscriptionBuffer),
		state: state,
	}
}
