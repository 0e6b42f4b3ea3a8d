package app

import (
	"slices"
	"sync"

	"github.com/dkeye/voxcall/internal/domain"
	"github.com/rs/zerolog/log"
)

// SessionState holds the current status and the transcript history of a call.
// Mutation and notification happen under one lock, so subscribers observe
// events in the order the state changed.
type SessionState struct {
	mu          sync.Mutex
	status      domain.Status
	transcripts []domain.Transcript
	subs        map[string]*Subscription
	policy      Policy
}

func NewSessionState(policy Policy) *SessionState {
	if policy == nil {
		policy = SimplePolicy{}
	}
	return &SessionState{
		status: domain.StatusDisconnected,
		subs:   make(map[string]*Subscription),
		policy: policy,
	}
}

func (s *SessionState) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Transcripts returns a copy of the history.
func (s *SessionState) Transcripts() []domain.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transcripts)
}

func (s *SessionState) SetStatus(status domain.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStatusLocked(status)
}

// CompareAndSetStatus sets status only if ok(current) holds.
func (s *SessionState) CompareAndSetStatus(status domain.Status, ok func(current domain.Status) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok(s.status) {
		return false
	}
	s.setStatusLocked(status)
	return true
}

func (s *SessionState) setStatusLocked(status domain.Status) {
	prev := s.status
	s.status = status
	log.Debug().Str("module", "app.state").Str("from", prev.String()).Str("to", status.String()).Msg("status changed")
	s.emitLocked(Event{Kind: EventStatus, Status: status, Transcripts: slices.Clone(s.transcripts)})
}

// AddOrUpdateTranscript replaces the last entry when it is not final and has
// the same speaker, otherwise appends.
func (s *SessionState) AddOrUpdateTranscript(t domain.Transcript) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mergeLocked(t)
}

// AddOrUpdateTranscriptFunc builds the next transcript from the current last
// entry (nil when the history is empty) and merges it atomically. Nothing
// happens when build returns false.
func (s *SessionState) AddOrUpdateTranscriptFunc(build func(last *domain.Transcript) (domain.Transcript, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var last *domain.Transcript
	if n := len(s.transcripts); n > 0 {
		cp := s.transcripts[n-1]
		last = &cp
	}
	t, ok := build(last)
	if !ok {
		return false
	}
	s.mergeLocked(t)
	return true
}

func (s *SessionState) mergeLocked(t domain.Transcript) {
	if n := len(s.transcripts); n > 0 {
		last := s.transcripts[n-1]
		if !last.Final && last.Speaker == t.Speaker {
			s.transcripts[n-1] = t
			s.emitLocked(Event{Kind: EventTranscripts, Status: s.status, Transcripts: slices.Clone(s.transcripts)})
			return
		}
	}
	s.transcripts = append(s.transcripts, t)
	s.emitLocked(Event{Kind: EventTranscripts, Status: s.status, Transcripts: slices.Clone(s.transcripts)})
}

// ResetTranscripts clears the history without notifying; the next status
// event carries the empty snapshot.
func (s *SessionState) ResetTranscripts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcripts = nil
}

// EmitExperimental forwards an unrecognized message verbatim.
func (s *SessionState) EmitExperimental(raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitLocked(Event{Kind: EventExperimental, Raw: raw})
}

func (s *SessionState) Subscribe() *Subscription {
	sub := newSubscription(s)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.id] = sub
	log.Debug().Str("module", "app.state").Str("sub", sub.id).Msg("subscribed")
	return sub
}

func (s *SessionState) emitLocked(ev Event) {
	for _, sub := range s.subs {
		select {
		case sub.ch <- ev:
			continue
		default:
		}
		switch s.policy.OnBackPressure(sub, ev) {
		case CloseSubscriber:
			log.Warn().Str("module", "app.state").Str("sub", sub.id).Msg("slow subscriber closed")
			s.dropLocked(sub)
		case DropEvent, NoAction:
			log.Warn().Str("module", "app.state").Str("sub", sub.id).Str("kind", string(ev.Kind)).Msg("event dropped")
		}
	}
}

func (s *SessionState) dropLocked(sub *Subscription) {
	if sub.closed {
		return
	}
	sub.closed = true
	delete(s.subs, sub.id)
	close(sub.ch)
}
