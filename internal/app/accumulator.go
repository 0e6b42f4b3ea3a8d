package app

import (
	"github.com/dkeye/voxcall/internal/core"
	"github.com/dkeye/voxcall/internal/domain"
	"github.com/rs/zerolog/log"
)

// TranscriptAccumulator folds inbound transcript fragments into SessionState.
type TranscriptAccumulator struct {
	state *SessionState
}

func NewTranscriptAccumulator(state *SessionState) *TranscriptAccumulator {
	return &TranscriptAccumulator{state: state}
}

func (a *TranscriptAccumulator) HandleUser(msg core.UserTranscriptMessage) {
	t := msg.Transcript
	t.Speaker = domain.SpeakerUser
	a.state.AddOrUpdateTranscript(t)
}

// HandleAgent merges a full agent fragment, or appends a delta to the last
// agent entry. A delta with no agent entry to extend is dropped, as is a
// message carrying neither field.
func (a *TranscriptAccumulator) HandleAgent(msg core.AgentTranscriptMessage) bool {
	switch {
	case msg.Text != nil:
		a.state.AddOrUpdateTranscript(domain.Transcript{
			Text:    *msg.Text,
			Final:   msg.Final,
			Speaker: domain.SpeakerAgent,
			Medium:  msg.Medium,
		})
		return true
	case msg.IsDelta():
		delta := *msg.Delta
		ok := a.state.AddOrUpdateTranscriptFunc(func(last *domain.Transcript) (domain.Transcript, bool) {
			if last == nil || last.Speaker != domain.SpeakerAgent {
				return domain.Transcript{}, false
			}
			return domain.Transcript{
				Text:    last.Text + delta,
				Final:   msg.Final,
				Speaker: domain.SpeakerAgent,
				Medium:  last.Medium,
			}, true
		})
		if !ok {
			log.Debug().Str("module", "app.transcripts").Str("delta", delta).Msg("delta without agent transcript dropped")
		}
		return ok
	}
	return false
}
