package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/voxcall/internal/domain"
)

var ErrBadMessage = errors.New("bad message")

// Wire types of inbound and outbound messages.
const (
	TypeRoomInfo              = "room_info"
	TypeState                 = "state"
	TypeTranscript            = "transcript"
	TypeVoiceSyncedTranscript = "voice_synced_transcript"
	TypeAgentTextTranscript   = "agent_text_transcript"
	TypeInputTextMessage      = "input_text_message"
)

// InboundMessage is one of RoomInfoMessage, StateMessage,
// UserTranscriptMessage, AgentTranscriptMessage or ExperimentalMessage.
type InboundMessage interface {
	inbound()
}

type RoomInfoMessage struct {
	Room domain.RoomInfo
}

type StateMessage struct {
	State string
}

// UserTranscriptMessage carries the full text of a user utterance.
type UserTranscriptMessage struct {
	Transcript domain.Transcript
}

// AgentTranscriptMessage carries either the full Text of an agent utterance
// or a Delta to append to the one in progress. A nil field was absent on the
// wire; an empty one is a real, possibly final, fragment.
type AgentTranscriptMessage struct {
	Text   *string
	Delta  *string
	Final  bool
	Medium domain.Medium
}

// IsDelta reports whether the message extends the current agent utterance.
// Text wins when both fields are present.
func (m AgentTranscriptMessage) IsDelta() bool { return m.Text == nil && m.Delta != nil }

// ExperimentalMessage is any message whose type the client does not know.
type ExperimentalMessage struct {
	Type string
	Raw  json.RawMessage
}

func (RoomInfoMessage) inbound()        {}
func (StateMessage) inbound()           {}
func (UserTranscriptMessage) inbound()  {}
func (AgentTranscriptMessage) inbound() {}
func (ExperimentalMessage) inbound()    {}

// DecodeMessage decodes a frame by its "type" tag.
func DecodeMessage(data []byte) (InboundMessage, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}

	switch env.Type {
	case TypeRoomInfo:
		var p struct {
			RoomURL string `json:"roomUrl"`
			Token   string `json:"token"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadMessage, env.Type, err)
		}
		return RoomInfoMessage{Room: domain.RoomInfo{URL: p.RoomURL, Token: p.Token}}, nil
	case TypeState:
		var p struct {
			State string `json:"state"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadMessage, env.Type, err)
		}
		return StateMessage{State: p.State}, nil
	case TypeTranscript:
		var p struct {
			Transcript struct {
				Text   string `json:"text"`
				Final  bool   `json:"final"`
				Medium string `json:"medium"`
			} `json:"transcript"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadMessage, env.Type, err)
		}
		return UserTranscriptMessage{Transcript: domain.Transcript{
			Text:    p.Transcript.Text,
			Final:   p.Transcript.Final,
			Speaker: domain.SpeakerUser,
			Medium:  domain.ParseMedium(p.Transcript.Medium),
		}}, nil
	case TypeVoiceSyncedTranscript, TypeAgentTextTranscript:
		var p struct {
			Text  *string `json:"text"`
			Delta *string `json:"delta"`
			Final bool    `json:"final"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadMessage, env.Type, err)
		}
		medium := domain.MediumVoice
		if env.Type == TypeAgentTextTranscript {
			medium = domain.MediumText
		}
		return AgentTranscriptMessage{Text: p.Text, Delta: p.Delta, Final: p.Final, Medium: medium}, nil
	default:
		return ExperimentalMessage{Type: env.Type, Raw: bytes.Clone(data)}, nil
	}
}

// EncodeInputText builds the outbound text message frame.
func EncodeInputText(text string) (Frame, error) {
	b, err := json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{
		Type: TypeInputTextMessage,
		Text: text,
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}
