package domain

type Speaker string

const (
	SpeakerUser  Speaker = "user"
	SpeakerAgent Speaker = "agent"
)

type Medium string

const (
	MediumVoice Medium = "voice"
	MediumText  Medium = "text"
)

// ParseMedium defaults to text for anything that is not "voice".
func ParseMedium(raw string) Medium {
	if raw == string(MediumVoice) {
		return MediumVoice
	}
	return MediumText
}

// Transcript is a single utterance fragment.
// Once Final is true the value is never amended.
type Transcript struct {
	Text    string  `json:"text"`
	Final   bool    `json:"isFinal"`
	Speaker Speaker `json:"speaker"`
	Medium  Medium  `json:"medium"`
}
