package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusPredicates(t *testing.T) {
	tests := []struct {
		status     Status
		active     bool
		conversing bool
		leaving    bool
	}{
		{StatusDisconnected, false, false, true},
		{StatusDisconnecting, false, false, true},
		{StatusConnecting, false, false, false},
		{StatusIdle, true, false, false},
		{StatusListening, true, true, false},
		{StatusThinking, true, true, false},
		{StatusSpeaking, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.active, tt.status.Active())
			assert.Equal(t, tt.conversing, tt.status.Conversing())
			assert.Equal(t, tt.leaving, tt.status.Leaving())
		})
	}
}

func TestParseAgentStatus(t *testing.T) {
	s, err := ParseAgentStatus("thinking")
	require.NoError(t, err)
	assert.Equal(t, StatusThinking, s)

	for _, raw := range []string{"", "connecting", "disconnected", "SPEAKING", "dancing"} {
		_, err := ParseAgentStatus(raw)
		assert.ErrorIs(t, err, ErrUnknownStatus, raw)
	}
}

func TestParseMedium(t *testing.T) {
	assert.Equal(t, MediumText, ParseMedium("text"))
	assert.Equal(t, MediumVoice, ParseMedium("voice"))
	assert.Equal(t, MediumText, ParseMedium(""))
	assert.Equal(t, MediumText, ParseMedium("video"))
}

func TestRoomInfoValid(t *testing.T) {
	assert.True(t, RoomInfo{URL: "https://r", Token: "t"}.Valid())
	assert.False(t, RoomInfo{URL: "https://r"}.Valid())
	assert.False(t, RoomInfo{Token: "t"}.Valid())
}
