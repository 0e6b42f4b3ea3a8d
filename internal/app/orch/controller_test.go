package orch

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dkeye/voxcall/internal/app"
	"github.com/dkeye/voxcall/internal/core"
	"github.com/dkeye/voxcall/internal/core/mocks"
	"github.com/dkeye/voxcall/internal/domain"
	"github.com/pion/interceptor"
	"github.com/pion/rtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testJoinURL = "wss://voice.example.test/calls/abc?token=t"

var roomInfoFrame = core.Frame(`{"type":"room_info","roomUrl":"https://rtc.example.test/room","token":"tok"}`)

type remoteTrack struct{ id string }

func (r remoteTrack) ID() string { return r.id }

func (r remoteTrack) ReadRTP() (*rtp.Packet, interceptor.Attributes, error) {
	return nil, nil, errors.New("not readable")
}

type harness struct {
	c *Controller

	signals *mocks.MockSignalDialer
	sig     *mocks.MockSignalConnection
	rooms   *mocks.MockRoomConnector
	room    *mocks.MockMediaRoom
	mic     *mocks.MockMicrophone
	track   *mocks.MockLocalTrack
	audio   *mocks.MockAudioGraph
	node    *mocks.MockAudioNode
	player  *mocks.MockPlayer

	frames     chan core.Frame
	closeOnce  sync.Once
	dialedURL  atomic.Value
	cbMu       sync.Mutex
	cb         core.RoomCallbacks
	published  atomic.Int32
	roomClosed atomic.Int32
	sent       chan core.Frame
}

// newHarness wires a controller whose collaborators succeed by default.
// Expectations that a test wants to change are registered by the test
// before calling Join, since gomock matches the first registered call.
func newHarness(t *testing.T, experimental ...string) *harness {
	ctrl := gomock.NewController(t)
	h := &harness{
		signals: mocks.NewMockSignalDialer(ctrl),
		sig:     mocks.NewMockSignalConnection(ctrl),
		rooms:   mocks.NewMockRoomConnector(ctrl),
		room:    mocks.NewMockMediaRoom(ctrl),
		mic:     mocks.NewMockMicrophone(ctrl),
		track:   mocks.NewMockLocalTrack(ctrl),
		audio:   mocks.NewMockAudioGraph(ctrl),
		node:    mocks.NewMockAudioNode(ctrl),
		player:  mocks.NewMockPlayer(ctrl),
		frames:  make(chan core.Frame, 16),
		sent:    make(chan core.Frame, 16),
	}
	h.c = New(Deps{
		Signals:      h.signals,
		Rooms:        h.rooms,
		Microphone:   h.mic,
		Audio:        h.audio,
		Player:       h.player,
		Experimental: experimental,
	})
	return h
}

func (h *harness) closeFrames() { h.closeOnce.Do(func() { close(h.frames) }) }

func (h *harness) callbacks() core.RoomCallbacks {
	h.cbMu.Lock()
	defer h.cbMu.Unlock()
	return h.cb
}

func (h *harness) expectDefaults() {
	h.signals.EXPECT().Dial(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, url string) (core.SignalConnection, error) {
			h.dialedURL.Store(url)
			return h.sig, nil
		}).AnyTimes()
	h.sig.EXPECT().Messages().Return((<-chan core.Frame)(h.frames)).AnyTimes()
	h.sig.EXPECT().Close().Do(func() { h.closeFrames() }).AnyTimes()

	h.mic.EXPECT().Open(gomock.Any()).Return(h.track, nil).AnyTimes()
	h.track.EXPECT().ID().Return("mic-1").AnyTimes()
	h.track.EXPECT().Stop().AnyTimes()

	h.rooms.EXPECT().Connect(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, info domain.RoomInfo, cb core.RoomCallbacks) (core.MediaRoom, error) {
			h.cbMu.Lock()
			h.cb = cb
			h.cbMu.Unlock()
			return h.room, nil
		}).AnyTimes()
	h.room.EXPECT().Publish(gomock.Any(), h.track).DoAndReturn(
		func(context.Context, core.LocalTrack) error {
			h.published.Add(1)
			return nil
		}).AnyTimes()
	h.room.EXPECT().SendData(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f core.Frame) error {
			h.sent <- f
			return nil
		}).AnyTimes()
	h.room.EXPECT().Disconnect().DoAndReturn(func() error {
		h.roomClosed.Add(1)
		return nil
	}).AnyTimes()

	h.audio.EXPECT().Resume(gomock.Any()).Return(nil).AnyTimes()
	h.audio.EXPECT().ConnectLocal(h.track).Return(h.node, nil).AnyTimes()
	h.audio.EXPECT().ConnectRemote(gomock.Any()).Return(h.node, nil).AnyTimes()
	h.node.EXPECT().Disconnect().AnyTimes()

	h.player.EXPECT().Play().Return(nil).AnyTimes()
	h.player.EXPECT().Attach(gomock.Any()).Return(nil).AnyTimes()
	h.player.EXPECT().Pause().AnyTimes()
	h.player.EXPECT().Clear().AnyTimes()
}

// resetSignal gives the next Join a fresh signaling connection.
func (h *harness) resetSignal(t *testing.T) {
	h.frames = make(chan core.Frame, 16)
	h.closeOnce = sync.Once{}
	h.sig = mocks.NewMockSignalConnection(gomock.NewController(t))
	h.sig.EXPECT().Messages().Return((<-chan core.Frame)(h.frames)).AnyTimes()
	h.sig.EXPECT().Close().Do(func() { h.closeFrames() }).AnyTimes()
}

func (h *harness) join(t *testing.T) {
	t.Helper()
	h.frames <- roomInfoFrame
	require.NoError(t, h.c.Join(context.Background(), testJoinURL))
}

// statuses drains the status events buffered so far.
func statuses(sub *app.Subscription) []domain.Status {
	var out []domain.Status
	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return out
			}
			if ev.Kind == app.EventStatus {
				out = append(out, ev.Status)
			}
		default:
			return out
		}
	}
}

func stateFrame(state string) core.Frame {
	return core.Frame(`{"type":"state","state":"` + state + `"}`)
}

func TestJoinReachesIdle(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	sub := h.c.Subscribe()

	h.join(t)

	assert.Equal(t, domain.StatusIdle, h.c.Status())
	assert.Equal(t, []domain.Status{domain.StatusConnecting, domain.StatusIdle}, statuses(sub))
	assert.EqualValues(t, 1, h.published.Load())
	assert.Equal(t, testJoinURL, h.dialedURL.Load())
	assert.NotEmpty(t, h.c.CallID())
}

func TestJoinTwice(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)
	sub := h.c.Subscribe()

	err := h.c.Join(context.Background(), testJoinURL)
	assert.ErrorIs(t, err, ErrAlreadyJoined)
	assert.Equal(t, domain.StatusIdle, h.c.Status())
	assert.Empty(t, statuses(sub))
}

func TestSendText(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)

	err := h.c.SendText(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Empty(t, h.sent)

	cb := h.callbacks()
	cb.OnTrack(remoteTrack{id: "agent"})
	cb.OnData(stateFrame("speaking"))
	require.Equal(t, domain.StatusSpeaking, h.c.Status())

	require.NoError(t, h.c.SendText(context.Background(), "hello"))
	require.Len(t, h.sent, 1)
	var msg map[string]string
	require.NoError(t, json.Unmarshal(<-h.sent, &msg))
	assert.Equal(t, map[string]string{"type": "input_text_message", "text": "hello"}, msg)
}

func TestSendTextWhileDisconnected(t *testing.T) {
	h := newHarness(t)
	err := h.c.SendText(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, domain.StatusDisconnected, h.c.Status())
}

func TestLeaveTwice(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)
	sub := h.c.Subscribe()

	require.NoError(t, h.c.Leave())
	require.NoError(t, h.c.Leave())

	assert.Equal(t, domain.StatusDisconnected, h.c.Status())
	assert.EqualValues(t, 1, h.roomClosed.Load())
	assert.Equal(t, []domain.Status{
		domain.StatusDisconnecting, domain.StatusDisconnected,
		domain.StatusDisconnecting, domain.StatusDisconnected,
	}, statuses(sub))
}

func TestJoinAfterLeave(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)
	require.NoError(t, h.c.Leave())

	h.resetSignal(t)
	h.join(t)
	assert.Equal(t, domain.StatusIdle, h.c.Status())
	assert.EqualValues(t, 2, h.published.Load())
}

func TestDeferredSpeakingFiresOnce(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)
	sub := h.c.Subscribe()
	cb := h.callbacks()

	cb.OnData(stateFrame("speaking"))
	cb.OnData(stateFrame("speaking"))
	assert.Equal(t, domain.StatusIdle, h.c.Status())

	cb.OnTrack(remoteTrack{id: "agent"})
	assert.Equal(t, domain.StatusSpeaking, h.c.Status())

	cb.OnTrack(remoteTrack{id: "agent-2"})
	assert.Equal(t, []domain.Status{domain.StatusSpeaking}, statuses(sub))
}

func TestDeferredSpeakingClearedByOtherState(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)
	cb := h.callbacks()

	cb.OnData(stateFrame("speaking"))
	cb.OnData(stateFrame("listening"))
	assert.Equal(t, domain.StatusListening, h.c.Status())

	cb.OnTrack(remoteTrack{id: "agent"})
	assert.Equal(t, domain.StatusListening, h.c.Status())
}

func TestSpeakingBeforeJoinAppliedAtIdle(t *testing.T) {
	h := newHarness(t)
	h.rooms.EXPECT().Connect(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.RoomInfo, cb core.RoomCallbacks) (core.MediaRoom, error) {
			cb.OnData(stateFrame("speaking"))
			cb.OnTrack(remoteTrack{id: "agent"})
			return h.room, nil
		})
	h.expectDefaults()
	sub := h.c.Subscribe()

	h.join(t)

	assert.Equal(t, domain.StatusSpeaking, h.c.Status())
	assert.Equal(t, []domain.Status{
		domain.StatusConnecting, domain.StatusIdle, domain.StatusSpeaking,
	}, statuses(sub))
}

func TestLeaveDuringJoin(t *testing.T) {
	h := newHarness(t)
	opened := make(chan struct{})
	h.mic.EXPECT().Open(gomock.Any()).DoAndReturn(func(ctx context.Context) (core.LocalTrack, error) {
		close(opened)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	h.expectDefaults()
	sub := h.c.Subscribe()

	h.frames <- roomInfoFrame
	errc := make(chan error, 1)
	go func() { errc <- h.c.Join(context.Background(), testJoinURL) }()

	select {
	case <-opened:
	case <-time.After(2 * time.Second):
		t.Fatal("microphone was never requested")
	}
	require.NoError(t, h.c.Leave())

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrJoinAborted)
	case <-time.After(2 * time.Second):
		t.Fatal("join did not return")
	}

	assert.Equal(t, domain.StatusDisconnected, h.c.Status())
	assert.Zero(t, h.published.Load())
	got := statuses(sub)
	assert.NotContains(t, got, domain.StatusIdle)
	assert.Equal(t, domain.StatusDisconnected, got[len(got)-1])
}

func TestMicrophoneFailureTearsDown(t *testing.T) {
	errNoMic := errors.New("no microphone")
	h := newHarness(t)
	h.mic.EXPECT().Open(gomock.Any()).Return(nil, errNoMic)
	h.expectDefaults()

	h.frames <- roomInfoFrame
	err := h.c.Join(context.Background(), testJoinURL)

	assert.ErrorIs(t, err, errNoMic)
	assert.Equal(t, domain.StatusDisconnected, h.c.Status())
	assert.Zero(t, h.published.Load())
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-h.frames:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestDialFailure(t *testing.T) {
	errDial := errors.New("refused")
	h := newHarness(t)
	h.signals.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(nil, errDial)
	h.player.EXPECT().Pause().AnyTimes()
	h.player.EXPECT().Clear().AnyTimes()

	err := h.c.Join(context.Background(), testJoinURL)
	assert.ErrorIs(t, err, errDial)
	assert.Equal(t, domain.StatusDisconnected, h.c.Status())
}

func TestBadHandshake(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()

	h.frames <- stateFrame("idle")
	err := h.c.Join(context.Background(), testJoinURL)
	assert.ErrorIs(t, err, ErrBadHandshake)
	assert.Equal(t, domain.StatusDisconnected, h.c.Status())
}

func TestSignalClosedBeforeHandshake(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()

	h.closeFrames()
	err := h.c.Join(context.Background(), testJoinURL)
	assert.Error(t, err)
	assert.Eventually(t, func() bool { return h.c.Status() == domain.StatusDisconnected }, time.Second, 10*time.Millisecond)
}

func TestSignalCloseDisconnects(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)

	h.closeFrames()
	assert.Eventually(t, func() bool { return h.c.Status() == domain.StatusDisconnected }, time.Second, 10*time.Millisecond)
	assert.EqualValues(t, 1, h.roomClosed.Load())
}

func TestSignalingMessagesAreDispatched(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)

	h.frames <- stateFrame("thinking")
	assert.Eventually(t, func() bool { return h.c.Status() == domain.StatusThinking }, time.Second, 10*time.Millisecond)
}

func TestStatesIgnoredWhileNotJoined(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)
	cb := h.callbacks()
	require.NoError(t, h.c.Leave())

	cb.OnData(stateFrame("listening"))
	assert.Equal(t, domain.StatusDisconnected, h.c.Status())
}

func TestUnknownStateIgnored(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)

	h.callbacks().OnData(stateFrame("dancing"))
	assert.Equal(t, domain.StatusIdle, h.c.Status())
}

func TestTranscriptsFromDataChannel(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)
	cb := h.callbacks()

	cb.OnData(core.Frame(`{"type":"transcript","transcript":{"text":"hi there","final":true,"medium":"voice"}}`))
	cb.OnData(core.Frame(`{"type":"voice_synced_transcript","text":"Hel","final":false}`))
	cb.OnData(core.Frame(`{"type":"voice_synced_transcript","delta":"lo","final":false}`))

	got := h.c.Transcripts()
	require.Len(t, got, 2)
	assert.Equal(t, domain.Transcript{Text: "hi there", Final: true, Speaker: domain.SpeakerUser, Medium: domain.MediumVoice}, got[0])
	assert.Equal(t, domain.Transcript{Text: "Hello", Speaker: domain.SpeakerAgent, Medium: domain.MediumVoice}, got[1])
}

func TestTranscriptsResetOnJoin(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)
	h.callbacks().OnData(core.Frame(`{"type":"agent_text_transcript","text":"hi","final":true}`))
	require.Len(t, h.c.Transcripts(), 1)
	require.NoError(t, h.c.Leave())
	assert.Len(t, h.c.Transcripts(), 1)

	h.resetSignal(t)
	h.join(t)
	assert.Empty(t, h.c.Transcripts())
}

func TestExperimentalMessages(t *testing.T) {
	h := newHarness(t, "debug")
	h.expectDefaults()
	h.join(t)
	sub := h.c.Subscribe()

	assert.Equal(t, "wss://voice.example.test/calls/abc?experimentalMessages=debug&token=t", h.dialedURL.Load())

	raw := `{"type":"debug","message":"x"}`
	h.callbacks().OnData(core.Frame(raw))
	select {
	case ev := <-sub.Events():
		assert.Equal(t, app.EventExperimental, ev.Kind)
		assert.JSONEq(t, raw, string(ev.Raw))
	default:
		t.Fatal("no experimental event")
	}
}

func TestExperimentalMessagesIgnoredWithoutOptIn(t *testing.T) {
	h := newHarness(t)
	h.expectDefaults()
	h.join(t)
	sub := h.c.Subscribe()

	h.callbacks().OnData(core.Frame(`{"type":"debug","message":"x"}`))
	assert.Empty(t, sub.Events())
}

func TestWithExperimentalMessages(t *testing.T) {
	got, err := WithExperimentalMessages("wss://x.test/j?a=1", nil)
	require.NoError(t, err)
	assert.Equal(t, "wss://x.test/j?a=1", got)

	got, err = WithExperimentalMessages("wss://x.test/j?a=1", []string{"debug", "timing"})
	require.NoError(t, err)
	assert.Equal(t, "wss://x.test/j?a=1&experimentalMessages=debug%2Ctiming", got)

	_, err = WithExperimentalMessages("://bad", []string{"debug"})
	assert.Error(t, err)
}
