package rtc

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dkeye/voxcall/internal/core"
	"github.com/dkeye/voxcall/internal/domain"
	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebRTCConfig(t *testing.T) {
	assert.Equal(t, DefaultWebRTCConfig(), WebRTCConfig(nil))

	cfg := WebRTCConfig([]string{"stun:a.test:3478", "turn:b.test"})
	require.Len(t, cfg.ICEServers, 1)
	assert.Equal(t, []string{"stun:a.test:3478", "turn:b.test"}, cfg.ICEServers[0].URLs)
}

func TestSendOffer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/sdp", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "v=0 offer", string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("v=0 answer"))
	}))
	defer srv.Close()

	cn := NewConnector(webrtc.Configuration{}, srv.Client())
	answer, err := cn.sendOffer(context.Background(), domain.RoomInfo{URL: srv.URL, Token: "tok"}, "v=0 offer")
	require.NoError(t, err)
	assert.Equal(t, "v=0 answer", answer)
}

func TestSendOfferRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "expired", http.StatusForbidden)
	}))
	defer srv.Close()

	cn := NewConnector(webrtc.Configuration{}, srv.Client())
	_, err := cn.sendOffer(context.Background(), domain.RoomInfo{URL: srv.URL, Token: "tok"}, "v=0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestConnectRejectsIncompleteRoomInfo(t *testing.T) {
	_, err := NewConnector(webrtc.Configuration{}, nil).Connect(context.Background(), domain.RoomInfo{URL: "http://x"}, core.RoomCallbacks{})
	assert.Error(t, err)
}

// answerer plays the room side of the exchange on a local peer connection.
func answerer(t *testing.T, received chan<- string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offer, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		t.Cleanup(func() { _ = pc.Close() })
		pc.OnDataChannel(func(dc *webrtc.DataChannel) {
			dc.OnOpen(func() { _ = dc.SendText(`{"type":"state","state":"listening"}`) })
			dc.OnMessage(func(msg webrtc.DataChannelMessage) { received <- string(msg.Data) })
		})
		if err := pc.SetRemoteDescription(webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: string(offer)}); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		answer, err := pc.CreateAnswer(nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		gatherComplete := webrtc.GatheringCompletePromise(pc)
		if err := pc.SetLocalDescription(answer); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		<-gatherComplete
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(pc.LocalDescription().SDP))
	}))
}

func TestConnectLoopback(t *testing.T) {
	received := make(chan string, 4)
	srv := answerer(t, received)
	defer srv.Close()

	inbound := make(chan core.Frame, 4)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	room, err := NewConnector(webrtc.Configuration{}, srv.Client()).Connect(ctx,
		domain.RoomInfo{URL: srv.URL, Token: "tok"},
		core.RoomCallbacks{OnData: func(f core.Frame) { inbound <- f }})
	require.NoError(t, err)
	defer room.Disconnect()

	select {
	case f := <-inbound:
		assert.JSONEq(t, `{"type":"state","state":"listening"}`, string(f))
	case <-ctx.Done():
		t.Fatal("no data channel message from room")
	}

	require.NoError(t, room.SendData(ctx, core.Frame(`{"type":"input_text_message","text":"hi"}`)))
	select {
	case msg := <-received:
		assert.JSONEq(t, `{"type":"input_text_message","text":"hi"}`, msg)
	case <-ctx.Done():
		t.Fatal("room did not receive message")
	}

	require.NoError(t, room.Disconnect())
	require.NoError(t, room.Disconnect())
	assert.ErrorIs(t, room.SendData(ctx, core.Frame("x")), ErrRoomClosed)
}
