// Package rtc connects to the media room over a WebRTC peer connection.
package rtc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/dkeye/voxcall/internal/core"
	"github.com/dkeye/voxcall/internal/domain"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

var (
	ErrDataChannelClosed = errors.New("data channel not open")
	ErrRoomClosed        = errors.New("room disconnected")
)

const dataChannelLabel = "data"

func DefaultWebRTCConfig() webrtc.Configuration {
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{
				URLs: []string{"stun:stun.l.google.com:19302"},
			},
		},
	}
}

// WebRTCConfig builds a peer configuration from ICE server URLs, falling
// back to the default STUN server.
func WebRTCConfig(iceServers []string) webrtc.Configuration {
	if len(iceServers) == 0 {
		return DefaultWebRTCConfig()
	}
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{{URLs: iceServers}},
	}
}

// Connector implements core.RoomConnector. The SDP offer is posted to the
// room URL with the room token as bearer credentials.
type Connector struct {
	cfg    webrtc.Configuration
	client *http.Client
}

func NewConnector(cfg webrtc.Configuration, client *http.Client) *Connector {
	if client == nil {
		client = http.DefaultClient
	}
	return &Connector{cfg: cfg, client: client}
}

func (cn *Connector) Connect(ctx context.Context, info domain.RoomInfo, cb core.RoomCallbacks) (core.MediaRoom, error) {
	if !info.Valid() {
		return nil, fmt.Errorf("connect room: incomplete room info")
	}
	pc, err := webrtc.NewPeerConnection(cn.cfg)
	if err != nil {
		return nil, err
	}
	c := &WebRTCConnection{pc: pc}

	transceiver, err := pc.AddTransceiverFromKind(webrtc.RTPCodecTypeAudio,
		webrtc.RTPTransceiverInit{Direction: webrtc.RTPTransceiverDirectionSendrecv})
	if err != nil {
		c.close()
		return nil, err
	}
	c.sender = transceiver.Sender()

	dc, err := pc.CreateDataChannel(dataChannelLabel, nil)
	if err != nil {
		c.close()
		return nil, err
	}
	c.dc = dc
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		if cb.OnData != nil {
			cb.OnData(core.Frame(msg.Data))
		}
	})

	pc.OnICEConnectionStateChange(func(s webrtc.ICEConnectionState) {
		log.Info().Str("module", "webrtc").Str("ice_state", s.String()).Msg("ICE state")
	})
	pc.OnConnectionStateChange(func(s webrtc.PeerConnectionState) {
		log.Info().Str("module", "webrtc").Str("peer_connection_state", s.String()).Msg("Peer state")
	})
	pc.OnTrack(func(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		log.Info().
			Str("module", "webrtc").
			Str("kind", track.Kind().String()).
			Str("track_id", track.ID()).
			Str("stream_id", track.StreamID()).
			Msg("OnTrack received")
		if track.Kind() == webrtc.RTPCodecTypeAudio && cb.OnTrack != nil {
			cb.OnTrack(track)
		}
	})

	offer, err := pc.CreateOffer(nil)
	if err != nil {
		c.close()
		return nil, err
	}
	gatherComplete := webrtc.GatheringCompletePromise(pc)
	if err := pc.SetLocalDescription(offer); err != nil {
		c.close()
		return nil, err
	}
	select {
	case <-gatherComplete:
	case <-ctx.Done():
		c.close()
		return nil, ctx.Err()
	}

	answer, err := cn.sendOffer(ctx, info, pc.LocalDescription().SDP)
	if err != nil {
		c.close()
		return nil, err
	}
	if err := pc.SetRemoteDescription(webrtc.SessionDescription{
		Type: webrtc.SDPTypeAnswer,
		SDP:  answer,
	}); err != nil {
		c.close()
		return nil, err
	}
	log.Info().Str("module", "webrtc").Msg("room connected")
	return c, nil
}

func (cn *Connector) sendOffer(ctx context.Context, info domain.RoomInfo, sdp string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, info.URL, bytes.NewReader([]byte(sdp)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+info.Token)
	req.Header.Set("Content-Type", "application/sdp")

	resp, err := cn.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("sdp exchange failed: status %d: %s", resp.StatusCode, body)
	}
	answer, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(answer), nil
}

// WebRTCConnection is a connected room. It implements core.MediaRoom.
type WebRTCConnection struct {
	pc     *webrtc.PeerConnection
	sender *webrtc.RTPSender
	dc     *webrtc.DataChannel

	mu     sync.Mutex
	closed bool
}

func (c *WebRTCConnection) Publish(_ context.Context, track core.LocalTrack) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrRoomClosed
	}
	if err := c.sender.ReplaceTrack(track.Track()); err != nil {
		return fmt.Errorf("publish %s: %w", track.ID(), err)
	}
	log.Info().Str("module", "webrtc").Str("track_id", track.ID()).Msg("local track published")
	return nil
}

func (c *WebRTCConnection) SendData(_ context.Context, data core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrRoomClosed
	}
	if c.dc.ReadyState() != webrtc.DataChannelStateOpen {
		return ErrDataChannelClosed
	}
	return c.dc.Send(data)
}

func (c *WebRTCConnection) Disconnect() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	return c.close()
}

func (c *WebRTCConnection) close() error {
	if err := c.pc.Close(); err != nil {
		log.Error().Err(err).Str("module", "webrtc").Msg("close error")
		return err
	}
	log.Info().Str("module", "webrtc").Msg("closed")
	return nil
}
