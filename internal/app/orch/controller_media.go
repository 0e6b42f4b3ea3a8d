package orch

import (
	"github.com/dkeye/voxcall/internal/core"
	"github.com/dkeye/voxcall/internal/domain"
	"github.com/rs/zerolog/log"
)

// watchSignal hands the first frame to Join as the handshake, dispatches the
// rest, and treats the end of the connection as a disconnect trigger.
func (c *Controller) watchSignal(gen uint64, sig core.SignalConnection, handshake chan<- core.Frame) {
	first := true
	for f := range sig.Messages() {
		if first {
			first = false
			handshake <- f
			close(handshake)
			continue
		}
		c.onData(gen, f)
	}
	if first {
		close(handshake)
	}
	log.Info().Str("module", "orch").Uint64("gen", gen).Msg("signaling closed")
	c.disconnect(gen)
}

// onTrack attaches the agent's audio and releases a deferred speaking status.
func (c *Controller) onTrack(gen uint64, track core.RemoteTrack) {
	if !c.isCurrent(gen) {
		return
	}
	logger := log.With().Str("module", "orch").Str("track", track.ID()).Logger()
	if err := c.player.Attach(track); err != nil {
		logger.Error().Err(err).Msg("attach remote track")
	}
	node, err := c.audio.ConnectRemote(track)
	if err != nil {
		logger.Error().Err(err).Msg("connect remote node")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.currentLocked(gen) {
		if node != nil {
			node.Disconnect()
		}
		return
	}
	if old := c.res.remoteNode; old != nil {
		old.Disconnect()
	}
	c.res.remoteNode = node
	c.remoteSeen = true
	logger.Info().Msg("remote track attached")
	c.applyDeferredLocked()
}

func (c *Controller) onData(gen uint64, data core.Frame) {
	msg, err := core.DecodeMessage(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Msg("drop inbound message")
		return
	}
	if !c.isCurrent(gen) {
		return
	}
	c.dispatch(gen, msg)
}

func (c *Controller) dispatch(gen uint64, msg core.InboundMessage) {
	switch m := msg.(type) {
	case core.StateMessage:
		st, err := domain.ParseAgentStatus(m.State)
		if err != nil {
			log.Warn().Str("module", "orch").Str("state", m.State).Msg("unknown agent state")
			return
		}
		c.applyAgentStatus(gen, st)
	case core.UserTranscriptMessage:
		c.transcripts.HandleUser(m)
	case core.AgentTranscriptMessage:
		c.transcripts.HandleAgent(m)
	case core.ExperimentalMessage:
		if len(c.experimental) == 0 {
			log.Debug().Str("module", "orch").Str("type", m.Type).Msg("unknown message")
			return
		}
		c.state.EmitExperimental(m.Raw)
	case core.RoomInfoMessage:
		log.Debug().Str("module", "orch").Msg("repeated room_info ignored")
	}
}

// applyAgentStatus applies a status announced by the agent. Speaking is held
// back until remote audio is attached; any other status replaces the latch.
func (c *Controller) applyAgentStatus(gen uint64, st domain.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.currentLocked(gen) {
		return
	}
	if st == domain.StatusSpeaking && !c.remoteSeen {
		if !c.speakingDeferred {
			log.Debug().Str("module", "orch").Msg("speaking deferred until remote audio")
		}
		c.speakingDeferred = true
		return
	}
	c.speakingDeferred = false
	if !c.state.CompareAndSetStatus(st, domain.Status.Active) {
		log.Debug().Str("module", "orch").Str("state", st.String()).Msg("agent state ignored while not joined")
	}
}

// applyDeferredLocked releases the latch once remote audio is attached and
// the call is joined. It fires at most once per latch.
func (c *Controller) applyDeferredLocked() {
	if !c.speakingDeferred || !c.remoteSeen || !c.state.Status().Active() {
		return
	}
	c.speakingDeferred = false
	c.state.SetStatus(domain.StatusSpeaking)
}
