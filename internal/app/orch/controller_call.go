package orch

import (
	"context"
	"fmt"

	"github.com/dkeye/voxcall/internal/core"
	"github.com/dkeye/voxcall/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Join connects to the call behind joinURL and returns once the local
// microphone is published and the status is Idle. A Leave issued while Join
// is in flight makes it unwind and return ErrJoinAborted.
func (c *Controller) Join(ctx context.Context, joinURL string) error {
	c.mu.Lock()
	if st := c.state.Status(); st != domain.StatusDisconnected {
		c.mu.Unlock()
		return fmt.Errorf("%w: status %s", ErrAlreadyJoined, st)
	}
	c.gen++
	gen := c.gen
	c.callID = uuid.NewString()
	callID := c.callID
	c.remoteSeen = false
	c.speakingDeferred = false
	c.state.ResetTranscripts()
	c.state.SetStatus(domain.StatusConnecting)
	ctx, cancel := context.WithCancel(ctx)
	c.cancelJoin = cancel
	c.mu.Unlock()
	defer cancel()

	logger := log.With().Str("module", "orch").Str("call", callID).Logger()

	target, err := WithExperimentalMessages(joinURL, c.experimental)
	if err != nil {
		return c.fail(gen, fmt.Errorf("join url: %w", err))
	}

	logger.Info().Msg("dialing signaling")
	sig, err := c.signals.Dial(ctx, target)
	if err != nil {
		return c.fail(gen, fmt.Errorf("dial signaling: %w", err))
	}
	if !c.adopt(gen, func(r *resources) { r.signal = sig }) {
		sig.Close()
		return ErrJoinAborted
	}

	handshake := make(chan core.Frame, 1)
	go c.watchSignal(gen, sig, handshake)

	var info domain.RoomInfo
	select {
	case <-ctx.Done():
		return c.fail(gen, ctx.Err())
	case f, ok := <-handshake:
		if !ok {
			if c.isCurrent(gen) {
				c.disconnect(gen)
				return ErrSignalClosed
			}
			return ErrJoinAborted
		}
		msg, err := core.DecodeMessage(f)
		if err != nil {
			c.disconnect(gen)
			return fmt.Errorf("%w: %v", ErrBadHandshake, err)
		}
		ri, ok := msg.(core.RoomInfoMessage)
		if !ok || !ri.Room.Valid() {
			c.disconnect(gen)
			return fmt.Errorf("%w: unexpected first message %T", ErrBadHandshake, msg)
		}
		info = ri.Room
	}
	logger.Info().Str("room", info.URL).Msg("handshake received")

	var (
		track core.LocalTrack
		room  core.MediaRoom
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := c.mic.Open(gctx)
		if err != nil {
			return fmt.Errorf("open microphone: %w", err)
		}
		if !c.adopt(gen, func(r *resources) { r.track = t }) {
			t.Stop()
			return nil
		}
		track = t
		return nil
	})
	g.Go(func() error {
		r, err := c.rooms.Connect(gctx, info, core.RoomCallbacks{
			OnTrack: func(t core.RemoteTrack) { c.onTrack(gen, t) },
			OnData:  func(f core.Frame) { c.onData(gen, f) },
		})
		if err != nil {
			return fmt.Errorf("connect room: %w", err)
		}
		if !c.adopt(gen, func(res *resources) { res.room = r }) {
			if derr := r.Disconnect(); derr != nil {
				logger.Warn().Err(derr).Msg("disconnect abandoned room")
			}
			return nil
		}
		room = r
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("join failed")
		return c.fail(gen, err)
	}
	if track == nil || room == nil || !c.isCurrent(gen) {
		logger.Info().Msg("join aborted before publish")
		return ErrJoinAborted
	}

	if err := c.audio.Resume(ctx); err != nil {
		return c.fail(gen, fmt.Errorf("resume audio: %w", err))
	}
	if err := c.player.Play(); err != nil {
		return c.fail(gen, fmt.Errorf("play: %w", err))
	}
	node, err := c.audio.ConnectLocal(track)
	if err != nil {
		return c.fail(gen, fmt.Errorf("connect microphone node: %w", err))
	}
	if !c.adopt(gen, func(r *resources) { r.micNode = node }) {
		node.Disconnect()
		return ErrJoinAborted
	}
	if err := room.Publish(ctx, track); err != nil {
		return c.fail(gen, fmt.Errorf("publish microphone: %w", err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.currentLocked(gen) {
		return ErrJoinAborted
	}
	c.state.SetStatus(domain.StatusIdle)
	c.applyDeferredLocked()
	logger.Info().Str("track", track.ID()).Msg("joined")
	return nil
}

// fail unwinds attempt gen after err. An attempt that was already left
// reports ErrJoinAborted instead, since err is then a consequence of the leave.
func (c *Controller) fail(gen uint64, err error) error {
	if !c.isCurrent(gen) {
		return ErrJoinAborted
	}
	c.disconnect(gen)
	return err
}

// Leave tears the call down. It is safe to call at any time and more than
// once; the status is Disconnected when it returns.
func (c *Controller) Leave() error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()
	c.teardown(gen)
	return nil
}

// Disconnect is an alias of Leave.
func (c *Controller) Disconnect() error { return c.Leave() }

// disconnect tears down attempt gen unless it was already left.
func (c *Controller) disconnect(gen uint64) {
	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen = c.gen
	c.mu.Unlock()
	c.teardown(gen)
}

func (c *Controller) teardown(gen uint64) {
	c.mu.Lock()
	c.state.CompareAndSetStatus(domain.StatusDisconnecting, func(cur domain.Status) bool {
		return cur != domain.StatusDisconnecting
	})
	res := c.res
	c.res = resources{}
	if c.cancelJoin != nil {
		c.cancelJoin()
		c.cancelJoin = nil
	}
	c.remoteSeen = false
	c.speakingDeferred = false
	callID := c.callID
	c.mu.Unlock()

	logger := log.With().Str("module", "orch").Str("call", callID).Logger()
	if res.track != nil {
		res.track.Stop()
	}
	if res.room != nil {
		if err := res.room.Disconnect(); err != nil {
			logger.Warn().Err(err).Msg("room disconnect")
		}
	}
	if res.signal != nil {
		res.signal.Close()
	}
	if res.micNode != nil {
		res.micNode.Disconnect()
	}
	if res.remoteNode != nil {
		res.remoteNode.Disconnect()
	}
	c.player.Pause()
	c.player.Clear()

	c.mu.Lock()
	defer c.mu.Unlock()
	// A newer leave already finished the job; a newer join owns the status.
	if c.gen != gen {
		return
	}
	c.state.SetStatus(domain.StatusDisconnected)
	logger.Info().Msg("disconnected")
}

// SendText sends a user text message to the agent.
func (c *Controller) SendText(ctx context.Context, text string) error {
	c.mu.Lock()
	st := c.state.Status()
	room := c.res.room
	c.mu.Unlock()
	if !st.Conversing() || room == nil {
		return fmt.Errorf("%w: status %s", ErrNotConnected, st)
	}
	frame, err := core.EncodeInputText(text)
	if err != nil {
		return err
	}
	if err := room.SendData(ctx, frame); err != nil {
		return fmt.Errorf("send text: %w", err)
	}
	return nil
}
