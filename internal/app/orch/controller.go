// Package orch drives the lifecycle of a single call: it joins the signaling
// channel and the media room, owns the local audio resources and keeps
// SessionState in step with inbound events.
package orch

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/dkeye/voxcall/internal/app"
	"github.com/dkeye/voxcall/internal/core"
	"github.com/dkeye/voxcall/internal/domain"
)

var (
	ErrAlreadyJoined = errors.New("call already joined")
	ErrNotConnected  = errors.New("call not connected")
	ErrJoinAborted   = errors.New("join aborted by leave")
	ErrSignalClosed  = errors.New("signaling closed before handshake")
	ErrBadHandshake  = errors.New("bad join handshake")
)

// ExperimentalMessagesParam is the join URL query parameter listing the
// opted-in experimental message categories.
const ExperimentalMessagesParam = "experimentalMessages"

type Deps struct {
	Signals    core.SignalDialer
	Rooms      core.RoomConnector
	Microphone core.Microphone
	Audio      core.AudioGraph
	Player     core.Player
	// Experimental lists the message categories to opt into. Unknown inbound
	// messages are only surfaced when it is non-empty.
	Experimental []string
	Policy       app.Policy
}

// Controller owns one call at a time.
type Controller struct {
	signals      core.SignalDialer
	rooms        core.RoomConnector
	mic          core.Microphone
	audio        core.AudioGraph
	player       core.Player
	experimental []string

	state       *app.SessionState
	transcripts *app.TranscriptAccumulator

	mu sync.Mutex
	// gen identifies the current call attempt; join and leave both bump it so
	// late completions of an abandoned attempt can tell they are stale.
	gen        uint64
	callID     string
	cancelJoin context.CancelFunc
	res        resources
	remoteSeen bool
	// speakingDeferred latches a "speaking" status that arrived before the
	// remote audio track was attached.
	speakingDeferred bool
}

type resources struct {
	signal     core.SignalConnection
	room       core.MediaRoom
	track      core.LocalTrack
	micNode    core.AudioNode
	remoteNode core.AudioNode
}

func New(d Deps) *Controller {
	state := app.NewSessionState(d.Policy)
	return &Controller{
		signals:      d.Signals,
		rooms:        d.Rooms,
		mic:          d.Microphone,
		audio:        d.Audio,
		player:       d.Player,
		experimental: d.Experimental,
		state:        state,
		transcripts:  app.NewTranscriptAccumulator(state),
	}
}

func (c *Controller) Status() domain.Status { return c.state.Status() }

func (c *Controller) Transcripts() []domain.Transcript { return c.state.Transcripts() }

func (c *Controller) Subscribe() *app.Subscription { return c.state.Subscribe() }

// CallID is the local identifier of the current or last call, used in logs.
func (c *Controller) CallID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callID
}

// WithExperimentalMessages adds the experimental categories to a join URL.
func WithExperimentalMessages(joinURL string, categories []string) (string, error) {
	if len(categories) == 0 {
		return joinURL, nil
	}
	u, err := url.Parse(joinURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(ExperimentalMessagesParam, strings.Join(categories, ","))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// currentLocked reports whether gen is still the live attempt.
func (c *Controller) currentLocked(gen uint64) bool {
	return c.gen == gen && !c.state.Status().Leaving()
}

func (c *Controller) isCurrent(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked(gen)
}

// adopt stores a freshly acquired resource if gen is still live.
// The caller must release the resource itself when adopt returns false.
func (c *Controller) adopt(gen uint64, store func(*resources)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.currentLocked(gen) {
		return false
	}
	store(&c.res)
	return true
}
