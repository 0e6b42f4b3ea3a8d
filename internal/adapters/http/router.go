// Package http exposes the running call to local hosts over HTTP and a
// websocket event stream.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dkeye/voxcall/internal/app"
	"github.com/dkeye/voxcall/internal/app/orch"
	"github.com/dkeye/voxcall/internal/audio"
	"github.com/dkeye/voxcall/internal/config"
	"github.com/dkeye/voxcall/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Call is the part of orch.Controller the host API drives.
type Call interface {
	Join(ctx context.Context, joinURL string) error
	Leave() error
	SendText(ctx context.Context, text string) error
	Status() domain.Status
	Transcripts() []domain.Transcript
	Subscribe() *app.Subscription
	CallID() string
}

// AudioStats reports the audio graph; *audio.Graph implements it.
type AudioStats interface {
	Snapshot() audio.Snapshot
}

type joinRequest struct {
	JoinURL string `json:"joinUrl"`
}

type textRequest struct {
	Text string `json:"text"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetupRouter wires the host API. ctx bounds joins started over HTTP so a
// join outlives the request that started it.
func SetupRouter(ctx context.Context, cfg *config.Config, call Call, stats AudioStats) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	texts := NewRateLimiter(5, time.Second)
	api := r.Group("/api")

	api.GET("/status", func(c *gin.Context) {
		resp := gin.H{
			"status": call.Status(),
			"callId": call.CallID(),
		}
		if stats != nil {
			resp["audio"] = stats.Snapshot()
		}
		c.JSON(http.StatusOK, resp)
	})

	api.GET("/transcripts", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"transcripts": call.Transcripts()})
	})

	api.POST("/join", func(c *gin.Context) {
		var req joinRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.JoinURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid joinUrl"})
			return
		}
		if err := call.Join(ctx, req.JoinURL); err != nil {
			log.Warn().Err(err).Str("module", "adapters.http").Msg("join failed")
			c.JSON(joinErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": call.Status(), "callId": call.CallID()})
	})

	api.POST("/text", func(c *gin.Context) {
		if !texts.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many messages"})
			return
		}
		var req textRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid text"})
			return
		}
		if err := call.SendText(c.Request.Context(), req.Text); err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, orch.ErrNotConnected) {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})

	api.POST("/leave", func(c *gin.Context) {
		_ = call.Leave()
		c.JSON(http.StatusOK, gin.H{"status": call.Status()})
	})

	api.GET("/ws/events", func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("ws upgrade")
			return
		}
		sub := call.Subscribe()
		stream := &eventStream{
			conn: ws,
			sub:  sub,
			logger: log.With().
				Str("module", "adapters.http").
				Str("client", uuid.NewString()).
				Str("sub", sub.ID()).
				Logger(),
		}
		stream.logger.Info().Msg("event stream opened")
		stream.run([]app.Event{
			{Kind: app.EventStatus, Status: call.Status()},
			{Kind: app.EventTranscripts, Status: call.Status(), Transcripts: call.Transcripts()},
		})
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}

func joinErrorStatus(err error) int {
	switch {
	case errors.Is(err, orch.ErrAlreadyJoined), errors.Is(err, orch.ErrJoinAborted):
		return http.StatusConflict
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
