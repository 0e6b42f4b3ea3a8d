package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	router "github.com/dkeye/voxcall/internal/adapters/http"
	"github.com/dkeye/voxcall/internal/adapters/rtc"
	sig "github.com/dkeye/voxcall/internal/adapters/signal"
	"github.com/dkeye/voxcall/internal/app"
	"github.com/dkeye/voxcall/internal/app/orch"
	"github.com/dkeye/voxcall/internal/audio"
	"github.com/dkeye/voxcall/internal/callapi"
	"github.com/dkeye/voxcall/internal/config"
	"github.com/dkeye/voxcall/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var joinCmd = &cobra.Command{
	Use:   "join <joinURL>",
	Short: "Join an existing call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg, args[0])
	},
}

var (
	callPrompt string
	callVoice  string
	callModel  string
)

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Create a call and join it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := callapi.New(cfg.APIBaseURL, cfg.APIKey, nil)
		call, err := client.CreateCall(cmd.Context(), callapi.CallRequest{
			SystemPrompt: callPrompt,
			Voice:        callVoice,
			Model:        callModel,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "call %s\n", call.CallID)
		return run(cmd.Context(), cfg, call.JoinURL)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the host API and wait for POST /api/join",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg, "")
	},
}

func init() {
	callCmd.Flags().StringVar(&callPrompt, "prompt", "You are a helpful assistant.", "system prompt of the agent")
	callCmd.Flags().StringVar(&callVoice, "voice", "", "agent voice")
	callCmd.Flags().StringVar(&callModel, "model", "", "agent model")
}

// run wires a controller, serves the host API and joins joinURL when set.
// It returns after SIGINT/SIGTERM or, for a direct join, once the call ends.
func run(parent context.Context, cfg *config.Config, joinURL string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	graph := audio.NewGraph()
	defer graph.Close()

	ctl := orch.New(orch.Deps{
		Signals: sig.NewDialer(sig.Config{
			HandshakeTimeout: cfg.DialTimeout,
			ReadLimit:        cfg.ReadLimit,
			PingPeriod:       cfg.PingPeriod,
		}),
		Rooms:        rtc.NewConnector(rtc.WebRTCConfig(cfg.ICEServers), nil),
		Microphone:   audio.NewFileMicrophone(cfg.MicFile),
		Audio:        graph,
		Player:       audio.NewPlayer(graph, cfg.OutputFile),
		Experimental: cfg.ExperimentalMessages,
		Policy:       app.SimplePolicy{},
	})
	defer ctl.Leave()

	events := ctl.Subscribe()
	defer events.Close()
	go logEvents(events)

	var srv *http.Server
	if cfg.Port > 0 {
		srv = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: router.SetupRouter(ctx, cfg, ctl, graph),
		}
		go func() {
			log.Info().Str("addr", srv.Addr).Msg("host API started")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("server error")
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Server forced to shutdown")
			}
		}()
	}

	ended := make(chan struct{})
	if joinURL != "" {
		done := ctl.Subscribe()
		defer done.Close()
		go waitDisconnected(done, ended)

		if err := ctl.Join(ctx, joinURL); err != nil {
			if errors.Is(err, orch.ErrJoinAborted) && ctx.Err() != nil {
				return nil
			}
			return err
		}
		log.Info().Str("call", ctl.CallID()).Msg("joined")
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
	case <-ended:
		log.Info().Msg("call ended")
	}
	return nil
}

func logEvents(sub *app.Subscription) {
	for ev := range sub.Events() {
		switch ev.Kind {
		case app.EventStatus:
			log.Info().Str("module", "voxcall").Str("status", ev.Status.String()).Msg("status")
		case app.EventTranscripts:
			if n := len(ev.Transcripts); n > 0 {
				last := ev.Transcripts[n-1]
				log.Debug().Str("module", "voxcall").
					Str("speaker", string(last.Speaker)).
					Bool("final", last.Final).
					Msg(last.Text)
			}
		case app.EventExperimental:
			log.Debug().Str("module", "voxcall").RawJSON("raw", ev.Raw).Msg("experimental message")
		}
	}
}

// waitDisconnected closes ended on Disconnected, or when the subscription is
// dropped and the end of the call can no longer be observed.
func waitDisconnected(sub *app.Subscription, ended chan<- struct{}) {
	defer close(ended)
	defer sub.Close()
	for ev := range sub.Events() {
		if ev.Kind == app.EventStatus && ev.Status == domain.StatusDisconnected {
			return
		}
	}
	log.Warn().Str("module", "voxcall").Msg("status subscription dropped, treating call as ended")
}
