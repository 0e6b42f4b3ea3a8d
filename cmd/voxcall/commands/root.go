package commands

import (
	"os"

	"github.com/dkeye/voxcall/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var v *viper.Viper

var rootCmd = &cobra.Command{
	Use:   "voxcall",
	Short: "Voice agent call client",
	Long: `voxcall joins a voice agent call, streams a microphone source into it,
records the agent's audio and exposes status, transcripts and text input
over a local HTTP API.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(v.GetString("mode"))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	v = config.New()

	f := rootCmd.PersistentFlags()
	f.String("mode", "release", "run mode (debug, release)")
	f.Int("port", 8080, "host API port, 0 disables it")
	f.String("api-key", "", "API key for the call API")
	f.String("api-base-url", "", "base URL of the call API")
	f.StringSlice("experimental", nil, "experimental message categories to receive")
	f.StringSlice("ice-server", nil, "ICE server URL (repeatable)")
	f.String("mic", "", "Ogg/Opus file used as microphone, silence when empty")
	f.String("output", "", "Ogg/Opus file recording the agent audio")

	bind := map[string]string{
		"mode":                  "mode",
		"port":                  "port",
		"api_key":               "api-key",
		"api_base_url":          "api-base-url",
		"experimental_messages": "experimental",
		"ice_servers":           "ice-server",
		"mic_file":              "mic",
		"output_file":           "output",
	}
	for key, flag := range bind {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(joinCmd, callCmd, serveCmd, callsCmd)
}

func setupLogging(mode string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if mode == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func loadConfig() (*config.Config, error) {
	return config.Load(v)
}
