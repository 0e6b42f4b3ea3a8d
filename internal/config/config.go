package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const EnvPrefix = "VOXCALL"

type Config struct {
	Mode                 string        `mapstructure:"mode"`
	Port                 int           `mapstructure:"port"`
	APIBaseURL           string        `mapstructure:"api_base_url"`
	APIKey               string        `mapstructure:"api_key"`
	ExperimentalMessages []string      `mapstructure:"experimental_messages"`
	ICEServers           []string      `mapstructure:"ice_servers"`
	ReadLimit            int64         `mapstructure:"read_limit"`
	PingPeriod           time.Duration `mapstructure:"ping_period"`
	DialTimeout          time.Duration `mapstructure:"dial_timeout"`
	MicFile              string        `mapstructure:"mic_file"`
	OutputFile           string        `mapstructure:"output_file"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("api_base_url", "https://api.ultravox.ai")
	v.SetDefault("api_key", "")
	v.SetDefault("experimental_messages", []string{})
	v.SetDefault("ice_servers", []string{"stun:stun.l.google.com:19302"})
	v.SetDefault("read_limit", 1<<20)
	v.SetDefault("ping_period", "20s")
	v.SetDefault("dial_timeout", "10s")
	v.SetDefault("mic_file", "")
	v.SetDefault("output_file", "")
}

// New builds a viper instance with defaults and VOXCALL_* environment
// overrides. A .env file in the working directory is loaded first if present.
func New() *viper.Viper {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("module", "config").Msg("failed to load .env")
	}
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads config/config.<CONFIG_ENV>.yaml into v and unmarshals the
// result. A missing file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)
	v.SetConfigFile(fileName)

	if err := v.ReadInConfig(); err != nil {
		log.Debug().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ExperimentalMessages = splitList(cfg.ExperimentalMessages)
	cfg.ICEServers = splitList(cfg.ICEServers)
	log.Debug().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Msg("config ready")
	return &cfg, nil
}

// splitList accepts both yaml lists and comma separated env values.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for part := range strings.SplitSeq(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
