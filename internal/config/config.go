package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	SendBuffer int           `mapstructure:"send_buffer"`
	Secret     string        `mapstructure:"secret"`

	CodeLength   int    `mapstructure:"code_length"`
	CodeAlphabet string `mapstructure:"code_alphabet"`

	ReapInterval time.Duration `mapstructure:"reap_interval"`
	GracePeriod  time.Duration `mapstructure:"grace_period"`

	JoinLimit  int           `mapstructure:"join_limit"`
	JoinWindow time.Duration `mapstructure:"join_window"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("send_buffer", 32)
	v.SetDefault("code_length", 6)
	v.SetDefault("code_alphabet", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	v.SetDefault("reap_interval", "60s")
	v.SetDefault("grace_period", "5m")
	v.SetDefault("join_limit", 10)
	v.SetDefault("join_window", "1m")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Secret == "" {
		// An empty secret would key the cookie store on nothing. The
		// generated one invalidates sessions on restart, so configure a
		// real secret for production.
		cfg.Secret = uuid.NewString()
		log.Warn().Str("module", "config").Msg("secret not configured, generated an ephemeral one")
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Msg("config ready")
	return &cfg, nil
}
