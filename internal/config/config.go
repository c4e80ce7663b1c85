package config

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Config holds process settings, sourced from FLOWSCOPE_* environment
// variables with sensible defaults.
type Config struct {
	ListenAddr        string
	DockerHost        string
	BroadcastInterval time.Duration
	LogLevel          string
	CORSOrigins       string
}

// Load reads configuration from the environment.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("FLOWSCOPE")
	v.AutomaticEnv()

	v.SetDefault("LISTEN_ADDR", ":8850")
	v.SetDefault("DOCKER_HOST", "")
	v.SetDefault("BROADCAST_INTERVAL", 5*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "*")

	return &Config{
		ListenAddr:        v.GetString("LISTEN_ADDR"),
		DockerHost:        v.GetString("DOCKER_HOST"),
		BroadcastInterval: v.GetDuration("BROADCAST_INTERVAL"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		CORSOrigins:       v.GetString("CORS_ORIGINS"),
	}
}

// SlogLevel maps the configured level string to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
