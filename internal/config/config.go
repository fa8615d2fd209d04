package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment  string  `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelName string  `env:"LOG_LEVEL"   envDefault:"info"`
	LogFile      string  `env:"LOG_FILE"`    // empty logs to stderr
	ContentDir   string  `env:"CONTENT_DIR"` // empty uses the embedded content tables
	Seed         int64   `env:"GAME_SEED"`   // zero seeds from the clock
	TimeScale    float64 `env:"TIME_SCALE"  envDefault:"1"`

	LogLevel slog.Level `env:"-"`
}

// HasSeed reports whether a fixed seed was configured.
func (c *Config) HasSeed() bool {
	return c.Seed != 0
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TimeScale <= 0 {
		return nil, fmt.Errorf("invalid TIME_SCALE: must be positive, got %v", cfg.TimeScale)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	return &cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
