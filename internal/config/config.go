package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds runtime configuration for the quiz demo and its HTTP surface.
type App struct {
	Name     string `env:"APP_NAME" envDefault:"quiz-core"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// HTTPAddr is optional; the demo exits after printing when it is empty.
	HTTPAddr                string        `env:"HTTP_ADDR"`
	CatalogPath             string        `env:"CATALOG_PATH" envDefault:"configs/catalog.yaml"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Progress Progress
}

// Progress seeds the counter and bar glyphs.
type Progress struct {
	Total       int    `env:"PROGRESS_TOTAL" envDefault:"10"`
	Answered    int    `env:"PROGRESS_ANSWERED" envDefault:"3"`
	FilledGlyph string `env:"PROGRESS_FILLED_GLYPH" envDefault:"▓"`
	EmptyGlyph  string `env:"PROGRESS_EMPTY_GLYPH" envDefault:"▒"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Progress.Total < 0 || cfg.Progress.Answered < 0 || cfg.Progress.Answered > cfg.Progress.Total {
		return nil, fmt.Errorf("parse config: PROGRESS_ANSWERED=%d must be within [0, PROGRESS_TOTAL=%d]",
			cfg.Progress.Answered, cfg.Progress.Total)
	}
	return cfg, nil
}
