package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-core/internal/config"
	"github.com/gokatarajesh/quiz-core/internal/logging"
	"github.com/gokatarajesh/quiz-core/internal/progress"
	"github.com/gokatarajesh/quiz-core/internal/question"
	"github.com/gokatarajesh/quiz-core/internal/server"
)

// Application aggregates the catalog, the progress tracker and the optional HTTP server.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger
	out    io.Writer

	catalog  []question.Entry
	tracker  *progress.Tracker
	registry *prometheus.Registry
	http     *http.Server
}

// New bootstraps logger, counter, catalog and metrics. Rendered output goes to out.
func New(ctx context.Context, cfg *config.App, out io.Writer) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	ctx = logging.IntoContext(ctx, logger)
	logger.Info().Msg("starting application bootstrap")

	counter, err := progress.NewCounter(cfg.Progress.Total, cfg.Progress.Answered,
		progress.WithLogger(logger.With().Str("component", "progress").Logger()))
	if err != nil {
		return nil, fmt.Errorf("build progress counter: %w", err)
	}
	tracker := progress.NewTracker(counter,
		progress.WithGlyphs(progress.Glyphs{Filled: cfg.Progress.FilledGlyph, Empty: cfg.Progress.EmptyGlyph}),
		progress.WithTrackerLogger(logger),
	)

	catalog, err := loadCatalog(ctx, cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	if err := registry.Register(progress.NewCollector(tracker)); err != nil {
		return nil, fmt.Errorf("register progress collector: %w", err)
	}

	a := &Application{
		cfg:      cfg,
		logger:   logger,
		out:      out,
		catalog:  catalog,
		tracker:  tracker,
		registry: registry,
	}

	if cfg.HTTPAddr != "" {
		handler := progress.NewHTTPHandler(tracker)
		a.http = server.NewHTTPServer(cfg, logger, registry, handler.Handle)
	} else {
		logger.Info().Msg("HTTP_ADDR not set; HTTP server disabled")
	}

	return a, nil
}

// loadCatalog reads path, falling back to SampleCatalog when the file is absent.
func loadCatalog(ctx context.Context, path string) ([]question.Entry, error) {
	logger := logging.FromContext(ctx)
	if path == "" {
		return SampleCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Str("path", path).Msg("catalog not found; using built-in sample")
		return SampleCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	entries, err := question.ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	logger.Info().Str("path", path).Int("entries", len(entries)).Msg("catalog loaded")
	return entries, nil
}

// SampleCatalog is one question per answer kind.
func SampleCatalog() []question.Entry {
	return []question.Entry{
		question.TextQuestion{Question: question.New("aaa", "bbb", question.Easy)},
		question.NumberQuestion{Question: question.New("aaa", 1, question.Normal)},
		question.FlagQuestion{Question: question.New("aaa", true, question.Hard)},
	}
}

// Tracker exposes the tracker driving output and metrics.
func (a *Application) Tracker() *progress.Tracker { return a.tracker }

// Catalog returns the loaded entries.
func (a *Application) Catalog() []question.Entry { return a.catalog }

// Print writes every catalog entry followed by the progress bar.
func (a *Application) Print() error {
	for _, e := range a.catalog {
		if _, err := fmt.Fprintln(a.out, e.String()); err != nil {
			return fmt.Errorf("print catalog: %w", err)
		}
	}
	return a.tracker.RenderProgressBar(a.out)
}

// Run prints, then serves HTTP until a termination signal when enabled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.Print(); err != nil {
		return err
	}
	if a.http == nil {
		return nil
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
