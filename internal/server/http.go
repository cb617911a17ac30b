package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-core/internal/config"
	"github.com/gokatarajesh/quiz-core/internal/logging"
)

// NewHTTPServer wires health, metrics and progress routes. Every request
// context carries logger for handlers to pick up with logging.FromContext.
// progressHandler can be nil, in which case /v1/progress is not mounted.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, gatherer prometheus.Gatherer, progressHandler http.HandlerFunc) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog: &promLogger{logger: logger},
	}))

	if progressHandler != nil {
		mux.HandleFunc("/v1/progress", progressHandler)
	}

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: withLogger(mux, logger),
	}
}

// promLogger adapts zerolog to promhttp's Println-style logger.
type promLogger struct {
	logger zerolog.Logger
}

func (l *promLogger) Println(v ...interface{}) {
	l.logger.Error().Msgf("metrics: %v", v)
}

func withLogger(next http.Handler, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(logging.IntoContext(r.Context(), logger)))
	})
}
