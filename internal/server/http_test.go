package server

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/quiz-core/internal/config"
	"github.com/gokatarajesh/quiz-core/internal/progress"
)

func newTestServer(t *testing.T, withProgress bool) *httptest.Server {
	t.Helper()
	return newLoggedTestServer(t, withProgress, zerolog.Nop())
}

func newLoggedTestServer(t *testing.T, withProgress bool, logger zerolog.Logger) *httptest.Server {
	t.Helper()
	counter, err := progress.NewCounter(10, 3)
	require.NoError(t, err)
	tracker := progress.NewTracker(counter)

	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(progress.NewCollector(tracker)))

	var handler http.HandlerFunc
	if withProgress {
		handler = progress.NewHTTPHandler(tracker).Handle
	}
	srv := NewHTTPServer(&config.App{HTTPAddr: "127.0.0.1:0"}, logger, registry, handler)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, true)
	code, body := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestMetricsExposeProgress(t *testing.T) {
	ts := newTestServer(t, true)
	code, body := get(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "quiz_progress_total_questions")
	assert.Contains(t, body, "quiz_progress_answered_questions")
}

func TestProgressRouteIsOptional(t *testing.T) {
	code, body := get(t, newTestServer(t, true).URL+"/v1/progress")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "▓▓▓▒▒▒▒▒▒▒\n3 of 10 answered\n", body)

	code, _ = get(t, newTestServer(t, false).URL+"/v1/progress")
	assert.Equal(t, http.StatusNotFound, code)
}

// lockedBuffer is written by the server goroutine and read by the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServerInjectsLoggerIntoRequests(t *testing.T) {
	var buf lockedBuffer
	ts := newLoggedTestServer(t, true, zerolog.New(&buf))

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/v1/progress", strings.NewReader(`{"answered":5}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), "progress updated over http")
}
