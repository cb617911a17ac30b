package progress

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-core/internal/logging"
	httperrors "github.com/gokatarajesh/quiz-core/pkg/http/errors"
)

// HTTPHandler exposes a tracker over REST. It logs through the logger the
// request context carries (see logging.IntoContext).
type HTTPHandler struct {
	tracker *Tracker
}

// NewHTTPHandler constructs a progress HTTP handler.
func NewHTTPHandler(tracker *Tracker) *HTTPHandler {
	return &HTTPHandler{tracker: tracker}
}

func requestLogger(r *http.Request) zerolog.Logger {
	return logging.FromContext(r.Context()).With().Str("component", "progress_http").Logger()
}

// UpdateRequest carries the fields to change; omitted fields are kept.
type UpdateRequest struct {
	Total    *int `json:"total,omitempty"`
	Answered *int `json:"answered,omitempty"`
}

// StatusResponse is returned after a successful update.
type StatusResponse struct {
	Snapshot
	Text string `json:"text"`
}

// Handle routes /v1/progress.
//
//	GET: rendered bar as text/plain
//	PUT: apply UpdateRequest, reply with StatusResponse
func (h *HTTPHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handlePut(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w, "GET, PUT")
	}
}

func (h *HTTPHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.tracker.RenderProgressBar(w); err != nil {
		logger := requestLogger(r)
		logger.Error().Err(err).Msg("write progress bar")
	}
}

func (h *HTTPHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid JSON body")
		return
	}
	if req.Total == nil && req.Answered == nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "total or answered is required")
		return
	}

	if err := h.apply(req); err != nil {
		if errors.Is(err, ErrInvalidProgress) {
			httperrors.RespondError(w, http.StatusUnprocessableEntity, httperrors.ErrCodeInvalidProgress, err.Error())
			return
		}
		logger := requestLogger(r)
		logger.Error().Err(err).Msg("update progress")
		httperrors.RespondInternalError(w, "failed to update progress")
		return
	}

	s := h.tracker.Snapshot()
	logger := requestLogger(r)
	logger.Info().
		Int("total", s.Total).
		Int("answered", s.Answered).
		Msg("progress updated over http")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(StatusResponse{Snapshot: s, Text: Text(s)})
}

func (h *HTTPHandler) apply(req UpdateRequest) error {
	counter := h.tracker.Counter()
	switch {
	case req.Total != nil && req.Answered != nil:
		return counter.Set(Snapshot{Total: *req.Total, Answered: *req.Answered})
	case req.Total != nil:
		return counter.SetTotal(*req.Total)
	default:
		return counter.SetAnswered(*req.Answered)
	}
}
