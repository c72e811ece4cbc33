package vocab

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	httperrors "github.com/ldelvaux/hsk-trainer/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for the quiz catalog.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for catalog endpoints.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{svc: svc, logger: logger}
}

// Quizzes handles GET /v1/quizzes and GET /v1/quizzes/{key}
func (h *HTTPHandlers) Quizzes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	key := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/quizzes"), "/")
	if key == "" {
		h.list(w, r)
		return
	}
	h.get(w, r, key)
}

func (h *HTTPHandlers) list(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.svc.Quizzes(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list quizzes failed")
		httperrors.RespondInternalError(w, "Could not list quizzes")
		return
	}
	if quizzes == nil {
		quizzes = []Quiz{}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"quizzes": quizzes,
	})
}

func (h *HTTPHandlers) get(w http.ResponseWriter, r *http.Request, key string) {
	quiz, err := h.svc.Quiz(r.Context(), key)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeQuizNotFound, "Quiz not found")
			return
		}
		h.logger.Error().Err(err).Str("quiz", key).Msg("get quiz failed")
		httperrors.RespondInternalError(w, "Could not load quiz")
		return
	}

	h.respondJSON(w, http.StatusOK, quiz)
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("encode response failed")
	}
}
