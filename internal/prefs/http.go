package prefs

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ldelvaux/hsk-trainer/internal/auth"
	httperrors "github.com/ldelvaux/hsk-trainer/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for user preferences.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for preference endpoints.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{svc: svc, logger: logger}
}

// Preferences handles GET and PUT /v1/preferences
func (h *HTTPHandlers) Preferences(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
	}
}

func (h *HTTPHandlers) list(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	values, err := h.svc.All(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error().Err(err).Msg("list preferences failed")
		httperrors.RespondInternalError(w, "Could not load preferences")
		return
	}
	if values == nil {
		values = map[string]string{}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"preferences": values,
	})
}

func (h *HTTPHandlers) update(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	var req struct {
		DefaultQuestionCount *int `json:"default_num_questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.DefaultQuestionCount == nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "default_num_questions is required")
		return
	}
	if *req.DefaultQuestionCount <= 0 {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "default_num_questions must be positive")
		return
	}

	if err := h.svc.SetDefaultQuestionCount(r.Context(), claims.UserID, *req.DefaultQuestionCount); err != nil {
		h.logger.Error().Err(err).Msg("store preference failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodePreferenceFailed, "Could not store preference")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		KeyDefaultQuestionCount: strconv.Itoa(*req.DefaultQuestionCount),
	})
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("encode response failed")
	}
}
