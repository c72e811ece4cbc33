package trainer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ldelvaux/hsk-trainer/internal/auth"
	"github.com/ldelvaux/hsk-trainer/internal/quiz"
	"github.com/ldelvaux/hsk-trainer/internal/vocab"
	httperrors "github.com/ldelvaux/hsk-trainer/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for the training session
// lifecycle.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for session endpoints.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{svc: svc, logger: logger}
}

// questionView is the client-facing projection of the current
// question. The answer key stays server-side until the question is
// graded.
type questionView struct {
	Index   int      `json:"index"`
	Total   int      `json:"total"`
	Mode    string   `json:"mode"`
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices,omitempty"`
}

type sessionView struct {
	SessionID string         `json:"session_id"`
	QuizKey   string         `json:"quiz_key"`
	Seed      int64          `json:"seed"`
	Score     int            `json:"score"`
	Total     int            `json:"total"`
	Answered  bool           `json:"answered"`
	Complete  bool           `json:"complete"`
	Question  *questionView  `json:"question,omitempty"`
	History   []quiz.Outcome `json:"history,omitempty"`
}

func viewOf(attempt *Attempt) sessionView {
	state := attempt.State
	view := sessionView{
		SessionID: attempt.ID.String(),
		QuizKey:   attempt.QuizKey,
		Seed:      attempt.Seed,
		Score:     state.Score,
		Total:     len(state.Questions),
		Answered:  state.Answered,
		Complete:  state.Complete(),
	}
	if q, ok := state.Question(); ok {
		view.Question = &questionView{
			Index:   state.Current,
			Total:   len(state.Questions),
			Mode:    q.Mode.String(),
			Prompt:  q.Prompt(),
			Choices: q.Choices,
		}
	}
	if view.Complete {
		view.History = state.History
	}
	return view
}

// Start handles POST /v1/session/start
func (h *HTTPHandlers) Start(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.QuizKey == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "quiz_key is required")
		return
	}

	attempt, err := h.svc.Start(r.Context(), ownerFrom(r), req)
	if err != nil {
		switch {
		case errors.Is(err, quiz.ErrUnknownMode):
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidMode, err.Error())
		case errors.Is(err, vocab.ErrQuizNotFound):
			httperrors.RespondNotFound(w, httperrors.ErrCodeQuizNotFound, "Quiz not found")
		default:
			h.logger.Error().Err(err).Msg("start session failed")
			httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeStartFailed, "Could not start session")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, viewOf(attempt))
}

// Submit handles POST /v1/session/submit
func (h *HTTPHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
		Answer    string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid session id")
		return
	}

	outcome, attempt, err := h.svc.Submit(r.Context(), ownerFrom(r), sessionID, req.Answer)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"outcome": outcome,
		"session": viewOf(attempt),
	})
}

// Advance handles POST /v1/session/advance
func (h *HTTPHandlers) Advance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid session id")
		return
	}

	attempt, err := h.svc.Advance(r.Context(), ownerFrom(r), sessionID)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, viewOf(attempt))
}

// Get handles GET /v1/session?id=<uuid>
func (h *HTTPHandlers) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	sessionID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid session id")
		return
	}

	attempt, err := h.svc.Get(r.Context(), ownerFrom(r), sessionID)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, viewOf(attempt))
}

func (h *HTTPHandlers) respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeSessionNotFound, "Session not found")
	case errors.Is(err, ErrNotOwner):
		httperrors.RespondForbidden(w, httperrors.ErrCodeSessionNotFound, "Session not found")
	case errors.Is(err, quiz.ErrSessionComplete):
		httperrors.RespondError(w, http.StatusConflict, httperrors.ErrCodeSessionComplete, "Session already complete")
	case errors.Is(err, quiz.ErrAlreadyAnswered):
		httperrors.RespondError(w, http.StatusConflict, httperrors.ErrCodeAlreadyAnswered, "Question already answered")
	case errors.Is(err, quiz.ErrNotAnswered):
		httperrors.RespondError(w, http.StatusConflict, httperrors.ErrCodeNotAnswered, "Current question not answered yet")
	default:
		h.logger.Error().Err(err).Msg("session operation failed")
		httperrors.RespondInternalError(w, "Internal error")
	}
}

func ownerFrom(r *http.Request) *uuid.UUID {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		return nil
	}
	id := claims.UserID
	return &id
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("encode response failed")
	}
}
