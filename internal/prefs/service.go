package prefs

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// KeyDefaultQuestionCount stores the preferred question count for new
// sessions. Values are opaque strings; non-numeric content is tolerated.
const KeyDefaultQuestionCount = "default_num_questions"

// settingsStore is the slice of Repository the service needs.
type settingsStore interface {
	Get(ctx context.Context, userID uuid.UUID, key string) (string, bool, error)
	Set(ctx context.Context, userID uuid.UUID, key, value string) error
	Delete(ctx context.Context, userID uuid.UUID, key string) error
	All(ctx context.Context, userID uuid.UUID) (map[string]string, error)
}

// Service reads and writes user preferences.
type Service struct {
	store  settingsStore
	logger zerolog.Logger
}

// NewService wraps a settings store.
func NewService(store settingsStore, logger zerolog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// All returns the user's stored preferences.
func (s *Service) All(ctx context.Context, userID uuid.UUID) (map[string]string, error) {
	return s.store.All(ctx, userID)
}

// Set stores one preference value.
func (s *Service) Set(ctx context.Context, userID uuid.UUID, key, value string) error {
	return s.store.Set(ctx, userID, key, value)
}

// Delete removes one preference.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, key string) error {
	return s.store.Delete(ctx, userID, key)
}

// DefaultQuestionCount resolves the user's preferred count, falling
// back to fallback when the preference is absent, unreadable or not a
// positive number. A store error also degrades to the fallback so a
// session start never fails on a preference lookup.
func (s *Service) DefaultQuestionCount(ctx context.Context, userID uuid.UUID, fallback int) int {
	raw, ok, err := s.store.Get(ctx, userID, KeyDefaultQuestionCount)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("preference lookup failed")
		return fallback
	}
	if !ok {
		return fallback
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count <= 0 {
		s.logger.Debug().Str("value", raw).Msg("ignoring malformed question count preference")
		return fallback
	}
	return count
}

// SetDefaultQuestionCount persists the preferred count.
func (s *Service) SetDefaultQuestionCount(ctx context.Context, userID uuid.UUID, count int) error {
	return s.store.Set(ctx, userID, KeyDefaultQuestionCount, strconv.Itoa(count))
}
