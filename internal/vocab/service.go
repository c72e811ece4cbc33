package vocab

import (
	"context"

	"github.com/rs/zerolog"
)

// catalogStore is the slice of Repository the service needs.
type catalogStore interface {
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	GetQuiz(ctx context.Context, key string) (Quiz, error)
	GetEntries(ctx context.Context, quizKey string) ([]Entry, error)
}

// PoolCache fronts entry lookups (implemented by the Redis Cache).
type PoolCache interface {
	Get(ctx context.Context, quizKey string) ([]Entry, error)
	Set(ctx context.Context, quizKey string, entries []Entry) error
}

// Service is the vocabulary source the trainer pulls pools from.
type Service struct {
	store  catalogStore
	cache  PoolCache
	logger zerolog.Logger
}

// NewService wires the repository and cache. cache may be nil.
func NewService(store catalogStore, cache PoolCache, logger zerolog.Logger) *Service {
	return &Service{store: store, cache: cache, logger: logger}
}

// Quizzes lists the available datasets.
func (s *Service) Quizzes(ctx context.Context) ([]Quiz, error) {
	return s.store.ListQuizzes(ctx)
}

// Quiz returns one dataset's metadata.
func (s *Service) Quiz(ctx context.Context, key string) (Quiz, error) {
	return s.store.GetQuiz(ctx, key)
}

// Pool returns the active entries for a quiz key, cached when possible.
// Cache failures degrade to the repository; cache write errors are
// logged and swallowed.
func (s *Service) Pool(ctx context.Context, quizKey string) ([]Entry, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, quizKey); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.Warn().Err(err).Str("quiz", quizKey).Msg("pool cache read failed")
		}
	}

	entries, err := s.store.GetEntries(ctx, quizKey)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		// Distinguish an empty dataset from an unknown key.
		if _, err := s.store.GetQuiz(ctx, quizKey); err != nil {
			return nil, err
		}
	}

	if s.cache != nil && len(entries) > 0 {
		if err := s.cache.Set(ctx, quizKey, entries); err != nil {
			s.logger.Warn().Err(err).Str("quiz", quizKey).Msg("pool cache write failed")
		}
	}
	return entries, nil
}
