package trainer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ldelvaux/hsk-trainer/internal/quiz"
	"github.com/ldelvaux/hsk-trainer/internal/vocab"
)

var (
	// ErrSessionNotFound covers unknown and expired session ids.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNotOwner rejects driving another user's session.
	ErrNotOwner = errors.New("session owned by another user")
)

// VocabSource supplies entry pools (implemented by vocab.Service).
type VocabSource interface {
	Pool(ctx context.Context, quizKey string) ([]vocab.Entry, error)
}

// PreferenceSource resolves the stored default question count
// (implemented by prefs.Service). May be nil.
type PreferenceSource interface {
	DefaultQuestionCount(ctx context.Context, userID uuid.UUID, fallback int) int
}

// Options hold runtime defaults for new attempts.
type Options struct {
	DefaultCount int
	ChoiceCount  int
	MatchTones   bool
}

// Service orchestrates the attempt lifecycle.
type Service struct {
	vocab  VocabSource
	prefs  PreferenceSource
	store  SessionStore
	opts   Options
	logger zerolog.Logger
}

// NewService wires the trainer's collaborators.
func NewService(vocabSvc VocabSource, prefsSvc PreferenceSource, store SessionStore, opts Options, logger zerolog.Logger) *Service {
	if opts.DefaultCount <= 0 {
		opts.DefaultCount = 10
	}
	if opts.ChoiceCount <= 0 {
		opts.ChoiceCount = quiz.DefaultChoiceCount
	}
	return &Service{
		vocab:  vocabSvc,
		prefs:  prefsSvc,
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// Start builds and persists a fresh attempt. The effective question
// count is the request's, else the owner's stored preference, else the
// configured default; it is clamped to the pool size by the builder.
// Mode validation happens here so a bad mode never reaches the store.
func (s *Service) Start(ctx context.Context, owner *uuid.UUID, req StartRequest) (*Attempt, error) {
	mode, err := quiz.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	pool, err := s.vocab.Pool(ctx, req.QuizKey)
	if err != nil {
		return nil, fmt.Errorf("fetch pool: %w", err)
	}

	count := req.Count
	if count <= 0 {
		count = s.opts.DefaultCount
		if owner != nil && s.prefs != nil {
			count = s.prefs.DefaultQuestionCount(ctx, *owner, s.opts.DefaultCount)
		}
	}

	seed := rand.Int63()
	if req.Seed != nil {
		seed = *req.Seed
	}

	matchTones := s.opts.MatchTones
	if req.MatchTones != nil {
		matchTones = *req.MatchTones
	}

	choices := req.Choices
	if choices <= 0 {
		choices = s.opts.ChoiceCount
	}

	questions, err := quiz.Build(pool, count, mode, seed, quiz.BuildOptions{
		NumChoices: choices,
		MatchTones: matchTones,
	})
	if err != nil {
		return nil, err
	}

	attempt := &Attempt{
		ID:        uuid.New(),
		Owner:     owner,
		QuizKey:   req.QuizKey,
		Seed:      seed,
		State:     quiz.NewSession(questions),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}

	s.logger.Info().
		Str("session_id", attempt.ID.String()).
		Str("quiz", req.QuizKey).
		Str("mode", mode.String()).
		Int("questions", len(questions)).
		Msg("session started")
	return attempt, nil
}

// Submit grades one answer against the attempt's current question and
// persists the updated state.
func (s *Service) Submit(ctx context.Context, owner *uuid.UUID, sessionID uuid.UUID, answer string) (quiz.Outcome, *Attempt, error) {
	attempt, err := s.load(ctx, owner, sessionID)
	if err != nil {
		return quiz.Outcome{}, nil, err
	}

	outcome, err := attempt.State.Submit(answer)
	if err != nil {
		return quiz.Outcome{}, nil, err
	}

	if err := s.store.Save(ctx, attempt); err != nil {
		return quiz.Outcome{}, nil, fmt.Errorf("save attempt: %w", err)
	}
	return outcome, attempt, nil
}

// Advance moves the attempt to its next question.
func (s *Service) Advance(ctx context.Context, owner *uuid.UUID, sessionID uuid.UUID) (*Attempt, error) {
	attempt, err := s.load(ctx, owner, sessionID)
	if err != nil {
		return nil, err
	}

	if err := attempt.State.Advance(); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}
	return attempt, nil
}

// Get returns the attempt snapshot for display.
func (s *Service) Get(ctx context.Context, owner *uuid.UUID, sessionID uuid.UUID) (*Attempt, error) {
	return s.load(ctx, owner, sessionID)
}

func (s *Service) load(ctx context.Context, owner *uuid.UUID, sessionID uuid.UUID) (*Attempt, error) {
	attempt, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load attempt: %w", err)
	}
	if attempt == nil || attempt.State == nil {
		return nil, ErrSessionNotFound
	}
	if attempt.Owner != nil && (owner == nil || *owner != *attempt.Owner) {
		return nil, ErrNotOwner
	}
	return attempt, nil
}
