package trainer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/ldelvaux/hsk-trainer/internal/quiz"
	"github.com/ldelvaux/hsk-trainer/internal/vocab"
)

type stubVocab struct {
	pools map[string][]vocab.Entry
}

func (s *stubVocab) Pool(_ context.Context, quizKey string) ([]vocab.Entry, error) {
	pool, ok := s.pools[quizKey]
	if !ok {
		return nil, vocab.ErrQuizNotFound
	}
	return pool, nil
}

type stubPrefs struct {
	counts map[uuid.UUID]int
}

func (s *stubPrefs) DefaultQuestionCount(_ context.Context, userID uuid.UUID, fallback int) int {
	if count, ok := s.counts[userID]; ok {
		return count
	}
	return fallback
}

type memorySessionStore struct {
	attempts map[uuid.UUID]*Attempt
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{attempts: map[uuid.UUID]*Attempt{}}
}

func (s *memorySessionStore) Save(_ context.Context, attempt *Attempt) error {
	copied := *attempt
	state := *attempt.State
	copied.State = &state
	s.attempts[attempt.ID] = &copied
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id uuid.UUID) (*Attempt, error) {
	attempt, ok := s.attempts[id]
	if !ok {
		return nil, nil
	}
	copied := *attempt
	state := *attempt.State
	copied.State = &state
	return &copied, nil
}

func (s *memorySessionStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.attempts, id)
	return nil
}

func testService(pool []vocab.Entry, prefCounts map[uuid.UUID]int) *Service {
	return NewService(
		&stubVocab{pools: map[string][]vocab.Entry{"HSK1": pool}},
		&stubPrefs{counts: prefCounts},
		newMemorySessionStore(),
		Options{DefaultCount: 3, ChoiceCount: 4, MatchTones: true},
		zerolog.Nop(),
	)
}

func entriesFor(n int) []vocab.Entry {
	words := []struct{ h, p, tr string }{
		{"你好", "nǐ hǎo", "bonjour"},
		{"谢谢", "xiè xie", "merci"},
		{"再见", "zài jiàn", "au revoir"},
		{"老师", "lǎo shī", "professeur"},
		{"学生", "xué shēng", "étudiant"},
		{"朋友", "péng you", "ami"},
	}
	out := make([]vocab.Entry, 0, n)
	for i := 0; i < n && i < len(words); i++ {
		out = append(out, vocab.Entry{Hanzi: words[i].h, Pinyin: words[i].p, Translation: words[i].tr})
	}
	return out
}

func TestStartGuestSession(t *testing.T) {
	svc := testService(entriesFor(6), nil)

	attempt, err := svc.Start(context.Background(), nil, StartRequest{
		QuizKey: "HSK1",
		Mode:    "translation_input",
	})
	assert.NoError(t, err)
	assert.Nil(t, attempt.Owner)
	assert.Equal(t, "HSK1", attempt.QuizKey)
	assert.Len(t, attempt.State.Questions, 3, "configured default count")
	assert.NotZero(t, attempt.ID)
}

func TestStartUsesStoredPreference(t *testing.T) {
	owner := uuid.New()
	svc := testService(entriesFor(6), map[uuid.UUID]int{owner: 5})

	attempt, err := svc.Start(context.Background(), &owner, StartRequest{
		QuizKey: "HSK1",
		Mode:    "translation_input",
	})
	assert.NoError(t, err)
	assert.Len(t, attempt.State.Questions, 5)

	// An explicit count wins over the preference.
	attempt, err = svc.Start(context.Background(), &owner, StartRequest{
		QuizKey: "HSK1",
		Mode:    "translation_input",
		Count:   2,
	})
	assert.NoError(t, err)
	assert.Len(t, attempt.State.Questions, 2)
}

func TestStartSeedReproducible(t *testing.T) {
	svc := testService(entriesFor(6), nil)
	seed := int64(42)

	a, err := svc.Start(context.Background(), nil, StartRequest{
		QuizKey: "HSK1", Mode: "translation_choice", Seed: &seed,
	})
	assert.NoError(t, err)
	b, err := svc.Start(context.Background(), nil, StartRequest{
		QuizKey: "HSK1", Mode: "translation_choice", Seed: &seed,
	})
	assert.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, seed, a.Seed)
	assert.Equal(t, a.State.Questions, b.State.Questions)
}

func TestStartUnknownMode(t *testing.T) {
	svc := testService(entriesFor(6), nil)

	_, err := svc.Start(context.Background(), nil, StartRequest{QuizKey: "HSK1", Mode: "freestyle"})
	assert.ErrorIs(t, err, quiz.ErrUnknownMode)
}

func TestStartUnknownQuiz(t *testing.T) {
	svc := testService(entriesFor(6), nil)

	_, err := svc.Start(context.Background(), nil, StartRequest{QuizKey: "HSK9", Mode: "translation_input"})
	assert.ErrorIs(t, err, vocab.ErrQuizNotFound)
}

func TestSubmitAndAdvanceFlow(t *testing.T) {
	svc := testService(entriesFor(3), nil)
	ctx := context.Background()

	attempt, err := svc.Start(ctx, nil, StartRequest{QuizKey: "HSK1", Mode: "translation_input"})
	assert.NoError(t, err)

	current, ok := attempt.State.Question()
	assert.True(t, ok)

	outcome, updated, err := svc.Submit(ctx, nil, attempt.ID, current.Translation)
	assert.NoError(t, err)
	assert.True(t, outcome.IsCorrect)
	assert.Equal(t, 1, updated.State.Score)

	// Double submit is rejected and the stored state is untouched.
	_, _, err = svc.Submit(ctx, nil, attempt.ID, current.Translation)
	assert.ErrorIs(t, err, quiz.ErrAlreadyAnswered)

	updated, err = svc.Advance(ctx, nil, attempt.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, updated.State.Current)

	loaded, err := svc.Get(ctx, nil, attempt.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, loaded.State.Score)
	assert.Equal(t, 1, loaded.State.Current)
}

func TestSessionNotFound(t *testing.T) {
	svc := testService(entriesFor(3), nil)

	_, err := svc.Get(context.Background(), nil, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, _, err = svc.Submit(context.Background(), nil, uuid.New(), "x")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestOwnershipEnforced(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	svc := testService(entriesFor(3), nil)
	ctx := context.Background()

	attempt, err := svc.Start(ctx, &owner, StartRequest{QuizKey: "HSK1", Mode: "translation_input"})
	assert.NoError(t, err)

	_, err = svc.Get(ctx, &other, attempt.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Get(ctx, nil, attempt.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	loaded, err := svc.Get(ctx, &owner, attempt.ID)
	assert.NoError(t, err)
	assert.Equal(t, attempt.ID, loaded.ID)
}

func TestGuestSessionOpenToAnyCaller(t *testing.T) {
	someone := uuid.New()
	svc := testService(entriesFor(3), nil)
	ctx := context.Background()

	attempt, err := svc.Start(ctx, nil, StartRequest{QuizKey: "HSK1", Mode: "translation_input"})
	assert.NoError(t, err)

	// The session id is the only capability for guest attempts.
	_, err = svc.Get(ctx, &someone, attempt.ID)
	assert.NoError(t, err)
}
