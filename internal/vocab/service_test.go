package vocab

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubStore struct {
	quizzes    []Quiz
	entries    map[string][]Entry
	entryCalls int
	quizCalls  int
	entriesErr error
	getQuizErr error
}

func (s *stubStore) ListQuizzes(_ context.Context) ([]Quiz, error) {
	return s.quizzes, nil
}

func (s *stubStore) GetQuiz(_ context.Context, key string) (Quiz, error) {
	s.quizCalls++
	if s.getQuizErr != nil {
		return Quiz{}, s.getQuizErr
	}
	for _, q := range s.quizzes {
		if q.Key == key {
			return q, nil
		}
	}
	return Quiz{}, ErrQuizNotFound
}

func (s *stubStore) GetEntries(_ context.Context, quizKey string) ([]Entry, error) {
	s.entryCalls++
	if s.entriesErr != nil {
		return nil, s.entriesErr
	}
	return s.entries[quizKey], nil
}

type memoryCache struct {
	store  map[string][]Entry
	getErr error
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: map[string][]Entry{}}
}

func (c *memoryCache) Get(_ context.Context, quizKey string) ([]Entry, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.store[quizKey], nil
}

func (c *memoryCache) Set(_ context.Context, quizKey string, entries []Entry) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.store[quizKey] = entries
	return nil
}

func testStore() *stubStore {
	return &stubStore{
		quizzes: []Quiz{{ID: 1, Key: "HSK1", Title: "HSK 1", Level: 1}},
		entries: map[string][]Entry{
			"HSK1": {
				{Hanzi: "你好", Pinyin: "nǐ hǎo", Translation: "bonjour"},
				{Hanzi: "谢谢", Pinyin: "xiè xie", Translation: "merci"},
			},
		},
	}
}

func TestPoolCachesEntries(t *testing.T) {
	store := testStore()
	cache := newMemoryCache()
	svc := NewService(store, cache, zerolog.Nop())

	entries, err := svc.Pool(context.Background(), "HSK1")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 1, store.entryCalls)

	// Second lookup is served from the cache.
	again, err := svc.Pool(context.Background(), "HSK1")
	assert.NoError(t, err)
	assert.Equal(t, entries, again)
	assert.Equal(t, 1, store.entryCalls)
}

func TestPoolWithoutCache(t *testing.T) {
	store := testStore()
	svc := NewService(store, nil, zerolog.Nop())

	entries, err := svc.Pool(context.Background(), "HSK1")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPoolCacheFailureDegrades(t *testing.T) {
	store := testStore()
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := NewService(store, cache, zerolog.Nop())

	entries, err := svc.Pool(context.Background(), "HSK1")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPoolUnknownQuiz(t *testing.T) {
	store := testStore()
	svc := NewService(store, nil, zerolog.Nop())

	_, err := svc.Pool(context.Background(), "HSK9")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestPoolEmptyKnownQuiz(t *testing.T) {
	store := testStore()
	store.quizzes = append(store.quizzes, Quiz{ID: 2, Key: "HSK2", Title: "HSK 2", Level: 2})
	svc := NewService(store, nil, zerolog.Nop())

	entries, err := svc.Pool(context.Background(), "HSK2")
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestQuizzes(t *testing.T) {
	store := testStore()
	svc := NewService(store, nil, zerolog.Nop())

	quizzes, err := svc.Quizzes(context.Background())
	assert.NoError(t, err)
	assert.Len(t, quizzes, 1)

	quiz, err := svc.Quiz(context.Background(), "HSK1")
	assert.NoError(t, err)
	assert.Equal(t, "HSK 1", quiz.Title)

	_, err = svc.Quiz(context.Background(), "HSK9")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}
