package vocab

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrQuizNotFound is returned when a quiz key has no row.
var ErrQuizNotFound = errors.New("quiz not found")

// Repository reads the vocabulary catalog from Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps a pgx pool for catalog queries.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListQuizzes returns every quiz ordered by level then title; quizzes
// without a level sort last.
func (r *Repository) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT quiz_id, key, title, COALESCE(description, ''), COALESCE(level, 0)
		FROM quizzes
		ORDER BY COALESCE(level, 9999), title`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []Quiz
	for rows.Next() {
		var q Quiz
		if err := rows.Scan(&q.ID, &q.Key, &q.Title, &q.Description, &q.Level); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// GetQuiz fetches quiz metadata by key.
func (r *Repository) GetQuiz(ctx context.Context, key string) (Quiz, error) {
	var q Quiz
	err := r.pool.QueryRow(ctx, `
		SELECT quiz_id, key, title, COALESCE(description, ''), COALESCE(level, 0)
		FROM quizzes WHERE key = $1`, key).
		Scan(&q.ID, &q.Key, &q.Title, &q.Description, &q.Level)
	if errors.Is(err, pgx.ErrNoRows) {
		return Quiz{}, ErrQuizNotFound
	}
	if err != nil {
		return Quiz{}, fmt.Errorf("get quiz %q: %w", key, err)
	}
	return q, nil
}

// GetEntries returns the active entries of a quiz in insertion order.
func (r *Repository) GetEntries(ctx context.Context, quizKey string) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.hanzi, e.pinyin, e.translation,
		       COALESCE(e.alt_translations, ''), COALESCE(e.tags, '')
		FROM entries e
		JOIN quizzes q ON q.quiz_id = e.quiz_id
		WHERE q.key = $1 AND e.is_active
		ORDER BY e.entry_id`, quizKey)
	if err != nil {
		return nil, fmt.Errorf("get entries for %q: %w", quizKey, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Hanzi, &e.Pinyin, &e.Translation, &e.AltTranslations, &e.Tags); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
