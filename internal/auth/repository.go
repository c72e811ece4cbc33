package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEmailTaken is returned when registering an existing email.
var ErrEmailTaken = errors.New("email already registered")

// ErrUserNotFound is returned for unknown ids or emails.
var ErrUserNotFound = errors.New("user not found")

// Repository persists accounts in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps a pgx pool for account queries.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new account and returns it.
func (r *Repository) Create(ctx context.Context, email, passwordHash, locale string) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, locale)
		VALUES ($1, $2, $3)
		RETURNING user_id, email, locale, created_at`,
		email, passwordHash, locale).
		Scan(&user.ID, &user.Email, &user.Locale, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetByEmail fetches an account plus its password hash.
func (r *Repository) GetByEmail(ctx context.Context, email string) (User, string, error) {
	var (
		user User
		hash string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, email, locale, created_at, password_hash
		FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Email, &user.Locale, &user.CreatedAt, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, "", ErrUserNotFound
	}
	if err != nil {
		return User{}, "", fmt.Errorf("get user by email: %w", err)
	}
	return user, hash, nil
}

// GetByID fetches an account.
func (r *Repository) GetByID(ctx context.Context, userID uuid.UUID) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, email, locale, created_at
		FROM users WHERE user_id = $1`, userID).
		Scan(&user.ID, &user.Email, &user.Locale, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// UpdateLocale changes the stored interface language.
func (r *Repository) UpdateLocale(ctx context.Context, userID uuid.UUID, locale string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET locale = $2 WHERE user_id = $1`, userID, locale)
	if err != nil {
		return fmt.Errorf("update locale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateLogin records the last login timestamp.
func (r *Repository) UpdateLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login_at = now() WHERE user_id = $1`, userID)
	return err
}
