package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ldelvaux/hsk-trainer/internal/auth/jwt"
)

// userStore is the slice of Repository the service needs.
type userStore interface {
	Create(ctx context.Context, email, passwordHash, locale string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, string, error)
	GetByID(ctx context.Context, userID uuid.UUID) (User, error)
	UpdateLocale(ctx context.Context, userID uuid.UUID, locale string) error
	UpdateLogin(ctx context.Context, userID uuid.UUID) error
}

// Service handles registration, login and token management.
type Service struct {
	users    userStore
	tokenMgr *jwt.Manager
	logger   zerolog.Logger
}

// ServiceOptions configures the auth service.
type ServiceOptions struct {
	TokenConfig jwt.TokenConfig
}

// NewService creates an authentication service.
func NewService(users userStore, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		tokenMgr: jwt.NewManager(opts.TokenConfig),
		logger:   logger,
	}
}

// Register creates a new account and issues its first token pair.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, fmt.Errorf("valid email required")
	}

	locale := req.Locale
	if !SupportedLocales[locale] {
		locale = DefaultLocale
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.Create(ctx, email, passwordHash, locale)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("email", email).Msg("user registered")
	return &user, tokens, nil
}

// Login authenticates with email/password. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid credentials")
	}
	if err := VerifyPassword(hash, req.Password); err != nil {
		return nil, nil, fmt.Errorf("invalid credentials")
	}

	_ = s.users.UpdateLogin(ctx, user.ID)

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	return &user, tokens, nil
}

// RefreshToken generates a new token pair from a refresh token.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenMgr.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	return s.generateTokenPair(user)
}

// GetUser fetches account details.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateLocale stores a new interface language for the account.
func (s *Service) UpdateLocale(ctx context.Context, userID uuid.UUID, locale string) error {
	if !SupportedLocales[locale] {
		return fmt.Errorf("unsupported locale %q", locale)
	}
	if err := s.users.UpdateLocale(ctx, userID, locale); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID.String()).Str("locale", locale).Msg("locale updated")
	return nil
}

// ValidateToken validates an access token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*jwt.Claims, error) {
	return s.tokenMgr.ValidateAccessToken(tokenString)
}

func (s *Service) generateTokenPair(user User) (*TokenPair, error) {
	jwtUser := jwt.User{
		ID:     user.ID,
		Email:  user.Email,
		Locale: user.Locale,
	}

	accessToken, err := s.tokenMgr.GenerateAccessToken(jwtUser)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenMgr.GenerateRefreshToken(jwtUser)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenMgr.AccessTTL().Seconds()),
	}, nil
}
