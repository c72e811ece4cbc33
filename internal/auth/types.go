package auth

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLocale is assigned to accounts that do not pick one.
const DefaultLocale = "fr"

// SupportedLocales lists the interface languages an account may store.
var SupportedLocales = map[string]bool{
	"fr": true,
	"en": true,
}

// User is a registered account.
type User struct {
	ID        uuid.UUID
	Email     string
	Locale    string
	CreatedAt time.Time
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RegisterRequest for email/password registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Locale   string `json:"locale"`
}

// LoginRequest for email/password authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
