package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInvalidMode    = "invalid_mode"

	// Resource errors
	ErrCodeNotFound     = "not_found"
	ErrCodeQuizNotFound = "quiz_not_found"

	// Account errors
	ErrCodeRegistrationFailed = "registration_failed"
	ErrCodeLoginFailed        = "login_failed"
	ErrCodeRefreshFailed      = "refresh_failed"
	ErrCodeEmailTaken         = "email_taken"
	ErrCodeLocaleUpdateFailed = "locale_update_failed"
	ErrCodePreferenceFailed   = "preference_failed"

	// Session errors
	ErrCodeSessionNotFound = "session_not_found"
	ErrCodeSessionComplete = "session_complete"
	ErrCodeAlreadyAnswered = "already_answered"
	ErrCodeNotAnswered     = "not_answered"
	ErrCodeStartFailed     = "session_start_failed"

	// Server errors
	ErrCodeInternalError = "internal_error"
	ErrCodeUpstreamError = "upstream_error"
)
