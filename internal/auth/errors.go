package auth

import "errors"

// Provider errors are surfaced verbatim to the caller for UI-level
// messaging and are never retried automatically.
var (
	ErrEmailRequired    = errors.New("email required")
	ErrPasswordRequired = errors.New("password required")
	ErrEmailInUse       = errors.New("email already in use")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("wrong password")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrSignupDisabled   = errors.New("email signup is disabled")
)
