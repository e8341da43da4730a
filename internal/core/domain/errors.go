package domain

import "errors"

// Session errors.
var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrSessionExpired    = errors.New("session expired")
	ErrUnauthenticated   = errors.New("authentication required")

	ErrSessionStoreUnavailable = errors.New("session store unavailable")
)

// Backend errors. A failed backend call unwraps to exactly one of these.
var (
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrForbidden          = errors.New("access forbidden")
	ErrValidation         = errors.New("request rejected by backend")
	ErrNotFound           = errors.New("resource not found")
)

// User store errors, used by the development backend.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)
