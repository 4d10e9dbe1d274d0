package domain

import "errors"

// Validation failures. Each maps to a distinct user-facing message.
var (
	ErrMissingFields    = errors.New("required fields missing")
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrEmailTaken       = errors.New("email already in use")
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordMismatch = errors.New("password confirmation mismatch")
	ErrWrongPassword    = errors.New("current password incorrect")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidImage     = errors.New("invalid image upload")
	ErrUnknownKind      = errors.New("unknown entity kind")
)

// Authorization failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSelfDeactivate     = errors.New("cannot deactivate own account")
)

// Not-found conditions. These degrade to a flash notice, never a hard failure.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEntityNotFound  = errors.New("entity not found")
	ErrPersonNotFound  = errors.New("staff person not found")
	ErrPageNotFound    = errors.New("page not found")
	ErrSessionNotFound = errors.New("session not found")
)
