package ports

import (
	"context"

	"github.com/digitalget/services-site/internal/core/domain"
)

// SessionManager owns session lifecycle, actor resolution, the per-session
// CSRF token and flash notices.
type SessionManager interface {
	// Begin creates an anonymous session with a fresh CSRF token.
	Begin(ctx context.Context) (string, error)
	// Ensure returns a valid session id: the given one when it is known,
	// otherwise a fresh anonymous session.
	Ensure(ctx context.Context, sessionID string) (string, error)
	// Authenticate binds an account to an existing session.
	Authenticate(ctx context.Context, sessionID string, accountID int64) error
	// Resolve returns the acting account, or nil when the session is
	// unknown, anonymous, or bound to a missing/inactive account.
	// Inactive accounts are transparently logged out.
	Resolve(ctx context.Context, sessionID string) (*domain.Account, error)
	// End destroys the session.
	End(ctx context.Context, sessionID string)

	CSRFToken(ctx context.Context, sessionID string) (string, error)
	// VerifyCSRF compares in constant time; an empty supplied token
	// always fails.
	VerifyCSRF(ctx context.Context, sessionID, supplied string) bool

	Flash(ctx context.Context, sessionID, level, message string)
	PopFlashes(ctx context.Context, sessionID string) []domain.Flash
}
