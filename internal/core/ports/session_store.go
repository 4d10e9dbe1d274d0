package ports

import (
	"context"

	"github.com/digitalget/services-site/internal/core/domain"
)

// SessionStore maps opaque session ids to session records. Implementations
// return domain.ErrSessionNotFound for unknown ids.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.SessionData, error)
	Save(ctx context.Context, id string, data *domain.SessionData) error
	Delete(ctx context.Context, id string) error
}
