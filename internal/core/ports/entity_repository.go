package ports

import (
	"context"

	"github.com/digitalget/services-site/internal/core/domain"
)

// EntityRepository defines persistence for managed content rows.
type EntityRepository interface {
	Create(ctx context.Context, entity *domain.Entity) (*domain.Entity, error)
	Update(ctx context.Context, entity *domain.Entity) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Entity, error)
	// ListByKind returns rows of one kind ordered by descending id.
	// Suspended rows are excluded unless includeSuspended is set.
	ListByKind(ctx context.Context, kind domain.EntityKind, includeSuspended bool) ([]domain.Entity, error)
	CountByKind(ctx context.Context, kind domain.EntityKind) (int64, error)
}
