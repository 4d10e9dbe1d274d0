package ports

import (
	"context"

	"github.com/digitalget/services-site/internal/core/domain"
)

// StaffRepository defines persistence for staff people and their service links.
type StaffRepository interface {
	Create(ctx context.Context, person *domain.StaffPerson, serviceIDs []int64) (*domain.StaffPerson, error)
	Update(ctx context.Context, person *domain.StaffPerson) error
	// Delete removes the person; service links cascade with the row.
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.StaffPerson, error)
	// List returns all people ordered by descending id with their linked
	// service ids and a joined display string of service names. When
	// activeOnly is set, inactive people are excluded.
	List(ctx context.Context, activeOnly bool) ([]domain.StaffPerson, error)
	ServiceIDs(ctx context.Context, personID int64) ([]int64, error)
	// ApplyServiceDiff adds and removes exactly the given links.
	ApplyServiceDiff(ctx context.Context, personID int64, added, removed []int64) error
	Count(ctx context.Context) (int64, error)
}
