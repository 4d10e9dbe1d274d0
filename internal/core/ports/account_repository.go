package ports

import (
	"context"

	"github.com/digitalget/services-site/internal/core/domain"
)

// AccountRepository defines persistence for identity records.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// FindByEmailExcept is FindByEmail skipping the given account id. Used
	// by profile updates to pre-check duplicates without matching self.
	FindByEmailExcept(ctx context.Context, email string, exceptID int64) (*domain.Account, error)
	TouchLastLogin(ctx context.Context, id int64) error
	// List returns all accounts ordered by descending id.
	List(ctx context.Context) ([]domain.Account, error)
	Latest(ctx context.Context, limit int) ([]domain.Account, error)
	Count(ctx context.Context) (int64, error)
	// ListMailable returns active accounts with a non-empty email,
	// ordered by ascending id.
	ListMailable(ctx context.Context) ([]domain.Account, error)
}
