package ports

import (
	"context"

	"github.com/digitalget/services-site/internal/core/domain"
)

type RegisterInput struct {
	FullName        string
	Phone           string
	Email           string
	PersonType      string
	PreferredLang   string
	Password        string
	PasswordConfirm string
}

type ProfileInput struct {
	FullName      string
	Email         string
	Phone         string
	PersonType    string
	PreferredLang string
}

// AuthService implements registration, login and self-service account edits.
type AuthService interface {
	// Login returns domain.ErrInvalidCredentials for unknown email,
	// inactive account and wrong password alike.
	Login(ctx context.Context, email, password string) (*domain.Account, error)
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	UpdateProfile(ctx context.Context, accountID int64, input ProfileInput) error
	ChangePassword(ctx context.Context, accountID int64, current, newPassword, confirm string) error
	// EnsureAdmin seeds a single administrator when no accounts exist.
	EnsureAdmin(ctx context.Context, fullName, email, password string) error
}
