package ports

import (
	"context"
	"mime/multipart"

	"github.com/digitalget/services-site/internal/core/domain"
)

// EntityInput carries the form payload for entity create/update. Image is
// nil when no file was submitted.
type EntityInput struct {
	Kind        domain.EntityKind
	Name        string
	Description string
	Criteria    string
	LinkURL     string
	Category    string
	Title       string
	Icon        string
	Image       *multipart.FileHeader
}

type CreateAccountInput struct {
	FullName string
	Email    string
	Password string
	Role     string
}

type StaffInput struct {
	FullName   string
	Email      string
	Phone      string
	Specialty  string
	ServiceIDs []int64
	Photo      *multipart.FileHeader
}

// ServiceDiff reports exactly which staff-to-service links an update added
// and removed.
type ServiceDiff struct {
	Added   []int64
	Removed []int64
}

type DashboardData struct {
	UserCount      int64
	ServiceCount   int64
	StaffCount     int64
	MessageCount   int64
	LatestUsers    []domain.Account
	LatestMessages []domain.MessageWithSender
}

// AdminService is the backoffice CRUD orchestrator: every mutation combines
// a database write with the optional image-asset lifecycle and reports a
// condition-keyed outcome.
type AdminService interface {
	Dashboard(ctx context.Context) (*DashboardData, error)

	CreateEntity(ctx context.Context, input EntityInput) (*domain.Entity, error)
	UpdateEntity(ctx context.Context, id int64, input EntityInput) error
	DeleteEntity(ctx context.Context, id int64) error
	ToggleEntitySuspended(ctx context.Context, id int64) error
	ListEntities(ctx context.Context, kind domain.EntityKind) ([]domain.Entity, error)

	CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
	// ToggleAccountActive refuses to act when targetID equals actorID.
	ToggleAccountActive(ctx context.Context, actorID, targetID int64) error
	ResetPassword(ctx context.Context, targetID int64, newPassword string) error
	ChangeRole(ctx context.Context, targetID int64, role string) error
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	CreateStaff(ctx context.Context, input StaffInput) (*domain.StaffPerson, error)
	SetStaffServices(ctx context.Context, personID int64, serviceIDs []int64) (*ServiceDiff, error)
	ToggleStaffActive(ctx context.Context, personID int64) error
	DeleteStaff(ctx context.Context, personID int64) error
	ListStaff(ctx context.Context) ([]domain.StaffPerson, error)

	RecentChat(ctx context.Context) ([]domain.MessageWithSender, []domain.Conversation, error)
}
