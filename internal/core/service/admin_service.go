package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/digitalget/services-site/internal/api/metrics"
	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

const (
	dashboardLatest   = 5
	chatRecentLimit   = 30
	chatConversations = 20

	// entityImageDir and staffPhotoDir are sub-paths of the static asset
	// root. Entities store the bare filename; staff photos store the full
	// sub-path, so the asset manager handles both reference conventions.
	entityImageDir = "images"
	staffPhotoDir  = "images/staff"
)

// AdminService orchestrates backoffice mutations: each action is one
// database write combined, where relevant, with the image-asset lifecycle.
type AdminService struct {
	accounts ports.AccountRepository
	entities ports.EntityRepository
	staff    ports.StaffRepository
	messages ports.MessageRepository
	images   ports.ImageStore
	logger   zerolog.Logger
}

func NewAdminService(
	accounts ports.AccountRepository,
	entities ports.EntityRepository,
	staff ports.StaffRepository,
	messages ports.MessageRepository,
	images ports.ImageStore,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		accounts: accounts,
		entities: entities,
		staff:    staff,
		messages: messages,
		images:   images,
		logger:   logger,
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (*ports.DashboardData, error) {
	userCount, err := s.accounts.Count(ctx)
	if err != nil {
		return nil, err
	}
	serviceCount, err := s.entities.CountByKind(ctx, domain.KindService)
	if err != nil {
		return nil, err
	}
	staffCount, err := s.staff.Count(ctx)
	if err != nil {
		return nil, err
	}
	messageCount, err := s.messages.Count(ctx)
	if err != nil {
		return nil, err
	}
	latestUsers, err := s.accounts.Latest(ctx, dashboardLatest)
	if err != nil {
		return nil, err
	}
	latestMessages, err := s.messages.Recent(ctx, dashboardLatest)
	if err != nil {
		return nil, err
	}
	return &ports.DashboardData{
		UserCount:      userCount,
		ServiceCount:   serviceCount,
		StaffCount:     staffCount,
		MessageCount:   messageCount,
		LatestUsers:    latestUsers,
		LatestMessages: latestMessages,
	}, nil
}

// ── Entities ────────────────────────────────────────────────────────────────

// CreateEntity validates the payload, stores the image first and inserts
// the row second. If the insert fails after the image was stored, the file
// is left orphaned; that narrow failure mode is logged, not compensated.
func (s *AdminService) CreateEntity(ctx context.Context, input ports.EntityInput) (*domain.Entity, error) {
	cap, ok := domain.KindCapability(input.Kind)
	if !ok {
		return nil, s.entityOutcome(input.Kind, "create", domain.ErrUnknownKind)
	}
	entity, err := buildEntity(input.Kind, cap, input)
	if err != nil {
		return nil, s.entityOutcome(input.Kind, "create", err)
	}

	if input.Image != nil {
		if !cap.HasImage {
			return nil, s.entityOutcome(input.Kind, "create", domain.ErrInvalidImage)
		}
		filename, err := s.images.Store(input.Image, cap.ImagePrefix, entityImageDir)
		if err != nil {
			return nil, s.entityOutcome(input.Kind, "create", domain.ErrInvalidImage)
		}
		entity.Image = filename
	}

	created, err := s.entities.Create(ctx, entity)
	if err != nil {
		if entity.Image != "" {
			s.logger.Warn().Str("image", entity.Image).Msg("entity insert failed, stored image left orphaned")
		}
		return nil, s.entityOutcome(input.Kind, "create", err)
	}
	return created, s.entityOutcome(input.Kind, "create", nil)
}

// UpdateEntity applies field updates to an existing row. A submitted but
// invalid image aborts the whole update; a valid one replaces the old asset
// only after the new one is confirmed stored, so the row never points at a
// deleted file.
func (s *AdminService) UpdateEntity(ctx context.Context, id int64, input ports.EntityInput) error {
	target, err := s.entities.FindByID(ctx, id)
	if err != nil {
		return s.entityOutcome(input.Kind, "update", err)
	}
	cap, ok := domain.KindCapability(target.Kind)
	if !ok {
		return s.entityOutcome(input.Kind, "update", domain.ErrUnknownKind)
	}
	updated, err := buildEntity(target.Kind, cap, input)
	if err != nil {
		return s.entityOutcome(target.Kind, "update", err)
	}

	newImage := ""
	if input.Image != nil {
		if !cap.HasImage {
			return s.entityOutcome(target.Kind, "update", domain.ErrInvalidImage)
		}
		newImage, err = s.images.Store(input.Image, cap.ImagePrefix, entityImageDir)
		if err != nil {
			return s.entityOutcome(target.Kind, "update", domain.ErrInvalidImage)
		}
	}

	if newImage != "" {
		s.images.Delete(target.Image)
		target.Image = newImage
	}
	target.Name = updated.Name
	target.Description = updated.Description
	target.Criteria = updated.Criteria
	target.LinkURL = updated.LinkURL
	target.Category = updated.Category
	target.Title = updated.Title
	target.Icon = updated.Icon

	return s.entityOutcome(target.Kind, "update", s.entities.Update(ctx, target))
}

// DeleteEntity removes the owned image asset first, then the row.
func (s *AdminService) DeleteEntity(ctx context.Context, id int64) error {
	target, err := s.entities.FindByID(ctx, id)
	if err != nil {
		return s.entityOutcome("", "delete", err)
	}
	s.images.Delete(target.Image)
	return s.entityOutcome(target.Kind, "delete", s.entities.Delete(ctx, id))
}

func (s *AdminService) ToggleEntitySuspended(ctx context.Context, id int64) error {
	target, err := s.entities.FindByID(ctx, id)
	if err != nil {
		return s.entityOutcome("", "toggle_suspended", err)
	}
	if target.Suspended == 0 {
		target.Suspended = 1
	} else {
		target.Suspended = 0
	}
	return s.entityOutcome(target.Kind, "toggle_suspended", s.entities.Update(ctx, target))
}

func (s *AdminService) ListEntities(ctx context.Context, kind domain.EntityKind) ([]domain.Entity, error) {
	return s.entities.ListByKind(ctx, kind, true)
}

// buildEntity validates required fields and copies only capability fields.
func buildEntity(kind domain.EntityKind, cap domain.Capability, input ports.EntityInput) (*domain.Entity, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	entity := &domain.Entity{Kind: kind, Name: name}
	if cap.HasDescription {
		entity.Description = strings.TrimSpace(input.Description)
	}
	if cap.HasCriteria {
		entity.Criteria = strings.TrimSpace(input.Criteria)
	}
	if cap.HasLink {
		entity.LinkURL = strings.TrimSpace(input.LinkURL)
	}
	if cap.HasCategory {
		entity.Category = strings.TrimSpace(input.Category)
	}
	if cap.HasTitle {
		entity.Title = strings.TrimSpace(input.Title)
	}
	if cap.HasIcon {
		entity.Icon = strings.TrimSpace(input.Icon)
	}
	return entity, nil
}

// ── Accounts ────────────────────────────────────────────────────────────────

func (s *AdminService) CreateAccount(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := normalizeEmail(input.Email)
	if fullName == "" || email == "" || input.Password == "" {
		return nil, s.accountOutcome("create", domain.ErrMissingFields)
	}
	if !domain.ValidRole(input.Role) {
		return nil, s.accountOutcome("create", domain.ErrInvalidRole)
	}
	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, s.accountOutcome("create", domain.ErrEmailTaken)
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	created, err := s.accounts.Create(ctx, &domain.Account{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         input.Role,
		IsActive:     1,
	})
	return created, s.accountOutcome("create", err)
}

// ToggleAccountActive flips is_active, refusing when the target is the
// acting administrator's own account.
func (s *AdminService) ToggleAccountActive(ctx context.Context, actorID, targetID int64) error {
	target, err := s.accounts.FindByID(ctx, targetID)
	if err != nil {
		return s.accountOutcome("toggle_active", err)
	}
	if target.ID == actorID {
		return s.accountOutcome("toggle_active", domain.ErrSelfDeactivate)
	}
	if target.IsActive == 1 {
		target.IsActive = 0
	} else {
		target.IsActive = 1
	}
	return s.accountOutcome("toggle_active", s.accounts.Update(ctx, target))
}

func (s *AdminService) ResetPassword(ctx context.Context, targetID int64, newPassword string) error {
	target, err := s.accounts.FindByID(ctx, targetID)
	if err != nil {
		return s.accountOutcome("reset_password", err)
	}
	if len(newPassword) < minPasswordLength {
		return s.accountOutcome("reset_password", domain.ErrPasswordTooShort)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	target.PasswordHash = string(hash)
	return s.accountOutcome("reset_password", s.accounts.Update(ctx, target))
}

func (s *AdminService) ChangeRole(ctx context.Context, targetID int64, role string) error {
	target, err := s.accounts.FindByID(ctx, targetID)
	if err != nil {
		return s.accountOutcome("change_role", err)
	}
	if !domain.ValidRole(role) {
		return s.accountOutcome("change_role", domain.ErrInvalidRole)
	}
	target.Role = role
	return s.accountOutcome("change_role", s.accounts.Update(ctx, target))
}

func (s *AdminService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

// ── Staff ───────────────────────────────────────────────────────────────────

func (s *AdminService) CreateStaff(ctx context.Context, input ports.StaffInput) (*domain.StaffPerson, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, s.staffOutcome("create", domain.ErrNameRequired)
	}

	photoPath := ""
	if input.Photo != nil {
		filename, err := s.images.Store(input.Photo, "sp", staffPhotoDir)
		if err != nil {
			return nil, s.staffOutcome("create", domain.ErrInvalidImage)
		}
		photoPath = staffPhotoDir + "/" + filename
	}

	person := &domain.StaffPerson{
		FullName:  fullName,
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Specialty: strings.TrimSpace(input.Specialty),
		PhotoPath: photoPath,
		IsActive:  1,
	}
	created, err := s.staff.Create(ctx, person, input.ServiceIDs)
	if err != nil && photoPath != "" {
		s.logger.Warn().Str("photo", photoPath).Msg("staff insert failed, stored photo left orphaned")
	}
	return created, s.staffOutcome("create", err)
}

// SetStaffServices replaces the person's service links via an explicit diff
// so callers can observe exactly which links were added and removed.
func (s *AdminService) SetStaffServices(ctx context.Context, personID int64, serviceIDs []int64) (*ports.ServiceDiff, error) {
	if _, err := s.staff.FindByID(ctx, personID); err != nil {
		return nil, s.staffOutcome("set_services", err)
	}
	current, err := s.staff.ServiceIDs(ctx, personID)
	if err != nil {
		return nil, err
	}

	diff := diffLinks(current, serviceIDs)
	if err := s.staff.ApplyServiceDiff(ctx, personID, diff.Added, diff.Removed); err != nil {
		return nil, s.staffOutcome("set_services", err)
	}
	return diff, s.staffOutcome("set_services", nil)
}

func (s *AdminService) ToggleStaffActive(ctx context.Context, personID int64) error {
	person, err := s.staff.FindByID(ctx, personID)
	if err != nil {
		return s.staffOutcome("toggle_active", err)
	}
	if person.IsActive == 1 {
		person.IsActive = 0
	} else {
		person.IsActive = 1
	}
	return s.staffOutcome("toggle_active", s.staff.Update(ctx, person))
}

// DeleteStaff releases the owned photo asset, then removes the row; the
// service links are cleared with the row.
func (s *AdminService) DeleteStaff(ctx context.Context, personID int64) error {
	person, err := s.staff.FindByID(ctx, personID)
	if err != nil {
		return s.staffOutcome("delete", err)
	}
	s.images.Delete(person.PhotoPath)
	return s.staffOutcome("delete", s.staff.Delete(ctx, personID))
}

func (s *AdminService) ListStaff(ctx context.Context) ([]domain.StaffPerson, error) {
	return s.staff.List(ctx, false)
}

func (s *AdminService) RecentChat(ctx context.Context) ([]domain.MessageWithSender, []domain.Conversation, error) {
	messages, err := s.messages.Recent(ctx, chatRecentLimit)
	if err != nil {
		return nil, nil, err
	}
	conversations, err := s.messages.RecentConversations(ctx, chatConversations)
	if err != nil {
		return nil, nil, err
	}
	return messages, conversations, nil
}

// diffLinks computes the additions and removals that turn current into
// desired, ignoring duplicates.
func diffLinks(current, desired []int64) *ports.ServiceDiff {
	have := make(map[int64]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}
	want := make(map[int64]struct{}, len(desired))
	diff := &ports.ServiceDiff{}
	for _, id := range desired {
		if _, dup := want[id]; dup {
			continue
		}
		want[id] = struct{}{}
		if _, ok := have[id]; !ok {
			diff.Added = append(diff.Added, id)
		}
	}
	for _, id := range current {
		if _, ok := want[id]; !ok {
			diff.Removed = append(diff.Removed, id)
		}
	}
	return diff
}

func (s *AdminService) entityOutcome(kind domain.EntityKind, action string, err error) error {
	subject := string(kind)
	if subject == "" {
		subject = "entity"
	}
	metrics.AdminActionsTotal.WithLabelValues(subject, action, outcomeLabel(err)).Inc()
	return err
}

func (s *AdminService) accountOutcome(action string, err error) error {
	metrics.AdminActionsTotal.WithLabelValues("account", action, outcomeLabel(err)).Inc()
	return err
}

func (s *AdminService) staffOutcome(action string, err error) error {
	metrics.AdminActionsTotal.WithLabelValues("staff", action, outcomeLabel(err)).Inc()
	return err
}

func outcomeLabel(err error) string {
	if err != nil {
		return "rejected"
	}
	return "ok"
}
