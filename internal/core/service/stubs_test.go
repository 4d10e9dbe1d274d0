package service

import (
	"context"
	"mime/multipart"

	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

// Function-field stubs for the repository ports. Nil fields fall back to
// inert defaults so each test wires only what it observes.

type stubAccountRepo struct {
	createFn            func(ctx context.Context, account *domain.Account) (*domain.Account, error)
	updateFn            func(ctx context.Context, account *domain.Account) error
	findByIDFn          func(ctx context.Context, id int64) (*domain.Account, error)
	findByEmailFn       func(ctx context.Context, email string) (*domain.Account, error)
	findByEmailExceptFn func(ctx context.Context, email string, exceptID int64) (*domain.Account, error)
	touchLastLoginFn    func(ctx context.Context, id int64) error
	countFn             func(ctx context.Context) (int64, error)
	listMailableFn      func(ctx context.Context) ([]domain.Account, error)
}

var _ ports.AccountRepository = (*stubAccountRepo)(nil)

func (s *stubAccountRepo) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if s.createFn == nil {
		account.ID = 1
		return account, nil
	}
	return s.createFn(ctx, account)
}

func (s *stubAccountRepo) Update(ctx context.Context, account *domain.Account) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, account)
}

func (s *stubAccountRepo) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	if s.findByIDFn == nil {
		return nil, domain.ErrAccountNotFound
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubAccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if s.findByEmailFn == nil {
		return nil, domain.ErrAccountNotFound
	}
	return s.findByEmailFn(ctx, email)
}

func (s *stubAccountRepo) FindByEmailExcept(ctx context.Context, email string, exceptID int64) (*domain.Account, error) {
	if s.findByEmailExceptFn == nil {
		return nil, domain.ErrAccountNotFound
	}
	return s.findByEmailExceptFn(ctx, email, exceptID)
}

func (s *stubAccountRepo) TouchLastLogin(ctx context.Context, id int64) error {
	if s.touchLastLoginFn == nil {
		return nil
	}
	return s.touchLastLoginFn(ctx, id)
}

func (s *stubAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	return nil, nil
}

func (s *stubAccountRepo) Latest(ctx context.Context, limit int) ([]domain.Account, error) {
	return nil, nil
}

func (s *stubAccountRepo) Count(ctx context.Context) (int64, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx)
}

func (s *stubAccountRepo) ListMailable(ctx context.Context) ([]domain.Account, error) {
	if s.listMailableFn == nil {
		return nil, nil
	}
	return s.listMailableFn(ctx)
}

type stubEntityRepo struct {
	createFn     func(ctx context.Context, entity *domain.Entity) (*domain.Entity, error)
	updateFn     func(ctx context.Context, entity *domain.Entity) error
	deleteFn     func(ctx context.Context, id int64) error
	findByIDFn   func(ctx context.Context, id int64) (*domain.Entity, error)
	listByKindFn func(ctx context.Context, kind domain.EntityKind, includeSuspended bool) ([]domain.Entity, error)
}

var _ ports.EntityRepository = (*stubEntityRepo)(nil)

func (s *stubEntityRepo) Create(ctx context.Context, entity *domain.Entity) (*domain.Entity, error) {
	if s.createFn == nil {
		entity.ID = 1
		return entity, nil
	}
	return s.createFn(ctx, entity)
}

func (s *stubEntityRepo) Update(ctx context.Context, entity *domain.Entity) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, entity)
}

func (s *stubEntityRepo) Delete(ctx context.Context, id int64) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func (s *stubEntityRepo) FindByID(ctx context.Context, id int64) (*domain.Entity, error) {
	if s.findByIDFn == nil {
		return nil, domain.ErrEntityNotFound
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubEntityRepo) ListByKind(ctx context.Context, kind domain.EntityKind, includeSuspended bool) ([]domain.Entity, error) {
	if s.listByKindFn == nil {
		return nil, nil
	}
	return s.listByKindFn(ctx, kind, includeSuspended)
}

func (s *stubEntityRepo) CountByKind(ctx context.Context, kind domain.EntityKind) (int64, error) {
	return 0, nil
}

type stubStaffRepo struct {
	createFn           func(ctx context.Context, person *domain.StaffPerson, serviceIDs []int64) (*domain.StaffPerson, error)
	updateFn           func(ctx context.Context, person *domain.StaffPerson) error
	deleteFn           func(ctx context.Context, id int64) error
	findByIDFn         func(ctx context.Context, id int64) (*domain.StaffPerson, error)
	listFn             func(ctx context.Context, activeOnly bool) ([]domain.StaffPerson, error)
	serviceIDsFn       func(ctx context.Context, personID int64) ([]int64, error)
	applyServiceDiffFn func(ctx context.Context, personID int64, added, removed []int64) error
}

var _ ports.StaffRepository = (*stubStaffRepo)(nil)

func (s *stubStaffRepo) Create(ctx context.Context, person *domain.StaffPerson, serviceIDs []int64) (*domain.StaffPerson, error) {
	if s.createFn == nil {
		person.ID = 1
		return person, nil
	}
	return s.createFn(ctx, person, serviceIDs)
}

func (s *stubStaffRepo) Update(ctx context.Context, person *domain.StaffPerson) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, person)
}

func (s *stubStaffRepo) Delete(ctx context.Context, id int64) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func (s *stubStaffRepo) FindByID(ctx context.Context, id int64) (*domain.StaffPerson, error) {
	if s.findByIDFn == nil {
		return nil, domain.ErrPersonNotFound
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubStaffRepo) List(ctx context.Context, activeOnly bool) ([]domain.StaffPerson, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, activeOnly)
}

func (s *stubStaffRepo) ServiceIDs(ctx context.Context, personID int64) ([]int64, error) {
	if s.serviceIDsFn == nil {
		return nil, nil
	}
	return s.serviceIDsFn(ctx, personID)
}

func (s *stubStaffRepo) ApplyServiceDiff(ctx context.Context, personID int64, added, removed []int64) error {
	if s.applyServiceDiffFn == nil {
		return nil
	}
	return s.applyServiceDiffFn(ctx, personID, added, removed)
}

func (s *stubStaffRepo) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

type stubMessageRepo struct{}

var _ ports.MessageRepository = (*stubMessageRepo)(nil)

func (s *stubMessageRepo) Recent(ctx context.Context, limit int) ([]domain.MessageWithSender, error) {
	return nil, nil
}

func (s *stubMessageRepo) RecentConversations(ctx context.Context, limit int) ([]domain.Conversation, error) {
	return nil, nil
}

func (s *stubMessageRepo) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

// stubImageStore records deletions and delegates stores.
type stubImageStore struct {
	storeFn func(file *multipart.FileHeader, prefix, dir string) (string, error)
	deleted []string
}

var _ ports.ImageStore = (*stubImageStore)(nil)

func (s *stubImageStore) Store(file *multipart.FileHeader, prefix, dir string) (string, error) {
	if s.storeFn == nil {
		return prefix + "_stub.jpg", nil
	}
	return s.storeFn(file, prefix, dir)
}

func (s *stubImageStore) Delete(reference string) {
	s.deleted = append(s.deleted, reference)
}

// stubMailer records recipients and reply-to addresses.
type stubMailer struct {
	sendFn  func(to, subject, textBody, htmlBody, replyTo string) bool
	sentTo  []string
	replyTo []string
}

var _ ports.Mailer = (*stubMailer)(nil)

func (s *stubMailer) Send(to, subject, textBody, htmlBody, replyTo string) bool {
	s.sentTo = append(s.sentTo, to)
	s.replyTo = append(s.replyTo, replyTo)
	if s.sendFn == nil {
		return true
	}
	return s.sendFn(to, subject, textBody, htmlBody, replyTo)
}
