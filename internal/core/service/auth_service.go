package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/digitalget/services-site/internal/api/metrics"
	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements registration, login and self-service account edits.
type AuthService struct {
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewAuthService(accounts ports.AccountRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{accounts: accounts, logger: logger}
}

// Login authenticates by email and password. Unknown email, inactive
// account and wrong password all return domain.ErrInvalidCredentials so
// failures give no account-enumeration signal.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !account.Active() {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.accounts.TouchLastLogin(ctx, account.ID); err != nil {
		s.logger.Warn().Err(err).Int64("account_id", account.ID).Msg("failed to record login time")
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return account, nil
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	fullName := strings.TrimSpace(input.FullName)
	phone := strings.TrimSpace(input.Phone)
	email := normalizeEmail(input.Email)

	if fullName == "" || phone == "" || email == "" || input.Password == "" {
		return nil, domain.ErrMissingFields
	}
	if input.Password != input.PasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		FullName:      fullName,
		Phone:         phone,
		Email:         email,
		PersonType:    defaultString(strings.TrimSpace(input.PersonType), "individual"),
		PreferredLang: defaultString(strings.TrimSpace(input.PreferredLang), "en"),
		PasswordHash:  string(hash),
		Role:          domain.RoleClient,
		IsActive:      1,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("account_id", created.ID).Msg("account registered")
	return created, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, accountID int64, input ports.ProfileInput) error {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	fullName := strings.TrimSpace(input.FullName)
	email := normalizeEmail(input.Email)
	phone := strings.TrimSpace(input.Phone)

	if fullName == "" || email == "" || phone == "" {
		return domain.ErrMissingFields
	}
	if !strings.Contains(email, "@") {
		return domain.ErrInvalidEmail
	}
	if _, err := s.accounts.FindByEmailExcept(ctx, email, account.ID); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}

	account.FullName = fullName
	account.Email = email
	account.Phone = phone
	account.PersonType = defaultString(strings.TrimSpace(input.PersonType), account.PersonType)
	account.PreferredLang = defaultString(strings.TrimSpace(input.PreferredLang), account.PreferredLang)
	return s.accounts.Update(ctx, account)
}

func (s *AuthService) ChangePassword(ctx context.Context, accountID int64, current, newPassword, confirm string) error {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(current)) != nil {
		return domain.ErrWrongPassword
	}
	if len(newPassword) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}
	if newPassword != confirm {
		return domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.PasswordHash = string(hash)
	return s.accounts.Update(ctx, account)
}

// EnsureAdmin seeds exactly one administrator account when the accounts
// table is empty. Subsequent runs are no-ops.
func (s *AuthService) EnsureAdmin(ctx context.Context, fullName, email, password string) error {
	count, err := s.accounts.Count(ctx)
	if err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &domain.Account{
		FullName:     fullName,
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     1,
		PersonType:   "business_owner",
	}
	if _, err := s.accounts.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.logger.Info().Str("email", admin.Email).Msg("seeded default administrator")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
