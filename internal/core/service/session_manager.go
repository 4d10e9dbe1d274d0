package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

const csrfTokenBytes = 32

// SessionManager implements ports.SessionManager over a pluggable store.
type SessionManager struct {
	store    ports.SessionStore
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewSessionManager(store ports.SessionStore, accounts ports.AccountRepository, logger zerolog.Logger) *SessionManager {
	return &SessionManager{store: store, accounts: accounts, logger: logger}
}

func (m *SessionManager) Begin(ctx context.Context) (string, error) {
	id := uuid.NewString()
	data := &domain.SessionData{CSRFToken: newCSRFToken()}
	if err := m.store.Save(ctx, id, data); err != nil {
		return "", fmt.Errorf("begin session: %w", err)
	}
	return id, nil
}

// Ensure returns a valid session id, minting a fresh anonymous session
// when the presented id is empty or unknown.
func (m *SessionManager) Ensure(ctx context.Context, sessionID string) (string, error) {
	if sessionID != "" {
		if _, err := m.store.Get(ctx, sessionID); err == nil {
			return sessionID, nil
		} else if !errors.Is(err, domain.ErrSessionNotFound) {
			return "", err
		}
	}
	return m.Begin(ctx)
}

func (m *SessionManager) Authenticate(ctx context.Context, sessionID string, accountID int64) error {
	data, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	data.AccountID = accountID
	return m.store.Save(ctx, sessionID, data)
}

// Resolve returns the acting account for a session, or nil. A session bound
// to a missing or inactive account is destroyed so the visitor is logged
// out transparently.
func (m *SessionManager) Resolve(ctx context.Context, sessionID string) (*domain.Account, error) {
	data, err := m.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if data.AccountID == 0 {
		return nil, nil
	}

	account, err := m.accounts.FindByID(ctx, data.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			m.End(ctx, sessionID)
			return nil, nil
		}
		return nil, err
	}
	if !account.Active() {
		m.End(ctx, sessionID)
		return nil, nil
	}
	return account, nil
}

func (m *SessionManager) End(ctx context.Context, sessionID string) {
	if err := m.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		m.logger.Warn().Err(err).Msg("failed to delete session")
	}
}

func (m *SessionManager) CSRFToken(ctx context.Context, sessionID string) (string, error) {
	data, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return data.CSRFToken, nil
}

func (m *SessionManager) VerifyCSRF(ctx context.Context, sessionID, supplied string) bool {
	if supplied == "" {
		return false
	}
	data, err := m.store.Get(ctx, sessionID)
	if err != nil || data.CSRFToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(data.CSRFToken), []byte(supplied)) == 1
}

func (m *SessionManager) Flash(ctx context.Context, sessionID, level, message string) {
	data, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return
	}
	data.Flashes = append(data.Flashes, domain.Flash{Level: level, Message: message})
	if err := m.store.Save(ctx, sessionID, data); err != nil {
		m.logger.Warn().Err(err).Msg("failed to queue flash")
	}
}

func (m *SessionManager) PopFlashes(ctx context.Context, sessionID string) []domain.Flash {
	data, err := m.store.Get(ctx, sessionID)
	if err != nil || len(data.Flashes) == 0 {
		return nil
	}
	flashes := data.Flashes
	data.Flashes = nil
	if err := m.store.Save(ctx, sessionID, data); err != nil {
		m.logger.Warn().Err(err).Msg("failed to clear flashes")
	}
	return flashes
}

func newCSRFToken() string {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("csrf token entropy unavailable: %v", err))
	}
	return hex.EncodeToString(b)
}
