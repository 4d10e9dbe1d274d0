package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, email, password string) (*domain.Account, error)
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, accountID int64, input ports.ProfileInput) error {
	return nil
}

func (s *stubAuthService) ChangePassword(ctx context.Context, accountID int64, current, newPassword, confirm string) error {
	return nil
}

func (s *stubAuthService) EnsureAdmin(ctx context.Context, fullName, email, password string) error {
	return nil
}

var _ ports.AuthService = (*stubAuthService)(nil)

func postLogin(t *testing.T, h *AuthHandler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "s1")

	var err error
	switch path {
	case "/site/login":
		err = h.Login(c)
	case "/backoffice/login":
		err = h.BackofficeLogin(c)
	}
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestAuthHandler_LoginSuccessRedirectsHome(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.Account, error) {
			return &domain.Account{ID: 1, FullName: "Jane", Role: domain.RoleClient, IsActive: 1}, nil
		},
	}
	sessions := &stubSessions{}
	h := NewAuthHandler(auth, sessions, "Acme", zerolog.Nop())

	rec := postLogin(t, h, "/site/login", url.Values{"email": {"jane@example.com"}, "password": {"pw"}})
	if rec.Header().Get(echo.HeaderLocation) != "/site/home" {
		t.Fatalf("expected redirect home, got %q", rec.Header().Get(echo.HeaderLocation))
	}
	if len(sessions.flashes) != 1 || sessions.flashes[0].Level != domain.FlashSuccess {
		t.Fatalf("expected a welcome flash, got %+v", sessions.flashes)
	}
}

func TestAuthHandler_LoginFailureFlashesAndStays(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.Account, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	sessions := &stubSessions{}
	h := NewAuthHandler(auth, sessions, "Acme", zerolog.Nop())

	rec := postLogin(t, h, "/site/login", url.Values{"email": {"jane@example.com"}, "password": {"bad"}})
	if rec.Header().Get(echo.HeaderLocation) != "/site/login" {
		t.Fatalf("expected redirect back to login, got %q", rec.Header().Get(echo.HeaderLocation))
	}
	if len(sessions.flashes) != 1 || sessions.flashes[0].Level != domain.FlashDanger {
		t.Fatalf("expected a danger flash, got %+v", sessions.flashes)
	}
}

func TestAuthHandler_BackofficeLoginRejectsNonAdmins(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.Account, error) {
			return &domain.Account{ID: 2, Role: domain.RoleClient, IsActive: 1}, nil
		},
	}
	sessions := &stubSessions{}
	h := NewAuthHandler(auth, sessions, "Acme", zerolog.Nop())

	rec := postLogin(t, h, "/backoffice/login", url.Values{"email": {"jane@example.com"}, "password": {"pw"}})
	if rec.Header().Get(echo.HeaderLocation) != "/backoffice/login" {
		t.Fatalf("expected redirect back to the admin login, got %q", rec.Header().Get(echo.HeaderLocation))
	}
	// The notice must be indistinguishable from a bad-credentials failure.
	if len(sessions.flashes) != 1 || sessions.flashes[0].Message != userMessage(domain.ErrInvalidCredentials) {
		t.Fatalf("expected the invalid-credentials notice, got %+v", sessions.flashes)
	}
}

func TestAuthHandler_BackofficeLoginAcceptsAdmin(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.Account, error) {
			return &domain.Account{ID: 1, Role: domain.RoleAdmin, IsActive: 1}, nil
		},
	}
	h := NewAuthHandler(auth, &stubSessions{}, "Acme", zerolog.Nop())

	rec := postLogin(t, h, "/backoffice/login", url.Values{"email": {"root@example.com"}, "password": {"pw"}})
	if rec.Header().Get(echo.HeaderLocation) != "/backoffice" {
		t.Fatalf("expected redirect to the dashboard, got %q", rec.Header().Get(echo.HeaderLocation))
	}
}

func TestAuthHandler_RegisterSendsToLogin(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
			if input.FullName != "Jane Doe" || input.Email != "jane@example.com" {
				t.Fatalf("unexpected input %+v", input)
			}
			return &domain.Account{ID: 3}, nil
		},
	}
	sessions := &stubSessions{}
	h := NewAuthHandler(auth, sessions, "Acme", zerolog.Nop())

	e := echo.New()
	form := url.Values{
		"full_name":        {"Jane Doe"},
		"phone":            {"123"},
		"email":            {"jane@example.com"},
		"password":         {"longenough"},
		"password_confirm": {"longenough"},
	}
	req := httptest.NewRequest(http.MethodPost, "/site/register", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "s1")

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Header().Get(echo.HeaderLocation) != "/site/login" {
		t.Fatalf("expected redirect to login, got %q", rec.Header().Get(echo.HeaderLocation))
	}
}

func TestAuthHandler_UpdateAccountUnknownAction(t *testing.T) {
	sessions := &stubSessions{}
	h := NewAuthHandler(&stubAuthService{}, sessions, "Acme", zerolog.Nop())

	e := echo.New()
	form := url.Values{"action": {"frobnicate"}}
	req := httptest.NewRequest(http.MethodPost, "/site/account", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "s1")
	c.Set("actor", &domain.Account{ID: 1, Role: domain.RoleClient, IsActive: 1})

	if err := h.UpdateAccount(c); err != nil {
		t.Fatalf("update account: %v", err)
	}
	if rec.Header().Get(echo.HeaderLocation) != "/site/account" {
		t.Fatalf("expected redirect back, got %q", rec.Header().Get(echo.HeaderLocation))
	}
	if len(sessions.flashes) != 1 || sessions.flashes[0].Level != domain.FlashDanger {
		t.Fatalf("expected a danger flash, got %+v", sessions.flashes)
	}
}
