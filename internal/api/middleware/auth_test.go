package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/digitalget/services-site/internal/core/domain"
)

func TestLoadActor_SetsCookieForNewVisitor(t *testing.T) {
	sessions := &stubSessions{id: "fresh", token: "tok"}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/site/home", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ran := false
	handler := LoadActor(sessions, false, zerolog.Nop())(func(c echo.Context) error {
		ran = true
		if SessionID(c) != "fresh" {
			t.Fatalf("expected session id in context, got %q", SessionID(c))
		}
		if Actor(c) != nil {
			t.Fatalf("expected anonymous actor")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if !ran {
		t.Fatalf("next handler did not run")
	}

	cookie := rec.Header().Get(echo.HeaderSetCookie)
	if !strings.Contains(cookie, "session=fresh") {
		t.Fatalf("expected session cookie, got %q", cookie)
	}
	if !strings.Contains(cookie, "HttpOnly") {
		t.Fatalf("session cookie must be http-only, got %q", cookie)
	}
	if strings.Contains(cookie, "Secure") {
		t.Fatalf("development cookie must stay usable over plain http, got %q", cookie)
	}
}

func TestLoadActor_SecureCookieOutsideDevelopment(t *testing.T) {
	sessions := &stubSessions{id: "fresh", token: "tok"}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/site/home", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := LoadActor(sessions, true, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}

	cookie := rec.Header().Get(echo.HeaderSetCookie)
	if !strings.Contains(cookie, "Secure") {
		t.Fatalf("session cookie must be secure, got %q", cookie)
	}
}

func TestLoadActor_KeepsPresentedSession(t *testing.T) {
	sessions := &stubSessions{id: "known", token: "tok"}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/site/home", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "known"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := LoadActor(sessions, false, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if cookie := rec.Header().Get(echo.HeaderSetCookie); cookie != "" {
		t.Fatalf("known session must not be re-issued, got %q", cookie)
	}
}

func TestRequireAuthenticated_RedirectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/site/account", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireAuthenticated()(func(c echo.Context) error {
		t.Fatalf("handler must not run for anonymous visitors")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/site/login" {
		t.Fatalf("expected redirect to site login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestRequireAdmin_RejectsNonAdmins(t *testing.T) {
	e := echo.New()

	for name, actor := range map[string]*domain.Account{
		"anonymous": nil,
		"client":    {ID: 1, Role: domain.RoleClient, IsActive: 1},
	} {
		req := httptest.NewRequest(http.MethodGet, "/backoffice", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if actor != nil {
			c.Set(ctxActor, actor)
		}

		handler := RequireAdmin()(func(c echo.Context) error {
			t.Fatalf("%s: handler must not run", name)
			return nil
		})
		if err := handler(c); err != nil {
			t.Fatalf("%s: middleware: %v", name, err)
		}
		if rec.Header().Get(echo.HeaderLocation) != "/backoffice/login" {
			t.Fatalf("%s: expected redirect to backoffice login", name)
		}
	}
}

func TestRequireAdmin_PassesAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/backoffice", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ctxActor, &domain.Account{ID: 1, Role: domain.RoleAdmin, IsActive: 1})

	ran := false
	handler := RequireAdmin()(func(c echo.Context) error {
		ran = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if !ran {
		t.Fatalf("admin must pass through")
	}
}
