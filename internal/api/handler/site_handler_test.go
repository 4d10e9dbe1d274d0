package handler

import (
	"context"
	"io"
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

type stubSessions struct {
	flashes []domain.Flash
}

func (s *stubSessions) Begin(ctx context.Context) (string, error) { return "s1", nil }

func (s *stubSessions) Ensure(ctx context.Context, sessionID string) (string, error) {
	return "s1", nil
}

func (s *stubSessions) Authenticate(ctx context.Context, sessionID string, accountID int64) error {
	return nil
}

func (s *stubSessions) Resolve(ctx context.Context, sessionID string) (*domain.Account, error) {
	return nil, nil
}

func (s *stubSessions) End(ctx context.Context, sessionID string) {}

func (s *stubSessions) CSRFToken(ctx context.Context, sessionID string) (string, error) {
	return "tok", nil
}

func (s *stubSessions) VerifyCSRF(ctx context.Context, sessionID, supplied string) bool {
	return supplied == "tok"
}

func (s *stubSessions) Flash(ctx context.Context, sessionID, level, message string) {
	s.flashes = append(s.flashes, domain.Flash{Level: level, Message: message})
}

func (s *stubSessions) PopFlashes(ctx context.Context, sessionID string) []domain.Flash {
	flashes := s.flashes
	s.flashes = nil
	return flashes
}

var _ ports.SessionManager = (*stubSessions)(nil)

type stubSiteService struct {
	buildFn func(ctx context.Context, page string) (map[string]any, error)
}

func (s *stubSiteService) BuildPageContext(ctx context.Context, page string) (map[string]any, error) {
	if s.buildFn == nil {
		return map[string]any{}, nil
	}
	return s.buildFn(ctx, page)
}

type stubMailingService struct {
	contactFn  func(ctx context.Context, input ports.ContactInput) (bool, error)
	campaignFn func(ctx context.Context, subject, message string) (*ports.CampaignStats, error)
}

func (s *stubMailingService) SendContactMessage(ctx context.Context, input ports.ContactInput) (bool, error) {
	if s.contactFn == nil {
		return true, nil
	}
	return s.contactFn(ctx, input)
}

func (s *stubMailingService) SendCampaign(ctx context.Context, subject, message string) (*ports.CampaignStats, error) {
	if s.campaignFn == nil {
		return &ports.CampaignStats{}, nil
	}
	return s.campaignFn(ctx, subject, message)
}

// recordingRenderer captures the template name instead of producing markup.
type recordingRenderer struct {
	name string
	data any
}

func (r *recordingRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	r.name = name
	r.data = data
	_, err := io.WriteString(w, name)
	return err
}

func newPageContext(t *testing.T, target string, actor *domain.Account) (echo.Context, *httptest.ResponseRecorder, *recordingRenderer) {
	t.Helper()

	e := echo.New()
	renderer := &recordingRenderer{}
	e.Renderer = renderer
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "s1")
	if actor != nil {
		c.Set("actor", actor)
	}
	return c, rec, renderer
}

func TestSiteHandler_PageRedirectsAnonymousVisitors(t *testing.T) {
	h := NewSiteHandler(&stubSiteService{}, &stubMailingService{}, &stubSessions{}, "Acme", zerolog.Nop())

	c, rec, _ := newPageContext(t, "/site/services", nil)
	c.SetParamNames("page")
	c.SetParamValues("services")

	if err := h.Page(c); err != nil {
		t.Fatalf("page: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/site/login" {
		t.Fatalf("expected redirect to login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestSiteHandler_LoginPageOpenToAnonymous(t *testing.T) {
	h := NewSiteHandler(&stubSiteService{}, &stubMailingService{}, &stubSessions{}, "Acme", zerolog.Nop())

	c, rec, renderer := newPageContext(t, "/site/login", nil)
	c.SetParamNames("page")
	c.SetParamValues("login")

	if err := h.Page(c); err != nil {
		t.Fatalf("page: %v", err)
	}
	if rec.Code != http.StatusOK || renderer.name != "site/login.html" {
		t.Fatalf("expected login page render, got %d %q", rec.Code, renderer.name)
	}
}

func TestSiteHandler_LoginPageBouncesSignedIn(t *testing.T) {
	h := NewSiteHandler(&stubSiteService{}, &stubMailingService{}, &stubSessions{}, "Acme", zerolog.Nop())

	actor := &domain.Account{ID: 1, Role: domain.RoleClient, IsActive: 1}
	c, rec, _ := newPageContext(t, "/site/login", actor)
	c.SetParamNames("page")
	c.SetParamValues("login")

	if err := h.Page(c); err != nil {
		t.Fatalf("page: %v", err)
	}
	if rec.Header().Get(echo.HeaderLocation) != "/site/home" {
		t.Fatalf("expected redirect home, got %q", rec.Header().Get(echo.HeaderLocation))
	}
}

func TestSiteHandler_DataPageRendersContext(t *testing.T) {
	site := &stubSiteService{
		buildFn: func(ctx context.Context, page string) (map[string]any, error) {
			if page != "services" {
				t.Fatalf("unexpected page %q", page)
			}
			return map[string]any{"services": []domain.Entity{{ID: 1, Name: "Hosting"}}}, nil
		},
	}
	h := NewSiteHandler(site, &stubMailingService{}, &stubSessions{}, "Acme", zerolog.Nop())

	actor := &domain.Account{ID: 1, Role: domain.RoleClient, IsActive: 1}
	c, _, renderer := newPageContext(t, "/site/services", actor)
	c.SetParamNames("page")
	c.SetParamValues("services")

	if err := h.Page(c); err != nil {
		t.Fatalf("page: %v", err)
	}
	if renderer.name != "site/services.html" {
		t.Fatalf("expected services template, got %q", renderer.name)
	}
	data, ok := renderer.data.(map[string]any)
	if !ok {
		t.Fatalf("expected map data, got %T", renderer.data)
	}
	if _, ok := data["services"]; !ok {
		t.Fatalf("expected services in view data")
	}
	if data["site_name"] != "Acme" || data["csrf_token"] != "tok" {
		t.Fatalf("expected shared view data, got %v", data)
	}
}

func TestSiteHandler_UnknownPageIs404(t *testing.T) {
	site := &stubSiteService{
		buildFn: func(ctx context.Context, page string) (map[string]any, error) {
			t.Fatalf("unknown page %q must not reach the service", page)
			return nil, nil
		},
	}
	h := NewSiteHandler(site, &stubMailingService{}, &stubSessions{}, "Acme", zerolog.Nop())

	for name, actor := range map[string]*domain.Account{
		"anonymous": nil,
		"signed-in": {ID: 1, Role: domain.RoleClient, IsActive: 1},
	} {
		c, _, _ := newPageContext(t, "/site/pricing", actor)
		c.SetParamNames("page")
		c.SetParamValues("pricing")

		err := h.Page(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %v", name, err)
		}
	}
}

func TestSiteHandler_SubmitContactValidatesForm(t *testing.T) {
	mailing := &stubMailingService{
		contactFn: func(ctx context.Context, input ports.ContactInput) (bool, error) {
			t.Fatalf("service must not be called for an incomplete form")
			return false, nil
		},
	}
	sessions := &stubSessions{}
	h := NewSiteHandler(&stubSiteService{}, mailing, sessions, "Acme", zerolog.Nop())

	e := echo.New()
	e.Validator = NewValidator()
	form := url.Values{"last_name": {"Doe"}, "email": {"not-an-email"}}
	req := httptest.NewRequest(http.MethodPost, "/site/contact", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "s1")

	if err := h.SubmitContact(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.Header().Get(echo.HeaderLocation) != "/site/contact" {
		t.Fatalf("expected redirect back to the form")
	}
	if len(sessions.flashes) != 1 || sessions.flashes[0].Level != domain.FlashDanger {
		t.Fatalf("expected a danger flash, got %+v", sessions.flashes)
	}
}

func TestSiteHandler_SubmitContactReportsOutcome(t *testing.T) {
	mailing := &stubMailingService{
		contactFn: func(ctx context.Context, input ports.ContactInput) (bool, error) {
			return false, nil
		},
	}
	sessions := &stubSessions{}
	h := NewSiteHandler(&stubSiteService{}, mailing, sessions, "Acme", zerolog.Nop())

	e := echo.New()
	e.Validator = NewValidator()
	form := url.Values{
		"last_name":  {"Doe"},
		"first_name": {"Jane"},
		"phone":      {"123"},
		"email":      {"jane@example.com"},
		"company":    {"Example Ltd"},
		"message":    {"hello"},
	}
	req := httptest.NewRequest(http.MethodPost, "/site/contact", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "s1")

	if err := h.SubmitContact(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(sessions.flashes) != 1 || sessions.flashes[0].Level != domain.FlashDanger {
		t.Fatalf("expected a failure notice when the mailer reports false, got %+v", sessions.flashes)
	}
}
