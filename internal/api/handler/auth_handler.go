package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/digitalget/services-site/internal/api/middleware"
	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

type AuthHandler struct {
	base
	auth   ports.AuthService
	logger zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionManager, siteName string, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		base:   base{sessions: sessions, siteName: siteName},
		auth:   auth,
		logger: logger,
	}
}

// Login handles the public sign-in form.
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := h.auth.Login(ctx, c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		return h.redirectWithError(c, "/site/login", err)
	}
	if err := h.sessions.Authenticate(ctx, middleware.SessionID(c), account.ID); err != nil {
		h.logger.Error().Err(err).Int64("account_id", account.ID).Msg("failed to bind session")
		return h.redirectWithError(c, "/site/login", err)
	}
	return h.redirectWithSuccess(c, "/site/home", "Welcome back, "+account.FullName+".")
}

// Register handles the public sign-up form. New accounts always start as
// clients; the person is asked to sign in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	input := ports.RegisterInput{
		FullName:        c.FormValue("full_name"),
		Phone:           c.FormValue("phone"),
		Email:           c.FormValue("email"),
		PersonType:      c.FormValue("person_type"),
		PreferredLang:   c.FormValue("preferred_lang"),
		Password:        c.FormValue("password"),
		PasswordConfirm: c.FormValue("password_confirm"),
	}

	if _, err := h.auth.Register(c.Request().Context(), input); err != nil {
		return h.redirectWithError(c, "/site/register", err)
	}
	return h.redirectWithSuccess(c, "/site/login", "Your account has been created. Please sign in.")
}

// Logout destroys the session and returns to the home page.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.End(c.Request().Context(), middleware.SessionID(c))
	return c.Redirect(http.StatusSeeOther, "/site/home")
}

// BackofficeLoginPage renders the admin sign-in form. An admin who is
// already signed in goes straight to the dashboard.
func (h *AuthHandler) BackofficeLoginPage(c echo.Context) error {
	if middleware.Actor(c).IsAdmin() {
		return c.Redirect(http.StatusSeeOther, "/backoffice")
	}
	return c.Render(http.StatusOK, "admin/login.html", h.view(c, "login", nil))
}

// BackofficeLogin signs in an administrator. A valid non-admin account is
// rejected with the same notice as bad credentials.
func (h *AuthHandler) BackofficeLogin(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := h.auth.Login(ctx, c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		return h.redirectWithError(c, "/backoffice/login", err)
	}
	if !account.IsAdmin() {
		return h.redirectWithError(c, "/backoffice/login", domain.ErrInvalidCredentials)
	}
	if err := h.sessions.Authenticate(ctx, middleware.SessionID(c), account.ID); err != nil {
		h.logger.Error().Err(err).Int64("account_id", account.ID).Msg("failed to bind session")
		return h.redirectWithError(c, "/backoffice/login", err)
	}
	return c.Redirect(http.StatusSeeOther, "/backoffice")
}

// BackofficeLogout destroys the session and returns to the admin sign-in.
func (h *AuthHandler) BackofficeLogout(c echo.Context) error {
	h.sessions.End(c.Request().Context(), middleware.SessionID(c))
	return c.Redirect(http.StatusSeeOther, "/backoffice/login")
}

// UpdateAccount dispatches the self-service account form. The page carries
// two forms that post to the same path, discriminated by the action field.
func (h *AuthHandler) UpdateAccount(c echo.Context) error {
	ctx := c.Request().Context()
	actor := middleware.Actor(c)

	switch action := c.FormValue("action"); action {
	case "update_profile":
		input := ports.ProfileInput{
			FullName:      c.FormValue("full_name"),
			Email:         c.FormValue("email"),
			Phone:         c.FormValue("phone"),
			PersonType:    c.FormValue("person_type"),
			PreferredLang: c.FormValue("preferred_lang"),
		}
		if err := h.auth.UpdateProfile(ctx, actor.ID, input); err != nil {
			return h.redirectWithError(c, "/site/account", err)
		}
		return h.redirectWithSuccess(c, "/site/account", "Your profile has been updated.")

	case "change_password":
		err := h.auth.ChangePassword(ctx, actor.ID,
			c.FormValue("current_password"),
			c.FormValue("new_password"),
			c.FormValue("confirm_password"))
		if err != nil {
			return h.redirectWithError(c, "/site/account", err)
		}
		return h.redirectWithSuccess(c, "/site/account", "Your password has been changed.")

	default:
		h.flash(c, domain.FlashDanger, "Unknown action.")
		return c.Redirect(http.StatusSeeOther, "/site/account")
	}
}
