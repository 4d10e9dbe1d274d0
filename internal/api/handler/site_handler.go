package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/digitalget/services-site/internal/api/middleware"
	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

type SiteHandler struct {
	base
	site    ports.SiteService
	mailing ports.MailingService
	logger  zerolog.Logger
}

func NewSiteHandler(site ports.SiteService, mailing ports.MailingService, sessions ports.SessionManager, siteName string, logger zerolog.Logger) *SiteHandler {
	return &SiteHandler{
		base:    base{sessions: sessions, siteName: siteName},
		site:    site,
		mailing: mailing,
		logger:  logger,
	}
}

// sitePages is the complete set reachable under /site/:page. Anything
// outside it is not found, signed in or not.
var sitePages = map[string]bool{
	"login":    true,
	"register": true,
	"account":  true,
	"contact":  true,
	"home":     true,
	"about":    true,
	"services": true,
	"projects": true,
	"team":     true,
}

// Page renders a public site page. Only the sign-in and sign-up pages are
// reachable without a session; everything else redirects to the sign-in.
func (h *SiteHandler) Page(c echo.Context) error {
	page := c.Param("page")
	if !sitePages[page] {
		return echo.ErrNotFound
	}
	actor := middleware.Actor(c)

	switch page {
	case "login", "register":
		if actor != nil {
			return c.Redirect(http.StatusSeeOther, "/site/home")
		}
		return c.Render(http.StatusOK, "site/"+page+".html", h.view(c, page, nil))
	}

	if actor == nil {
		return c.Redirect(http.StatusSeeOther, "/site/login")
	}

	switch page {
	case "account", "contact":
		return c.Render(http.StatusOK, "site/"+page+".html", h.view(c, page, nil))
	}

	extra, err := h.site.BuildPageContext(c.Request().Context(), page)
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			return echo.ErrNotFound
		}
		h.logger.Error().Err(err).Str("page", page).Msg("failed to build page context")
		return err
	}
	return c.Render(http.StatusOK, "site/"+page+".html", h.view(c, page, extra))
}

type contactForm struct {
	LastName  string `form:"last_name" validate:"required"`
	FirstName string `form:"first_name" validate:"required"`
	Phone     string `form:"phone" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Company   string `form:"company" validate:"required"`
	Message   string `form:"message" validate:"required"`
}

// SubmitContact handles the contact form. Sending is best effort: a
// transport failure becomes a notice, not an error page.
func (h *SiteHandler) SubmitContact(c echo.Context) error {
	var form contactForm
	if err := c.Bind(&form); err != nil {
		return h.redirectWithError(c, "/site/contact", domain.ErrMissingFields)
	}
	if err := c.Validate(&form); err != nil {
		h.flash(c, domain.FlashDanger, err.Error())
		return c.Redirect(http.StatusSeeOther, "/site/contact")
	}

	input := ports.ContactInput{
		LastName:  form.LastName,
		FirstName: form.FirstName,
		Phone:     form.Phone,
		Email:     form.Email,
		Company:   form.Company,
		Message:   form.Message,
	}

	sent, err := h.mailing.SendContactMessage(c.Request().Context(), input)
	if err != nil {
		return h.redirectWithError(c, "/site/contact", err)
	}
	if !sent {
		h.flash(c, domain.FlashDanger, "Your message could not be sent. Please try again later.")
		return c.Redirect(http.StatusSeeOther, "/site/contact")
	}
	return h.redirectWithSuccess(c, "/site/contact", "Thank you, your message has been sent.")
}
