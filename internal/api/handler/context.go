package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/digitalget/services-site/internal/api/middleware"
	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

// base carries the pieces every page handler needs: the session layer for
// flashes and CSRF tokens, and the site name shown in layouts.
type base struct {
	sessions ports.SessionManager
	siteName string
}

// view assembles the data bundle shared by every rendered page. Flashes are
// consumed here, so rendering a page drains the pending notices for the
// session.
func (b base) view(c echo.Context, activePage string, extra map[string]any) map[string]any {
	ctx := c.Request().Context()
	sid := middleware.SessionID(c)
	token, _ := b.sessions.CSRFToken(ctx, sid)
	data := map[string]any{
		"site_name":   b.siteName,
		"active_page": activePage,
		"user":        middleware.Actor(c),
		"csrf_token":  token,
		"flashes":     b.sessions.PopFlashes(ctx, sid),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (b base) flash(c echo.Context, level, message string) {
	b.sessions.Flash(c.Request().Context(), middleware.SessionID(c), level, message)
}

// redirectWithError flashes a user-facing message for err and sends the
// browser back to path.
func (b base) redirectWithError(c echo.Context, path string, err error) error {
	b.flash(c, domain.FlashDanger, userMessage(err))
	return c.Redirect(http.StatusSeeOther, path)
}

// redirectWithSuccess flashes a success notice and sends the browser to path.
func (b base) redirectWithSuccess(c echo.Context, path, message string) error {
	b.flash(c, domain.FlashSuccess, message)
	return c.Redirect(http.StatusSeeOther, path)
}
