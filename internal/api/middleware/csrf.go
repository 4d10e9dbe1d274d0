package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

const csrfField = "csrf_token"

const invalidTokenNotice = "Invalid session token. Reload the page and try again."

// VerifyCSRF guards mutating requests: the submitted token must match the
// session token before any handler runs, so a failed check can never leave
// a partial write. On failure the visitor is sent back to the page they
// posted to with a notice.
func VerifyCSRF(sessions ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodPost {
				return next(c)
			}
			ctx := c.Request().Context()
			sessionID := SessionID(c)
			if !sessions.VerifyCSRF(ctx, sessionID, c.FormValue(csrfField)) {
				sessions.Flash(ctx, sessionID, domain.FlashDanger, invalidTokenNotice)
				return c.Redirect(http.StatusSeeOther, c.Request().URL.Path)
			}
			return next(c)
		}
	}
}
