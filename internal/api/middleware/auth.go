package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

const (
	sessionCookie = "session"

	ctxActor     = "actor"
	ctxSessionID = "session_id"
)

const (
	siteLoginPath       = "/site/login"
	backofficeLoginPath = "/backoffice/login"
)

// LoadActor guarantees every request carries a valid session (creating an
// anonymous one when needed, so CSRF tokens exist before login) and injects
// the resolved actor into the request context. It never blocks a request.
// secure marks the cookie Secure; keep it off only for plain-HTTP
// development setups.
func LoadActor(sessions ports.SessionManager, secure bool, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var presented string
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				presented = cookie.Value
			}

			sessionID, err := sessions.Ensure(ctx, presented)
			if err != nil {
				logger.Error().Err(err).Msg("failed to establish session")
				return echo.NewHTTPError(http.StatusInternalServerError)
			}
			if sessionID != presented {
				c.SetCookie(&http.Cookie{
					Name:     sessionCookie,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			actor, err := sessions.Resolve(ctx, sessionID)
			if err != nil {
				logger.Error().Err(err).Msg("failed to resolve actor")
				return echo.NewHTTPError(http.StatusInternalServerError)
			}

			c.Set(ctxSessionID, sessionID)
			if actor != nil {
				c.Set(ctxActor, actor)
			}
			return next(c)
		}
	}
}

// Actor returns the authenticated account for the request, or nil.
func Actor(c echo.Context) *domain.Account {
	actor, _ := c.Get(ctxActor).(*domain.Account)
	return actor
}

// SessionID returns the session id established by LoadActor.
func SessionID(c echo.Context) string {
	id, _ := c.Get(ctxSessionID).(string)
	return id
}

// RequireAuthenticated redirects unauthenticated callers to the site login.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Actor(c) == nil {
				return c.Redirect(http.StatusSeeOther, siteLoginPath)
			}
			return next(c)
		}
	}
}

// RequireAdmin redirects non-admin callers, authenticated or not, to the
// backoffice login.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Actor(c).IsAdmin() {
				return c.Redirect(http.StatusSeeOther, backofficeLoginPath)
			}
			return next(c)
		}
	}
}
