package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders the 404 page for unknown routes.
//   - Logs unexpected errors internally without leaking details to the page.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}

		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		switch code {
		case http.StatusNotFound:
			if renderErr := c.Render(code, "errors/404.html", nil); renderErr == nil {
				return
			}
			_ = c.String(code, "page not found")
		default:
			_ = c.String(code, http.StatusText(code))
		}
	}
}
