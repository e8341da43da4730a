package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/libraryhub/portal/internal/api/metrics"
	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/guard"
)

// Guard admits requests whose session satisfies required and redirects the
// rest. The decision is recomputed from the live session on every request.
func Guard(required domain.Role, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var state domain.SessionState
			if svc := Session(c); svc != nil {
				state = svc.State()
			}

			d := guard.Admit(required, state)
			metrics.GuardDecisionsTotal.WithLabelValues(required.String(), string(d.Reason)).Inc()
			if d.Allow {
				return next(c)
			}

			log.Debug().
				Str("context_id", ContextID(c)).
				Str("path", c.Request().URL.Path).
				Str("required", required.String()).
				Str("reason", string(d.Reason)).
				Str("target", d.Target).
				Msg("navigation redirected")
			return c.Redirect(http.StatusFound, d.Target)
		}
	}
}
