package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/libraryhub/portal/internal/core/domain"
)

// ExpireSession ends the browser's session when a handler reports that the
// backend rejected its credential, so the next navigation is sent to login.
// The original error still reaches the error handler.
func ExpireSession(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil || !errors.Is(err, domain.ErrSessionExpired) {
				return err
			}

			if svc := Session(c); svc != nil {
				if clearErr := svc.Expire(c.Request().Context()); clearErr != nil {
					log.Error().Err(clearErr).Str("context_id", ContextID(c)).Msg("expire session")
				}
			}
			return err
		}
	}
}
