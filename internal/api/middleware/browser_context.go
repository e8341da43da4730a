package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/libraryhub/portal/internal/core/service"
)

// BrowserContextConfig configures the cookie identifying a browser.
type BrowserContextConfig struct {
	Cookie string
	Secure bool
}

// BrowserContext resolves the browser context of every request from its
// cookie, issuing a fresh identifier when the cookie is missing or malformed,
// and injects the context's session.
func BrowserContext(reg *service.SessionRegistry, cfg BrowserContextConfig) echo.MiddlewareFunc {
	if cfg.Cookie == "" {
		cfg.Cookie = "portal_ctx"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(cfg.Cookie); err == nil {
				if parsed, err := uuid.Parse(ck.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cfg.Cookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			svc, err := reg.Get(c.Request().Context(), id)
			if err != nil {
				return err
			}

			c.Set(contextIDKey, id)
			c.Set(sessionKey, svc)
			return next(c)
		}
	}
}
