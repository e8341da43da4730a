package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/libraryhub/portal/internal/core/service"
)

const (
	sessionKey   = "session"
	contextIDKey = "context_id"
)

// Session returns the browser context's session injected by BrowserContext,
// or nil when the middleware did not run.
func Session(c echo.Context) *service.SessionService {
	svc, _ := c.Get(sessionKey).(*service.SessionService)
	return svc
}

// ContextID returns the browser context identifier of the request.
func ContextID(c echo.Context) string {
	id, _ := c.Get(contextIDKey).(string)
	return id
}
