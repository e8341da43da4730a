package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libraryhub/portal/internal/api/middleware"
	"github.com/libraryhub/portal/internal/core/service"
)

// ctxSession extracts the session injected by the BrowserContext middleware.
// Its absence means the route was mounted outside the middleware chain.
func ctxSession(c echo.Context) (*service.SessionService, error) {
	svc := middleware.Session(c)
	if svc == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "browser context missing")
	}
	return svc, nil
}

// bindValid binds the request body into req and validates it.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// ErrorResponse is the canonical error envelope for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
