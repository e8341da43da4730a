package devbackend

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/libraryhub/portal/internal/api"
	"github.com/libraryhub/portal/internal/api/handler"
	"github.com/libraryhub/portal/internal/api/middleware"
	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
)

// NewRouter builds the development backend. metrics may be nil to skip HTTP
// instrumentation; otherwise it must be the registry /metrics gathers from,
// i.e. prometheus.DefaultRegisterer.
func NewRouter(auth ports.AuthService, jwtSecret string, log zerolog.Logger, metrics prometheus.Registerer, health ...ports.HealthChecker) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	if metrics != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "devbackend",
			Registerer: metrics,
		}))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	h := NewHandler(auth)

	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(health...).Readiness)

	e.POST("/register", h.Register)
	e.POST("/login", h.Login)

	authn := Auth(jwtSecret)

	user := e.Group("/user", authn, RBAC(domain.RoleUser, domain.RoleAdmin))
	user.GET("/profile", h.Profile)
	user.PUT("/profile", h.UpdateProfile)

	admin := e.Group("/admin", authn, RBAC(domain.RoleAdmin))
	admin.GET("/users", h.ListUsers)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.GET("/get-user-profile/:id", h.GetUser)

	return e
}
