package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/libraryhub/portal/internal/api/handler"
	"github.com/libraryhub/portal/internal/api/middleware"
	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
	"github.com/libraryhub/portal/internal/core/service"

	_ "github.com/libraryhub/portal/docs"
)

// Deps are the collaborators the portal routes are built from.
type Deps struct {
	Registry *service.SessionRegistry
	Accounts ports.AccountAPI
	Library  ports.LibraryAPIFactory
	Health   []ports.HealthChecker

	Cookie             middleware.BrowserContextConfig
	LoginRatePerMinute int
	TrustProxy         bool
	Log                zerolog.Logger

	// Metrics receives the HTTP server metrics. Nil means the default
	// Prometheus registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// Client IPs key the login throttle, so forwarded headers are only
	// honoured from proxies the operator vouches for.
	e.IPExtractor = echo.ExtractIPDirect()
	if d.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.SecurityHeaders())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "portal",
		Registerer: registerer(d.Metrics),
	}))

	// --- Ops (no browser context) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer(d.Metrics),
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Browser routes ---
	browser := middleware.BrowserContext(d.Registry, d.Cookie)
	limiter := middleware.NewRateLimiter(d.LoginRatePerMinute).Middleware()

	sessionHandler := handler.NewSessionHandler(d.Accounts)
	userHandler := handler.NewUserHandler(d.Library)
	adminHandler := handler.NewAdminHandler(d.Library)

	pages := e.Group("", browser)
	pages.GET("/", sessionHandler.Welcome)
	pages.GET("/login", sessionHandler.LoginPage)
	pages.POST("/login", sessionHandler.Login, limiter)
	pages.GET("/register", sessionHandler.RegisterPage)
	pages.POST("/register", sessionHandler.Register, limiter)
	pages.POST("/logout", sessionHandler.Logout)
	pages.GET("/session", sessionHandler.Session)
	pages.GET("/forbidden", sessionHandler.Forbidden)

	// --- USER routes ---
	user := pages.Group("/user",
		middleware.Guard(domain.RoleUser, d.Log),
		middleware.ExpireSession(d.Log),
	)
	user.GET("", userHandler.Dashboard)
	user.GET("/profile", userHandler.Profile)
	user.PUT("/profile", userHandler.UpdateProfile)
	user.GET("/borrowed", userHandler.Borrowed)
	user.POST("/borrow/:bookId", userHandler.Borrow)
	user.POST("/return/:id", userHandler.Return)

	// --- ADMIN routes ---
	admin := pages.Group("/admin",
		middleware.Guard(domain.RoleAdmin, d.Log),
		middleware.ExpireSession(d.Log),
	)
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/user/:userId", adminHandler.UserProfile)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.POST("/book", adminHandler.AddBook)
	admin.DELETE("/book/:id", adminHandler.DeleteBook)
	admin.PUT("/book/stock/:id", adminHandler.UpdateStock)

	return e
}

func registerer(r *prometheus.Registry) prometheus.Registerer {
	if r == nil {
		return prometheus.DefaultRegisterer
	}
	return r
}

func gatherer(r *prometheus.Registry) prometheus.Gatherer {
	if r == nil {
		return prometheus.DefaultGatherer
	}
	return r
}
