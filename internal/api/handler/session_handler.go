package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/guard"
	"github.com/libraryhub/portal/internal/core/ports"
)

// SessionHandler serves the public pages: welcome, login, registration,
// logout and the current-session endpoint.
type SessionHandler struct {
	accounts ports.AccountAPI
}

func NewSessionHandler(accounts ports.AccountAPI) *SessionHandler {
	return &SessionHandler{accounts: accounts}
}

type sessionResponse struct {
	domain.SessionState
	Redirect string `json:"redirect,omitempty"`
}

type welcomeResponse struct {
	Message string              `json:"message"`
	Links   []string            `json:"links"`
	Session domain.SessionState `json:"session"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type registerHint struct {
	Fields []string      `json:"fields"`
	Roles  []domain.Role `json:"roles"`
}

// Welcome renders the landing page.
//
// @Summary      Welcome page
// @Tags         session
// @Produce      json
// @Success      200  {object}  welcomeResponse
// @Router       / [get]
func (h *SessionHandler) Welcome(c echo.Context) error {
	svc, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, welcomeResponse{
		Message: "Welcome to the library",
		Links:   guard.Public(),
		Session: svc.State(),
	})
}

// LoginPage reports where an already authenticated browser belongs.
//
// @Summary      Login page
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /login [get]
func (h *SessionHandler) LoginPage(c echo.Context) error {
	svc, err := ctxSession(c)
	if err != nil {
		return err
	}
	state := svc.State()
	resp := sessionResponse{SessionState: state}
	if state.Authenticated {
		resp.Redirect = guard.LandingPath(state.Role)
	}
	return c.JSON(http.StatusOK, resp)
}

// Login authenticates against the backend and starts the session.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      domain.LoginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Router       /login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	svc, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req domain.LoginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	res, err := h.accounts.Login(ctx, req)
	if err != nil {
		return err
	}
	if err := svc.Login(ctx, res.Token, res.Role); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		SessionState: svc.State(),
		Redirect:     guard.LandingPath(res.Role),
	})
}

// RegisterPage describes the registration form.
//
// @Summary      Registration page
// @Tags         session
// @Produce      json
// @Success      200  {object}  registerHint
// @Router       /register [get]
func (h *SessionHandler) RegisterPage(c echo.Context) error {
	return c.JSON(http.StatusOK, registerHint{
		Fields: []string{"firstname", "lastname", "username", "password", "role"},
		Roles:  []domain.Role{domain.RoleUser, domain.RoleAdmin},
	})
}

// Register creates a backend account. The role defaults to USER.
//
// @Summary      Register
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Registration  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req domain.Registration
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Role == domain.RoleNone {
		req.Role = domain.RoleUser
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accounts.Register(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "registration successful, please log in"})
}

// Logout ends the session. Logging out without a session succeeds.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	svc, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := svc.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{SessionState: svc.State(), Redirect: guard.LoginPath})
}

// Session reports the browser's session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.SessionState
// @Router       /session [get]
func (h *SessionHandler) Session(c echo.Context) error {
	svc, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc.State())
}

// Forbidden is where sessions with an unknown role land.
//
// @Summary      Forbidden
// @Tags         session
// @Produce      json
// @Failure      403  {object}  ErrorResponse
// @Router       /forbidden [get]
func (h *SessionHandler) Forbidden(c echo.Context) error {
	return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
}
