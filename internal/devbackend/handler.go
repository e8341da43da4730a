package devbackend

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
)

type Handler struct {
	auth ports.AuthService
}

func NewHandler(auth ports.AuthService) *Handler {
	return &Handler{auth: auth}
}

type messageResponse struct {
	Message string `json:"message"`
}

func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Register creates a new user account.
func (h *Handler) Register(c echo.Context) error {
	var req domain.Registration
	if err := bindValid(c, &req); err != nil {
		return err
	}

	if _, err := h.auth.Register(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "user registered"})
}

// Login authenticates a user and returns a JWT with the user's role.
func (h *Handler) Login(c echo.Context) error {
	var req domain.LoginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.LoginResult{Token: token, Role: user.Role})
}

func (h *Handler) Profile(c echo.Context) error {
	user, err := h.auth.Profile(c.Request().Context(), callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Profile())
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var req domain.ProfileUpdate
	if err := bindValid(c, &req); err != nil {
		return err
	}

	user, err := h.auth.UpdateProfile(c.Request().Context(), callerID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Profile())
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.auth.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetUser(c echo.Context) error {
	user, err := h.auth.Profile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Profile())
}

func (h *Handler) DeleteUser(c echo.Context) error {
	if err := h.auth.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func callerID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}
