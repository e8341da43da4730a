package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
)

// AdminHandler serves the ADMIN views.
type AdminHandler struct {
	library ports.LibraryAPIFactory
}

func NewAdminHandler(library ports.LibraryAPIFactory) *AdminHandler {
	return &AdminHandler{library: library}
}

func (h *AdminHandler) api(c echo.Context) (ports.LibraryAPI, error) {
	svc, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	return h.library(svc.Credentials()), nil
}

type adminDashboard struct {
	Users   []domain.Profile      `json:"users"`
	Books   []domain.Book         `json:"books"`
	Records []domain.BorrowRecord `json:"borrowRecords"`
}

type adminUserView struct {
	Profile *domain.Profile       `json:"profile"`
	Records []domain.BorrowRecord `json:"borrowRecords"`
}

// Dashboard loads users, books and borrow records concurrently.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminDashboard
// @Router       /admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	api, err := h.api(c)
	if err != nil {
		return err
	}

	var out adminDashboard
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		out.Users, err = api.ListUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Books, err = api.AvailableBooks(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Records, err = api.BorrowRecords(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// UserProfile shows one user with their borrow history.
//
// @Summary      User detail
// @Tags         admin
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  adminUserView
// @Failure      404     {object}  ErrorResponse
// @Router       /admin/user/{userId} [get]
func (h *AdminHandler) UserProfile(c echo.Context) error {
	api, err := h.api(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	profile, err := api.UserProfile(ctx, c.Param("userId"))
	if err != nil {
		return err
	}
	records, err := api.BorrowRecordsFor(ctx, profile.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminUserView{Profile: profile, Records: records})
}

// DeleteUser removes an account.
//
// @Summary      Delete user
// @Tags         admin
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	api, err := h.api(c)
	if err != nil {
		return err
	}
	if err := api.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddBook adds a catalog entry.
//
// @Summary      Add book
// @Tags         admin
// @Accept       json
// @Param        body  body  domain.NewBook  true  "Book"
// @Success      201
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/book [post]
func (h *AdminHandler) AddBook(c echo.Context) error {
	var req domain.NewBook
	if err := bindValid(c, &req); err != nil {
		return err
	}
	api, err := h.api(c)
	if err != nil {
		return err
	}
	if err := api.AddBook(c.Request().Context(), req); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// DeleteBook removes a catalog entry.
//
// @Summary      Delete book
// @Tags         admin
// @Param        id  path  string  true  "Book ID"
// @Success      204
// @Router       /admin/book/{id} [delete]
func (h *AdminHandler) DeleteBook(c echo.Context) error {
	api, err := h.api(c)
	if err != nil {
		return err
	}
	if err := api.DeleteBook(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateStock moves a book's stock by stockChange.
//
// @Summary      Change stock
// @Tags         admin
// @Param        id           path   string  true  "Book ID"
// @Param        stockChange  query  int     true  "Signed stock delta"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/book/stock/{id} [put]
func (h *AdminHandler) UpdateStock(c echo.Context) error {
	change, err := strconv.Atoi(c.QueryParam("stockChange"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "stockChange must be an integer")
	}
	api, err := h.api(c)
	if err != nil {
		return err
	}
	if err := api.UpdateStock(c.Request().Context(), c.Param("id"), change); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
