package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
)

// UserHandler serves the USER views. Every backend call carries the browser
// context's own credential.
type UserHandler struct {
	library ports.LibraryAPIFactory
}

func NewUserHandler(library ports.LibraryAPIFactory) *UserHandler {
	return &UserHandler{library: library}
}

func (h *UserHandler) api(c echo.Context) (ports.LibraryAPI, error) {
	svc, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	return h.library(svc.Credentials()), nil
}

type userDashboard struct {
	Profile *domain.Profile `json:"profile"`
	Books   []domain.Book   `json:"books"`
}

// Dashboard lists the available books, or the search results when field and
// q are given, together with the user's profile.
//
// @Summary      User dashboard
// @Tags         user
// @Produce      json
// @Param        field  query     string  false  "title, author or genre"
// @Param        q      query     string  false  "search text"
// @Success      200    {object}  userDashboard
// @Router       /user [get]
func (h *UserHandler) Dashboard(c echo.Context) error {
	api, err := h.api(c)
	if err != nil {
		return err
	}

	var out userDashboard
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		out.Profile, err = api.Profile(ctx)
		return err
	})
	g.Go(func() (err error) {
		if q := c.QueryParam("q"); q != "" {
			out.Books, err = api.SearchBooks(ctx, domain.BookSearchField(c.QueryParam("field")), q)
			return err
		}
		out.Books, err = api.AvailableBooks(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Profile returns the user's profile.
//
// @Summary      User profile
// @Tags         user
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Router       /user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	api, err := h.api(c)
	if err != nil {
		return err
	}
	p, err := api.Profile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateProfile edits the user's names.
//
// @Summary      Update profile
// @Tags         user
// @Accept       json
// @Param        body  body  domain.ProfileUpdate  true  "New profile"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Router       /user/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req domain.ProfileUpdate
	if err := bindValid(c, &req); err != nil {
		return err
	}
	api, err := h.api(c)
	if err != nil {
		return err
	}
	if err := api.UpdateProfile(c.Request().Context(), req); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Borrowed lists the user's loans.
//
// @Summary      Borrowed books
// @Tags         user
// @Produce      json
// @Success      200  {array}  domain.BorrowRecord
// @Router       /user/borrowed [get]
func (h *UserHandler) Borrowed(c echo.Context) error {
	api, err := h.api(c)
	if err != nil {
		return err
	}
	records, err := api.Borrowed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Borrow takes out a book.
//
// @Summary      Borrow a book
// @Tags         user
// @Param        bookId  path  string  true  "Book ID"
// @Success      204
// @Router       /user/borrow/{bookId} [post]
func (h *UserHandler) Borrow(c echo.Context) error {
	api, err := h.api(c)
	if err != nil {
		return err
	}
	if err := api.Borrow(c.Request().Context(), c.Param("bookId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Return gives back a borrowed book.
//
// @Summary      Return a book
// @Tags         user
// @Param        id  path  string  true  "Borrow record ID"
// @Success      204
// @Router       /user/return/{id} [post]
func (h *UserHandler) Return(c echo.Context) error {
	api, err := h.api(c)
	if err != nil {
		return err
	}
	if err := api.Return(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
