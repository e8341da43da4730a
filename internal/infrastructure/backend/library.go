package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/libraryhub/portal/internal/core/domain"
)

// Register creates an account. The response body is ignored.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	return c.do(ctx, http.MethodPost, "/register", nil, reg, nil)
}

// Login exchanges credentials for a token and role. A result missing either
// half is rejected as ErrInvalidCredential.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	var res domain.LoginResult
	if err := c.do(ctx, http.MethodPost, c.loginPath, nil, req, &res); err != nil {
		return nil, err
	}
	if res.Token == "" || res.Role == domain.RoleNone {
		return nil, fmt.Errorf("login response: %w", domain.ErrInvalidCredential)
	}
	return &res, nil
}

func (c *Client) Profile(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/user/profile", nil, update, nil)
}

func (c *Client) AvailableBooks(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	err := c.do(ctx, http.MethodGet, "/user/available-books", nil, nil, &books)
	return books, err
}

// SearchBooks queries the catalog by one field. Each field has its own
// backend endpoint.
func (c *Client) SearchBooks(ctx context.Context, field domain.BookSearchField, query string) ([]domain.Book, error) {
	var path string
	switch field {
	case domain.SearchByTitle:
		path = "/user/find-books-by-book-title"
	case domain.SearchByAuthor:
		path = "/user/find-books-by-author"
	case domain.SearchByGenre:
		path = "/user/find-book-by-genre"
	default:
		return nil, fmt.Errorf("search field %q: %w", field, domain.ErrValidation)
	}

	var books []domain.Book
	err := c.do(ctx, http.MethodGet, path, url.Values{string(field): {query}}, nil, &books)
	return books, err
}

func (c *Client) Borrow(ctx context.Context, bookID string) error {
	return c.do(ctx, http.MethodPost, "/user/borrow/"+url.PathEscape(bookID), nil, nil, nil)
}

func (c *Client) Return(ctx context.Context, recordID string) error {
	return c.do(ctx, http.MethodPost, "/user/return/"+url.PathEscape(recordID), nil, nil, nil)
}

func (c *Client) Borrowed(ctx context.Context) ([]domain.BorrowRecord, error) {
	var records []domain.BorrowRecord
	err := c.do(ctx, http.MethodGet, "/user/borrowed", nil, nil, &records)
	return records, err
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	var users []domain.Profile
	err := c.do(ctx, http.MethodGet, "/admin/users", nil, nil, &users)
	return users, err
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(userID), nil, nil, nil)
}

func (c *Client) UserProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.do(ctx, http.MethodGet, "/admin/get-user-profile/"+url.PathEscape(userID), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) BorrowRecords(ctx context.Context) ([]domain.BorrowRecord, error) {
	var records []domain.BorrowRecord
	err := c.do(ctx, http.MethodGet, "/admin/borrowed-books", nil, nil, &records)
	return records, err
}

func (c *Client) BorrowRecordsFor(ctx context.Context, username string) ([]domain.BorrowRecord, error) {
	var records []domain.BorrowRecord
	err := c.do(ctx, http.MethodGet, "/admin/borrowed-books/"+url.PathEscape(username), nil, nil, &records)
	return records, err
}

func (c *Client) AddBook(ctx context.Context, book domain.NewBook) error {
	return c.do(ctx, http.MethodPost, "/admin/book", nil, book, nil)
}

func (c *Client) DeleteBook(ctx context.Context, bookID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/book/"+url.PathEscape(bookID), nil, nil, nil)
}

// UpdateStock adjusts a book's stock by change, which may be negative.
func (c *Client) UpdateStock(ctx context.Context, bookID string, change int) error {
	q := url.Values{"stockChange": {strconv.Itoa(change)}}
	return c.do(ctx, http.MethodPut, "/admin/book/stock/"+url.PathEscape(bookID), q, nil, nil)
}
