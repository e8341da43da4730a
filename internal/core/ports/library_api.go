package ports

import (
	"context"

	"github.com/libraryhub/portal/internal/core/domain"
)

// AccountAPI covers the backend calls made before a session exists.
type AccountAPI interface {
	Register(ctx context.Context, reg domain.Registration) error
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error)
}

// LibraryAPI covers the authenticated backend calls. Implementations attach the
// caller's credential to each request.
type LibraryAPI interface {
	Profile(ctx context.Context) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error

	AvailableBooks(ctx context.Context) ([]domain.Book, error)
	SearchBooks(ctx context.Context, field domain.BookSearchField, query string) ([]domain.Book, error)
	Borrow(ctx context.Context, bookID string) error
	Return(ctx context.Context, recordID string) error
	Borrowed(ctx context.Context) ([]domain.BorrowRecord, error)

	ListUsers(ctx context.Context) ([]domain.Profile, error)
	DeleteUser(ctx context.Context, userID string) error
	UserProfile(ctx context.Context, userID string) (*domain.Profile, error)
	BorrowRecords(ctx context.Context) ([]domain.BorrowRecord, error)
	BorrowRecordsFor(ctx context.Context, username string) ([]domain.BorrowRecord, error)
	AddBook(ctx context.Context, book domain.NewBook) error
	DeleteBook(ctx context.Context, bookID string) error
	UpdateStock(ctx context.Context, bookID string, change int) error
}

// LibraryAPIFactory binds the shared backend client to a browser context's
// credentials.
type LibraryAPIFactory func(creds CredentialSource) LibraryAPI
