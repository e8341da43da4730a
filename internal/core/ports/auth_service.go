package ports

import (
	"context"

	"github.com/libraryhub/portal/internal/core/domain"
)

// AuthService is the development backend's account service. Users are
// addressed by ID; tokens carry the ID as their subject.
type AuthService interface {
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}
