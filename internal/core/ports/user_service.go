package ports

import (
	"context"

	"github.com/fichaje/workday-api/internal/core/domain"
)

// UpdateUserInput carries the optional fields of an admin user update.
type UpdateUserInput struct {
	Password *string
	Role     *string
}

// UserService defines the administrative account operations.
type UserService interface {
	Register(ctx context.Context, dni, password, role string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, dni string, in UpdateUserInput) error
	Delete(ctx context.Context, dni string) error
}
