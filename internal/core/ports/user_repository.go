package ports

import (
	"context"

	"github.com/fichaje/workday-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByDNI(ctx context.Context, dni string) (*domain.User, error)
	// Create inserts a new user. It returns domain.ErrUserExists when the DNI
	// is already taken.
	Create(ctx context.Context, user *domain.User) error
	// List returns every user ordered by DNI.
	List(ctx context.Context) ([]domain.User, error)
	// Update applies the non-nil fields of upd. It returns
	// domain.ErrUserNotFound when no row was changed.
	Update(ctx context.Context, dni string, upd domain.UserUpdate) error
	// Delete removes the user and, through the foreign key, its workdays.
	Delete(ctx context.Context, dni string) error
}
