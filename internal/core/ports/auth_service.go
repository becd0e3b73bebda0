package ports

import (
	"context"

	"github.com/fichaje/workday-api/internal/core/domain"
)

// AuthService verifies credentials.
type AuthService interface {
	Login(ctx context.Context, dni, password string) (*domain.User, error)
}

// LoginLimiter throttles repeated failed logins for the same DNI.
type LoginLimiter interface {
	Blocked(ctx context.Context, dni string) (bool, error)
	RecordFailure(ctx context.Context, dni string) error
	Reset(ctx context.Context, dni string) error
}
