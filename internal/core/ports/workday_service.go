package ports

import (
	"context"

	"github.com/fichaje/workday-api/internal/core/domain"
)

// WorkdayService defines the use cases around a user's daily records.
type WorkdayService interface {
	Save(ctx context.Context, w *domain.Workday) error
	Get(ctx context.Context, dni, date string) (*domain.Workday, error)
	ListForUser(ctx context.Context, dni string) ([]domain.Workday, error)
	ListAll(ctx context.Context) ([]domain.Workday, error)
	Delete(ctx context.Context, dni, date string) error
}
