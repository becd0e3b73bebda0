package ports

import (
	"context"

	"github.com/fichaje/workday-api/internal/core/domain"
)

// WorkdayRepository defines persistence operations for workdays keyed by
// (user DNI, date).
type WorkdayRepository interface {
	// Upsert inserts the workday or overwrites every field of the existing
	// row with the same key in a single statement.
	Upsert(ctx context.Context, w *domain.Workday) error
	Get(ctx context.Context, dni, date string) (*domain.Workday, error)
	// ListByUser returns the user's workdays, newest date first.
	ListByUser(ctx context.Context, dni string) ([]domain.Workday, error)
	// ListAll returns every workday ordered by DNI, then newest date first.
	ListAll(ctx context.Context) ([]domain.Workday, error)
	// Delete is idempotent: a missing key is not an error.
	Delete(ctx context.Context, dni, date string) error
}
