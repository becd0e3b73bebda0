package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fichaje/workday-api/internal/api/metrics"
	"github.com/fichaje/workday-api/internal/core/domain"
	"github.com/fichaje/workday-api/internal/core/ports"
)

// WorkdayService implements the workday operations on behalf of an owner.
type WorkdayService struct {
	repo ports.WorkdayRepository
	log  zerolog.Logger
}

// NewWorkdayService returns a WorkdayService backed by repo.
func NewWorkdayService(repo ports.WorkdayRepository, log zerolog.Logger) *WorkdayService {
	return &WorkdayService{repo: repo, log: log}
}

// Save stores the workday, replacing any record with the same owner and date.
func (s *WorkdayService) Save(ctx context.Context, w *domain.Workday) error {
	w.NormalizeEvents()
	if err := s.repo.Upsert(ctx, w); err != nil {
		s.log.Error().Err(err).Str("dni", w.UserDNI).Str("date", w.Date).Msg("failed to save workday")
		return err
	}
	metrics.WorkdaysSavedTotal.Inc()
	s.log.Info().
		Str("dni", w.UserDNI).
		Str("date", w.Date).
		Int("events", len(w.Events)).
		Msg("workday saved")
	return nil
}

func (s *WorkdayService) Get(ctx context.Context, dni, date string) (*domain.Workday, error) {
	return s.repo.Get(ctx, dni, date)
}

func (s *WorkdayService) ListForUser(ctx context.Context, dni string) ([]domain.Workday, error) {
	return s.repo.ListByUser(ctx, dni)
}

func (s *WorkdayService) ListAll(ctx context.Context) ([]domain.Workday, error) {
	return s.repo.ListAll(ctx)
}

// Delete removes the record for (dni, date). Missing records are ignored.
func (s *WorkdayService) Delete(ctx context.Context, dni, date string) error {
	if err := s.repo.Delete(ctx, dni, date); err != nil {
		s.log.Error().Err(err).Str("dni", dni).Str("date", date).Msg("failed to delete workday")
		return err
	}
	metrics.WorkdaysDeletedTotal.Inc()
	s.log.Info().Str("dni", dni).Str("date", date).Msg("workday deleted")
	return nil
}
