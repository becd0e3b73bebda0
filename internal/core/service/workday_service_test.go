package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fichaje/workday-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type workdayKey struct{ dni, date string }

type stubWorkdayRepo struct {
	rows      map[workdayKey]domain.Workday
	upsertErr error
	deleteErr error
}

func newStubWorkdayRepo() *stubWorkdayRepo {
	return &stubWorkdayRepo{rows: make(map[workdayKey]domain.Workday)}
}

func (r *stubWorkdayRepo) Upsert(_ context.Context, w *domain.Workday) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.rows[workdayKey{w.UserDNI, w.Date}] = *w
	return nil
}

func (r *stubWorkdayRepo) Get(_ context.Context, dni, date string) (*domain.Workday, error) {
	w, ok := r.rows[workdayKey{dni, date}]
	if !ok {
		return nil, domain.ErrWorkdayNotFound
	}
	return &w, nil
}

func (r *stubWorkdayRepo) ListByUser(_ context.Context, dni string) ([]domain.Workday, error) {
	out := []domain.Workday{}
	for k, w := range r.rows {
		if k.dni == dni {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *stubWorkdayRepo) ListAll(_ context.Context) ([]domain.Workday, error) {
	out := []domain.Workday{}
	for _, w := range r.rows {
		out = append(out, w)
	}
	return out, nil
}

func (r *stubWorkdayRepo) Delete(_ context.Context, dni, date string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.rows, workdayKey{dni, date})
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestWorkdayService_Save_NormalizesNilEvents(t *testing.T) {
	repo := newStubWorkdayRepo()
	svc := NewWorkdayService(repo, zerolog.Nop())

	w := &domain.Workday{UserDNI: "12345678A", Date: "2024-01-01"}
	if err := svc.Save(context.Background(), w); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	stored := repo.rows[workdayKey{"12345678A", "2024-01-01"}]
	if stored.Events == nil || len(stored.Events) != 0 {
		t.Fatalf("expected empty non-nil events, got %#v", stored.Events)
	}
}

func TestWorkdayService_Save_LastWriteWins(t *testing.T) {
	repo := newStubWorkdayRepo()
	svc := NewWorkdayService(repo, zerolog.Nop())

	first := &domain.Workday{UserDNI: "12345678A", Date: "2024-01-01", StartTime: int64Ptr(1000), TotalBreakDuration: 10}
	second := &domain.Workday{
		UserDNI:            "12345678A",
		Date:               "2024-01-01",
		StartTime:          int64Ptr(2000),
		EndTime:            int64Ptr(9000),
		TotalBreakDuration: 20,
		Events:             []json.RawMessage{json.RawMessage(`{"type":"start","ts":2000}`)},
	}
	_ = svc.Save(context.Background(), first)
	_ = svc.Save(context.Background(), second)

	if len(repo.rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(repo.rows))
	}
	got, err := svc.Get(context.Background(), "12345678A", "2024-01-01")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if *got.StartTime != 2000 || got.TotalBreakDuration != 20 || len(got.Events) != 1 {
		t.Fatalf("expected second payload, got %+v", got)
	}
}

func TestWorkdayService_Save_RepoError(t *testing.T) {
	repo := newStubWorkdayRepo()
	repo.upsertErr = errors.New("database is locked")
	svc := NewWorkdayService(repo, zerolog.Nop())

	if err := svc.Save(context.Background(), &domain.Workday{UserDNI: "x", Date: "2024-01-01"}); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

func TestWorkdayService_Get_NotFound(t *testing.T) {
	svc := NewWorkdayService(newStubWorkdayRepo(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), "12345678A", "2024-01-01"); !errors.Is(err, domain.ErrWorkdayNotFound) {
		t.Fatalf("expected ErrWorkdayNotFound, got %v", err)
	}
}

func TestWorkdayService_Delete_MissingIsNoop(t *testing.T) {
	repo := newStubWorkdayRepo()
	svc := NewWorkdayService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), "12345678A", "1999-01-01"); err != nil {
		t.Fatalf("expected nil for missing workday, got %v", err)
	}
}

func TestWorkdayService_Delete_RepoError(t *testing.T) {
	repo := newStubWorkdayRepo()
	repo.deleteErr = errors.New("disk full")
	svc := NewWorkdayService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), "12345678A", "2024-01-01"); err == nil {
		t.Fatal("expected repo error to propagate")
	}
}
