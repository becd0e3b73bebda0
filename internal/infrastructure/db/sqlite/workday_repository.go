package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/fichaje/workday-api/internal/core/domain"
	"github.com/fichaje/workday-api/internal/core/ports"
)

const (
	upsertWorkdayQuery = `INSERT INTO workdays (user_dni, date, start_time, end_time, total_break_duration, events)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (user_dni, date) DO UPDATE SET
    start_time = excluded.start_time,
    end_time = excluded.end_time,
    total_break_duration = excluded.total_break_duration,
    events = excluded.events`

	workdayColumns = `user_dni, date, start_time, end_time, total_break_duration, events`

	getWorkdayQuery      = `SELECT ` + workdayColumns + ` FROM workdays WHERE user_dni = ? AND date = ?`
	listUserWorkdayQuery = `SELECT ` + workdayColumns + ` FROM workdays WHERE user_dni = ? ORDER BY date DESC`
	listAllWorkdayQuery  = `SELECT ` + workdayColumns + ` FROM workdays ORDER BY user_dni ASC, date DESC`
	deleteWorkdayQuery   = `DELETE FROM workdays WHERE user_dni = ? AND date = ?`
)

// WorkdayRepository implements ports.WorkdayRepository on SQLite. Events are
// stored as a JSON array in a TEXT column.
type WorkdayRepository struct {
	db *sql.DB
}

func NewWorkdayRepository(db *sql.DB) *WorkdayRepository {
	return &WorkdayRepository{db: db}
}

var _ ports.WorkdayRepository = (*WorkdayRepository)(nil)

// Upsert inserts the workday or overwrites every field of the existing row
// with the same owner and date, in a single statement.
func (r *WorkdayRepository) Upsert(ctx context.Context, w *domain.Workday) error {
	events := w.Events
	if events == nil {
		events = []json.RawMessage{}
	}
	blob, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}

	_, err = r.db.ExecContext(ctx, upsertWorkdayQuery,
		w.UserDNI,
		w.Date,
		nullInt64(w.StartTime),
		nullInt64(w.EndTime),
		w.TotalBreakDuration,
		string(blob),
	)
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
			return domain.ErrUnknownOwner
		}
		return fmt.Errorf("upsert workday: %w", err)
	}
	return nil
}

func (r *WorkdayRepository) Get(ctx context.Context, dni, date string) (*domain.Workday, error) {
	w, err := scanWorkday(r.db.QueryRowContext(ctx, getWorkdayQuery, dni, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWorkdayNotFound
		}
		return nil, fmt.Errorf("get workday: %w", err)
	}
	return w, nil
}

// ListByUser returns the owner's workdays, newest date first.
func (r *WorkdayRepository) ListByUser(ctx context.Context, dni string) ([]domain.Workday, error) {
	return r.list(ctx, listUserWorkdayQuery, dni)
}

// ListAll returns every workday ordered by owner, then newest date first.
func (r *WorkdayRepository) ListAll(ctx context.Context) ([]domain.Workday, error) {
	return r.list(ctx, listAllWorkdayQuery)
}

// Delete removes the row if present. A missing row is not an error.
func (r *WorkdayRepository) Delete(ctx context.Context, dni, date string) error {
	if _, err := r.db.ExecContext(ctx, deleteWorkdayQuery, dni, date); err != nil {
		return fmt.Errorf("delete workday: %w", err)
	}
	return nil
}

func (r *WorkdayRepository) list(ctx context.Context, query string, args ...any) ([]domain.Workday, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workdays: %w", err)
	}
	defer rows.Close()

	out := []domain.Workday{}
	for rows.Next() {
		w, err := scanWorkday(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workday: %w", err)
		}
		out = append(out, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list workdays: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkday(row rowScanner) (*domain.Workday, error) {
	var (
		w      domain.Workday
		start  sql.NullInt64
		end    sql.NullInt64
		events sql.NullString
	)
	if err := row.Scan(&w.UserDNI, &w.Date, &start, &end, &w.TotalBreakDuration, &events); err != nil {
		return nil, err
	}
	if start.Valid {
		w.StartTime = &start.Int64
	}
	if end.Valid {
		w.EndTime = &end.Int64
	}

	decoded, err := decodeEvents(events)
	if err != nil {
		return nil, err
	}
	w.Events = decoded
	return &w, nil
}

// decodeEvents treats a missing, empty or null blob as an empty list.
func decodeEvents(blob sql.NullString) ([]json.RawMessage, error) {
	if !blob.Valid || blob.String == "" || blob.String == "null" {
		return []json.RawMessage{}, nil
	}
	var events []json.RawMessage
	if err := json.Unmarshal([]byte(blob.String), &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	if events == nil {
		events = []json.RawMessage{}
	}
	return events, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
