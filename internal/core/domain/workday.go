package domain

import (
	"encoding/json"
	"errors"
)

// DateLayout is the calendar date format used as part of a workday key.
const DateLayout = "2006-01-02"

var (
	ErrWorkdayNotFound = errors.New("workday not found")
	// ErrUnknownOwner is returned when a workday is saved for a DNI that has
	// no user account behind it.
	ErrUnknownOwner = errors.New("unknown user")
)

// Workday is the per-day time-tracking record of a single user.
// Timestamps are milliseconds since the Unix epoch.
type Workday struct {
	UserDNI            string            `json:"user_dni"`
	Date               string            `json:"date"`
	StartTime          *int64            `json:"start_time"`
	EndTime            *int64            `json:"end_time"`
	TotalBreakDuration int64             `json:"total_break_duration"`
	Events             []json.RawMessage `json:"events"`
}

// NormalizeEvents replaces a nil event log with an empty one so it always
// serializes as [] instead of null.
func (w *Workday) NormalizeEvents() {
	if w.Events == nil {
		w.Events = []json.RawMessage{}
	}
}
