package handler

import (
	"encoding/json"

	"github.com/fichaje/workday-api/internal/core/domain"
)

// ErrorResponse is the envelope returned on every 4xx/5xx response.
// Error and Message carry the same text.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// --- Requests ---

type loginRequest struct {
	DNI      string `json:"dni"`
	Password string `json:"password"`
}

type dateQuery struct {
	Date string `query:"date" validate:"required,datetime=2006-01-02"`
}

// saveWorkdayRequest is the body of POST /workday. Every key must be present;
// start_time and end_time may be null.
type saveWorkdayRequest struct {
	Date               string            `json:"date"                 validate:"required,datetime=2006-01-02"`
	StartTime          *int64            `json:"start_time"`
	EndTime            *int64            `json:"end_time"`
	TotalBreakDuration *int64            `json:"total_break_duration" validate:"omitempty,gte=0"`
	Events             []json.RawMessage `json:"events"`
}

var saveWorkdayFields = []string{"date", "start_time", "end_time", "total_break_duration", "events"}

type deleteWorkdayRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type registerUserRequest struct {
	DNI      string `json:"dni"      validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type updateUserRequest struct {
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// --- Responses ---

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	UserDNI string      `json:"user_dni"`
	Role    domain.Role `json:"role"`
}

type workdayResponse struct {
	Success bool            `json:"success"`
	Workday *domain.Workday `json:"workday"`
}

type workdaysResponse struct {
	Success  bool             `json:"success"`
	Workdays []domain.Workday `json:"workdays"`
}

type usersResponse struct {
	Success bool          `json:"success"`
	Users   []domain.User `json:"users"`
}

func ok(message string) messageResponse {
	return messageResponse{Success: true, Message: message}
}
