package domain

import "errors"

// Role is the capability level attached to a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("role must be one of: user, admin")
	ErrNothingToUpdate    = errors.New("nothing to update: provide password and/or role")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many failed login attempts, try again later")
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User models an account identified by its DNI.
type User struct {
	DNI          string `json:"dni"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// UserUpdate carries the optional fields an administrator may change.
// A nil field is left untouched.
type UserUpdate struct {
	PasswordHash *string
	Role         *Role
}

// Empty reports whether the update would change nothing.
func (u UserUpdate) Empty() bool {
	return u.PasswordHash == nil && u.Role == nil
}
