package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fichaje/workday-api/internal/api/metrics"
	"github.com/fichaje/workday-api/internal/core/domain"
	"github.com/fichaje/workday-api/internal/core/ports"
)

// UserService implements the administrative account operations.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

// NewUserService returns a UserService backed by repo.
func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Register creates a new account. Surrounding whitespace is stripped from
// dni, matching how the identity header is read. An empty role defaults to
// domain.RoleUser.
func (s *UserService) Register(ctx context.Context, dni, password, role string) (*domain.User, error) {
	dni = strings.TrimSpace(dni)
	if dni == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	r := domain.RoleUser
	if role != "" {
		r = domain.Role(role)
	}
	if !r.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{DNI: dni, PasswordHash: hash, Role: r}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	metrics.UserChangesTotal.WithLabelValues("created").Inc()
	s.log.Info().Str("dni", dni).Str("role", string(r)).Msg("user registered")
	return user, nil
}

// EnsureAdmin creates the bootstrap administrator unless the DNI exists.
func (s *UserService) EnsureAdmin(ctx context.Context, dni, password string) error {
	_, err := s.repo.FindByDNI(ctx, dni)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if _, err := s.Register(ctx, dni, password, string(domain.RoleAdmin)); err != nil && !errors.Is(err, domain.ErrUserExists) {
		return fmt.Errorf("ensure admin: %w", err)
	}
	return nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Update changes the password and/or role of an existing user. At least one
// of the two must be supplied.
func (s *UserService) Update(ctx context.Context, dni string, in ports.UpdateUserInput) error {
	if in.Password == nil && in.Role == nil {
		return domain.ErrNothingToUpdate
	}

	var upd domain.UserUpdate
	if in.Password != nil {
		if *in.Password == "" {
			return domain.ErrEmptyPassword
		}
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return err
		}
		upd.PasswordHash = &hash
	}
	if in.Role != nil {
		r := domain.Role(*in.Role)
		if !r.Valid() {
			return domain.ErrInvalidRole
		}
		upd.Role = &r
	}

	if err := s.repo.Update(ctx, dni, upd); err != nil {
		return err
	}

	metrics.UserChangesTotal.WithLabelValues("updated").Inc()
	s.log.Info().
		Str("dni", dni).
		Bool("password_changed", upd.PasswordHash != nil).
		Bool("role_changed", upd.Role != nil).
		Msg("user updated")
	return nil
}

func (s *UserService) Delete(ctx context.Context, dni string) error {
	if err := s.repo.Delete(ctx, dni); err != nil {
		return err
	}
	metrics.UserChangesTotal.WithLabelValues("deleted").Inc()
	s.log.Info().Str("dni", dni).Msg("user deleted")
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
