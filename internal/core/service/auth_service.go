package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fichaje/workday-api/internal/api/metrics"
	"github.com/fichaje/workday-api/internal/core/domain"
	"github.com/fichaje/workday-api/internal/core/ports"
)

// dummyHash is compared against when the DNI is unknown so that both failure
// paths spend the same bcrypt work.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("workday-api/unknown-user"), bcrypt.DefaultCost)

// AuthService implements credential verification.
type AuthService struct {
	repo    ports.UserRepository
	limiter ports.LoginLimiter
	log     zerolog.Logger
}

// NewAuthService returns an AuthService. A nil limiter disables throttling.
func NewAuthService(repo ports.UserRepository, limiter ports.LoginLimiter, log zerolog.Logger) *AuthService {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	return &AuthService{repo: repo, limiter: limiter, log: log}
}

// Login verifies dni and password. Unknown DNIs and wrong passwords both
// yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, dni, password string) (*domain.User, error) {
	if dni == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	blocked, err := s.limiter.Blocked(ctx, dni)
	if err != nil {
		s.log.Warn().Err(err).Str("dni", dni).Msg("login limiter check failed, continuing")
	} else if blocked {
		metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByDNI(ctx, dni)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, s.rejected(ctx, dni)
	case err != nil:
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, s.rejected(ctx, dni)
	}

	if err := s.limiter.Reset(ctx, dni); err != nil {
		s.log.Warn().Err(err).Str("dni", dni).Msg("failed to reset login limiter")
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("dni", dni).Str("role", string(user.Role)).Msg("login succeeded")
	return user, nil
}

func (s *AuthService) rejected(ctx context.Context, dni string) error {
	if err := s.limiter.RecordFailure(ctx, dni); err != nil {
		s.log.Warn().Err(err).Str("dni", dni).Msg("failed to record login failure")
	}
	metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
	s.log.Warn().Str("dni", dni).Msg("login rejected")
	return domain.ErrInvalidCredentials
}

// NopLimiter never blocks. It is used when no Redis is configured.
type NopLimiter struct{}

func (NopLimiter) Blocked(context.Context, string) (bool, error) { return false, nil }
func (NopLimiter) RecordFailure(context.Context, string) error   { return nil }
func (NopLimiter) Reset(context.Context, string) error           { return nil }
