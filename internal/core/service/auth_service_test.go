package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fichaje/workday-api/internal/core/domain"
	"github.com/fichaje/workday-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	findErr   error
	updateErr error
	updates   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByDNI(_ context.Context, dni string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[dni]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.DNI]; exists {
		return domain.ErrUserExists
	}
	r.users[user.DNI] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, domain.User{DNI: u.DNI, Role: u.Role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DNI < out[j].DNI })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, dni string, upd domain.UserUpdate) error {
	r.updates++
	if r.updateErr != nil {
		return r.updateErr
	}
	u, ok := r.users[dni]
	if !ok {
		return domain.ErrUserNotFound
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, dni string) error {
	if _, ok := r.users[dni]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, dni)
	return nil
}

type stubLimiter struct {
	blocked  bool
	checkErr error
	failures map[string]int
	resets   int
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{failures: make(map[string]int)}
}

func (l *stubLimiter) Blocked(_ context.Context, _ string) (bool, error) {
	return l.blocked, l.checkErr
}

func (l *stubLimiter) RecordFailure(_ context.Context, dni string) error {
	l.failures[dni]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, dni string) error {
	l.resets++
	delete(l.failures, dni)
	return nil
}

var _ ports.LoginLimiter = (*stubLimiter)(nil)

// seedUser registers a user through the service so the stored hash is real.
func seedUser(t *testing.T, repo *stubUserRepo, dni, password string, role domain.Role) {
	t.Helper()
	svc := NewUserService(repo, zerolog.Nop())
	if _, err := svc.Register(context.Background(), dni, password, string(role)); err != nil {
		t.Fatalf("seed %s: %v", dni, err)
	}
}

// ---------------------------------------------------------------------------
// Login tests
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "12345678A", "pass", domain.RoleUser)
	limiter := newStubLimiter()
	svc := NewAuthService(repo, limiter, zerolog.Nop())

	user, err := svc.Login(context.Background(), "12345678A", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.DNI != "12345678A" || user.Role != domain.RoleUser {
		t.Fatalf("unexpected user: %+v", user)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected limiter reset on success, got %d", limiter.resets)
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownUserLookTheSame(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "12345678A", "pass", domain.RoleUser)
	svc := NewAuthService(repo, nil, zerolog.Nop())

	_, wrongPass := svc.Login(context.Background(), "12345678A", "nope")
	_, unknown := svc.Login(context.Background(), "00000000Z", "pass")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if unknown != domain.ErrInvalidCredentials {
		t.Fatalf("unknown dni: expected ErrInvalidCredentials, got %v", unknown)
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty dni, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "12345678A", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Login_RecordsFailures(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "12345678A", "pass", domain.RoleUser)
	limiter := newStubLimiter()
	svc := NewAuthService(repo, limiter, zerolog.Nop())

	_, _ = svc.Login(context.Background(), "12345678A", "bad")
	_, _ = svc.Login(context.Background(), "ghost", "bad")

	if limiter.failures["12345678A"] != 1 || limiter.failures["ghost"] != 1 {
		t.Fatalf("expected one failure per dni, got %v", limiter.failures)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "12345678A", "pass", domain.RoleUser)
	limiter := newStubLimiter()
	limiter.blocked = true
	svc := NewAuthService(repo, limiter, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "12345678A", "pass"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_LimiterErrorIsNonFatal(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "12345678A", "pass", domain.RoleUser)
	limiter := newStubLimiter()
	limiter.checkErr = errors.New("redis timeout")
	svc := NewAuthService(repo, limiter, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "12345678A", "pass"); err != nil {
		t.Fatalf("expected login to proceed when limiter errors, got %v", err)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("disk I/O error")
	svc := NewAuthService(repo, nil, zerolog.Nop())

	_, err := svc.Login(context.Background(), "12345678A", "pass")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Password hashing
// ---------------------------------------------------------------------------

func TestHashPassword_IsSalted(t *testing.T) {
	a, err := hashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, _ := hashPassword("secret")
	if a == b {
		t.Fatalf("expected distinct hashes for the same password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a), []byte("secret")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}
