package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fichaje/workday-api/internal/core/ports"
)

const (
	defaultMaxAttempts = 5
	defaultLockout     = 15 * time.Minute
)

// LoginLimiter counts failed logins per DNI in Redis and blocks further
// attempts once MaxAttempts is reached, until the key expires.
// Key format: login:fail:<dni>
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	lockout     time.Duration
}

// NewLoginLimiter wraps the given client. Non-positive limits fall back to
// five attempts per fifteen minutes.
func NewLoginLimiter(client *redis.Client, maxAttempts int, lockout time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if lockout <= 0 {
		lockout = defaultLockout
	}
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), lockout: lockout}
}

var _ ports.LoginLimiter = (*LoginLimiter)(nil)

// Blocked reports whether the DNI has used up its attempts.
func (l *LoginLimiter) Blocked(ctx context.Context, dni string) (bool, error) {
	n, err := l.client.Get(ctx, failureKey(dni)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter check: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure increments the counter. The lockout window starts at the
// first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, dni string) error {
	key := failureKey(dni)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.lockout)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login limiter record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, dni string) error {
	if err := l.client.Del(ctx, failureKey(dni)).Err(); err != nil {
		return fmt.Errorf("login limiter reset: %w", err)
	}
	return nil
}

func failureKey(dni string) string {
	return "login:fail:" + dni
}
