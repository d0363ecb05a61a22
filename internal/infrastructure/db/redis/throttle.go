package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 5
	failureWindow      = 15 * time.Minute
)

// LoginThrottle tracks failed login attempts per username in Redis.
// Key format: login_failures:<username>, expiring after the failure window.
type LoginThrottle struct {
	client      *redis.Client
	maxFailures int
}

// NewLoginThrottle wraps the given Redis client. maxFailures <= 0 selects the default.
func NewLoginThrottle(client *redis.Client, maxFailures int) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	return &LoginThrottle{client: client, maxFailures: maxFailures}
}

// TooManyFailures reports whether the username has exhausted its attempts
// within the current window.
func (t *LoginThrottle) TooManyFailures(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(username)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxFailures, nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) error {
	key := t.key(username)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, failureWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) error {
	if err := t.client.Del(ctx, t.key(username)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(username string) string {
	return "login_failures:" + username
}
