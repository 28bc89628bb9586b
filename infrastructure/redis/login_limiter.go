package redis

import (
	"context"
	"time"

	"taskstream/pkg/logger"
)

// LoginLimiter counts failed sign-in attempts per email. The counter lives
// for one window; crossing the limit rejects further attempts until the key
// expires. With no Redis configured every check passes.
type LoginLimiter struct {
	client      *Client
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(client *Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allow reports whether a sign-in attempt for the email may proceed.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	if l == nil || l.client == nil {
		return true
	}

	count, err := l.client.rdb.Get(ctx, l.key(email)).Int()
	if err != nil {
		// Missing key or Redis failure both mean "not limited".
		return true
	}
	return count < l.maxAttempts
}

// RecordFailure bumps the failed-attempt counter for the email.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) {
	if l == nil || l.client == nil {
		return
	}

	key := l.key(email)
	count, err := l.client.Incr(ctx, key)
	if err != nil {
		logger.Warn("Failed to record sign-in failure", "error", err)
		return
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window); err != nil {
			logger.Warn("Failed to set rate limit window", "error", err)
		}
	}
}

// Reset clears the counter after a successful sign-in.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if l == nil || l.client == nil {
		return
	}
	if err := l.client.Del(ctx, l.key(email)); err != nil {
		logger.Warn("Failed to reset sign-in counter", "error", err)
	}
}

func (l *LoginLimiter) key(email string) string {
	return "auth:login_attempts:" + email
}
