package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	loginMaxAttempts = 5
	loginWindow      = 15 * time.Minute
)

// RateLimiter throttles login attempts per source address using redis
// counters with a fixed window.
type RateLimiter struct {
	Redis *redis.Client
}

// AllowLogin records one login attempt for ip and reports whether the
// attempt may proceed. Every attempt counts toward the window, not only
// failed ones, so credential correctness cannot be probed past the limit.
func (r *RateLimiter) AllowLogin(ctx context.Context, ip string) (bool, error) {
	key := "login_attempts:" + ip

	attempts, err := r.Redis.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if attempts == 1 {
		r.Redis.Expire(ctx, key, loginWindow)
	}
	return attempts <= loginMaxAttempts, nil
}
