// Package ratelimit throttles clients with fixed-window counters kept in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "ratelimit:"

// Limiter allows up to limit hits per key within each window
type Limiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

// New creates a new limiter
func New(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{redis: client, limit: limit, window: window}
}

// Allow records a hit for key and reports whether it is within the limit
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	k := keyPrefix + key
	count, err := l.redis.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}

// Middleware rejects clients over the limit with 429. Redis errors let the request through.
func Middleware(l *Limiter, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Method + ":" + c.Path() + ":" + c.RealIP()
			ok, err := l.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
				return next(c)
			}
			if !ok {
				log.Info("rate limit exceeded", zap.String("key", key))
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success": false,
					"error":   http.StatusTooManyRequests,
					"message": "Too Many Requests",
				})
			}
			return next(c)
		}
	}
}
