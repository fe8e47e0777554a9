package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// KeyPrefix namespaces the Redis keys
	KeyPrefix string
}

// RateLimiter handles per-user rate limiting using Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// IsAllowed counts the request against the caller's window and reports
// whether it may proceed, how many requests remain, and when the window
// resets.
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	redisKey := fmt.Sprintf("%s:%s", rl.config.KeyPrefix, key)

	count, err := rl.redis.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, time.Time{}, err
	}
	if count == 1 {
		if err := rl.redis.Expire(ctx, redisKey, rl.config.Window).Err(); err != nil {
			return false, 0, time.Time{}, err
		}
	}

	ttl, err := rl.redis.TTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = rl.config.Window
	}
	resetTime := time.Now().Add(ttl)

	remaining := rl.config.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return count <= int64(rl.config.Limit), remaining, resetTime, nil
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting
// for authenticated callers.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), fmt.Sprintf("%v", userID))
		if err != nil {
			// Log error but don't fail the request
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
