package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"solarops/internal/infrastructure/ratelimit"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

// RequestLimiter decides whether another request under key is allowed.
type RequestLimiter interface {
	Allow(ctx context.Context, key string, limits ratelimit.Limits) (bool, error)
}

type RateLimiter struct {
	limiter RequestLimiter
	limits  ratelimit.Limits
	logger  logger.Interface
}

func NewRateLimiter(limiter RequestLimiter, limits ratelimit.Limits, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		limits:  limits,
		logger:  logger,
	}
}

// Limit enforces the limits per client IP. Requests pass when the limiter
// backend fails.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.limits)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
