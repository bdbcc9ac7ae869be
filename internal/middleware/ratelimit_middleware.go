package middleware

import (
	"context"
	"net/http"
	"strconv"

	"huddle-api/internal/redis"
	"huddle-api/internal/services"
	"huddle-api/internal/transport/httpdto"
	"huddle-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WriteLimiter is satisfied by *redis.RateLimiter.
type WriteLimiter interface {
	AllowWrite(ctx context.Context, subject string) (*redis.RateLimitResult, error)
}

// WriteRateLimitMiddleware limits mutating requests per user, or per client IP
// when the request is unauthenticated. Register it after the auth middleware.
// A limiter failure lets the request through.
func WriteRateLimitMiddleware(limiter WriteLimiter, l *logger.Logger) gin.HandlerFunc {
	if l == nil {
		l = logger.NewNop()
	}
	return func(c *gin.Context) {
		subject, ok := services.UserIDFromContext(c.Request.Context())
		if !ok {
			subject = c.ClientIP()
		}

		result, err := limiter.AllowWrite(c.Request.Context(), subject)
		if err != nil {
			l.WithContext(c.Request.Context()).Warn("rate limiter unavailable, allowing write",
				zap.String("subject", subject),
				zap.Error(err),
			)
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("rate limit exceeded", "RATE_LIMITED"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
