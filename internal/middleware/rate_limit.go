package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CartMaxRequests    = 20
	ContactMaxRequests = 5

	ChatWindow    = 1 * time.Minute
	CartWindow    = 1 * time.Minute
	ContactWindow = 10 * time.Minute
)

// RateCounter counts hits per key within a window.
type RateCounter interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimit allows max requests per window for each client IP. The session
// id is not used: clients pick it, so a fresh one per request would reset
// the count. max <= 0 disables the limit. Counter failures let the request
// through.
func RateLimit(counter RateCounter, scope string, max int, window time.Duration, message string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if max <= 0 || counter == nil {
			c.Next()
			return
		}

		n, left, err := counter.Increment(c.Request.Context(), scope+":"+c.ClientIP(), window)
		if err != nil {
			log.Warn("rate limit counter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}

		remaining := int64(max) - n
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", max))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if n > int64(max) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       message,
				"retry_after": int(left.Seconds()),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
