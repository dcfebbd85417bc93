package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mlukyanov/task-api/internal/ratelimit"
)

// RateLimit throttles requests per client IP against the given
// fixed-window limiter. Every response carries the window accounting
// headers; rejections add a Retry-After hint.
func RateLimit(l *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := l.Check(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.Max()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			retryAfter := int(math.Ceil(time.Until(res.ResetAt).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				NewErrorResponse("RATE_LIMIT_EXCEEDED", "Too many requests, please try again later", nil))
			return
		}
		c.Next()
	}
}
