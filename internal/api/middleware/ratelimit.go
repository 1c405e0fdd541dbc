package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rateLimitPrefix = "rl:"

// RateLimiter counts requests per client IP, method and route in fixed windows.
// Redis failures let the request through.
func RateLimiter(client *redis.Client, maxRequests int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateLimitPrefix + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()
		ctx := c.Request.Context()

		pipe := client.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		ttl := pipe.TTL(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Warn("Rate limiter unavailable, allowing request", zap.Error(err), zap.String("key", key))
			c.Next()
			return
		}

		count := int(incr.Val())
		remaining := maxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		reset := ttl.Val()
		if reset < 0 {
			reset = window
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(reset.Seconds())))

		if count > maxRequests {
			c.Header("Retry-After", strconv.Itoa(int(reset.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "too many requests",
				"details": "retry after " + reset.Round(time.Second).String(),
			})
			return
		}
		c.Next()
	}
}
