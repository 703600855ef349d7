package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/quotehub/internal/config"
	"go.uber.org/zap"
)

// WriteLimiter throttles mutating requests per client address.
type WriteLimiter struct {
	bucket *TokenBucket
	log    *zap.Logger
	rate   float64
	burst  int
}

func NewWriteLimiter(bucket *TokenBucket, cfg config.Config, log *zap.Logger) *WriteLimiter {
	return &WriteLimiter{
		bucket: bucket,
		log:    log.Named("ratelimit"),
		rate:   float64(cfg.WriteRateLimit),
		burst:  cfg.WriteRateBurst,
	}
}

// Middleware limits POST/PUT/PATCH/DELETE traffic. Reads pass through, and
// so does everything when redis is not configured.
func (l *WriteLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.bucket == nil || l.rate <= 0 {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}

		key := "quotehub:ratelimit:write:" + c.ClientIP()
		res, err := l.bucket.Allow(c.Request.Context(), key, l.rate, l.burst)
		if err != nil {
			// Redis trouble must not take down the write path.
			l.log.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			if res.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"type":    "rate_limit",
					"message": "too many requests",
				},
			})
			return
		}

		c.Next()
	}
}
