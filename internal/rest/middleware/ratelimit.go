package middleware

import (
	"github.com/flexprice/pricing/internal/config"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware caps the sustained request rate across all clients.
// A zero limit disables it.
func RateLimitMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if cfg.Server.RateLimit <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	burst := max(cfg.Server.RateBurst, 1)
	limiter := rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Error(ierr.NewError("rate limit exceeded").
				WithHint("Too many requests, please retry shortly").
				Mark(ierr.ErrRateLimited))
			c.Abort()
			return
		}
		c.Next()
	}
}
