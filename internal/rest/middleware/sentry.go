package middleware

import (
	"time"

	"github.com/flexprice/pricing/internal/config"
	"github.com/flexprice/pricing/internal/types"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware returns a middleware that captures errors and performance data
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryRequestTags tags the request hub with its request ID. It must run
// after both RequestIDMiddleware and SentryMiddleware.
func SentryRequestTags(c *gin.Context) {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("request_id", types.GetRequestID(c.Request.Context()))
		})
	}
	c.Next()
}
