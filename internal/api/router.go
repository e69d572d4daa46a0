package api

import (
	v1 "github.com/flexprice/pricing/internal/api/v1"
	"github.com/flexprice/pricing/internal/config"
	"github.com/flexprice/pricing/internal/logger"
	"github.com/flexprice/pricing/internal/pyroscope"
	"github.com/flexprice/pricing/internal/rest/middleware"
	"github.com/flexprice/pricing/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health *v1.HealthHandler
	Quote  *v1.QuoteHandler
	Coupon *v1.CouponHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, profiler *pyroscope.Service) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.SentryRequestTags,
		middleware.PyroscopeMiddleware(profiler),
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1", middleware.RateLimitMiddleware(cfg))
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	quotes := router.Group("/quotes")
	{
		quotes.POST("", handlers.Quote.CreateQuote)
		quotes.POST("/batch", handlers.Quote.CreateQuoteBatch)
	}

	coupons := router.Group("/coupons")
	{
		coupons.POST("/check", handlers.Coupon.CheckCoupon)
	}
}
