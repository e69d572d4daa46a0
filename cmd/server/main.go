package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/flexprice/pricing/internal/api"
	v1 "github.com/flexprice/pricing/internal/api/v1"
	"github.com/flexprice/pricing/internal/cache"
	"github.com/flexprice/pricing/internal/config"
	"github.com/flexprice/pricing/internal/logger"
	"github.com/flexprice/pricing/internal/pyroscope"
	"github.com/flexprice/pricing/internal/repository/memory"
	"github.com/flexprice/pricing/internal/sentry"
	"github.com/flexprice/pricing/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Initialize Fx application
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Catalog and repositories
			memory.LoadCatalog,
			memory.NewTaxRuleRepository,
			memory.NewCouponRepository,
		),
		sentry.Module(),
		pyroscope.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewPricingService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startAPIServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	pricingService service.PricingService,
) api.Handlers {
	return api.Handlers{
		Health: v1.NewHealthHandler(logger),
		Quote:  v1.NewQuoteHandler(pricingService, logger),
		Coupon: v1.NewCouponHandler(pricingService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger, profiler *pyroscope.Service) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger, profiler)
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address, "mode", cfg.Deployment.Mode)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
