package service

import (
	"github.com/flexprice/pricing/internal/cache"
	"github.com/flexprice/pricing/internal/config"
	"github.com/flexprice/pricing/internal/domain/coupon"
	"github.com/flexprice/pricing/internal/domain/tax"
	"github.com/flexprice/pricing/internal/logger"
	"github.com/flexprice/pricing/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache
	Sentry *sentry.Service

	// Repositories
	TaxRuleRepo tax.Repository
	CouponRepo  coupon.Repository
}

// NewServiceParams creates a new ServiceParams instance
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cache cache.Cache,
	sentry *sentry.Service,
	taxRuleRepo tax.Repository,
	couponRepo coupon.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:      logger,
		Config:      config,
		Cache:       cache,
		Sentry:      sentry,
		TaxRuleRepo: taxRuleRepo,
		CouponRepo:  couponRepo,
	}
}
