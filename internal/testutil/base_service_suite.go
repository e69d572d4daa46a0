package testutil

import (
	"context"
	"time"

	"github.com/flexprice/pricing/internal/cache"
	"github.com/flexprice/pricing/internal/config"
	"github.com/flexprice/pricing/internal/logger"
	"github.com/flexprice/pricing/internal/repository/memory"
	"github.com/flexprice/pricing/internal/sentry"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories backing a test
type Stores struct {
	TaxRuleRepo *memory.TaxRuleStore
	CouponRepo  *memory.CouponStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	cache  cache.Cache
	sentry *sentry.Service
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	s.config = config.GetDefaultConfig()
	s.logger = logger.NewNoopLogger()
	s.sentry = sentry.NewSentryService(s.config, s.logger)
	s.now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		TaxRuleRepo: memory.NewTaxRuleStore(),
		CouponRepo:  memory.NewCouponStore(),
	}
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.TaxRuleRepo.Clear()
	s.stores.CouponRepo.Clear()
	s.cache.Flush(s.ctx)
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetCache returns the per-test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetSentry returns a disabled sentry service
func (s *BaseServiceTestSuite) GetSentry() *sentry.Service {
	return s.sentry
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
