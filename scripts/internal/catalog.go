package internal

import (
	"os"

	"github.com/flexprice/pricing/internal/config"
	"github.com/flexprice/pricing/internal/logger"
	"github.com/flexprice/pricing/internal/repository/memory"
)

// ValidateCatalog loads the catalog named by CATALOG_FILE (or the configured
// one) and reports what it contains. Any invalid rule or coupon fails.
func ValidateCatalog() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := memory.LoadCatalog(cfg, logger.L)
	if err != nil {
		return err
	}

	if _, err := memory.NewTaxRuleRepository(cat); err != nil {
		return err
	}
	if _, err := memory.NewCouponRepository(cat); err != nil {
		return err
	}

	logger.L.Infow("catalog is valid",
		"path", cfg.Catalog.Path,
		"tax_rules", len(cat.TaxRules),
		"coupons", len(cat.Coupons))
	return nil
}

func loadConfig() (*config.Configuration, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	if path := os.Getenv("CATALOG_FILE"); path != "" {
		cfg.Catalog.Path = path
	}
	return cfg, nil
}
