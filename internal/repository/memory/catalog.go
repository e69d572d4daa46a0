package memory

import (
	"context"
	"os"

	"github.com/flexprice/pricing/internal/config"
	"github.com/flexprice/pricing/internal/domain/coupon"
	"github.com/flexprice/pricing/internal/domain/tax"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/logger"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Catalog is the seed file layout.
type Catalog struct {
	TaxRules []*tax.TaxRule   `json:"tax_rules"`
	Coupons  []*coupon.Coupon `json:"coupons"`
}

// ParseCatalog decodes a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Catalog file is not valid JSON").
			Mark(ierr.ErrValidation)
	}
	return &c, nil
}

// LoadTaxRules seeds store with the catalog's tax rules.
func (c *Catalog) LoadTaxRules(ctx context.Context, store *TaxRuleStore) error {
	for _, r := range c.TaxRules {
		if err := store.Create(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// LoadCoupons seeds store with the catalog's coupons.
func (c *Catalog) LoadCoupons(ctx context.Context, store *CouponStore) error {
	for _, cp := range c.Coupons {
		if err := store.Create(ctx, cp); err != nil {
			return err
		}
	}
	return nil
}

// NewTaxRuleRepository provides the tax rule store seeded from the catalog.
func NewTaxRuleRepository(cat *Catalog) (tax.Repository, error) {
	store := NewTaxRuleStore()
	if err := cat.LoadTaxRules(context.Background(), store); err != nil {
		return nil, err
	}
	return store, nil
}

// NewCouponRepository provides the coupon store seeded from the catalog.
func NewCouponRepository(cat *Catalog) (coupon.Repository, error) {
	store := NewCouponStore()
	if err := cat.LoadCoupons(context.Background(), store); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadCatalog reads the catalog from cfg.Catalog.Path. An empty path gives
// an empty catalog.
func LoadCatalog(cfg *config.Configuration, log *logger.Logger) (*Catalog, error) {
	if cfg.Catalog.Path == "" {
		log.Warnw("no catalog configured, starting with no tax rules or coupons")
		return &Catalog{}, nil
	}

	data, err := os.ReadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to read catalog %s", cfg.Catalog.Path).
			Mark(ierr.ErrSystem)
	}

	cat, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}

	log.Infow("loaded catalog",
		"path", cfg.Catalog.Path,
		"tax_rules", len(cat.TaxRules),
		"coupons", len(cat.Coupons))
	return cat, nil
}
