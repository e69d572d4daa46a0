package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/flexprice/pricing/internal/api/dto"
	"github.com/flexprice/pricing/internal/cache"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/logger"
	"github.com/flexprice/pricing/internal/repository/memory"
	"github.com/flexprice/pricing/internal/sentry"
	"github.com/flexprice/pricing/internal/service"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PriceQuote prices the quote request in QUOTE_FILE against the catalog and
// prints the response.
func PriceQuote() error {
	path := os.Getenv("QUOTE_FILE")
	if path == "" {
		return ierr.NewError("QUOTE_FILE is not set").
			WithHint("Pass the quote request with -quote-file").
			Mark(ierr.ErrValidation)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to read quote file %s", path).
			Mark(ierr.ErrSystem)
	}

	var req dto.QuoteRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return ierr.WithError(err).
			WithHint("Quote file is not a valid quote request").
			Mark(ierr.ErrValidation)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := memory.LoadCatalog(cfg, logger.L)
	if err != nil {
		return err
	}
	taxRepo, err := memory.NewTaxRuleRepository(cat)
	if err != nil {
		return err
	}
	couponRepo, err := memory.NewCouponRepository(cat)
	if err != nil {
		return err
	}

	svc, err := service.NewPricingService(service.NewServiceParams(
		logger.L,
		cfg,
		cache.Initialize(cfg, logger.L),
		sentry.NewSentryService(cfg, logger.L),
		taxRepo,
		couponRepo,
	))
	if err != nil {
		return err
	}

	resp, err := svc.Quote(context.Background(), req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
