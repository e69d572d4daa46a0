package service

import (
	"context"
	"time"

	"github.com/flexprice/pricing/internal/api/dto"
	"github.com/flexprice/pricing/internal/domain/builder"
	"github.com/flexprice/pricing/internal/domain/item"
	"github.com/flexprice/pricing/internal/domain/proration"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/sentry"
	"github.com/flexprice/pricing/internal/types"
	"github.com/sourcegraph/conc/pool"
)

// PricingService prices quotes and checks coupons.
type PricingService interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error)
	QuoteBatch(ctx context.Context, req dto.BatchQuoteRequest) (*dto.BatchQuoteResponse, error)
	CheckCoupon(ctx context.Context, req dto.CheckCouponRequest) (*dto.CheckCouponResponse, error)
}

type pricingService struct {
	ServiceParams
	builder *builder.Builder
	now     func() time.Time
}

// NewPricingService creates the pricing service. The configured timezone
// drives day counting for proration and date rendering in descriptions.
func NewPricingService(params ServiceParams) (PricingService, error) {
	loc, err := time.LoadLocation(params.Config.Pricing.Timezone)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("failed to load pricing timezone '%s'", params.Config.Pricing.Timezone).
			Mark(ierr.ErrSystem)
	}

	calc := proration.NewCalculator(params.Config.Pricing.ProrationStrategy, loc)
	b := builder.New(proration.NewModifier(calc), item.DescribeOptions{
		DateFormat: params.Config.Pricing.DateFormat,
		Location:   loc,
	})

	return &pricingService{
		ServiceParams: params,
		builder:       b,
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *pricingService) Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		s.Logger.Warnw("quote validation failed",
			"error", err,
			"items", len(req.Items),
		)
		return nil, err
	}

	currency := req.ResolvedCurrency(s.Config.Pricing.DefaultCurrency)
	span, ctx := s.Sentry.StartPricingSpan(ctx, "pricing.quote", map[string]interface{}{
		"currency": currency,
		"items":    len(req.Items),
		"coupons":  len(req.CouponCodes),
	})

	resp, err := s.quote(ctx, req, currency)
	sentry.FinishSpan(span, err)
	return resp, err
}

func (s *pricingService) quote(ctx context.Context, req dto.QuoteRequest, currency string) (*dto.QuoteResponse, error) {
	taxes, err := s.loadTaxRules(ctx, req.TaxRuleIDs)
	if err != nil {
		return nil, err
	}

	coupons, err := s.loadCoupons(ctx, req.CouponCodes)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result, err := s.builder.Build(req.ToRecords(), taxes, coupons, req.ToOptions(currency, now))
	if err != nil {
		s.Logger.Warnw("failed to build quote",
			"error", err,
			"currency", currency,
		)
		return nil, err
	}

	resp := dto.NewQuoteResponse(currency, result.Collection.Breakdown(), result.Coupons, now)

	s.Logger.Infow("quote computed",
		"quote_id", resp.ID,
		"request_id", types.GetRequestID(ctx),
		"currency", currency,
		"lines", len(resp.Lines),
		"subtotal", resp.Totals.Subtotal.String(),
		"discount_amount", resp.Totals.DiscountAmount.String(),
		"tax_amount", resp.Totals.TaxAmount.String(),
	)
	return resp, nil
}

// QuoteBatch prices independent quotes concurrently. Responses keep the
// request order; the first failure cancels the rest.
func (s *pricingService) QuoteBatch(ctx context.Context, req dto.BatchQuoteRequest) (*dto.BatchQuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if limit := s.Config.Pricing.MaxBatchSize; len(req.Quotes) > limit {
		return nil, ierr.NewErrorf("batch of %d quotes exceeds limit %d", len(req.Quotes), limit).
			WithHintf("A batch can contain at most %d quotes", limit).
			Mark(ierr.ErrValidation)
	}

	results := make([]*dto.QuoteResponse, len(req.Quotes))
	p := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(s.Config.Pricing.BatchConcurrency).
		WithCancelOnError().
		WithFirstError()

	for i := range req.Quotes {
		i := i
		p.Go(func(ctx context.Context) error {
			resp, err := s.Quote(ctx, req.Quotes[i])
			if err != nil {
				return ierr.WithError(err).
					WithReportableDetails(map[string]any{"quote_index": i}).
					Mark(markOf(err))
			}
			results[i] = resp
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return &dto.BatchQuoteResponse{Quotes: results}, nil
}

// markOf keeps the sentinel of a wrapped error.
func markOf(err error) error {
	switch {
	case ierr.IsValidation(err):
		return ierr.ErrValidation
	case ierr.IsNotFound(err):
		return ierr.ErrNotFound
	case ierr.IsInvalidOperation(err):
		return ierr.ErrInvalidOperation
	default:
		return ierr.ErrSystem
	}
}

func (s *pricingService) CheckCoupon(ctx context.Context, req dto.CheckCouponRequest) (*dto.CheckCouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.loadCoupon(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	reason := c.Check(req.ToApplyRequest(s.now()))
	resp := &dto.CheckCouponResponse{
		Code:    c.Code,
		Applies: reason == types.IneligibleReasonNone,
		Reason:  reason,
		Message: reason.Message(),
	}

	if resp.Applies {
		currency := types.NormalizeCurrency(req.Currency)
		if currency == "" {
			currency = s.Config.Pricing.DefaultCurrency
		}
		amt, err := c.AmountFor(currency)
		if err != nil {
			return nil, err
		}
		resp.Amount = &amt
	}

	s.Logger.Debugw("coupon checked",
		"code", c.Code,
		"applies", resp.Applies,
		"reason", reason,
	)
	return resp, nil
}
