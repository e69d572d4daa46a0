package dto

import (
	"time"

	"github.com/flexprice/pricing/internal/domain/builder"
	"github.com/flexprice/pricing/internal/domain/collection"
	"github.com/flexprice/pricing/internal/domain/tax"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/flexprice/pricing/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// QuoteItemRequest is one service, package or option to be priced.
type QuoteItemRequest struct {
	ID            string              `json:"id,omitempty"`
	Type          types.ItemType      `json:"type" validate:"required,oneof=service package option"`
	ServiceID     string              `json:"service_id,omitempty"`
	PackageID     string              `json:"package_id" validate:"required"`
	PackageName   string              `json:"package_name,omitempty"`
	Label         string              `json:"label,omitempty"`
	OptionID      string              `json:"option_id,omitempty"`
	OptionName    string              `json:"option_name,omitempty" validate:"required_if=Type option"`
	OptionValue   string              `json:"option_value,omitempty"`
	UnitPrice     decimal.Decimal     `json:"unit_price"`
	SetupFee      decimal.Decimal     `json:"setup_fee"`
	CancelFee     decimal.Decimal     `json:"cancel_fee"`
	Currency      string              `json:"currency,omitempty" validate:"omitempty,len=3"`
	Quantity      *int64              `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Term          int                 `json:"term,omitempty" validate:"gte=0"`
	Period        types.BillingPeriod `json:"period,omitempty" validate:"omitempty,oneof=day week month year onetime"`
	StartDate     *time.Time          `json:"start_date,omitempty"`
	EndDate       *time.Time          `json:"end_date,omitempty"`
	State         types.ItemState     `json:"state,omitempty" validate:"omitempty,oneof=added updated removed"`
	Taxable       bool                `json:"taxable"`
	ProrataDay    int                 `json:"prorata_day,omitempty" validate:"gte=0,lte=31"`
	ProrataCutoff int                 `json:"prorata_cutoff,omitempty" validate:"gte=0,lte=31"`
}

// ToRecord converts the request into a builder record. Quantity defaults to 1.
func (r QuoteItemRequest) ToRecord() builder.Record {
	return builder.Record{
		ID:            r.ID,
		Type:          r.Type,
		ServiceID:     r.ServiceID,
		PackageID:     r.PackageID,
		PackageName:   r.PackageName,
		Label:         r.Label,
		OptionID:      r.OptionID,
		OptionName:    r.OptionName,
		OptionValue:   r.OptionValue,
		UnitPrice:     r.UnitPrice,
		SetupFee:      r.SetupFee,
		CancelFee:     r.CancelFee,
		Currency:      r.Currency,
		Quantity:      lo.FromPtrOr(r.Quantity, 1),
		Term:          r.Term,
		Period:        r.Period,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		State:         r.State,
		Taxable:       r.Taxable,
		ProrataDay:    r.ProrataDay,
		ProrataCutoff: r.ProrataCutoff,
	}
}

// QuoteRequest asks for the price of a set of items.
type QuoteRequest struct {
	Currency          string             `json:"currency,omitempty" validate:"omitempty,len=3"`
	Items             []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxRuleIDs        []string           `json:"tax_rule_ids,omitempty" validate:"omitempty,dive,required"`
	CouponCodes       []string           `json:"coupon_codes,omitempty" validate:"omitempty,dive,required"`
	ApplyDate         *time.Time         `json:"apply_date,omitempty"`
	StartDate         *time.Time         `json:"start_date,omitempty"`
	Recur             bool               `json:"recur"`
	Cycles            int                `json:"cycles,omitempty" validate:"gte=0"`
	ProrateStartDate  *time.Time         `json:"prorate_start_date,omitempty"`
	ProrateEndDate    *time.Time         `json:"prorate_end_date,omitempty"`
	IncludeSetupFees  bool               `json:"include_setup_fees"`
	IncludeCancelFees bool               `json:"include_cancel_fees"`
}

func (r *QuoteRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if (r.ProrateStartDate == nil) != (r.ProrateEndDate == nil) {
		return ierr.NewError("prorate_start_date and prorate_end_date must be provided together").
			WithHint("Provide both prorate start and end dates, or neither").
			Mark(ierr.ErrValidation)
	}

	if r.ProrateStartDate != nil && r.ProrateEndDate.Before(*r.ProrateStartDate) {
		return ierr.NewError("prorate_end_date is before prorate_start_date").
			WithHint("Prorate end date cannot be before prorate start date").
			WithReportableDetails(map[string]any{
				"prorate_start_date": r.ProrateStartDate,
				"prorate_end_date":   r.ProrateEndDate,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ResolvedCurrency is the request currency, or def when none was given.
func (r *QuoteRequest) ResolvedCurrency(def string) string {
	return types.NormalizeCurrency(lo.Ternary(r.Currency != "", r.Currency, def))
}

// ToRecords converts the requested items.
func (r *QuoteRequest) ToRecords() []builder.Record {
	return lo.Map(r.Items, func(it QuoteItemRequest, _ int) builder.Record {
		return it.ToRecord()
	})
}

// ToOptions converts the request switches. now is used when no apply date
// was given.
func (r *QuoteRequest) ToOptions(currency string, now time.Time) builder.Options {
	return builder.Options{
		Currency:          currency,
		ApplyDate:         lo.FromPtrOr(r.ApplyDate, now),
		StartDate:         r.StartDate,
		Recur:             r.Recur,
		Cycles:            r.Cycles,
		ProrateStartDate:  r.ProrateStartDate,
		ProrateEndDate:    r.ProrateEndDate,
		IncludeSetupFees:  r.IncludeSetupFees,
		IncludeCancelFees: r.IncludeCancelFees,
	}
}

// AppliedTaxResponse is one tax on a quote line.
type AppliedTaxResponse struct {
	TaxRuleID string          `json:"tax_rule_id"`
	Name      string          `json:"name"`
	Level     types.TaxLevel  `json:"level"`
	Type      types.TaxType   `json:"type"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
}

// AppliedDiscountResponse is one discount on a quote line.
type AppliedDiscountResponse struct {
	DiscountID string             `json:"discount_id"`
	Code       string             `json:"code"`
	Type       types.DiscountType `json:"type"`
	Value      decimal.Decimal    `json:"value"`
	Amount     decimal.Decimal    `json:"amount"`
}

// QuoteLineResponse is one priced line.
type QuoteLineResponse struct {
	ID                 string                    `json:"id"`
	Type               types.ItemType            `json:"type"`
	Description        string                    `json:"description"`
	UnitPrice          decimal.Decimal           `json:"unit_price"`
	Quantity           int64                     `json:"quantity"`
	Subtotal           decimal.Decimal           `json:"subtotal"`
	Total              decimal.Decimal           `json:"total"`
	TotalAfterTax      decimal.Decimal           `json:"total_after_tax"`
	TotalAfterDiscount decimal.Decimal           `json:"total_after_discount"`
	TaxAmount          decimal.Decimal           `json:"tax_amount"`
	DiscountAmount     decimal.Decimal           `json:"discount_amount"`
	Prorated           bool                      `json:"prorated"`
	StartDate          *time.Time                `json:"start_date,omitempty"`
	EndDate            *time.Time                `json:"end_date,omitempty"`
	AppliedTaxes       []AppliedTaxResponse      `json:"applied_taxes"`
	AppliedDiscounts   []AppliedDiscountResponse `json:"applied_discounts"`
}

// QuoteTotalsResponse are the aggregate amounts of a quote.
type QuoteTotalsResponse struct {
	Subtotal                 decimal.Decimal `json:"subtotal"`
	Total                    decimal.Decimal `json:"total"`
	TotalWithoutExclusiveTax decimal.Decimal `json:"total_without_exclusive_tax"`
	TotalAfterTax            decimal.Decimal `json:"total_after_tax"`
	TotalAfterDiscount       decimal.Decimal `json:"total_after_discount"`
	TaxAmount                decimal.Decimal `json:"tax_amount"`
	InclusiveTaxAmount       decimal.Decimal `json:"inclusive_tax_amount"`
	DiscountAmount           decimal.Decimal `json:"discount_amount"`
}

// QuoteResponse is a priced quote.
type QuoteResponse struct {
	ID             string                 `json:"id"`
	QuoteNumber    string                 `json:"quote_number"`
	Currency       string                 `json:"currency"`
	CurrencySymbol string                 `json:"currency_symbol"`
	Lines          []QuoteLineResponse    `json:"lines"`
	Totals         QuoteTotalsResponse    `json:"totals"`
	Coupons        []CouponResultResponse `json:"coupons"`
	CreatedAt      time.Time              `json:"created_at"`
}

// NewQuoteResponse renders a breakdown, rounding every amount to the
// currency's minor unit. Totals are sums of the rounded line amounts so
// the lines always add up to them.
func NewQuoteResponse(currency string, bd collection.Breakdown, coupons []builder.CouponResult, now time.Time) *QuoteResponse {
	round := func(d decimal.Decimal) decimal.Decimal {
		return types.RoundToCurrencyPrecision(d, currency)
	}

	lines := lo.Map(bd.Items, func(b collection.ItemBreakdown, _ int) QuoteLineResponse {
		l := b.Item.Meta.GetLifecycle()
		return QuoteLineResponse{
			ID:                 b.Item.ID,
			Type:               b.Item.Type(),
			Description:        b.Item.Description,
			UnitPrice:          round(b.Item.UnitPrice),
			Quantity:           b.Item.Quantity,
			Subtotal:           round(b.Subtotal),
			Total:              round(b.Total),
			TotalAfterTax:      round(b.TotalAfterTax),
			TotalAfterDiscount: round(b.TotalAfterDiscount),
			TaxAmount:          round(b.TaxAmount),
			DiscountAmount:     round(b.DiscountAmount),
			Prorated:           l.Prorated,
			StartDate:          l.StartDate,
			EndDate:            l.EndDate,
			AppliedTaxes: lo.Map(b.AppliedTaxes, func(a tax.Applied, _ int) AppliedTaxResponse {
				return AppliedTaxResponse{
					TaxRuleID: a.RuleID,
					Name:      a.Name,
					Level:     a.Level,
					Type:      a.Type,
					Rate:      a.Rate,
					Amount:    round(a.Amount),
				}
			}),
			AppliedDiscounts: lo.Map(b.AppliedDiscounts, func(a collection.AppliedDiscount, _ int) AppliedDiscountResponse {
				return AppliedDiscountResponse{
					DiscountID: a.DiscountID,
					Code:       a.Code,
					Type:       a.Type,
					Value:      a.Value,
					Amount:     round(a.Amount),
				}
			}),
		}
	})

	sum := func(field func(collection.ItemBreakdown) decimal.Decimal) decimal.Decimal {
		return lo.Reduce(bd.Items, func(acc decimal.Decimal, b collection.ItemBreakdown, _ int) decimal.Decimal {
			return acc.Add(round(field(b)))
		}, decimal.Zero)
	}

	return &QuoteResponse{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTE),
		QuoteNumber:    types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_QUOTE),
		Currency:       currency,
		CurrencySymbol: types.GetCurrencySymbol(currency),
		Lines:          lines,
		Totals: QuoteTotalsResponse{
			Subtotal:                 sum(func(b collection.ItemBreakdown) decimal.Decimal { return b.Subtotal }),
			Total:                    sum(func(b collection.ItemBreakdown) decimal.Decimal { return b.Total }),
			TotalWithoutExclusiveTax: sum(func(b collection.ItemBreakdown) decimal.Decimal { return b.TotalWithoutExclusiveTax }),
			TotalAfterTax:            sum(func(b collection.ItemBreakdown) decimal.Decimal { return b.TotalAfterTax }),
			TotalAfterDiscount:       sum(func(b collection.ItemBreakdown) decimal.Decimal { return b.TotalAfterDiscount }),
			TaxAmount:                sum(func(b collection.ItemBreakdown) decimal.Decimal { return b.TaxAmount }),
			InclusiveTaxAmount:       sum(func(b collection.ItemBreakdown) decimal.Decimal { return b.InclusiveTaxAmount }),
			DiscountAmount:           sum(func(b collection.ItemBreakdown) decimal.Decimal { return b.DiscountAmount }),
		},
		Coupons:   lo.Map(coupons, func(c builder.CouponResult, _ int) CouponResultResponse { return NewCouponResultResponse(c) }),
		CreatedAt: now,
	}
}

// BatchQuoteRequest prices several independent quotes.
type BatchQuoteRequest struct {
	Quotes []QuoteRequest `json:"quotes" validate:"required,min=1"`
}

func (r *BatchQuoteRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// BatchQuoteResponse holds quotes in request order.
type BatchQuoteResponse struct {
	Quotes []*QuoteResponse `json:"quotes"`
}
