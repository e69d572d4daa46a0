package coupon

import (
	"strings"
	"time"

	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Amount is the discount a coupon grants in one currency.
type Amount struct {
	Type  types.DiscountType `json:"type"`
	Value decimal.Decimal    `json:"value"`
}

func (a Amount) Validate() error {
	if err := a.Type.Validate(); err != nil {
		return err
	}
	if a.Value.IsNegative() {
		return ierr.NewErrorf("discount value %s is negative", a.Value).
			WithHint("Discount value cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if a.Type == types.DiscountTypePercent && a.Value.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewErrorf("percent discount %s exceeds 100", a.Value).
			WithHint("Percent discount cannot exceed 100").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PackageTerms restricts a supported package to billing periods and the
// terms allowed within each. An empty value supports every term.
type PackageTerms map[types.BillingPeriod][]int

// Coupon is a discount rule as stored upstream.
type Coupon struct {
	ID               string                  `json:"id"`
	Code             string                  `json:"code"`
	Status           types.Status            `json:"status"`
	Amounts          map[string]Amount       `json:"amounts"`
	Packages         map[string]PackageTerms `json:"packages"`
	MaxQuantity      int                     `json:"max_quantity"`
	UsedQuantity     int                     `json:"used_quantity"`
	ValidFrom        *time.Time              `json:"valid_from,omitempty"`
	ValidTo          *time.Time              `json:"valid_to,omitempty"`
	AppliesToOptions bool                    `json:"applies_to_options"`
	Recurs           bool                    `json:"recurs"`
	RecurLimitsApply bool                    `json:"recur_limits_apply"`
}

func (c *Coupon) Validate() error {
	if c == nil {
		return ierr.NewError("coupon is nil").
			WithHint("Coupon is required").
			Mark(ierr.ErrValidation)
	}
	if c.Code == "" {
		return ierr.NewError("coupon code is required").
			WithHint("Coupon code is required").
			Mark(ierr.ErrValidation)
	}
	if err := c.Status.Validate(); err != nil {
		return err
	}
	if c.MaxQuantity < 0 || c.UsedQuantity < 0 {
		return ierr.NewErrorf("coupon %s has negative usage counters", c.Code).
			WithHint("Coupon usage limits cannot be negative").
			Mark(ierr.ErrValidation)
	}
	for currency, amt := range c.Amounts {
		if err := amt.Validate(); err != nil {
			return ierr.WithError(err).
				WithHintf("Invalid discount amount for currency %s", currency).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// AmountFor returns the discount for currency. A coupon that applies but has
// no amount for the order currency is a construction error.
func (c *Coupon) AmountFor(currency string) (Amount, error) {
	key, ok := lo.FindKeyBy(c.Amounts, func(k string, _ Amount) bool {
		return strings.EqualFold(k, currency)
	})
	if !ok {
		return Amount{}, ierr.NewErrorf("coupon %s has no amount for currency %s", c.Code, currency).
			WithHintf("Coupon %s is not available in %s", c.Code, currency).
			WithReportableDetails(map[string]any{
				"code":     c.Code,
				"currency": currency,
			}).
			Mark(ierr.ErrValidation)
	}
	return c.Amounts[key], nil
}

// SupportsPackage reports whether packageID is one of the coupon's packages.
func (c *Coupon) SupportsPackage(packageID string) bool {
	_, ok := c.Packages[packageID]
	return ok
}

// hasTermRestrictions reports whether any package narrows periods or terms.
func (c *Coupon) hasTermRestrictions() bool {
	return lo.SomeBy(lo.Values(c.Packages), func(terms PackageTerms) bool {
		return len(terms) > 0
	})
}
