package coupon

import (
	"github.com/flexprice/pricing/internal/types"
	"github.com/shopspring/decimal"
)

// Discount is an applicable coupon resolved to the order currency. It is
// what items reference inside a collection.
type Discount struct {
	ID       string             `json:"id"`
	CouponID string             `json:"coupon_id"`
	Code     string             `json:"code"`
	Type     types.DiscountType `json:"type"`
	Value    decimal.Decimal    `json:"value"`
}

// NewDiscount resolves c for currency.
func NewDiscount(c *Coupon, currency string) (*Discount, error) {
	amt, err := c.AmountFor(currency)
	if err != nil {
		return nil, err
	}
	return &Discount{
		ID:       types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DISCOUNT),
		CouponID: c.ID,
		Code:     c.Code,
		Type:     amt.Type,
		Value:    amt.Value,
	}, nil
}

// PercentOf returns the percent discount on subtotal. Fixed discounts are
// drawn from a collection wide budget instead and return zero here.
func (d *Discount) PercentOf(subtotal decimal.Decimal) decimal.Decimal {
	switch d.Type {
	case types.DiscountTypePercent:
		return subtotal.Mul(d.Value).Div(decimal.NewFromInt(100))
	case types.DiscountTypeFixed:
		return decimal.Zero
	default:
		return decimal.Zero
	}
}
