package collection

import (
	"github.com/flexprice/pricing/internal/domain/item"
	"github.com/flexprice/pricing/internal/domain/tax"
	"github.com/flexprice/pricing/internal/types"
	"github.com/shopspring/decimal"
)

// AppliedDiscount is one discount's contribution to an item.
type AppliedDiscount struct {
	DiscountID string             `json:"discount_id"`
	Code       string             `json:"code"`
	Type       types.DiscountType `json:"type"`
	Value      decimal.Decimal    `json:"value"`
	Amount     decimal.Decimal    `json:"amount"`
}

// ItemBreakdown is the evaluated view of one item.
type ItemBreakdown struct {
	Item                     item.Item
	Base                     decimal.Decimal
	Subtotal                 decimal.Decimal
	Total                    decimal.Decimal
	TotalWithoutExclusiveTax decimal.Decimal
	TotalAfterTax            decimal.Decimal
	TotalAfterDiscount       decimal.Decimal
	TaxAmount                decimal.Decimal
	InclusiveTaxAmount       decimal.Decimal
	DiscountAmount           decimal.Decimal
	AppliedTaxes             []tax.Applied
	AppliedDiscounts         []AppliedDiscount
}

// Totals are the collection wide aggregates.
type Totals struct {
	Subtotal                 decimal.Decimal
	Total                    decimal.Decimal
	TotalWithoutExclusiveTax decimal.Decimal
	TotalAfterTax            decimal.Decimal
	TotalAfterDiscount       decimal.Decimal
	TaxAmount                decimal.Decimal
	InclusiveTaxAmount       decimal.Decimal
	DiscountAmount           decimal.Decimal
}

func (t *Totals) add(b ItemBreakdown) {
	t.Subtotal = t.Subtotal.Add(b.Subtotal)
	t.Total = t.Total.Add(b.Total)
	t.TotalWithoutExclusiveTax = t.TotalWithoutExclusiveTax.Add(b.TotalWithoutExclusiveTax)
	t.TotalAfterTax = t.TotalAfterTax.Add(b.TotalAfterTax)
	t.TotalAfterDiscount = t.TotalAfterDiscount.Add(b.TotalAfterDiscount)
	t.TaxAmount = t.TaxAmount.Add(b.TaxAmount)
	t.InclusiveTaxAmount = t.InclusiveTaxAmount.Add(b.InclusiveTaxAmount)
	t.DiscountAmount = t.DiscountAmount.Add(b.DiscountAmount)
}

// Breakdown is the full result of one evaluation pass.
type Breakdown struct {
	Items  []ItemBreakdown
	Totals Totals
}
