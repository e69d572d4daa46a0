package item

import (
	"time"

	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/shopspring/decimal"
)

// Item is a single billable line. Taxes and discounts are referenced by ID;
// the owning collection holds the rules themselves.
type Item struct {
	ID          string          `json:"id"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Description string          `json:"description"`
	TaxIDs      []string        `json:"tax_ids,omitempty"`
	DiscountIDs []string        `json:"discount_ids,omitempty"`
	Meta        Meta            `json:"-"`
}

// Base is UnitPrice x Quantity, the amount before taxes and discounts.
func (i Item) Base() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Type returns the item type carried by its metadata variant.
func (i Item) Type() types.ItemType {
	if i.Meta == nil {
		return ""
	}
	return i.Meta.Type()
}

// Validate checks the construction invariants of an item.
func (i Item) Validate() error {
	if i.Quantity < 0 {
		return ierr.NewErrorf("item %s has negative quantity %d", i.ID, i.Quantity).
			WithHint("Item quantity cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if i.UnitPrice.IsNegative() {
		return ierr.NewErrorf("item %s has negative unit price %s", i.ID, i.UnitPrice).
			WithHint("Item unit price cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if i.Meta == nil {
		return ierr.NewErrorf("item %s has no metadata", i.ID).
			WithHint("Item type is required").
			Mark(ierr.ErrValidation)
	}
	return i.Meta.Type().Validate()
}

// WithProration returns a copy priced at unitPrice whose metadata records
// the prorated window.
func (i Item) WithProration(unitPrice decimal.Decimal, start, end time.Time) Item {
	out := i
	out.UnitPrice = unitPrice
	out.TaxIDs = append([]string(nil), i.TaxIDs...)
	out.DiscountIDs = append([]string(nil), i.DiscountIDs...)
	if i.Meta != nil {
		l := i.Meta.GetLifecycle()
		l.Prorated = true
		l.StartDate = &start
		l.EndDate = &end
		out.Meta = i.Meta.withLifecycle(l)
	}
	return out
}

// HasTax reports whether the item references the tax rule.
func (i Item) HasTax(id string) bool {
	for _, t := range i.TaxIDs {
		if t == id {
			return true
		}
	}
	return false
}

// HasDiscount reports whether the item references the discount.
func (i Item) HasDiscount(id string) bool {
	for _, d := range i.DiscountIDs {
		if d == id {
			return true
		}
	}
	return false
}
