package collection

import (
	"github.com/flexprice/pricing/internal/domain/coupon"
	"github.com/flexprice/pricing/internal/domain/item"
	"github.com/flexprice/pricing/internal/domain/tax"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Collection holds the items of one pricing request together with the tax
// rules and discounts they reference. It is read only once built; every
// aggregate is recomputed from scratch on each call.
type Collection struct {
	items     []item.Item
	taxes     map[string]*tax.TaxRule
	discounts map[string]*coupon.Discount
}

// New builds a collection and checks that every reference resolves.
func New(items []item.Item, taxes []*tax.TaxRule, discounts []*coupon.Discount) (*Collection, error) {
	c := &Collection{
		items: append([]item.Item(nil), items...),
		taxes: lo.SliceToMap(lo.Compact(taxes), func(r *tax.TaxRule) (string, *tax.TaxRule) {
			return r.ID, r
		}),
		discounts: lo.SliceToMap(lo.Compact(discounts), func(d *coupon.Discount) (string, *coupon.Discount) {
			return d.ID, d
		}),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports items that are malformed or that reference rules missing
// from the collection.
func (c *Collection) Validate() error {
	for _, it := range c.items {
		if err := it.Validate(); err != nil {
			return err
		}
		for _, id := range it.TaxIDs {
			if _, ok := c.taxes[id]; !ok {
				return ierr.NewErrorf("item %s references unknown tax rule %s", it.ID, id).
					WithHint("Item references a tax rule that is not part of the quote").
					WithReportableDetails(map[string]any{"item_id": it.ID, "tax_rule_id": id}).
					Mark(ierr.ErrSystem)
			}
		}
		for _, id := range it.DiscountIDs {
			if _, ok := c.discounts[id]; !ok {
				return ierr.NewErrorf("item %s references unknown discount %s", it.ID, id).
					WithHint("Item references a discount that is not part of the quote").
					WithReportableDetails(map[string]any{"item_id": it.ID, "discount_id": id}).
					Mark(ierr.ErrSystem)
			}
		}
	}
	return nil
}

// Items returns a copy of the collection's items.
func (c *Collection) Items() []item.Item {
	return append([]item.Item(nil), c.items...)
}

// Len is the number of items.
func (c *Collection) Len() int {
	return len(c.items)
}

// Subtotal is the pre-tax value: bases with embedded taxes backed out.
func (c *Collection) Subtotal() decimal.Decimal {
	return c.evaluate().totals.Subtotal
}

// Total is the subtotal plus exclusive taxes, before discounts. Embedded
// taxes are not in it; TotalAfterTax adds them back.
func (c *Collection) Total() decimal.Decimal {
	return c.evaluate().totals.Total
}

// TotalWithoutExclusiveTax is the sum of item bases.
func (c *Collection) TotalWithoutExclusiveTax() decimal.Decimal {
	return c.evaluate().totals.TotalWithoutExclusiveTax
}

// TotalAfterTax is the subtotal with every counted tax added back.
func (c *Collection) TotalAfterTax() decimal.Decimal {
	return c.evaluate().totals.TotalAfterTax
}

// TotalAfterDiscount is the subtotal less every discount, each counted once.
func (c *Collection) TotalAfterDiscount() decimal.Decimal {
	return c.evaluate().totals.TotalAfterDiscount
}

// TaxAmount is the exclusive plus embedded tax across all items.
func (c *Collection) TaxAmount() decimal.Decimal {
	return c.evaluate().totals.TaxAmount
}

// DiscountAmount is the total discount across all items.
func (c *Collection) DiscountAmount() decimal.Decimal {
	return c.evaluate().totals.DiscountAmount
}

// TaxAmountFor is what one tax rule contributes across the collection.
func (c *Collection) TaxAmountFor(ruleID string) decimal.Decimal {
	return c.evaluate().byTax[ruleID]
}

// DiscountAmountFor is what one discount contributes across the collection.
func (c *Collection) DiscountAmountFor(discountID string) decimal.Decimal {
	return c.evaluate().byDiscount[discountID]
}

// Breakdown returns per item amounts and the aggregate totals from a single
// evaluation.
func (c *Collection) Breakdown() Breakdown {
	ev := c.evaluate()
	return Breakdown{Items: ev.items, Totals: ev.totals}
}
