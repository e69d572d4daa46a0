package collection

import (
	"github.com/flexprice/pricing/internal/domain/coupon"
	"github.com/flexprice/pricing/internal/domain/item"
	"github.com/flexprice/pricing/internal/domain/tax"
	"github.com/flexprice/pricing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// evaluation is the accounting of one pass. It lives only for the duration
// of the aggregate call that created it.
type evaluation struct {
	items      []ItemBreakdown
	totals     Totals
	byTax      map[string]decimal.Decimal
	byDiscount map[string]decimal.Decimal

	// fixedBudget is what is left of each fixed discount in this pass
	fixedBudget map[string]decimal.Decimal
}

func (c *Collection) evaluate() *evaluation {
	ev := &evaluation{
		items:       make([]ItemBreakdown, 0, len(c.items)),
		byTax:       make(map[string]decimal.Decimal),
		byDiscount:  make(map[string]decimal.Decimal),
		fixedBudget: make(map[string]decimal.Decimal),
	}
	for _, it := range c.items {
		b := c.evaluateItem(ev, it)
		ev.items = append(ev.items, b)
		ev.totals.add(b)
	}
	return ev
}

func (c *Collection) evaluateItem(ev *evaluation, it item.Item) ItemBreakdown {
	base := it.Base()

	rules := lo.FilterMap(it.TaxIDs, func(id string, _ int) (*tax.TaxRule, bool) {
		r, ok := c.taxes[id]
		return r, ok
	})
	level1, level2 := tax.Select(rules)
	res := tax.Compute(base, level1, level2)

	subtotal := base.Sub(res.Embedded())
	b := ItemBreakdown{
		Item:                     it,
		Base:                     base,
		Subtotal:                 subtotal,
		Total:                    subtotal.Add(res.Exclusive()),
		TotalWithoutExclusiveTax: base,
		TaxAmount:                res.Total(),
		InclusiveTaxAmount:       res.Informational(),
		TotalAfterTax:            subtotal.Add(res.Total()),
		AppliedTaxes:             res.Applied,
	}
	for _, a := range res.Applied {
		if a.Type == types.TaxTypeInclusive {
			continue
		}
		ev.byTax[a.RuleID] = ev.byTax[a.RuleID].Add(a.Amount)
	}

	remaining := subtotal
	for _, id := range lo.Uniq(it.DiscountIDs) {
		d, ok := c.discounts[id]
		if !ok || !remaining.IsPositive() {
			continue
		}
		amount := ev.discountFor(d, subtotal, remaining)
		if amount.IsZero() {
			continue
		}
		remaining = remaining.Sub(amount)
		ev.byDiscount[id] = ev.byDiscount[id].Add(amount)
		b.AppliedDiscounts = append(b.AppliedDiscounts, AppliedDiscount{
			DiscountID: d.ID,
			Code:       d.Code,
			Type:       d.Type,
			Value:      d.Value,
			Amount:     amount,
		})
	}

	b.DiscountAmount = subtotal.Sub(remaining)
	b.TotalAfterDiscount = remaining
	return b
}

// discountFor returns what d takes off an item, never more than remaining.
// Fixed discounts shared by several items are spent once across the pass.
func (ev *evaluation) discountFor(d *coupon.Discount, subtotal, remaining decimal.Decimal) decimal.Decimal {
	switch d.Type {
	case types.DiscountTypePercent:
		return decimal.Min(d.PercentOf(subtotal), remaining)
	case types.DiscountTypeFixed:
		budget, ok := ev.fixedBudget[d.ID]
		if !ok {
			budget = d.Value
		}
		amount := decimal.Max(decimal.Min(budget, remaining), decimal.Zero)
		ev.fixedBudget[d.ID] = budget.Sub(amount)
		return amount
	default:
		return decimal.Zero
	}
}
