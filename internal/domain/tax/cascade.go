package tax

import (
	"github.com/flexprice/pricing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Applied is one rule's contribution to an item.
type Applied struct {
	RuleID string          `json:"tax_rule_id"`
	Name   string          `json:"name"`
	Level  types.TaxLevel  `json:"level"`
	Type   types.TaxType   `json:"type"`
	Rate   decimal.Decimal `json:"rate"`
	Base   decimal.Decimal `json:"base"`
	Amount decimal.Decimal `json:"amount"`
}

// Result is the outcome of evaluating up to two tax levels against a base.
type Result struct {
	Applied []Applied
}

// Exclusive is the tax added on top of the base.
func (r Result) Exclusive() decimal.Decimal {
	return r.sum(types.TaxTypeExclusive)
}

// Embedded is the inclusive_calculated tax already contained in the base.
func (r Result) Embedded() decimal.Decimal {
	return r.sum(types.TaxTypeInclusiveCalculated)
}

// Informational is the inclusive tax, reported but never added or removed.
func (r Result) Informational() decimal.Decimal {
	return r.sum(types.TaxTypeInclusive)
}

// Total is the tax amount that counts towards totals.
func (r Result) Total() decimal.Decimal {
	return r.Exclusive().Add(r.Embedded())
}

func (r Result) sum(t types.TaxType) decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Applied {
		if a.Type == t {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// Amount returns what a single rule yields on base.
func Amount(rule *TaxRule, base decimal.Decimal) decimal.Decimal {
	if rule == nil || rule.Rate.IsZero() || base.IsZero() {
		return decimal.Zero
	}
	switch rule.Type {
	case types.TaxTypeExclusive, types.TaxTypeInclusive:
		return base.Mul(rule.Rate).Div(hundred)
	case types.TaxTypeInclusiveCalculated:
		return base.Mul(rule.Rate).Div(hundred.Add(rule.Rate))
	default:
		return decimal.Zero
	}
}

// cascadeEligible is the part of a level 1 amount that a cascading level 2
// rule is computed on. Inclusive amounts are informational and never cascade.
func cascadeEligible(rule *TaxRule, amount decimal.Decimal) decimal.Decimal {
	switch rule.Type {
	case types.TaxTypeExclusive, types.TaxTypeInclusiveCalculated:
		return amount
	default:
		return decimal.Zero
	}
}

// Compute evaluates the level 1 and level 2 rules against base. Either rule
// may be nil. When either rule has Cascade set, the level 2 rule is computed
// on base plus the level 1 amount.
func Compute(base decimal.Decimal, level1, level2 *TaxRule) Result {
	var res Result
	base2 := base

	if level1 != nil {
		amt := Amount(level1, base)
		res.Applied = append(res.Applied, newApplied(level1, base, amt))
		if level2 != nil && (level1.Cascade || level2.Cascade) {
			base2 = base.Add(cascadeEligible(level1, amt))
		}
	}

	if level2 != nil {
		res.Applied = append(res.Applied, newApplied(level2, base2, Amount(level2, base2)))
	}
	return res
}

func newApplied(rule *TaxRule, base, amount decimal.Decimal) Applied {
	return Applied{
		RuleID: rule.ID,
		Name:   rule.Name,
		Level:  rule.Level,
		Type:   rule.Type,
		Rate:   rule.Rate,
		Base:   base,
		Amount: amount,
	}
}

// Select picks the level 1 and level 2 rule out of rules. The first rule of
// each level wins; nil entries and repeated IDs are skipped.
func Select(rules []*TaxRule) (level1, level2 *TaxRule) {
	rules = lo.UniqBy(lo.Compact(rules), func(r *TaxRule) string { return r.ID })
	for _, r := range rules {
		switch r.Level {
		case types.TaxLevel1:
			if level1 == nil {
				level1 = r
			}
		case types.TaxLevel2:
			if level2 == nil {
				level2 = r
			}
		}
	}
	return level1, level2
}
