package proration

import (
	"github.com/flexprice/pricing/internal/domain/item"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/shopspring/decimal"
)

// Modifier scales recurring items down to the window they are billed for.
type Modifier struct {
	calc Calculator
}

func NewModifier(calc Calculator) *Modifier {
	return &Modifier{calc: calc}
}

// Apply returns it priced for window w. A nil window, or a period that does
// not prorate, leaves the item unchanged. The full period starts at the
// window start and runs for one term; whole terms covered by longer windows
// count as 1 each.
func (m *Modifier) Apply(it item.Item, w *Window, term int, period types.BillingPeriod) (item.Item, error) {
	if w == nil || !period.Prorates() {
		return it, nil
	}
	if err := w.Validate(); err != nil {
		return it, err
	}

	coefficient, err := m.Coefficient(*w, term, period)
	if err != nil {
		return it, err
	}
	return it.WithProration(it.UnitPrice.Mul(coefficient), w.Start, w.End), nil
}

// Coefficient is the number of terms window w covers, fractional for the
// last partial term.
func (m *Modifier) Coefficient(w Window, term int, period types.BillingPeriod) (decimal.Decimal, error) {
	if w.IsEmpty() {
		return decimal.Zero, nil
	}

	coefficient := decimal.Zero
	periodStart := w.Start
	for {
		periodEnd, err := types.NextBillingDate(periodStart, term, period)
		if err != nil {
			return decimal.Zero, ierr.WithError(err).
				WithHintf("Cannot prorate a %s term of %d", period, term).
				Mark(ierr.ErrValidation)
		}
		if periodEnd.After(w.End) {
			return coefficient.Add(m.calc.Coefficient(periodStart, periodEnd, periodStart, w.End)), nil
		}
		coefficient = coefficient.Add(decimal.NewFromInt(1))
		if periodEnd.Equal(w.End) {
			return coefficient, nil
		}
		periodStart = periodEnd
	}
}
