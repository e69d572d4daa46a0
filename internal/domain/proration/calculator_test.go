package proration

import (
	"testing"
	"time"

	"github.com/flexprice/pricing/internal/domain/item"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculator_Coefficient(t *testing.T) {
	tests := []struct {
		name        string
		strategy    types.ProrationStrategy
		periodStart time.Time
		periodEnd   time.Time
		windowStart time.Time
		windowEnd   time.Time
		expected    decimal.Decimal
	}{
		{
			name:        "day_based_half_month",
			strategy:    types.ProrationStrategyDayBased,
			periodStart: date(2024, 4, 1),
			periodEnd:   date(2024, 5, 1),
			windowStart: date(2024, 4, 16),
			windowEnd:   date(2024, 5, 1),
			expected:    decimal.NewFromFloat(0.5),
		},
		{
			name:        "day_based_full_period",
			strategy:    types.ProrationStrategyDayBased,
			periodStart: date(2024, 3, 1),
			periodEnd:   date(2024, 4, 1),
			windowStart: date(2024, 3, 1),
			windowEnd:   date(2024, 4, 1),
			expected:    decimal.NewFromInt(1),
		},
		{
			name:        "day_based_window_longer_than_period",
			strategy:    types.ProrationStrategyDayBased,
			periodStart: date(2024, 3, 1),
			periodEnd:   date(2024, 4, 1),
			windowStart: date(2024, 3, 1),
			windowEnd:   date(2024, 5, 1),
			expected:    decimal.NewFromInt(1),
		},
		{
			name:        "day_based_zero_window",
			strategy:    types.ProrationStrategyDayBased,
			periodStart: date(2024, 3, 1),
			periodEnd:   date(2024, 4, 1),
			windowStart: date(2024, 3, 10),
			windowEnd:   date(2024, 3, 10),
			expected:    decimal.Zero,
		},
		{
			name:        "day_based_zero_period",
			strategy:    types.ProrationStrategyDayBased,
			periodStart: date(2024, 3, 1),
			periodEnd:   date(2024, 3, 1),
			windowStart: date(2024, 3, 1),
			windowEnd:   date(2024, 3, 5),
			expected:    decimal.Zero,
		},
		{
			name:        "second_based_quarter_day",
			strategy:    types.ProrationStrategySecondBased,
			periodStart: date(2024, 3, 1),
			periodEnd:   date(2024, 3, 2),
			windowStart: date(2024, 3, 1).Add(18 * time.Hour),
			windowEnd:   date(2024, 3, 2),
			expected:    decimal.NewFromFloat(0.25),
		},
		{
			name:        "second_based_negative_window",
			strategy:    types.ProrationStrategySecondBased,
			periodStart: date(2024, 3, 1),
			periodEnd:   date(2024, 3, 2),
			windowStart: date(2024, 3, 2),
			windowEnd:   date(2024, 3, 1),
			expected:    decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(tt.strategy, time.UTC)
			got := calc.Coefficient(tt.periodStart, tt.periodEnd, tt.windowStart, tt.windowEnd)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestDaysInDurationWithDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// March 10 2024 is 23 hours long in New York
	start := time.Date(2024, 3, 9, 0, 0, 0, 0, loc)
	end := time.Date(2024, 3, 12, 0, 0, 0, 0, loc)
	assert.Equal(t, 3, daysInDurationWithDST(start, end, loc))
}

func TestPolicy_Window(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		start   time.Time
		wantOK  bool
		wantEnd time.Time
	}{
		{
			name:    "disabled",
			policy:  Policy{},
			start:   date(2024, 3, 15),
			wantOK:  false,
			wantEnd: time.Time{},
		},
		{
			name:   "on anchor day",
			policy: Policy{ProrataDay: 1},
			start:  date(2024, 3, 1),
			wantOK: false,
		},
		{
			name:    "next month anchor",
			policy:  Policy{ProrataDay: 1},
			start:   date(2024, 3, 15),
			wantOK:  true,
			wantEnd: date(2024, 4, 1),
		},
		{
			name:    "anchor later this month",
			policy:  Policy{ProrataDay: 20},
			start:   date(2024, 3, 5),
			wantOK:  true,
			wantEnd: date(2024, 3, 20),
		},
		{
			name:    "after cutoff rolls a month",
			policy:  Policy{ProrataDay: 1, ProrataCutoff: 20},
			start:   date(2024, 3, 25),
			wantOK:  true,
			wantEnd: date(2024, 5, 1),
		},
		{
			name:    "before cutoff",
			policy:  Policy{ProrataDay: 1, ProrataCutoff: 20},
			start:   date(2024, 3, 20),
			wantOK:  true,
			wantEnd: date(2024, 4, 1),
		},
		{
			name:    "anchor clamps to month end",
			policy:  Policy{ProrataDay: 31},
			start:   date(2024, 2, 10),
			wantOK:  true,
			wantEnd: date(2024, 2, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := tt.policy.Window(tt.start)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.True(t, tt.start.Equal(w.Start))
			assert.True(t, tt.wantEnd.Equal(w.End), "expected %s, got %s", tt.wantEnd, w.End)
		})
	}
}

func TestModifier_Apply(t *testing.T) {
	m := NewModifier(NewCalculator(types.ProrationStrategyDayBased, time.UTC))
	base := item.Item{
		ID:        "item_1",
		UnitPrice: decimal.NewFromInt(30),
		Quantity:  1,
		Meta:      item.PackageMeta{PackageID: "pkg", PackageName: "Basic"},
	}

	t.Run("no window", func(t *testing.T) {
		got, err := m.Apply(base, nil, 1, types.BILLING_PERIOD_MONTH)
		require.NoError(t, err)
		assert.Equal(t, base, got)
	})

	t.Run("period does not prorate", func(t *testing.T) {
		w := &Window{Start: date(2024, 4, 10), End: date(2024, 4, 20)}
		got, err := m.Apply(base, w, 1, types.BILLING_PERIOD_WEEK)
		require.NoError(t, err)
		assert.True(t, base.UnitPrice.Equal(got.UnitPrice))
		assert.False(t, got.Meta.GetLifecycle().Prorated)
	})

	t.Run("partial month", func(t *testing.T) {
		w := &Window{Start: date(2024, 4, 16), End: date(2024, 5, 1)}
		got, err := m.Apply(base, w, 1, types.BILLING_PERIOD_MONTH)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(15).Equal(got.UnitPrice), got.UnitPrice.String())
		assert.True(t, got.Meta.GetLifecycle().Prorated)
		assert.True(t, decimal.NewFromInt(30).Equal(base.UnitPrice))
	})

	t.Run("zero window", func(t *testing.T) {
		w := &Window{Start: date(2024, 4, 16), End: date(2024, 4, 16)}
		got, err := m.Apply(base, w, 1, types.BILLING_PERIOD_MONTH)
		require.NoError(t, err)
		assert.True(t, got.UnitPrice.IsZero())
		assert.True(t, got.Base().IsZero())
	})

	t.Run("window over a term", func(t *testing.T) {
		w := &Window{Start: date(2024, 4, 16), End: date(2024, 6, 1)}
		got, err := m.Apply(base, w, 1, types.BILLING_PERIOD_MONTH)
		require.NoError(t, err)
		// one full term to May 16, then 16 of 31 days to June 1
		want := decimal.NewFromInt(30).Mul(decimal.NewFromInt(1).Add(decimal.NewFromInt(16).Div(decimal.NewFromInt(31))))
		assert.True(t, want.Equal(got.UnitPrice), "expected %s, got %s", want, got.UnitPrice)
	})

	t.Run("end before start", func(t *testing.T) {
		w := &Window{Start: date(2024, 4, 16), End: date(2024, 4, 1)}
		_, err := m.Apply(base, w, 1, types.BILLING_PERIOD_MONTH)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("invalid term", func(t *testing.T) {
		w := &Window{Start: date(2024, 4, 16), End: date(2024, 5, 1)}
		_, err := m.Apply(base, w, 0, types.BILLING_PERIOD_MONTH)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}
