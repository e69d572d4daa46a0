package proration

import (
	"time"

	"github.com/flexprice/pricing/internal/types"
	"github.com/shopspring/decimal"
)

// Calculator returns the share of a billing period that a window covers.
type Calculator interface {
	// Coefficient is covered/full, clamped to [0, 1]. Empty windows and
	// empty periods yield zero.
	Coefficient(periodStart, periodEnd, windowStart, windowEnd time.Time) decimal.Decimal
}

// NewCalculator creates a proration calculator for the strategy. Day based
// counting uses loc for day boundaries.
func NewCalculator(strategy types.ProrationStrategy, loc *time.Location) Calculator {
	if loc == nil {
		loc = time.UTC
	}
	switch strategy {
	case types.ProrationStrategySecondBased:
		return &secondBasedCalculator{}
	default:
		return &dayBasedCalculator{loc: loc}
	}
}

// dayBasedCalculator counts calendar days in the configured timezone.
type dayBasedCalculator struct {
	loc *time.Location
}

func (c *dayBasedCalculator) Coefficient(periodStart, periodEnd, windowStart, windowEnd time.Time) decimal.Decimal {
	totalDays := daysInDurationWithDST(periodStart.In(c.loc), periodEnd.In(c.loc), c.loc)
	if totalDays <= 0 {
		return decimal.Zero
	}

	coveredDays := daysInDurationWithDST(windowStart.In(c.loc), windowEnd.In(c.loc), c.loc)
	return clamp(decimal.NewFromInt(int64(coveredDays)).Div(decimal.NewFromInt(int64(totalDays))))
}

// daysInDurationWithDST calculates the number of calendar days between two points in time,
// considering the given timezone for day boundaries and handling DST transitions.
func daysInDurationWithDST(start, end time.Time, loc *time.Location) int {
	// Normalize times to midnight in the billing timezone
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)

	days := 0
	current := startDay
	for current.Before(endDay) {
		days++
		// Add 24 hours, then normalize to midnight to handle DST
		next := current.Add(24 * time.Hour)
		current = time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, loc)
	}

	return days
}

// secondBasedCalculator implements second-based proration logic
type secondBasedCalculator struct{}

func (c *secondBasedCalculator) Coefficient(periodStart, periodEnd, windowStart, windowEnd time.Time) decimal.Decimal {
	totalSeconds := int64(periodEnd.Sub(periodStart) / time.Second)
	if totalSeconds <= 0 {
		return decimal.Zero
	}

	coveredSeconds := int64(windowEnd.Sub(windowStart) / time.Second)
	return clamp(decimal.NewFromInt(coveredSeconds).Div(decimal.NewFromInt(totalSeconds)))
}

func clamp(coefficient decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if coefficient.IsNegative() {
		return decimal.Zero
	}
	if coefficient.GreaterThan(one) {
		return one
	}
	return coefficient
}
