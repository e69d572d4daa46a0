package types

import (
	"fmt"
	"slices"
	"time"

	ierr "github.com/flexprice/pricing/internal/errors"
)

// BillingPeriod is the unit a package term is expressed in, e.g. 3 x month.
type BillingPeriod string

const (
	BILLING_PERIOD_DAY     BillingPeriod = "day"
	BILLING_PERIOD_WEEK    BillingPeriod = "week"
	BILLING_PERIOD_MONTH   BillingPeriod = "month"
	BILLING_PERIOD_YEAR    BillingPeriod = "year"
	BILLING_PERIOD_ONETIME BillingPeriod = "onetime"
)

func (p BillingPeriod) String() string {
	return string(p)
}

func (p BillingPeriod) Validate() error {
	allowed := []BillingPeriod{
		BILLING_PERIOD_DAY,
		BILLING_PERIOD_WEEK,
		BILLING_PERIOD_MONTH,
		BILLING_PERIOD_YEAR,
		BILLING_PERIOD_ONETIME,
	}
	if !slices.Contains(allowed, p) {
		return ierr.NewErrorf("invalid billing period %q", p).
			WithHint("Billing period must be one of day, week, month, year or onetime").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsRecurring reports whether the period renews.
func (p BillingPeriod) IsRecurring() bool {
	return p != BILLING_PERIOD_ONETIME && p != ""
}

// Prorates reports whether items billed on this period may be prorated.
func (p BillingPeriod) Prorates() bool {
	return p == BILLING_PERIOD_MONTH || p == BILLING_PERIOD_YEAR
}

// NextBillingDate calculates the date one term after start.
// For example:
// - term 3, period month adds three months
// - term 1, period year adds one year
// - term 2, period week adds 14 days
// Month arithmetic clamps to the last day of the target month, so
// Jan 31 + 1 month is Feb 28/29 instead of rolling into March.
func NextBillingDate(start time.Time, term int, period BillingPeriod) (time.Time, error) {
	if term <= 0 {
		return start, fmt.Errorf("billing term must be a positive integer, got %d", term)
	}

	switch period {
	case BILLING_PERIOD_DAY:
		return start.AddDate(0, 0, term), nil
	case BILLING_PERIOD_WEEK:
		return start.AddDate(0, 0, 7*term), nil
	case BILLING_PERIOD_MONTH:
		return AddClampedDate(start, 0, term, 0), nil
	case BILLING_PERIOD_YEAR:
		return AddClampedDate(start, term, 0, 0), nil
	default:
		return start, fmt.Errorf("billing period %q has no next billing date", period)
	}
}

// AddClampedDate adds years and months like time.AddDate but clamps the day
// to the end of the target month, then adds days without clamping.
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	newY := y + years
	newM := time.Month(int(m) + months)

	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	if last := DaysInMonth(newY, newM, t.Location()); d > last {
		d = last
	}

	clamped := time.Date(newY, newM, d, h, min, sec, t.Nanosecond(), t.Location())
	if days != 0 {
		clamped = clamped.AddDate(0, 0, days)
	}
	return clamped
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// AnchorDate returns the date in t's month carrying the given day-of-month,
// clamped to the month's last day, at midnight.
func AnchorDate(t time.Time, day int) time.Time {
	last := DaysInMonth(t.Year(), t.Month(), t.Location())
	if day > last {
		day = last
	}
	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, t.Location())
}
