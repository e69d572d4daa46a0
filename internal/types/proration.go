package types

import (
	"slices"

	ierr "github.com/flexprice/pricing/internal/errors"
)

// ProrationStrategy defines how the proration coefficient is calculated.
type ProrationStrategy string

const (
	ProrationStrategyDayBased    ProrationStrategy = "day_based" // Default
	ProrationStrategySecondBased ProrationStrategy = "second_based"
)

func (s ProrationStrategy) String() string {
	return string(s)
}

func (s ProrationStrategy) Validate() error {
	allowed := []ProrationStrategy{ProrationStrategyDayBased, ProrationStrategySecondBased}
	if !slices.Contains(allowed, s) {
		return ierr.NewErrorf("invalid proration strategy %q", s).
			WithHint("Proration strategy must be either day_based or second_based").
			Mark(ierr.ErrValidation)
	}
	return nil
}
