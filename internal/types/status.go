package types

import (
	"slices"

	ierr "github.com/flexprice/pricing/internal/errors"
)

// Status is the lifecycle state of a tax rule or coupon record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Validate() error {
	if !slices.Contains([]Status{StatusActive, StatusInactive}, s) {
		return ierr.NewErrorf("invalid status %q", s).
			WithHint("Status must be either active or inactive").
			Mark(ierr.ErrValidation)
	}
	return nil
}
