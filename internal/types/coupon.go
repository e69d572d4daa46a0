package types

import (
	"slices"

	ierr "github.com/flexprice/pricing/internal/errors"
)

// DiscountType represents how a coupon amount is interpreted.
type DiscountType string

const (
	// DiscountTypePercent takes value percent off the item subtotal
	DiscountTypePercent DiscountType = "percent"
	// DiscountTypeFixed takes a fixed amount off, once per collection
	DiscountTypeFixed DiscountType = "fixed"
)

func (t DiscountType) String() string {
	return string(t)
}

func (t DiscountType) Validate() error {
	if !slices.Contains([]DiscountType{DiscountTypePercent, DiscountTypeFixed}, t) {
		return ierr.NewErrorf("invalid discount type %q", t).
			WithHint("Discount type must be either percent or fixed").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IneligibleReason explains why a coupon does not apply. The empty value
// means the coupon applies.
type IneligibleReason string

const (
	IneligibleReasonNone                  IneligibleReason = ""
	IneligibleReasonInactive              IneligibleReason = "inactive"
	IneligibleReasonPackageNotSupported   IneligibleReason = "package_not_supported"
	IneligibleReasonTermNotSupported      IneligibleReason = "term_not_supported"
	IneligibleReasonOptionsNotSupported   IneligibleReason = "options_not_supported"
	IneligibleReasonNotRecurring          IneligibleReason = "not_recurring"
	IneligibleReasonUsageLimitReached     IneligibleReason = "usage_limit_reached"
	IneligibleReasonMissingValidityWindow IneligibleReason = "missing_validity_window"
	IneligibleReasonNotYetValid           IneligibleReason = "not_yet_valid"
	IneligibleReasonExpired               IneligibleReason = "expired"
)

func (r IneligibleReason) String() string {
	return string(r)
}

// Message is the human readable form used in API responses.
func (r IneligibleReason) Message() string {
	switch r {
	case IneligibleReasonNone:
		return "Coupon applies"
	case IneligibleReasonInactive:
		return "Coupon is not active"
	case IneligibleReasonPackageNotSupported:
		return "Coupon does not apply to one or more of the selected packages"
	case IneligibleReasonTermNotSupported:
		return "Coupon does not apply to the selected term"
	case IneligibleReasonOptionsNotSupported:
		return "Coupon does not apply to configurable options"
	case IneligibleReasonNotRecurring:
		return "Coupon does not apply to renewals"
	case IneligibleReasonUsageLimitReached:
		return "Coupon has reached its maximum number of uses"
	case IneligibleReasonMissingValidityWindow:
		return "Coupon has no validity window"
	case IneligibleReasonNotYetValid:
		return "Coupon is not yet valid"
	case IneligibleReasonExpired:
		return "Coupon has expired"
	default:
		return string(r)
	}
}

// CouponFilter narrows coupon lookups.
type CouponFilter struct {
	Codes  []string `json:"codes,omitempty" form:"codes"`
	Status Status   `json:"status,omitempty" form:"status"`
}
