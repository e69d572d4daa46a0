package dto

import (
	"time"

	"github.com/flexprice/pricing/internal/domain/builder"
	"github.com/flexprice/pricing/internal/domain/coupon"
	"github.com/flexprice/pricing/internal/types"
	"github.com/flexprice/pricing/internal/validator"
	"github.com/samber/lo"
)

// CouponPackageRequest is a package, optionally qualified by period and
// term, that a coupon is checked against.
type CouponPackageRequest struct {
	PackageID string              `json:"package_id" validate:"required"`
	Period    types.BillingPeriod `json:"period,omitempty" validate:"omitempty,oneof=day week month year onetime"`
	Term      int                 `json:"term,omitempty" validate:"gte=0"`
}

// CheckCouponRequest asks whether a coupon applies.
type CheckCouponRequest struct {
	Code             string                 `json:"code" validate:"required"`
	Currency         string                 `json:"currency,omitempty" validate:"omitempty,len=3"`
	Packages         []CouponPackageRequest `json:"packages" validate:"dive"`
	OptionsRequested bool                   `json:"options_requested"`
	IsRecurring      bool                   `json:"is_recurring"`
	At               *time.Time             `json:"at,omitempty"`
}

func (r *CheckCouponRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToApplyRequest converts the request, evaluating at now when no time was given.
func (r *CheckCouponRequest) ToApplyRequest(now time.Time) coupon.ApplyRequest {
	return coupon.ApplyRequest{
		Packages: lo.Map(r.Packages, func(p CouponPackageRequest, _ int) coupon.PackageRequest {
			return coupon.PackageRequest{PackageID: p.PackageID, Period: p.Period, Term: p.Term}
		}),
		OptionsRequested: r.OptionsRequested,
		IsRecurring:      r.IsRecurring,
		At:               lo.FromPtrOr(r.At, now),
	}
}

// CheckCouponResponse reports whether a coupon applies and, if it does,
// what it is worth in the requested currency.
type CheckCouponResponse struct {
	Code    string                 `json:"code"`
	Applies bool                   `json:"applies"`
	Reason  types.IneligibleReason `json:"reason,omitempty"`
	Message string                 `json:"message"`
	Amount  *coupon.Amount         `json:"amount,omitempty"`
}

// CouponResultResponse is how a coupon fared on a quote.
type CouponResultResponse struct {
	Code       string                 `json:"code"`
	Applies    bool                   `json:"applies"`
	Reason     types.IneligibleReason `json:"reason,omitempty"`
	Message    string                 `json:"message"`
	DiscountID string                 `json:"discount_id,omitempty"`
}

func NewCouponResultResponse(c builder.CouponResult) CouponResultResponse {
	return CouponResultResponse{
		Code:       c.Code,
		Applies:    c.Applies,
		Reason:     c.Reason,
		Message:    c.Reason.Message(),
		DiscountID: c.DiscountID,
	}
}
