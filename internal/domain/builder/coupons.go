package builder

import (
	"strings"

	"github.com/flexprice/pricing/internal/domain/coupon"
	"github.com/flexprice/pricing/internal/types"
	"github.com/samber/lo"
)

// appliedCoupon is a coupon that passed its package checks, resolved to
// the order currency.
type appliedCoupon struct {
	coupon       *coupon.Coupon
	discount     *coupon.Discount
	coversOption bool
}

// evaluateCoupons checks every coupon against the records. Package lines
// decide whether a coupon applies; options are discounted only when the
// coupon also passes with options requested.
func (b *Builder) evaluateCoupons(records []Record, coupons []*coupon.Coupon, opts Options, currency string) ([]appliedCoupon, []CouponResult, error) {
	packages := lo.FilterMap(records, func(r Record, _ int) (coupon.PackageRequest, bool) {
		return coupon.PackageRequest{PackageID: r.PackageID, Period: r.Period, Term: r.Term}, r.isPackageLine()
	})
	hasOptions := lo.SomeBy(records, func(r Record) bool { return r.Type == types.ItemTypeOption })

	req := coupon.ApplyRequest{
		Packages:    packages,
		IsRecurring: opts.Recur,
		At:          opts.ApplyDate,
	}

	unique := lo.UniqBy(lo.Compact(coupons), func(c *coupon.Coupon) string { return strings.ToUpper(c.Code) })

	var applied []appliedCoupon
	report := make([]CouponResult, 0, len(unique))
	for _, c := range unique {
		if err := c.Validate(); err != nil {
			return nil, nil, err
		}

		result := CouponResult{CouponID: c.ID, Code: c.Code, Reason: c.Check(req)}
		result.Applies = result.Reason == types.IneligibleReasonNone
		if result.Applies {
			discount, err := coupon.NewDiscount(c, currency)
			if err != nil {
				return nil, nil, err
			}
			optionReq := req
			optionReq.OptionsRequested = true
			applied = append(applied, appliedCoupon{
				coupon:       c,
				discount:     discount,
				coversOption: hasOptions && c.Applies(optionReq),
			})
			result.DiscountID = discount.ID
		}
		report = append(report, result)
	}
	return applied, report, nil
}

// discountsFor returns the discounts that attach to the record's item.
func discountsFor(r Record, applied []appliedCoupon) []string {
	return lo.FilterMap(applied, func(a appliedCoupon, _ int) (string, bool) {
		if !a.coupon.SupportsPackage(r.PackageID) {
			return "", false
		}
		if r.Type == types.ItemTypeOption && !a.coversOption {
			return "", false
		}
		return a.discount.ID, true
	})
}
