package builder

import (
	"strings"

	"github.com/flexprice/pricing/internal/domain/collection"
	"github.com/flexprice/pricing/internal/domain/coupon"
	"github.com/flexprice/pricing/internal/domain/item"
	"github.com/flexprice/pricing/internal/domain/proration"
	"github.com/flexprice/pricing/internal/domain/tax"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Builder turns upstream records, tax rules and coupons into a collection.
// It does no I/O; callers load everything it needs beforehand.
type Builder struct {
	modifier *proration.Modifier
	describe item.DescribeOptions
}

func New(modifier *proration.Modifier, describe item.DescribeOptions) *Builder {
	return &Builder{modifier: modifier, describe: describe}
}

// Result is a built collection and the outcome of every coupon considered.
type Result struct {
	Collection *collection.Collection
	Coupons    []CouponResult
}

// Build validates the inputs and assembles the collection.
func (b *Builder) Build(records []Record, taxes []*tax.TaxRule, coupons []*coupon.Coupon, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	currency := types.NormalizeCurrency(opts.Currency)

	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if r.Currency != "" && !strings.EqualFold(r.Currency, currency) {
			return nil, ierr.NewErrorf("record %s is priced in %s, expected %s", r.ID, r.Currency, currency).
				WithHintf("All items must be priced in %s", currency).
				WithReportableDetails(map[string]any{"record_id": r.ID, "currency": r.Currency}).
				Mark(ierr.ErrValidation)
		}
	}

	activeTaxes, err := activeTaxRules(taxes)
	if err != nil {
		return nil, err
	}
	taxIDs := lo.Map(activeTaxes, func(r *tax.TaxRule, _ int) string { return r.ID })

	applied, report, err := b.evaluateCoupons(records, coupons, opts, currency)
	if err != nil {
		return nil, err
	}

	items := make([]item.Item, 0, len(records))
	for _, r := range records {
		it, err := b.recordItem(r, opts)
		if err != nil {
			return nil, err
		}
		if r.Taxable {
			it.TaxIDs = append(it.TaxIDs, taxIDs...)
		}
		it.DiscountIDs = discountsFor(r, applied)
		it.Description = item.Describe(it, b.describe)
		items = append(items, it)

		for _, fee := range feeItems(r, opts) {
			if r.Taxable {
				fee.TaxIDs = append(fee.TaxIDs, taxIDs...)
			}
			fee.Description = item.Describe(fee, b.describe)
			items = append(items, fee)
		}
	}

	discounts := lo.Map(applied, func(a appliedCoupon, _ int) *coupon.Discount { return a.discount })
	c, err := collection.New(items, activeTaxes, discounts)
	if err != nil {
		return nil, err
	}

	return &Result{Collection: c, Coupons: report}, nil
}

func activeTaxRules(rules []*tax.TaxRule) ([]*tax.TaxRule, error) {
	active := make([]*tax.TaxRule, 0, len(rules))
	for _, r := range lo.Compact(rules) {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if r.IsActive() {
			active = append(active, r)
		}
	}
	return active, nil
}

// recordItem builds the priced item for a record, prorated when a window
// applies. A prorated item is priced from one term; the coefficient already
// accounts for how many terms the window covers.
func (b *Builder) recordItem(r Record, opts Options) (item.Item, error) {
	it := item.Item{
		ID:        lo.Ternary(r.ID != "", r.ID, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ITEM)),
		UnitPrice: r.UnitPrice.Mul(decimal.NewFromInt(opts.cycles())),
		Quantity:  r.Quantity,
		Meta:      recordMeta(r),
	}

	w := prorationWindow(r, opts)
	if w == nil {
		return it, nil
	}
	it.UnitPrice = r.UnitPrice
	return b.modifier.Apply(it, w, r.Term, r.Period)
}

// prorationWindow prefers the explicit window and falls back to the
// record's prorata policy from the service start date.
func prorationWindow(r Record, opts Options) *proration.Window {
	if !r.Period.Prorates() {
		return nil
	}
	if w := opts.prorateWindow(); w != nil {
		return w
	}
	if opts.StartDate == nil {
		return nil
	}
	if w, ok := r.policy().Window(*opts.StartDate); ok {
		return &w
	}
	return nil
}

func recordMeta(r Record) item.Meta {
	l := item.Lifecycle{State: r.State, StartDate: r.StartDate, EndDate: r.EndDate}
	switch r.Type {
	case types.ItemTypeService:
		return item.ServiceMeta{
			Lifecycle:     l,
			ServiceID:     r.ServiceID,
			PackageID:     r.PackageID,
			PackageName:   r.PackageName,
			Label:         r.Label,
			Term:          r.Term,
			BillingPeriod: r.Period,
		}
	case types.ItemTypeOption:
		return item.OptionMeta{
			Lifecycle:  l,
			OptionID:   r.OptionID,
			OptionName: r.OptionName,
			Value:      r.OptionValue,
			PackageID:  r.PackageID,
		}
	default:
		return item.PackageMeta{
			Lifecycle:     l,
			PackageID:     r.PackageID,
			PackageName:   r.PackageName,
			Label:         r.Label,
			Term:          r.Term,
			BillingPeriod: r.Period,
		}
	}
}

// feeItems returns the setup and cancellation fee lines for a record. Fees
// are never prorated or discounted.
func feeItems(r Record, opts Options) []item.Item {
	name := lo.Ternary(r.Type == types.ItemTypeOption, r.OptionName, r.PackageName)
	var fees []item.Item

	if opts.IncludeSetupFees && !opts.Recur && r.SetupFee.IsPositive() {
		fees = append(fees, item.Item{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ITEM),
			UnitPrice: r.SetupFee,
			Quantity:  r.Quantity,
			Meta:      item.SetupMeta{PackageID: r.PackageID, PackageName: name},
		})
	}
	if opts.IncludeCancelFees && r.CancelFee.IsPositive() {
		fees = append(fees, item.Item{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ITEM),
			UnitPrice: r.CancelFee,
			Quantity:  r.Quantity,
			Meta:      item.CancelMeta{PackageID: r.PackageID, PackageName: name},
		})
	}
	return fees
}
