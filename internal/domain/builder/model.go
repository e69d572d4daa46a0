package builder

import (
	"strings"
	"time"

	"github.com/flexprice/pricing/internal/domain/proration"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/shopspring/decimal"
)

// Record is one upstream service, package or option line to be priced.
type Record struct {
	ID            string
	Type          types.ItemType
	ServiceID     string
	PackageID     string
	PackageName   string
	Label         string
	OptionID      string
	OptionName    string
	OptionValue   string
	UnitPrice     decimal.Decimal
	SetupFee      decimal.Decimal
	CancelFee     decimal.Decimal
	Currency      string
	Quantity      int64
	Term          int
	Period        types.BillingPeriod
	StartDate     *time.Time
	EndDate       *time.Time
	State         types.ItemState
	Taxable       bool
	ProrataDay    int
	ProrataCutoff int
}

func (r Record) Validate() error {
	switch r.Type {
	case types.ItemTypeService, types.ItemTypePackage, types.ItemTypeOption:
	default:
		return ierr.NewErrorf("record %s has unsupported type %q", r.ID, r.Type).
			WithHint("Record type must be service, package or option").
			Mark(ierr.ErrValidation)
	}
	if r.Quantity < 0 {
		return ierr.NewErrorf("record %s has negative quantity %d", r.ID, r.Quantity).
			WithHint("Quantity cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if r.UnitPrice.IsNegative() || r.SetupFee.IsNegative() || r.CancelFee.IsNegative() {
		return ierr.NewErrorf("record %s has a negative price", r.ID).
			WithHint("Prices and fees cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if r.Period != "" {
		if err := r.Period.Validate(); err != nil {
			return err
		}
	}
	if r.State != "" {
		if err := r.State.Validate(); err != nil {
			return err
		}
	}
	return r.policy().Validate()
}

func (r Record) policy() proration.Policy {
	return proration.Policy{ProrataDay: r.ProrataDay, ProrataCutoff: r.ProrataCutoff}
}

func (r Record) isPackageLine() bool {
	return r.Type == types.ItemTypeService || r.Type == types.ItemTypePackage
}

// Options are the per request switches for building a collection.
type Options struct {
	Currency          string
	ApplyDate         time.Time
	StartDate         *time.Time
	Recur             bool
	Cycles            int
	ProrateStartDate  *time.Time
	ProrateEndDate    *time.Time
	IncludeSetupFees  bool
	IncludeCancelFees bool
}

func (o Options) Validate() error {
	if len(strings.TrimSpace(o.Currency)) != 3 {
		return ierr.NewErrorf("invalid currency %q", o.Currency).
			WithHint("Currency must be a 3 letter ISO code").
			Mark(ierr.ErrValidation)
	}
	if o.ApplyDate.IsZero() {
		return ierr.NewError("apply date is required").
			WithHint("Apply date is required").
			Mark(ierr.ErrValidation)
	}
	if o.Cycles < 0 {
		return ierr.NewErrorf("invalid cycles %d", o.Cycles).
			WithHint("Cycles cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if (o.ProrateStartDate == nil) != (o.ProrateEndDate == nil) {
		return ierr.NewError("prorate start and end must be given together").
			WithHint("Both prorate start and end dates are required").
			Mark(ierr.ErrValidation)
	}
	if w := o.prorateWindow(); w != nil {
		return w.Validate()
	}
	return nil
}

func (o Options) cycles() int64 {
	if o.Cycles == 0 {
		return 1
	}
	return int64(o.Cycles)
}

func (o Options) prorateWindow() *proration.Window {
	if o.ProrateStartDate == nil || o.ProrateEndDate == nil {
		return nil
	}
	return &proration.Window{Start: *o.ProrateStartDate, End: *o.ProrateEndDate}
}

// CouponResult records how one requested coupon was evaluated.
type CouponResult struct {
	CouponID   string
	Code       string
	Applies    bool
	Reason     types.IneligibleReason
	DiscountID string
}
