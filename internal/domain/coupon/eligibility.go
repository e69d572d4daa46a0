package coupon

import (
	"slices"
	"time"

	"github.com/flexprice/pricing/internal/types"
)

// PackageRequest is one package the coupon is asked to cover. Period and
// Term are optional; when both are set the request is term-qualified.
type PackageRequest struct {
	PackageID string
	Period    types.BillingPeriod
	Term      int
}

func (p PackageRequest) qualified() bool {
	return p.Period != "" && p.Term > 0
}

// ApplyRequest is the context a coupon is evaluated in.
type ApplyRequest struct {
	Packages         []PackageRequest
	OptionsRequested bool
	IsRecurring      bool
	At               time.Time
}

// Check returns why the coupon does not apply to req, or
// IneligibleReasonNone when it does.
func (c *Coupon) Check(req ApplyRequest) types.IneligibleReason {
	if c.Status != types.StatusActive {
		return types.IneligibleReasonInactive
	}

	if reason := c.checkPackages(req.Packages); reason != types.IneligibleReasonNone {
		return reason
	}

	if req.OptionsRequested && !c.AppliesToOptions {
		return types.IneligibleReasonOptionsNotSupported
	}

	if req.IsRecurring && !c.Recurs {
		return types.IneligibleReasonNotRecurring
	}

	// Renewals keep the discount past cap and expiry unless told otherwise.
	if req.IsRecurring && !c.RecurLimitsApply {
		return types.IneligibleReasonNone
	}

	return c.checkLimits(req.At)
}

// Applies reports whether the coupon applies to req.
func (c *Coupon) Applies(req ApplyRequest) bool {
	return c.Check(req) == types.IneligibleReasonNone
}

func (c *Coupon) checkPackages(reqs []PackageRequest) types.IneligibleReason {
	restricted := c.hasTermRestrictions()
	for _, p := range reqs {
		terms, ok := c.Packages[p.PackageID]
		if !ok {
			return types.IneligibleReasonPackageNotSupported
		}
		if !restricted || !p.qualified() {
			continue
		}
		allowed, ok := terms[p.Period]
		if !ok || !slices.Contains(allowed, p.Term) {
			return types.IneligibleReasonTermNotSupported
		}
	}
	return types.IneligibleReasonNone
}

func (c *Coupon) checkLimits(at time.Time) types.IneligibleReason {
	if c.MaxQuantity != 0 && c.UsedQuantity >= c.MaxQuantity {
		return types.IneligibleReasonUsageLimitReached
	}
	if c.ValidFrom == nil || c.ValidTo == nil {
		return types.IneligibleReasonMissingValidityWindow
	}
	if at.Before(*c.ValidFrom) {
		return types.IneligibleReasonNotYetValid
	}
	if at.After(*c.ValidTo) {
		return types.IneligibleReasonExpired
	}
	return types.IneligibleReasonNone
}
