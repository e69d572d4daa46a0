package types

import (
	"slices"

	ierr "github.com/flexprice/pricing/internal/errors"
)

// TaxType determines how a tax rate relates to an item's price.
type TaxType string

const (
	// TaxTypeExclusive is added on top of the price.
	TaxTypeExclusive TaxType = "exclusive"
	// TaxTypeInclusive is already part of the price and reported for display only.
	TaxTypeInclusive TaxType = "inclusive"
	// TaxTypeInclusiveCalculated is embedded in the price VAT style and backed
	// out of the subtotal as rate/(100+rate).
	TaxTypeInclusiveCalculated TaxType = "inclusive_calculated"
)

func (t TaxType) String() string {
	return string(t)
}

func (t TaxType) Validate() error {
	allowed := []TaxType{TaxTypeExclusive, TaxTypeInclusive, TaxTypeInclusiveCalculated}
	if !slices.Contains(allowed, t) {
		return ierr.NewErrorf("invalid tax type %q", t).
			WithHint("Tax type must be one of exclusive, inclusive or inclusive_calculated").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TaxLevel orders tax evaluation; level 2 is computed after level 1.
type TaxLevel int

const (
	TaxLevel1 TaxLevel = 1
	TaxLevel2 TaxLevel = 2
)

func (l TaxLevel) Validate() error {
	if l != TaxLevel1 && l != TaxLevel2 {
		return ierr.NewErrorf("invalid tax level %d", l).
			WithHint("Tax level must be 1 or 2").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TaxRuleFilter narrows tax rule lookups.
type TaxRuleFilter struct {
	TaxRuleIDs []string `json:"tax_rule_ids,omitempty" form:"tax_rule_ids"`
	Status     Status   `json:"status,omitempty" form:"status"`
}

func (f *TaxRuleFilter) Validate() error {
	if f == nil {
		return nil
	}
	for _, id := range f.TaxRuleIDs {
		if id == "" {
			return ierr.NewError("tax_rule_ids cannot contain empty strings").
				WithHint("Tax rule IDs must be non-empty strings").
				Mark(ierr.ErrValidation)
		}
	}
	if f.Status != "" {
		return f.Status.Validate()
	}
	return nil
}
