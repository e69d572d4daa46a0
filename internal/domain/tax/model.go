package tax

import (
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/shopspring/decimal"
)

// TaxRule is a percentage tax applied at level 1 or level 2.
type TaxRule struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Level   types.TaxLevel  `json:"level"`
	Rate    decimal.Decimal `json:"rate"`
	Type    types.TaxType   `json:"type"`
	Cascade bool            `json:"cascade"`
	Status  types.Status    `json:"status"`
}

func (r *TaxRule) Validate() error {
	if r == nil {
		return ierr.NewError("tax rule is nil").
			WithHint("Tax rule is required").
			Mark(ierr.ErrValidation)
	}
	if r.ID == "" {
		return ierr.NewError("tax rule id is required").
			WithHint("Tax rule ID is required").
			Mark(ierr.ErrValidation)
	}
	if err := r.Level.Validate(); err != nil {
		return err
	}
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if r.Rate.IsNegative() {
		return ierr.NewErrorf("tax rule %s has negative rate %s", r.ID, r.Rate).
			WithHint("Tax rate cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if r.Status != "" {
		return r.Status.Validate()
	}
	return nil
}

// IsActive treats an unset status as active.
func (r *TaxRule) IsActive() bool {
	return r.Status == "" || r.Status == types.StatusActive
}
