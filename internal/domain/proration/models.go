package proration

import (
	"time"

	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
)

// Window is the span an item is actually billed for.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return ierr.NewError("proration window requires start and end").
			WithHint("Both prorate start and end dates are required").
			Mark(ierr.ErrValidation)
	}
	if w.End.Before(w.Start) {
		return ierr.NewErrorf("proration window ends %s before it starts %s", w.End, w.Start).
			WithHint("Prorate end date cannot be before prorate start date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsEmpty reports a zero length window.
func (w Window) IsEmpty() bool {
	return !w.End.After(w.Start)
}

// Policy is a package's prorata setting: bill up to the next ProrataDay of
// the month, and when signing up after ProrataCutoff also cover the month
// after that.
type Policy struct {
	ProrataDay    int `json:"prorata_day"`
	ProrataCutoff int `json:"prorata_cutoff"`
}

func (p Policy) Validate() error {
	if p.ProrataDay < 0 || p.ProrataDay > 31 {
		return ierr.NewErrorf("invalid prorata day %d", p.ProrataDay).
			WithHint("Prorata day must be between 1 and 31").
			Mark(ierr.ErrValidation)
	}
	if p.ProrataCutoff < 0 || p.ProrataCutoff > 31 {
		return ierr.NewErrorf("invalid prorata cutoff %d", p.ProrataCutoff).
			WithHint("Prorata cutoff must be between 0 and 31").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Enabled reports whether the package prorates at all.
func (p Policy) Enabled() bool {
	return p.ProrataDay > 0
}

// Window returns the default proration window for a service starting at
// start. It returns false when the policy is disabled or start already
// falls on the anchor day.
func (p Policy) Window(start time.Time) (Window, bool) {
	if !p.Enabled() || start.IsZero() {
		return Window{}, false
	}
	if start.Day() == types.AnchorDate(start, p.ProrataDay).Day() {
		return Window{}, false
	}

	monthStart := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	anchor := types.AnchorDate(start, p.ProrataDay)
	if !anchor.After(start) {
		anchor = types.AnchorDate(types.AddClampedDate(monthStart, 0, 1, 0), p.ProrataDay)
	}
	if p.ProrataCutoff > 0 && start.Day() > p.ProrataCutoff {
		next := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		anchor = types.AnchorDate(types.AddClampedDate(next, 0, 1, 0), p.ProrataDay)
	}

	return Window{Start: start, End: anchor}, true
}
