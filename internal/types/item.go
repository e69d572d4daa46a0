package types

import (
	"slices"

	ierr "github.com/flexprice/pricing/internal/errors"
)

// ItemType identifies what a billable line represents.
type ItemType string

const (
	ItemTypeService ItemType = "service"
	ItemTypePackage ItemType = "package"
	ItemTypeOption  ItemType = "option"
	ItemTypeSetup   ItemType = "setup"
	ItemTypeCancel  ItemType = "cancel"
)

func (t ItemType) String() string {
	return string(t)
}

func (t ItemType) Validate() error {
	allowed := []ItemType{ItemTypeService, ItemTypePackage, ItemTypeOption, ItemTypeSetup, ItemTypeCancel}
	if !slices.Contains(allowed, t) {
		return ierr.NewErrorf("invalid item type %q", t).
			WithHint("Item type must be one of service, package, option, setup or cancel").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsFee reports whether the item is a one-off setup or cancellation fee.
func (t ItemType) IsFee() bool {
	return t == ItemTypeSetup || t == ItemTypeCancel
}

// ItemState records what is happening to the underlying service.
type ItemState string

const (
	ItemStateAdded   ItemState = "added"
	ItemStateUpdated ItemState = "updated"
	ItemStateRemoved ItemState = "removed"
)

func (s ItemState) String() string {
	return string(s)
}

func (s ItemState) Validate() error {
	if s == "" {
		return nil
	}
	if !slices.Contains([]ItemState{ItemStateAdded, ItemStateUpdated, ItemStateRemoved}, s) {
		return ierr.NewErrorf("invalid item state %q", s).
			WithHint("Item state must be one of added, updated or removed").
			Mark(ierr.ErrValidation)
	}
	return nil
}
