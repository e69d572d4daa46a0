package item

import (
	"time"

	"github.com/flexprice/pricing/internal/types"
)

// Meta is the per-type description data of an item. Exactly one of
// PackageMeta, ServiceMeta, OptionMeta, SetupMeta or CancelMeta.
type Meta interface {
	Type() types.ItemType
	GetLifecycle() Lifecycle
	withLifecycle(Lifecycle) Meta
}

// Lifecycle is shared by every variant.
type Lifecycle struct {
	State     types.ItemState `json:"state,omitempty"`
	StartDate *time.Time      `json:"start_date,omitempty"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
	Prorated  bool            `json:"prorated"`
}

// PackageMeta describes a new package order line.
type PackageMeta struct {
	Lifecycle
	PackageID     string              `json:"package_id"`
	PackageName   string              `json:"package_name"`
	Label         string              `json:"label,omitempty"`
	Term          int                 `json:"term"`
	BillingPeriod types.BillingPeriod `json:"period"`
}

func (m PackageMeta) Type() types.ItemType    { return types.ItemTypePackage }
func (m PackageMeta) GetLifecycle() Lifecycle { return m.Lifecycle }
func (m PackageMeta) withLifecycle(l Lifecycle) Meta {
	m.Lifecycle = l
	return m
}

// ServiceMeta describes an existing service being renewed or changed.
type ServiceMeta struct {
	Lifecycle
	ServiceID     string              `json:"service_id"`
	PackageID     string              `json:"package_id"`
	PackageName   string              `json:"package_name"`
	Label         string              `json:"label,omitempty"`
	Term          int                 `json:"term"`
	BillingPeriod types.BillingPeriod `json:"period"`
}

func (m ServiceMeta) Type() types.ItemType    { return types.ItemTypeService }
func (m ServiceMeta) GetLifecycle() Lifecycle { return m.Lifecycle }
func (m ServiceMeta) withLifecycle(l Lifecycle) Meta {
	m.Lifecycle = l
	return m
}

// OptionMeta describes a configurable option attached to a package.
type OptionMeta struct {
	Lifecycle
	OptionID   string `json:"option_id"`
	OptionName string `json:"option_name"`
	Value      string `json:"value,omitempty"`
	PackageID  string `json:"package_id"`
}

func (m OptionMeta) Type() types.ItemType    { return types.ItemTypeOption }
func (m OptionMeta) GetLifecycle() Lifecycle { return m.Lifecycle }
func (m OptionMeta) withLifecycle(l Lifecycle) Meta {
	m.Lifecycle = l
	return m
}

// SetupMeta describes a one-off setup fee.
type SetupMeta struct {
	Lifecycle
	PackageID   string `json:"package_id"`
	PackageName string `json:"package_name"`
}

func (m SetupMeta) Type() types.ItemType    { return types.ItemTypeSetup }
func (m SetupMeta) GetLifecycle() Lifecycle { return m.Lifecycle }
func (m SetupMeta) withLifecycle(l Lifecycle) Meta {
	m.Lifecycle = l
	return m
}

// CancelMeta describes a cancellation fee.
type CancelMeta struct {
	Lifecycle
	PackageID   string `json:"package_id"`
	PackageName string `json:"package_name"`
}

func (m CancelMeta) Type() types.ItemType    { return types.ItemTypeCancel }
func (m CancelMeta) GetLifecycle() Lifecycle { return m.Lifecycle }
func (m CancelMeta) withLifecycle(l Lifecycle) Meta {
	m.Lifecycle = l
	return m
}

// PackageIDOf returns the package an item belongs to, if any.
func PackageIDOf(m Meta) string {
	switch v := m.(type) {
	case PackageMeta:
		return v.PackageID
	case ServiceMeta:
		return v.PackageID
	case OptionMeta:
		return v.PackageID
	case SetupMeta:
		return v.PackageID
	case CancelMeta:
		return v.PackageID
	default:
		return ""
	}
}
