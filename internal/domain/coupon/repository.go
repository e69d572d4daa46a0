package coupon

import (
	"context"

	"github.com/flexprice/pricing/internal/types"
)

// Repository defines the read operations the pricing service needs for coupons
type Repository interface {
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context, filter *types.CouponFilter) ([]*Coupon, error)
}
