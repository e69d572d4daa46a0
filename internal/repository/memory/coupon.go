package memory

import (
	"context"
	"strings"

	"github.com/flexprice/pricing/internal/domain/coupon"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/samber/lo"
)

// CouponStore implements coupon.Repository. Coupons are keyed by their
// upper cased code.
type CouponStore struct {
	*InMemoryStore[*coupon.Coupon]
}

func NewCouponStore() *CouponStore {
	return &CouponStore{
		InMemoryStore: NewInMemoryStore[*coupon.Coupon](),
	}
}

func couponKey(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// couponFilterFn implements filtering logic for coupons
func couponFilterFn(_ context.Context, c *coupon.Coupon, filter interface{}) bool {
	if c == nil {
		return false
	}

	f, ok := filter.(*types.CouponFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.Codes) > 0 {
		codes := lo.Map(f.Codes, func(code string, _ int) string { return couponKey(code) })
		if !lo.Contains(codes, couponKey(c.Code)) {
			return false
		}
	}

	if f.Status != "" && c.Status != f.Status {
		return false
	}

	return true
}

func couponSortFn(i, j *coupon.Coupon) bool {
	return i.Code < j.Code
}

func (s *CouponStore) Create(ctx context.Context, c *coupon.Coupon) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.InMemoryStore.Create(ctx, couponKey(c.Code), c); err != nil {
		return ierr.WithError(err).
			WithHint("A coupon with this code already exists").
			WithReportableDetails(map[string]any{
				"code": c.Code,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

func (s *CouponStore) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	c, err := s.InMemoryStore.Get(ctx, couponKey(code))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Coupon %s was not found", code).
			WithReportableDetails(map[string]any{
				"code": code,
			}).
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *CouponStore) List(ctx context.Context, filter *types.CouponFilter) ([]*coupon.Coupon, error) {
	return s.InMemoryStore.List(ctx, filter, couponFilterFn, couponSortFn)
}
