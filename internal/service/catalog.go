package service

import (
	"context"
	"slices"
	"strings"

	"github.com/flexprice/pricing/internal/cache"
	"github.com/flexprice/pricing/internal/domain/coupon"
	"github.com/flexprice/pricing/internal/domain/tax"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/samber/lo"
)

// loadTaxRules returns the requested tax rules, or every active rule when
// ids is empty. Lookups are cached.
func (s *pricingService) loadTaxRules(ctx context.Context, ids []string) ([]*tax.TaxRule, error) {
	ids = lo.Uniq(ids)
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	filter := &types.TaxRuleFilter{TaxRuleIDs: ids}
	if len(ids) == 0 {
		filter.Status = types.StatusActive
	}

	key := cache.GenerateKey(cache.PrefixTaxRuleList, strings.Join(sorted, ","), filter.Status)
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if rules, ok := cached.([]*tax.TaxRule); ok {
			return rules, nil
		}
	}

	span := cache.StartMissSpan(ctx, "taxrule", key, ids)
	rules, err := s.fetchTaxRules(ctx, filter, ids)
	cache.EndMissSpan(span, err)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, rules, 0)
	return rules, nil
}

// fetchTaxRules reads rules from the repository and, for an explicit ID
// list, fails when any ID is unknown.
func (s *pricingService) fetchTaxRules(ctx context.Context, filter *types.TaxRuleFilter, ids []string) ([]*tax.TaxRule, error) {
	rules, err := s.TaxRuleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return rules, nil
	}

	found := lo.Map(rules, func(r *tax.TaxRule, _ int) string { return r.ID })
	if missing, _ := lo.Difference(ids, found); len(missing) > 0 {
		return nil, ierr.NewErrorf("tax rules not found: %s", strings.Join(missing, ", ")).
			WithHint("One or more tax rules were not found").
			WithReportableDetails(map[string]any{"tax_rule_ids": missing}).
			Mark(ierr.ErrNotFound)
	}
	return orderByIDs(rules, ids), nil
}

// orderByIDs returns rules in the order their IDs were requested.
func orderByIDs(rules []*tax.TaxRule, ids []string) []*tax.TaxRule {
	byID := lo.KeyBy(rules, func(r *tax.TaxRule) string { return r.ID })
	return lo.FilterMap(ids, func(id string, _ int) (*tax.TaxRule, bool) {
		r, ok := byID[id]
		return r, ok
	})
}

// loadCoupon returns the coupon with code, cached by its normalized code.
func (s *pricingService) loadCoupon(ctx context.Context, code string) (*coupon.Coupon, error) {
	key := cache.GenerateKey(cache.PrefixCoupon, strings.ToUpper(strings.TrimSpace(code)))
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if c, ok := cached.(*coupon.Coupon); ok {
			return c, nil
		}
	}

	c, err := s.CouponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, c, 0)
	return c, nil
}

func (s *pricingService) loadCoupons(ctx context.Context, codes []string) ([]*coupon.Coupon, error) {
	coupons := make([]*coupon.Coupon, 0, len(codes))
	for _, code := range codes {
		c, err := s.loadCoupon(ctx, code)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, nil
}
