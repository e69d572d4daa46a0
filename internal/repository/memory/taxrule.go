package memory

import (
	"context"

	"github.com/flexprice/pricing/internal/domain/tax"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/samber/lo"
)

// TaxRuleStore implements tax.Repository
type TaxRuleStore struct {
	*InMemoryStore[*tax.TaxRule]
}

func NewTaxRuleStore() *TaxRuleStore {
	return &TaxRuleStore{
		InMemoryStore: NewInMemoryStore[*tax.TaxRule](),
	}
}

// taxRuleFilterFn implements filtering logic for tax rules
func taxRuleFilterFn(_ context.Context, r *tax.TaxRule, filter interface{}) bool {
	if r == nil {
		return false
	}

	f, ok := filter.(*types.TaxRuleFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.TaxRuleIDs) > 0 && !lo.Contains(f.TaxRuleIDs, r.ID) {
		return false
	}

	if f.Status == types.StatusActive && !r.IsActive() {
		return false
	}
	if f.Status == types.StatusInactive && r.IsActive() {
		return false
	}

	return true
}

// taxRuleSortFn orders level 1 before level 2, then by ID
func taxRuleSortFn(i, j *tax.TaxRule) bool {
	if i.Level != j.Level {
		return i.Level < j.Level
	}
	return i.ID < j.ID
}

func (s *TaxRuleStore) Create(ctx context.Context, r *tax.TaxRule) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.InMemoryStore.Create(ctx, r.ID, r); err != nil {
		return ierr.WithError(err).
			WithHint("A tax rule with this identifier already exists").
			WithReportableDetails(map[string]any{
				"tax_rule_id": r.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

func (s *TaxRuleStore) Get(ctx context.Context, id string) (*tax.TaxRule, error) {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Tax rule with ID %s was not found", id).
			WithReportableDetails(map[string]any{
				"tax_rule_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return r, nil
}

func (s *TaxRuleStore) List(ctx context.Context, filter *types.TaxRuleFilter) ([]*tax.TaxRule, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.InMemoryStore.List(ctx, filter, taxRuleFilterFn, taxRuleSortFn)
}
