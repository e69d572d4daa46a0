package tax

import (
	"context"

	"github.com/flexprice/pricing/internal/types"
)

// Repository defines the read operations the pricing service needs for tax rules
type Repository interface {
	Get(ctx context.Context, id string) (*TaxRule, error)
	List(ctx context.Context, filter *types.TaxRuleFilter) ([]*TaxRule, error)
}
