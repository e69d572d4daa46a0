package config

import (
	"testing"

	"github.com/flexprice/pricing/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, GetDefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Configuration)
	}{
		{"unknown proration strategy", func(c *Configuration) { c.Pricing.ProrationStrategy = "hourly" }},
		{"currency too long", func(c *Configuration) { c.Pricing.DefaultCurrency = "DOLLAR" }},
		{"zero batch size", func(c *Configuration) { c.Pricing.MaxBatchSize = 0 }},
		{"missing timezone", func(c *Configuration) { c.Pricing.Timezone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewConfigEnvOverride(t *testing.T) {
	t.Setenv("PRICING_PRICING_DEFAULT_CURRENCY", "EUR")
	t.Setenv("PRICING_PRICING_PRORATION_STRATEGY", string(types.ProrationStrategySecondBased))

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Pricing.DefaultCurrency)
	assert.Equal(t, types.ProrationStrategySecondBased, cfg.Pricing.ProrationStrategy)
}
