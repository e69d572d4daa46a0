package pyroscope

import (
	"context"
	"testing"

	"github.com/flexprice/pricing/internal/config"
	"github.com/flexprice/pricing/internal/logger"
	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledService(t *testing.T) {
	svc := NewPyroscopeService(config.GetDefaultConfig(), logger.NewNoopLogger())

	require.NoError(t, svc.Start())
	assert.False(t, svc.IsEnabled())

	called := false
	svc.TagWrapper(context.Background(), map[string]string{"op": "quote"}, func(context.Context) {
		called = true
	})
	assert.True(t, called)
	require.NoError(t, svc.Stop())
}

func TestGetProfileTypes(t *testing.T) {
	cfg := config.GetDefaultConfig()
	svc := NewPyroscopeService(cfg, logger.NewNoopLogger())

	assert.Len(t, svc.getProfileTypes(), 4)

	cfg.Pyroscope.ProfileTypes = []string{"CPU", "goroutines", "bogus"}
	assert.Equal(t, []pyroscope.ProfileType{pyroscope.ProfileCPU, pyroscope.ProfileGoroutines}, svc.getProfileTypes())
}
