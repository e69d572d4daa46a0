package cache

import (
	"github.com/flexprice/pricing/internal/config"
	"github.com/flexprice/pricing/internal/logger"
)

// Initialize builds the cache used by the services
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	log.Infow("initializing cache system", "enabled", cfg.Cache.Enabled, "ttl", cfg.Cache.TTL)
	return NewInMemoryCache(cfg, log)
}
