package storage

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/redis"
	"gorm.io/gorm"
)

// Backends carries the optional connections a backend may need.
type Backends struct {
	Redis   *redis.Client
	DB      *gorm.DB
	Metrics *metrics.StorageMetrics
}

// New picks the adapter named by cfg.Backend.
func New(cfg config.StorageConfig, deps Backends) (Adapter, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	var adapter Adapter
	switch backend {
	case "", config.StorageBackendMemory:
		backend = config.StorageBackendMemory
		adapter = NewMemoryStore()
	case config.StorageBackendRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("redis storage backend requires a redis client")
		}
		adapter = NewRedisStore(deps.Redis)
	case config.StorageBackendSQL:
		if deps.DB == nil {
			return nil, fmt.Errorf("sql storage backend requires a database connection")
		}
		adapter = NewSQLStore(deps.DB)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	return Instrumented(adapter, backend, deps.Metrics), nil
}
