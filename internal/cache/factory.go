package cache

import (
	"fmt"

	"cryzo-api/config"
)

// New builds the cache backend named by config. Unknown backends are an
// error; "none" disables caching entirely.
func New(cfg *config.Config) (Cache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "memory":
		return NewMemoryCache(), nil
	case "none":
		return NoopCache{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
