// Package bootstrap wires shared runtime dependencies for the command
// entry points.
package bootstrap

import (
	"fmt"

	"observatory/internal/cache"
	"observatory/internal/config"
	"observatory/internal/database"
	"observatory/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedCorpus loads the synthetic persona corpus into an empty database.
	// Development convenience only.
	SeedCorpus bool
}

// InitRuntime connects to DB and Redis and optionally seeds the dev corpus.
// A nil Redis client means the cache is unavailable; callers degrade.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedCorpus {
		if err := seed.Run(db, seed.DefaultOptions()); err != nil {
			return nil, nil, fmt.Errorf("failed to seed corpus: %w", err)
		}
	}

	return db, r, nil
}
