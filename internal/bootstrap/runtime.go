// Package bootstrap establishes runtime dependencies (database, Redis,
// migrations, built-in seed data) for the server and CLI tools.
package bootstrap

import (
	"context"
	"fmt"

	"outfitly/internal/cache"
	"outfitly/internal/config"
	"outfitly/internal/database"
	"outfitly/internal/repository"
	"outfitly/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	Migrate      bool
	SeedTaxonomy bool
}

// InitRuntime connects to DB and Redis and optionally migrates the schema
// and seeds the built-in clothing taxonomy.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client when Redis is unreachable; callers degrade.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.Migrate {
		if err := database.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	if opts.SeedTaxonomy {
		taxonomyRepo := repository.NewTaxonomyRepository(db)
		if err := seed.Taxonomy(context.Background(), taxonomyRepo); err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in taxonomy: %w", err)
		}
	}

	return db, r, nil
}
