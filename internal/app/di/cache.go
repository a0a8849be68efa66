package di

import (
	"github.com/redis/go-redis/v9"

	companyusecase "angellist_widget/internal/feature/company/usecase"
	embedusecase "angellist_widget/internal/feature/embed/usecase"
	"angellist_widget/internal/platform/cache"
)

// MarkupStore is a markup cache that can also purge by key prefix.
type MarkupStore interface {
	companyusecase.MarkupCache
	embedusecase.CachePurger
}

// NewMarkupStore creates a MarkupStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-process cache.
func NewMarkupStore(rdb *redis.Client) MarkupStore {
	if rdb != nil {
		return cache.NewRedisMarkupCache(rdb)
	}
	return cache.NewMemoryMarkupCache()
}
