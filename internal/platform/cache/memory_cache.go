package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	companyusecase "angellist_widget/internal/feature/company/usecase"
	embedusecase "angellist_widget/internal/feature/embed/usecase"
)

// MemoryMarkupCache is an in-process markup cache used when Redis is not configured.
type MemoryMarkupCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

var (
	_ companyusecase.MarkupCache = (*MemoryMarkupCache)(nil)
	_ embedusecase.CachePurger   = (*MemoryMarkupCache)(nil)
)

// NewMemoryMarkupCache はプロセス内メモリのキャッシュを生成します。
func NewMemoryMarkupCache() *MemoryMarkupCache {
	return &MemoryMarkupCache{
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
	}
}

// Get returns ("", false) on miss or expiry.
func (c *MemoryMarkupCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}

	if !c.now().Before(entry.expiresAt) {
		// 期限切れは遅延削除
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur == entry {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return "", false
	}

	return entry.value, true
}

// Set stores value until ttl elapses. A non-positive ttl stores nothing.
func (c *MemoryMarkupCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	c.entries[key] = &cacheEntry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()

	return nil
}

// Purge removes every entry whose key starts with prefix.
func (c *MemoryMarkupCache) Purge(_ context.Context, prefix string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			n++
		}
	}
	return n, nil
}
