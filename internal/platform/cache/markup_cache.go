// Package cache provides caching implementations for rendered company markup.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	companyusecase "angellist_widget/internal/feature/company/usecase"
	embedusecase "angellist_widget/internal/feature/embed/usecase"
)

// scanCount はSCAN 1回あたりに要求するキー数です。
const scanCount = 200

// RedisMarkupCache stores rendered widget markup in Redis.
// A nil client turns every call into a no-op so the widget keeps working without Redis.
type RedisMarkupCache struct {
	rdb *redis.Client
}

var (
	_ companyusecase.MarkupCache = (*RedisMarkupCache)(nil)
	_ embedusecase.CachePurger   = (*RedisMarkupCache)(nil)
)

// NewRedisMarkupCache はRedisをバックエンドにしたマークアップキャッシュを生成します。
func NewRedisMarkupCache(rdb *redis.Client) *RedisMarkupCache {
	return &RedisMarkupCache{rdb: rdb}
}

// Get returns the cached markup for key. Misses and Redis errors both report ("", false).
func (c *RedisMarkupCache) Get(ctx context.Context, key string) (string, bool) {
	if c.rdb == nil {
		return "", false
	}

	s, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("markup cache read failed", "key", key, "error", err)
		}
		return "", false
	}
	if s == "" {
		// 空の値は有効なマークアップではないので削除する
		_ = c.rdb.Del(ctx, key).Err()
		return "", false
	}
	return s, true
}

// Set stores markup with the given TTL.
func (c *RedisMarkupCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Purge deletes every key that starts with prefix using SCAN.
func (c *RedisMarkupCache) Purge(ctx context.Context, prefix string) (int, error) {
	if c.rdb == nil {
		return 0, nil
	}

	var (
		cursor  uint64
		deleted int
	)
	pattern := escapePattern(prefix) + "*"
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += int(n)
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return deleted, nil
}

// escapePattern escapes glob metacharacters so prefix matches literally in SCAN MATCH.
func escapePattern(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
