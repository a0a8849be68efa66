package di

import (
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"angellist_widget/internal/platform/cache"
	"angellist_widget/internal/platform/externalapi/angellist"
)

func TestNewMarkupStore(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &cache.MemoryMarkupCache{}, NewMarkupStore(nil))

	rdb, _ := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	assert.IsType(t, &cache.RedisMarkupCache{}, NewMarkupStore(rdb))
}

func TestNewAngelListClient(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, NewAngelListClient(angellist.Config{}))
}
