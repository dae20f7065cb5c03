package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryCache)
}

// memoryCache keeps payloads in an expirable LRU.
type memoryCache struct {
	inner *lru.LRU[string, []byte]
}

func newMemoryCache(cfg ProviderConfig) (Cache, error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("cache: memory size must be positive, got %d", cfg.Size)
	}
	var onEvict func(string, []byte)
	if cfg.OnEvict != nil {
		onEvict = func(key string, value []byte) {
			cfg.OnEvict(key, value)
		}
	}
	return &memoryCache{
		inner: lru.NewLRU[string, []byte](cfg.Size, onEvict, cfg.TTL),
	}, nil
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	return m.inner.Get(key)
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte) {
	m.inner.Add(key, value)
}

func (m *memoryCache) Delete(_ context.Context, key string) {
	m.inner.Remove(key)
}

func (m *memoryCache) Len() int {
	return m.inner.Len()
}

func (m *memoryCache) Close() error {
	return nil
}
