package cache

import "context"

// instrumentedCache records hit, miss, stored byte and entry metrics under a group label.
type instrumentedCache struct {
	inner Cache
	group string
}

func newInstrumentedCache(inner Cache, group string) *instrumentedCache {
	registerEntriesCollector(group, inner.Len)
	return &instrumentedCache{inner: inner, group: group}
}

func (c *instrumentedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, ok := c.inner.Get(ctx, key)
	if ok {
		HitsTotal.WithLabelValues(c.group).Inc()
	} else {
		MissesTotal.WithLabelValues(c.group).Inc()
	}
	return val, ok
}

func (c *instrumentedCache) Set(ctx context.Context, key string, value []byte) {
	c.inner.Set(ctx, key, value)
	StoredBytesTotal.WithLabelValues(c.group).Add(float64(len(value)))
}

func (c *instrumentedCache) Delete(ctx context.Context, key string) {
	c.inner.Delete(ctx, key)
}

func (c *instrumentedCache) Len() int {
	return c.inner.Len()
}

// Close unregisters the entries collector and closes the underlying cache.
func (c *instrumentedCache) Close() error {
	unregisterEntriesCollector(c.group)
	return c.inner.Close()
}
