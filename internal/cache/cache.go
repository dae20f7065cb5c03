package cache

import (
	"context"

	"github.com/rs/zerolog"
)

// EvictCallback is called when an entry is evicted from the cache.
// Only the memory provider reports evictions; Redis relies on key expiry.
type EvictCallback func(key string, value []byte)

// Cache stores search payloads keyed by platform and keyword.
// Lookups never fail: backend errors are logged and reported as misses.
type Cache interface {
	// Get returns the cached payload and true on a hit.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte)

	// Delete removes key if present.
	Delete(ctx context.Context, key string)

	// Len returns the number of live entries.
	Len() int

	// Close releases backend connections. It is a no-op for the memory provider.
	Close() error
}

// Logger receives backend failures.
type Logger interface {
	Error(msg string, err error)
}

type zerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter reports cache failures through a zerolog logger.
func NewZerologAdapter(logger zerolog.Logger) Logger {
	return &zerologAdapter{logger: logger}
}

func (a *zerologAdapter) Error(msg string, err error) {
	a.logger.Error().Err(err).Msg(msg)
}
