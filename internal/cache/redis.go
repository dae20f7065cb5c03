package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces all cache keys in Redis.
const keyPrefix = "smcache:"

// opTimeout bounds a single Redis round trip when the caller's context has no deadline.
const opTimeout = 2 * time.Second

func init() {
	Register("redis", newRedisCache)
}

// redisCache stores each payload as a plain string key with an expiry.
// Capacity is left to the server's maxmemory policy, so Size is not enforced.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
	prefix string
}

func newRedisCache(cfg ProviderConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := keyPrefix
	if cfg.Group != "" {
		prefix += cfg.Group + ":"
	}
	return &redisCache{
		client: client,
		ttl:    cfg.TTL,
		logger: cfg.Logger,
		prefix: prefix,
	}, nil
}

func (r *redisCache) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func (r *redisCache) key(k string) string {
	return r.prefix + k
}

func withOpTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, opTimeout)
}

func (r *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logError("redis cache Get failed", err)
		}
		return nil, false
	}
	return val, true
}

func (r *redisCache) Set(ctx context.Context, key string, value []byte) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		r.logError("redis cache Set failed", err)
	}
}

func (r *redisCache) Delete(ctx context.Context, key string) {
	ctx, cancel := withOpTimeout(ctx)
	defer cancel()

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logError("redis cache Delete failed", err)
	}
}

// Len counts the keys under this cache's prefix with SCAN.
func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	count := 0
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		r.logError("redis cache Len failed", err)
		return 0
	}
	return count
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
