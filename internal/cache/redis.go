package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scorecardlab/deadball/internal/ingest/mlb"
)

// RedisCache wraps the Redis connection used for response caching and
// event streams.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// Set stores a key-value pair with TTL
func (rc *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return rc.client.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a value by key
func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return rc.client.Get(ctx, key).Result()
}

// Delete removes a key
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}

// ErrOffline is returned by a CachingFetcher in offline mode when the
// requested URL is not cached.
var ErrOffline = errors.New("offline and not cached")

// CachingFetcher wraps a stats-feed fetcher with a Redis response cache
// keyed by URL hash, so repeated builds of the same game skip the
// network. In offline mode a cache miss is an error instead of a fetch.
type CachingFetcher struct {
	cache   *RedisCache
	next    mlb.Fetcher
	ttl     time.Duration
	offline bool
}

func NewCachingFetcher(cache *RedisCache, next mlb.Fetcher, ttl time.Duration, offline bool) *CachingFetcher {
	return &CachingFetcher{cache: cache, next: next, ttl: ttl, offline: offline}
}

// Fetch implements mlb.Fetcher.
func (f *CachingFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	key := fetchKey(rawURL)

	cached, err := f.cache.Get(ctx, key)
	if err == nil {
		return []byte(cached), nil
	}
	if !errors.Is(err, redis.Nil) {
		// A broken cache should not break the build.
		log.Printf("[fetch-cache] read %s failed: %v", key, err)
	}

	if f.offline {
		return nil, fmt.Errorf("%w: %s", ErrOffline, rawURL)
	}

	body, err := f.next.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(ctx, key, string(body), f.ttl); err != nil {
		log.Printf("[fetch-cache] write %s failed: %v", key, err)
	}
	return body, nil
}

func fetchKey(rawURL string) string {
	sum := sha1.Sum([]byte(rawURL))
	return "deadball:fetch:" + hex.EncodeToString(sum[:])
}
