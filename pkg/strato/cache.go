package strato

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/nats-io/nats.go"
)

// Cache errors.
var (
	ErrCacheMiss     = errors.New("key not found in cache")
	ErrCacheDisabled = errors.New("cache disabled")
)

// CacheEntry is one cached value with its storage time.
type CacheEntry struct {
	Value    []byte    `json:"value"`
	StoredAt time.Time `json:"stored_at"`
}

// Cache stores discovery results and other service metadata between
// requests. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// MemoryCache is an in-process TTL cache.
type MemoryCache struct {
	inner *ttlcache.Cache[string, *CacheEntry]
}

// NewMemoryCache creates a memory cache with the given capacity and entry
// TTL. A zero TTL keeps entries until evicted by capacity.
func NewMemoryCache(maxSize int, ttl time.Duration) *MemoryCache {
	opts := []ttlcache.Option[string, *CacheEntry]{
		ttlcache.WithDisableTouchOnHit[string, *CacheEntry](),
	}

	if maxSize > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, *CacheEntry](uint64(maxSize)))
	}

	if ttl > 0 {
		opts = append(opts, ttlcache.WithTTL[string, *CacheEntry](ttl))
	}

	inner := ttlcache.New(opts...)
	go inner.Start()

	return &MemoryCache{inner: inner}
}

// Get retrieves an entry.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	item := c.inner.Get(key)
	if item == nil {
		return nil, ErrCacheMiss
	}

	return item.Value(), nil
}

// Set stores an entry.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.inner.Set(key, entry, ttlcache.DefaultTTL)

	return nil
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.inner.Delete(key)

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.inner.DeleteAll()

	return nil
}

// Has checks whether a key is cached.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	return c.inner.Has(key)
}

// Stop terminates the background expiry loop.
func (c *MemoryCache) Stop() {
	c.inner.Stop()
}

// NATSKVConfig configures the NATS JetStream key-value cache backend,
// letting several clients share discovery results.
type NATSKVConfig struct {
	// URL of the NATS server, e.g. nats.DefaultURL.
	URL string

	// Bucket is the key-value bucket name; created if missing.
	Bucket string

	// TTL applied to bucket entries on creation.
	TTL time.Duration

	// Credentials file, optional.
	CredsFile string
}

// NATSKVCache stores cache entries in a NATS JetStream key-value bucket.
type NATSKVCache struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSKVCache connects to NATS and binds (or creates) the bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	var opts []nats.Option
	if config.CredsFile != "" {
		opts = append(opts, nats.UserCredentials(config.CredsFile))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	kv, err := js.KeyValue(config.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: config.Bucket,
			TTL:    config.TTL,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("binding KV bucket %q: %w", config.Bucket, err)
	}

	return &NATSKVCache{conn: conn, kv: kv}, nil
}

// Get retrieves an entry.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kvEntry, err := c.kv.Get(key)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrCacheMiss
	}

	if err != nil {
		return nil, fmt.Errorf("reading cache key %q: %w", key, err)
	}

	var entry CacheEntry
	if err := json.Unmarshal(kvEntry.Value(), &entry); err != nil {
		return nil, fmt.Errorf("decoding cache entry %q: %w", key, err)
	}

	return &entry, nil
}

// Set stores an entry.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry %q: %w", key, err)
	}

	if _, err := c.kv.Put(key, data); err != nil {
		return fmt.Errorf("writing cache key %q: %w", key, err)
	}

	return nil
}

// Delete removes an entry.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(key)
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting cache key %q: %w", key, err)
	}

	return nil
}

// Clear removes all entries in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("listing cache keys: %w", err)
	}

	for _, key := range keys {
		if err := c.kv.Delete(key); err != nil {
			return fmt.Errorf("deleting cache key %q: %w", key, err)
		}
	}

	return nil
}

// Has checks whether a key is cached.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.kv.Get(key)

	return err == nil
}

// Close disconnects from NATS.
func (c *NATSKVCache) Close() {
	c.conn.Close()
}

// NoOpCache disables caching.
type NoOpCache struct{}

// NewNoOpCache creates a cache that never stores anything.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always misses.
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has always returns false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}
