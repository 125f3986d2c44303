package tooldeck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tooldeck-io/tooldeck-go/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrCacheKeyNotFound  = errors.New("key not found")
	ErrCacheEntryExpired = errors.New("entry expired")
)

// Cache is the interface implemented by response cache backends.
type Cache interface {
	// Get retrieves an entry by key. It returns an error when the key is
	// missing or the entry has expired.
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores an entry under key, replacing any existing entry.
	Set(ctx context.Context, key string, entry *CacheEntry) error

	// Delete removes an entry by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Has reports whether a live entry exists for key.
	Has(ctx context.Context, key string) bool
}

// CacheEntry is a single cached value with expiry metadata.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	ETag      string    `json:"etag,omitempty"`
}

// Expired reports whether the entry is past its expiry time. Entries with a
// zero ExpiresAt never expire.
func (e *CacheEntry) Expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// MemoryCache is an in-process Cache with a bounded number of entries.
// When full, the entry closest to expiry is evicted first.
type MemoryCache struct {
	mu       sync.RWMutex
	entries  map[string]*CacheEntry
	maxSize  int
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
		stop:    make(chan struct{}),
	}
}

// Get retrieves an entry by key.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	if entry.Expired() {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return entry, nil
}

// Set stores an entry under key, evicting the entry closest to expiry when
// the cache is full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = entry

	return nil
}

// Delete removes an entry by key.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CacheEntry)

	return nil
}

// Has reports whether a live entry exists for key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Cleanup removes all expired entries.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if entry.Expired() {
			delete(c.entries, key)
		}
	}
}

// StartCleanup runs Cleanup on the given interval until Close is called.
func (c *MemoryCache) StartCleanup(interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.Cleanup()
			case <-c.stop:
				return
			}
		}
	}()
}

// Close stops the background cleanup loop, if one is running.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stop)
	})

	return nil
}

// evictOldest removes the entry closest to expiry. Callers must hold the
// write lock.
func (c *MemoryCache) evictOldest() {
	var (
		oldestKey string
		oldestAt  time.Time
	)

	for key, entry := range c.entries {
		if oldestKey == "" || entry.ExpiresAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.ExpiresAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// CacheOptions carries backend-independent cache tuning.
type CacheOptions struct {
	// DefaultTTL applies when a caller does not specify a TTL
	DefaultTTL time.Duration

	// MaxValueSize is the largest value stored, in bytes. Larger values
	// are silently skipped.
	MaxValueSize int
}

// DefaultCacheOptions returns the default cache options.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		DefaultTTL:   constants.DefaultCacheTTL,
		MaxValueSize: constants.MaxCacheValueSize,
	}
}

// CacheStats tracks cache effectiveness counters.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Sets    int64
	Deletes int64
}

// GetHitRate returns the fraction of lookups served from cache.
func (s *CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses

	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// CacheManager wraps a Cache with key construction, statistics, and
// path-based invalidation. A nil cache degrades to a no-op backend.
type CacheManager struct {
	cache   Cache
	options *CacheOptions

	mu    sync.Mutex
	stats CacheStats
	keys  map[string]struct{}
}

// NewCacheManager creates a cache manager over the given backend.
func NewCacheManager(cache Cache, options *CacheOptions) *CacheManager {
	if cache == nil {
		cache = NewNoOpCache()
	}

	if options == nil {
		options = DefaultCacheOptions()
	}

	return &CacheManager{
		cache:   cache,
		options: options,
		keys:    make(map[string]struct{}),
	}
}

// GetCacheKey builds a cache key from a request method, path, and query
// parameters. Parameters are sorted so equivalent requests share a key.
func (m *CacheManager) GetCacheKey(method, path string, params map[string]string) string {
	if len(params) == 0 {
		return fmt.Sprintf("%s:%s", method, path)
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}

	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s=%s", name, params[name]))
	}

	return fmt.Sprintf("%s:%s:%s", method, path, strings.Join(pairs, "&"))
}

// Get retrieves cached data by key.
func (m *CacheManager) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := m.cache.Get(ctx, key)
	if err != nil {
		m.mu.Lock()
		m.stats.Misses++
		m.mu.Unlock()

		return nil, err
	}

	m.mu.Lock()
	m.stats.Hits++
	m.mu.Unlock()

	return entry.Data, nil
}

// Set stores data under key with the given TTL. A non-positive TTL falls
// back to the manager's default.
func (m *CacheManager) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return m.SetWithETag(ctx, key, data, "", ttl)
}

// SetWithETag stores data under key along with its ETag.
func (m *CacheManager) SetWithETag(ctx context.Context, key string, data []byte, etag string, ttl time.Duration) error {
	if m.options.MaxValueSize > 0 && len(data) > m.options.MaxValueSize {
		return nil
	}

	if ttl <= 0 {
		ttl = m.options.DefaultTTL
	}

	entry := &CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
		ETag:      etag,
	}

	err := m.cache.Set(ctx, key, entry)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.stats.Sets++
	m.keys[key] = struct{}{}
	m.mu.Unlock()

	return nil
}

// Delete removes cached data by key.
func (m *CacheManager) Delete(ctx context.Context, key string) error {
	err := m.cache.Delete(ctx, key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.stats.Deletes++
	delete(m.keys, key)
	m.mu.Unlock()

	return nil
}

// InvalidatePath removes all entries this manager stored for paths starting
// with pathPrefix. Only keys written through this manager are known, so
// invalidation is in-process and best effort.
func (m *CacheManager) InvalidatePath(ctx context.Context, pathPrefix string) error {
	m.mu.Lock()

	matched := make([]string, 0)

	for key := range m.keys {
		parts := strings.SplitN(key, ":", constants.KeyValueSplitParts+1)
		if len(parts) < constants.KeyValueSplitParts {
			continue
		}

		if strings.HasPrefix(parts[1], pathPrefix) {
			matched = append(matched, key)
		}
	}

	m.mu.Unlock()

	var lastErr error

	for _, key := range matched {
		err := m.Delete(ctx, key)
		if err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// Clear removes all entries from the backend and resets key tracking.
func (m *CacheManager) Clear(ctx context.Context) error {
	err := m.cache.Clear(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.keys = make(map[string]struct{})
	m.mu.Unlock()

	return nil
}

// GetStats returns a snapshot of the manager's counters.
func (m *CacheManager) GetStats() *CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := m.stats

	return &stats
}

// CachingPolicy decides which responses are cached and for how long.
type CachingPolicy struct {
	// CacheGET enables caching of GET responses
	CacheGET bool

	// CachePOST enables caching of POST responses
	CachePOST bool

	// CacheErrors enables caching of error (status >= 400) responses
	CacheErrors bool

	// IncludePaths, when non-empty, restricts caching to paths with one
	// of these prefixes
	IncludePaths []string

	// ExcludePaths lists path prefixes that are never cached
	ExcludePaths []string

	// DefaultTTL applies to paths without a PathTTLs entry
	DefaultTTL time.Duration

	// PathTTLs maps path prefixes to their TTL
	PathTTLs map[string]time.Duration
}

// DefaultCachingPolicy caches catalog GETs and leaves volatile resources
// uncached.
func DefaultCachingPolicy() *CachingPolicy {
	return &CachingPolicy{
		CacheGET:   true,
		DefaultTTL: constants.DefaultCacheTTL,
		ExcludePaths: []string{
			"/v1/connections",
			"/v1/trigger_instances",
			"/v1/health",
		},
		PathTTLs: map[string]time.Duration{
			"/v1/apps":         constants.CatalogCacheTTL,
			"/v1/actions":      constants.CatalogCacheTTL,
			"/v1/triggers":     constants.CatalogCacheTTL,
			"/v1/auth_schemes": constants.CatalogCacheTTL,
		},
	}
}

// ShouldCache reports whether a response for the given request method, path,
// and status code is cacheable under this policy.
func (p *CachingPolicy) ShouldCache(method, path string, statusCode int) bool {
	switch method {
	case http.MethodGet:
		if !p.CacheGET {
			return false
		}
	case http.MethodPost:
		if !p.CachePOST {
			return false
		}
	default:
		return false
	}

	if statusCode >= http.StatusBadRequest && !p.CacheErrors {
		return false
	}

	if len(p.IncludePaths) > 0 {
		for _, include := range p.IncludePaths {
			if strings.HasPrefix(path, include) {
				return true
			}
		}

		return false
	}

	for _, exclude := range p.ExcludePaths {
		if strings.HasPrefix(path, exclude) {
			return false
		}
	}

	return true
}

// TTLFor returns the TTL for a path, preferring the longest matching prefix
// in PathTTLs and falling back to DefaultTTL.
func (p *CachingPolicy) TTLFor(path string) time.Duration {
	ttl := p.DefaultTTL
	matched := 0

	for prefix, pathTTL := range p.PathTTLs {
		if strings.HasPrefix(path, prefix) && len(prefix) > matched {
			ttl = pathTTL
			matched = len(prefix)
		}
	}

	return ttl
}
