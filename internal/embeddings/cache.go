package embeddings

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/JaimeStill/docmatrix/pkg/lifecycle"
)

// Cache stores embedding vectors by key. Implementations treat their own
// failures as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]float64, bool)
	Set(ctx context.Context, key string, vec []float64)
}

// CacheConfig selects and tunes the embedding response cache.
// An empty RedisAddr selects the in-process cache.
type CacheConfig struct {
	TTL           string `toml:"ttl"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	KeyPrefix     string `toml:"key_prefix"`
	MaxEntries    int    `toml:"max_entries"`
}

// CacheEnv maps environment variable names for CacheConfig.
type CacheEnv struct {
	TTL           string
	RedisAddr     string
	RedisPassword string
	RedisDB       string
}

// TTLDuration returns the entry lifetime.
func (c *CacheConfig) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *CacheConfig) Finalize(env *CacheEnv) error {
	if c.TTL == "" {
		c.TTL = "1h"
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "docmatrix:emb:"
	}
	if c.MaxEntries <= 0 {
		c.MaxEntries = 10000
	}
	if env != nil {
		if v := getenv(env.TTL); v != "" {
			c.TTL = v
		}
		if v := getenv(env.RedisAddr); v != "" {
			c.RedisAddr = v
		}
		if v := getenv(env.RedisPassword); v != "" {
			c.RedisPassword = v
		}
		if v := getenv(env.RedisDB); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.RedisDB = n
			}
		}
	}
	if d, err := time.ParseDuration(c.TTL); err != nil || d <= 0 {
		return fmt.Errorf("invalid ttl: %q", c.TTL)
	}
	return nil
}

// Merge applies non-zero overlay values.
func (c *CacheConfig) Merge(overlay *CacheConfig) {
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
	if overlay.RedisAddr != "" {
		c.RedisAddr = overlay.RedisAddr
	}
	if overlay.RedisPassword != "" {
		c.RedisPassword = overlay.RedisPassword
	}
	if overlay.RedisDB != 0 {
		c.RedisDB = overlay.RedisDB
	}
	if overlay.KeyPrefix != "" {
		c.KeyPrefix = overlay.KeyPrefix
	}
	if overlay.MaxEntries != 0 {
		c.MaxEntries = overlay.MaxEntries
	}
}

// CacheSystem is a Cache with a lifecycle.
type CacheSystem interface {
	Cache
	Start(lc *lifecycle.Coordinator) error
}

// NewCache returns a Redis cache when cfg.RedisAddr is set and an in-process cache otherwise.
func NewCache(cfg *CacheConfig, logger *slog.Logger) CacheSystem {
	if cfg.RedisAddr != "" {
		return newRedisCache(cfg, logger)
	}
	return NewMemoryCache(cfg.TTLDuration(), cfg.MaxEntries)
}

type entry struct {
	vec     []float64
	expires time.Time
}

// MemoryCache is an in-process TTL cache. When full, expired entries are
// purged and, failing that, an arbitrary entry is evicted.
type MemoryCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]entry
	now        func() time.Time
}

// NewMemoryCache creates a MemoryCache. maxEntries <= 0 means unbounded.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	return &MemoryCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]entry),
		now:        time.Now,
	}
}

func (m *MemoryCache) Start(lc *lifecycle.Coordinator) error {
	return nil
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, false
	}
	return e.vec, true
}

func (m *MemoryCache) Set(_ context.Context, key string, vec []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.evict()
	}
	m.entries[key] = entry{vec: vec, expires: m.now().Add(m.ttl)}
}

// Len returns the number of stored entries, including expired ones not yet purged.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MemoryCache) evict() {
	now := m.now()
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
	if len(m.entries) < m.maxEntries {
		return
	}
	for k := range m.entries {
		delete(m.entries, k)
		return
	}
}
