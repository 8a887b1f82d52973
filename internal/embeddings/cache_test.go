package embeddings

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/docmatrix/pkg/lifecycle"
	"github.com/JaimeStill/docmatrix/pkg/logging"
)

func TestMemoryCache_TTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryCache(time.Minute, 0)
	m.now = func() time.Time { return now }

	ctx := context.Background()
	m.Set(ctx, "k", []float64{1})

	vec, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []float64{1}, vec)

	now = now.Add(time.Minute)
	_, ok = m.Get(ctx, "k")
	assert.False(t, ok, "entry expires at ttl")
	assert.Equal(t, 0, m.Len())
}

func TestMemoryCache_Bounded(t *testing.T) {
	m := NewMemoryCache(time.Hour, 2)
	ctx := context.Background()

	m.Set(ctx, "a", []float64{1})
	m.Set(ctx, "b", []float64{2})
	m.Set(ctx, "a", []float64{3})
	assert.Equal(t, 2, m.Len(), "overwrite does not evict")

	m.Set(ctx, "c", []float64{4})
	assert.Equal(t, 2, m.Len())

	vec, ok := m.Get(ctx, "c")
	require.True(t, ok)
	assert.Equal(t, []float64{4}, vec)
}

func TestNewCache_SelectsBackend(t *testing.T) {
	cfg := &CacheConfig{}
	require.NoError(t, cfg.Finalize(nil))

	_, ok := NewCache(cfg, logging.Discard()).(*MemoryCache)
	assert.True(t, ok)

	cfg.RedisAddr = "localhost:6379"
	_, ok = NewCache(cfg, logging.Discard()).(*redisCache)
	assert.True(t, ok)
}

func TestCacheKey_Stable(t *testing.T) {
	assert.Equal(t, cacheKey([]byte(`{"text":"a"}`)), cacheKey([]byte(`{"text":"a"}`)))
	assert.NotEqual(t, cacheKey([]byte(`{"text":"a"}`)), cacheKey([]byte(`{"text":"b"}`)))
	assert.Len(t, cacheKey(nil), 64)
}

func newTestRedis(t *testing.T) (CacheSystem, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg := &CacheConfig{RedisAddr: mr.Addr(), TTL: "1m"}
	require.NoError(t, cfg.Finalize(nil))

	cache := NewCache(cfg, logging.Discard())
	lc := lifecycle.New()
	require.NoError(t, cache.Start(lc))
	lc.WaitForStartup()
	t.Cleanup(func() { lc.Shutdown(time.Second) })

	return cache, mr
}

func TestRedisCache(t *testing.T) {
	cache, mr := newTestRedis(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	cache.Set(ctx, "k", []float64{0.5, 0.25})
	vec, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []float64{0.5, 0.25}, vec)
	assert.True(t, mr.Exists("docmatrix:emb:k"))

	mr.FastForward(time.Minute)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok, "entry expires at ttl")
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	cache, mr := newTestRedis(t)
	require.NoError(t, mr.Set("docmatrix:emb:bad", "not json"))

	_, ok := cache.Get(context.Background(), "bad")
	assert.False(t, ok)
	assert.False(t, mr.Exists("docmatrix:emb:bad"), "corrupt entry is removed")
}

func TestRedisCache_Unreachable(t *testing.T) {
	cache, mr := newTestRedis(t)
	mr.Close()

	ctx := context.Background()
	cache.Set(ctx, "k", []float64{1})
	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok, "errors degrade to a miss")
}
