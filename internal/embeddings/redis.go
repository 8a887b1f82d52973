package embeddings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/JaimeStill/docmatrix/pkg/lifecycle"
)

type redisCache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func newRedisCache(cfg *CacheConfig, logger *slog.Logger) *redisCache {
	return &redisCache{
		client: goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTLDuration(),
		logger: logger.With("system", "embedding-cache"),
	}
}

func (r *redisCache) Start(lc *lifecycle.Coordinator) error {
	r.logger.Info("starting embedding cache", "backend", "redis", "addr", r.client.Options().Addr)

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), 5*time.Second)
		defer cancel()
		if err := r.client.Ping(ctx).Err(); err != nil {
			r.logger.Warn("redis unreachable, embeddings will not be cached", "error", err)
			return
		}
		r.logger.Info("embedding cache connected")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := r.client.Close(); err != nil {
			r.logger.Error("redis close failed", "error", err)
		}
	})

	return nil
}

func (r *redisCache) Get(ctx context.Context, key string) ([]float64, bool) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			r.logger.Warn("redis get failed", "error", err)
		}
		return nil, false
	}

	var vec []float64
	if err := json.Unmarshal(data, &vec); err != nil {
		r.logger.Warn("corrupt cached embedding, deleting", "error", err)
		r.client.Del(ctx, r.prefix+key)
		return nil, false
	}
	return vec, true
}

func (r *redisCache) Set(ctx context.Context, key string, vec []float64) {
	data, err := json.Marshal(vec)
	if err != nil {
		r.logger.Warn("marshal embedding for cache failed", "error", err)
		return
	}
	if err := r.client.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("redis set failed", "error", err)
	}
}
