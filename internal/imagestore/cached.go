package imagestore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "photo:"

// Cached is a read-through redis cache in front of another Store.
// Cache failures never fail a request; they are logged and the backing store answers.
type Cached struct {
	log   *zap.SugaredLogger
	next  Store
	redis *redis.Client
	ttl   time.Duration
}

// NewCached wraps next with a redis cache.
func NewCached(log *zap.SugaredLogger, next Store, client *redis.Client, ttl time.Duration) *Cached {
	return &Cached{log: log.Named("imagestore.cache"), next: next, redis: client, ttl: ttl}
}

func (c *Cached) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	return c.next.Put(ctx, data, contentType)
}

func (c *Cached) Get(ctx context.Context, key string) (Image, error) {
	cacheKey := cacheKeyPrefix + key

	vals, err := c.redis.HGetAll(ctx, cacheKey).Result()
	switch {
	case err != nil && !errors.Is(err, redis.Nil):
		c.log.Warnw("cache read failed", "key", key, "err", err)
	case len(vals) > 0:
		return Image{Data: []byte(vals["data"]), ContentType: vals["content_type"]}, nil
	}

	img, err := c.next.Get(ctx, key)
	if err != nil {
		return Image{}, err
	}

	pipe := c.redis.TxPipeline()
	pipe.HSet(ctx, cacheKey, "data", img.Data, "content_type", img.ContentType)
	pipe.Expire(ctx, cacheKey, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warnw("cache write failed", "key", key, "err", err)
	}
	return img, nil
}

func (c *Cached) Delete(ctx context.Context, key string) error {
	if err := c.redis.Del(ctx, cacheKeyPrefix+key).Err(); err != nil {
		c.log.Warnw("cache invalidate failed", "key", key, "err", err)
	}
	return c.next.Delete(ctx, key)
}
