package imagestore

import (
	"context"
	"testing"
	"time"

	"participium/internal/entities"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCachedReadThrough(t *testing.T) {
	ctx := context.Background()
	client := setupRedis(t)

	backing, err := NewFS(zap.NewNop().Sugar(), t.TempDir(), 0)
	require.NoError(t, err)
	store := NewCached(zap.NewNop().Sugar(), backing, client, time.Minute)

	key, err := store.Put(ctx, []byte("png-bytes"), "image/png")
	require.NoError(t, err)

	img, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), img.Data)

	exists, err := client.Exists(ctx, cacheKeyPrefix+key).Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), exists)

	ttl, err := client.TTL(ctx, cacheKeyPrefix+key).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	// served from cache even when the file is gone
	require.NoError(t, backing.Delete(ctx, key))
	img, err = store.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, "image/png", img.ContentType)

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	require.ErrorIs(t, err, entities.ErrImageNotFound)
}

func TestCachedFallsThroughWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	backing, err := NewFS(zap.NewNop().Sugar(), t.TempDir(), 0)
	require.NoError(t, err)
	store := NewCached(zap.NewNop().Sugar(), backing, client, time.Minute)

	key, err := store.Put(ctx, []byte("webp"), "image/webp")
	require.NoError(t, err)

	img, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, []byte("webp"), img.Data)
	require.NoError(t, store.Delete(ctx, key))
}

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	client := redis.NewClient(&redis.Options{Addr: "localhost:" + resource.GetPort("6379/tcp")})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, pool.Retry(func() error {
		return client.Ping(context.Background()).Err()
	}))
	return client
}
