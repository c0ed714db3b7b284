package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewKeyPrefix = "view:" // Rendered view payloads: view:{logical path}

// Views caches rendered listings keyed by logical view name ("/" for the
// public listing, "/admin/dashboard" for the admin one). Invalidate marks a
// view stale so the next read recomputes it.
type Views interface {
	Get(ctx context.Context, view string) ([]byte, bool)
	Set(ctx context.Context, view string, payload []byte)
	Invalidate(ctx context.Context, views ...string) error
}

// RedisViews stores rendered views in redis with a TTL safety net.
type RedisViews struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisViews(client *redis.Client, ttl time.Duration) *RedisViews {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisViews{client: client, ttl: ttl}
}

func (v *RedisViews) Get(ctx context.Context, view string) ([]byte, bool) {
	data, err := v.client.Get(ctx, viewKeyPrefix+view).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("view cache get %s: %v", view, err)
		return nil, false
	}
	return data, true
}

func (v *RedisViews) Set(ctx context.Context, view string, payload []byte) {
	if err := v.client.Set(ctx, viewKeyPrefix+view, payload, v.ttl).Err(); err != nil {
		log.Printf("view cache set %s: %v", view, err)
	}
}

func (v *RedisViews) Invalidate(ctx context.Context, views ...string) error {
	if len(views) == 0 {
		return nil
	}
	keys := make([]string, len(views))
	for i, view := range views {
		keys[i] = viewKeyPrefix + view
	}
	if err := v.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate views: %w", err)
	}
	return nil
}

// NoopViews disables view caching; every read recomputes.
type NoopViews struct{}

func (NoopViews) Get(ctx context.Context, view string) ([]byte, bool) { return nil, false }
func (NoopViews) Set(ctx context.Context, view string, payload []byte) {}
func (NoopViews) Invalidate(ctx context.Context, views ...string) error { return nil }
