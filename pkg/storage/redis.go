package storage

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/storefront/pkg/redis"
)

type redisStore interface {
	Get(context.Context, string) (string, error)
	Set(context.Context, string, any, time.Duration) error
	Del(context.Context, ...string) error
	SessionKey(string) string
}

// RedisStore persists entries as plain Redis strings under the sf:session namespace.
type RedisStore struct {
	client redisStore
}

var _ Adapter = (*RedisStore)(nil)

func NewRedisStore(client redisStore) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.client.SessionKey(key))
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, r.client.SessionKey(key), string(value), ttl)
}

func (r *RedisStore) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.client.SessionKey(key))
}
