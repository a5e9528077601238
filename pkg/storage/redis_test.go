package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/pkg/redis"
)

type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redis.ErrNil
	}
	return v, nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = fmt.Sprint(value)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeRedis) SessionKey(key string) string { return "sf:session:" + key }

func TestRedisStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fake := newFakeRedis()
	store := NewRedisStore(fake)

	_, err := store.Get(ctx, "abc:cart")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "abc:pv:1", []byte(`{"id":"1"}`), 30*time.Minute))
	assert.Equal(t, `{"id":"1"}`, fake.data["sf:session:abc:pv:1"])
	assert.Equal(t, 30*time.Minute, fake.ttls["sf:session:abc:pv:1"])

	got, err := store.Get(ctx, "abc:pv:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, string(got))

	require.NoError(t, store.Remove(ctx, "abc:pv:1"))
	_, err = store.Get(ctx, "abc:pv:1")
	require.ErrorIs(t, err, ErrNotFound)
}
