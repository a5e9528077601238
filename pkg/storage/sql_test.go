package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/pkg/db"
)

func newSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	conn, err := db.Open(sqlite.Open("file:" + t.Name() + "?mode=memory&cache=shared"))
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&Entry{}))
	return NewSQLStore(conn)
}

func TestSQLStoreUpsertsAndRemoves(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)

	_, err := store.Get(ctx, "abc:cart")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "abc:cart", []byte(`[]`), 0))
	require.NoError(t, store.Set(ctx, "abc:cart", []byte(`[{"id":"p1"}]`), 0))

	got, err := store.Get(ctx, "abc:cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p1"}]`, string(got))

	var count int64
	require.NoError(t, store.db.Model(&Entry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, store.Remove(ctx, "abc:cart"))
	_, err = store.Get(ctx, "abc:cart")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "abc:pv:1", []byte(`{}`), time.Hour))
	require.NoError(t, store.Set(ctx, "abc:pv:2", []byte(`{}`), 5*time.Hour))
	require.NoError(t, store.Set(ctx, "abc:theme", []byte(`"dark"`), 0))

	_, err := store.Get(ctx, "abc:pv:1")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = store.Get(ctx, "abc:pv:1")
	require.ErrorIs(t, err, ErrNotFound)

	now = now.Add(10 * time.Hour)
	removed, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = store.Get(ctx, "abc:theme")
	require.NoError(t, err)
}

func TestNewSQLBackend(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	adapter, err := New(configSQL(), Backends{DB: conn})
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, adapter)
}
