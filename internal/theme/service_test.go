package theme

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/storage"
)

func newService(t *testing.T, adapter storage.Adapter, def string) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Adapter: adapter,
		Logger:  logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Default: def,
	})
	require.NoError(t, err)
	return svc
}

func TestDefaults(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, enums.ThemeLight, newService(t, storage.NewMemoryStore(), "").Get(ctx, "s1"))
	assert.Equal(t, enums.ThemeDark, newService(t, storage.NewMemoryStore(), "dark").Get(ctx, "s1"))

	_, err := NewService(ServiceParams{Adapter: storage.NewMemoryStore(), Logger: logger.New(logger.Options{Output: io.Discard}), Default: "sepia"})
	require.Error(t, err)
}

func TestToggleAndPersist(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	svc := newService(t, mem, "")

	assert.Equal(t, enums.ThemeDark, svc.Toggle(ctx, "s1"))
	raw, err := mem.Get(ctx, "s1:theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", string(raw))

	assert.Equal(t, enums.ThemeLight, svc.Toggle(ctx, "s1"))
	assert.Equal(t, enums.ThemeLight, svc.Get(ctx, "s2"))
}

func TestSet(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, storage.NewMemoryStore(), "")

	got, err := svc.Set(ctx, "s1", enums.ThemeDark)
	require.NoError(t, err)
	assert.Equal(t, enums.ThemeDark, got)
	assert.Equal(t, enums.ThemeDark, svc.Get(ctx, "s1"))

	_, err = svc.Set(ctx, "s1", enums.Theme("blue"))
	require.Error(t, err)
}

func TestGarbageStoredValueFallsBack(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.Set(ctx, "s1:theme", []byte("purple"), 0))
	assert.Equal(t, enums.ThemeLight, newService(t, mem, "").Get(ctx, "s1"))
}
