package productview

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/storage"
)

type stubCatalog struct {
	product *catalog.Product
	err     error
	calls   int
}

func (s *stubCatalog) Product(context.Context, string) (*catalog.Product, error) {
	s.calls++
	return s.product, s.err
}

func newService(t *testing.T, src productSource, adapter storage.Adapter) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Catalog:    src,
		Adapter:    adapter,
		Logger:     logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		PreviewTTL: time.Minute,
	})
	require.NoError(t, err)
	return svc
}

func TestDetailMergesFreshOverPreview(t *testing.T) {
	ctx := context.Background()
	fresh := catalog.Product{ID: "p1", Name: "iPhone 15", Price: 950, OriginalPrice: 1000}
	src := &stubCatalog{product: &fresh}
	svc := newService(t, src, storage.NewMemoryStore())

	preview := iphone()
	preview.Description = "From the listing"
	preview.InStock = ptr(false)
	require.NoError(t, svc.SavePreview(ctx, "s1", preview))

	view, err := svc.Detail(ctx, "s1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, float64(950), view.Product.Price)
	assert.Equal(t, "From the listing", view.Product.Description)
	assert.Equal(t, []float64{128, 256, 512}, view.Storages)
	assert.False(t, view.InStock)
	assert.Empty(t, view.Colors, "fresh colors win even when empty")

	other, err := svc.Detail(ctx, "s2", "p1")
	require.NoError(t, err)
	assert.Empty(t, other.Storages)
}

func TestDetailMissingProduct(t *testing.T) {
	svc := newService(t, &stubCatalog{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}, storage.NewMemoryStore())
	_, err := svc.Detail(context.Background(), "s1", "p1")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	svc = newService(t, &stubCatalog{}, storage.NewMemoryStore())
	_, err = svc.Detail(context.Background(), "s1", "p1")
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.Detail(context.Background(), "s1", " ")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestPreviewRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	svc := newService(t, &stubCatalog{}, mem)

	_, ok := svc.Preview(ctx, "s1", "p1")
	assert.False(t, ok)

	require.NoError(t, svc.SavePreview(ctx, "s1", iphone()))
	got, ok := svc.Preview(ctx, "s1", "p1")
	require.True(t, ok)
	assert.Equal(t, iphone().Name, got.Name)
	assert.Equal(t, iphone().Colors, got.Colors)

	_, err := mem.Get(ctx, "s1:pv:p1")
	require.NoError(t, err)

	err = svc.SavePreview(ctx, "s1", catalog.Product{})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestVariantUsesFreshProduct(t *testing.T) {
	fresh := iphone()
	svc := newService(t, &stubCatalog{product: &fresh}, storage.NewMemoryStore())

	variant, err := svc.Variant(context.Background(), "s1", "p1", Selection{ColorID: "c2"})
	require.NoError(t, err)
	assert.Equal(t, "p1--Blue--storage-128", variant.CartID())
}
