package productview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/storage"
)

const (
	previewPrefix     = "pv:"
	defaultPreviewTTL = 30 * time.Minute
)

// PreviewKey is where a listing card's product snapshot is cached.
func PreviewKey(productID string) string {
	return previewPrefix + productID
}

type productSource interface {
	Product(ctx context.Context, id string) (*catalog.Product, error)
}

// Service serves the product detail page.
type Service interface {
	// Detail always fetches the product and merges it over any cached preview.
	Detail(ctx context.Context, sessionID, productID string) (*View, error)
	// SavePreview caches the snapshot a listing card already has, for a short while.
	SavePreview(ctx context.Context, sessionID string, product catalog.Product) error
	Preview(ctx context.Context, sessionID, productID string) (*catalog.Product, bool)
	Variant(ctx context.Context, sessionID, productID string, sel Selection) (*Variant, error)
}

type ServiceParams struct {
	Catalog    productSource
	Adapter    storage.Adapter
	Logger     *logger.Logger
	PreviewTTL time.Duration
}

type service struct {
	catalog    productSource
	adapter    storage.Adapter
	logg       *logger.Logger
	previewTTL time.Duration
}

func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if params.Adapter == nil {
		return nil, fmt.Errorf("storage adapter required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	ttl := params.PreviewTTL
	if ttl <= 0 {
		ttl = defaultPreviewTTL
	}
	return &service{
		catalog:    params.Catalog,
		adapter:    params.Adapter,
		logg:       params.Logger,
		previewTTL: ttl,
	}, nil
}

func (s *service) Detail(ctx context.Context, sessionID, productID string) (*View, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	fresh, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	merged := *fresh
	if preview, ok := s.Preview(ctx, sessionID, productID); ok {
		merged = Merge(*preview, *fresh)
	}
	view := NewView(merged)
	return &view, nil
}

func (s *service) SavePreview(ctx context.Context, sessionID string, product catalog.Product) error {
	product.ID = strings.TrimSpace(product.ID)
	if product.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := storage.SetJSON(ctx, s.scoped(sessionID), PreviewKey(product.ID), product, s.previewTTL); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("preview cache write failed: %v", err))
	}
	return nil
}

func (s *service) Preview(ctx context.Context, sessionID, productID string) (*catalog.Product, bool) {
	var product catalog.Product
	err := storage.GetJSON(ctx, s.scoped(sessionID), PreviewKey(productID), &product)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logg.Warn(ctx, fmt.Sprintf("preview cache read failed: %v", err))
		}
		return nil, false
	}
	return &product, true
}

func (s *service) Variant(ctx context.Context, sessionID, productID string, sel Selection) (*Variant, error) {
	view, err := s.Detail(ctx, sessionID, productID)
	if err != nil {
		return nil, err
	}
	return view.Resolve(sel)
}

func (s *service) scoped(sessionID string) storage.Adapter {
	return storage.Scoped(s.adapter, sessionID)
}

// Merge lays fresh over preview. Fields the fresh record leaves empty keep the
// preview's value; everything else comes from fresh.
func Merge(preview, fresh catalog.Product) catalog.Product {
	merged := fresh
	if len(merged.StorageOptions) == 0 {
		merged.StorageOptions = preview.StorageOptions
	}
	if merged.Description == "" {
		merged.Description = preview.Description
	}
	if merged.CategoryType == "" {
		merged.CategoryType = preview.CategoryType
	}
	if merged.DeviceStatus == "" {
		merged.DeviceStatus = preview.DeviceStatus
	}
	if merged.InStock == nil {
		merged.InStock = preview.InStock
	}
	if merged.StockCount == nil {
		merged.StockCount = preview.StockCount
	}
	return merged
}
