package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

const (
	statusActive       = "Active"
	sortByCreatedAt    = "createdAt"
	brandScopedLimit   = 100
	homeFetchLimit     = 4
	defaultListLimit   = 200
	defaultBrandsLimit = 50
)

type fetcher interface {
	Phones(ctx context.Context, section Section, q Query) ([]RawDevice, error)
	UsedItems(ctx context.Context, q Query) ([]RawDevice, error)
	Speakers(ctx context.Context, q Query) ([]RawSpeaker, error)
	Coolers(ctx context.Context, q Query) ([]RawCooler, error)
	Accessories(ctx context.Context, q Query) ([]RawAccessory, error)
	Brands(ctx context.Context, q Query) ([]RawBrand, error)
	SpeakerBrands(ctx context.Context, q Query) ([]RawBrand, error)
	Phone(ctx context.Context, id string) (*RawDevice, error)
}

// Service exposes the storefront catalog sections.
type Service interface {
	Apple(ctx context.Context, used bool) ([]Product, error)
	Android(ctx context.Context, brand string) ([]Product, error)
	Used(ctx context.Context) ([]Product, error)
	Speakers(ctx context.Context) ([]Product, error)
	Coolers(ctx context.Context) ([]Product, error)
	Accessories(ctx context.Context) ([]Product, error)
	Brands(ctx context.Context) ([]Brand, error)
	SpeakerBrands(ctx context.Context) ([]Brand, error)
	Product(ctx context.Context, id string) (*Product, error)
	Home(ctx context.Context) (*Home, error)
}

// Home is the landing page payload. A section that failed is listed in Errors
// with its static message; the other sections are still returned.
type Home struct {
	Apple       []Product          `json:"apple"`
	Android     []Product          `json:"android"`
	Used        []Product          `json:"used"`
	Speakers    []Product          `json:"speakers"`
	Coolers     []Product          `json:"coolers"`
	Accessories []Product          `json:"accessories"`
	Brands      []Brand            `json:"brands"`
	Errors      map[Section]string `json:"errors,omitempty"`
}

type ServiceParams struct {
	Fetcher          fetcher
	AssetBase        string
	PlaceholderImage string
	ListLimit        int
	BrandLimit       int
	Metrics          *metrics.CatalogMetrics
	Logger           *logger.Logger
}

type service struct {
	fetcher    fetcher
	opts       NormalizeOptions
	listLimit  int
	brandLimit int
	metrics    *metrics.CatalogMetrics
	logg       *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Fetcher == nil {
		return nil, fmt.Errorf("catalog fetcher required")
	}
	listLimit := params.ListLimit
	if listLimit <= 0 {
		listLimit = defaultListLimit
	}
	brandLimit := params.BrandLimit
	if brandLimit <= 0 {
		brandLimit = defaultBrandsLimit
	}
	return &service{
		fetcher: params.Fetcher,
		opts: NormalizeOptions{
			AssetBase:        params.AssetBase,
			PlaceholderImage: params.PlaceholderImage,
		},
		listLimit:  listLimit,
		brandLimit: brandLimit,
		metrics:    params.Metrics,
		logg:       params.Logger,
	}, nil
}

func (s *service) itemQuery(limit int) Query {
	return Query{
		Status:    statusActive,
		InStock:   true,
		SortBy:    sortByCreatedAt,
		SortOrder: "desc",
		Limit:     limit,
	}
}

func (s *service) brandQuery() Query {
	return Query{
		Status:    statusActive,
		SortBy:    sortByCreatedAt,
		SortOrder: "asc",
		Limit:     s.brandLimit,
	}
}

func (s *service) Apple(ctx context.Context, used bool) ([]Product, error) {
	q := s.itemQuery(brandScopedLimit)
	q.Brand = "Apple"
	q.DeviceStatus = enums.DeviceStatusFor(used)

	items, err := s.fetcher.Phones(ctx, SectionApple, q)
	if err != nil {
		return nil, err
	}
	opts := s.opts
	opts.DefaultBrand = "Apple"
	return s.count(SectionApple, NormalizeAll(items, DeviceFields, opts)), nil
}

// Android lists non-Apple phones; with a brand it lists that brand's phones only.
func (s *service) Android(ctx context.Context, brand string) ([]Product, error) {
	brand = strings.TrimSpace(brand)
	if brand != "" {
		q := s.itemQuery(brandScopedLimit)
		q.Brand = brand
		items, err := s.fetcher.Phones(ctx, SectionAndroid, q)
		if err != nil {
			return nil, err
		}
		return s.count(SectionAndroid, NormalizeAll(items, DeviceFields, s.opts)), nil
	}

	items, err := s.fetcher.Phones(ctx, SectionAndroid, s.itemQuery(s.listLimit))
	if err != nil {
		return nil, err
	}
	androidOnly := make([]RawDevice, 0, len(items))
	for _, item := range items {
		if !strings.EqualFold(strings.TrimSpace(item.Brand), "apple") {
			androidOnly = append(androidOnly, item)
		}
	}
	return s.count(SectionAndroid, NormalizeAll(androidOnly, DeviceFields, s.opts)), nil
}

func (s *service) Used(ctx context.Context) ([]Product, error) {
	q := s.itemQuery(s.listLimit)
	q.DeviceStatus = enums.DeviceStatusUsed
	items, err := s.fetcher.UsedItems(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.count(SectionUsed, NormalizeAll(items, DeviceFields, s.opts)), nil
}

func (s *service) Speakers(ctx context.Context) ([]Product, error) {
	items, err := s.fetcher.Speakers(ctx, s.itemQuery(s.listLimit))
	if err != nil {
		return nil, err
	}
	return s.count(SectionSpeakers, NormalizeAll(items, SpeakerFields, s.opts)), nil
}

func (s *service) Coolers(ctx context.Context) ([]Product, error) {
	q := s.itemQuery(s.listLimit)
	q.Page = 1
	items, err := s.fetcher.Coolers(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.count(SectionCoolers, NormalizeAll(items, CoolerFields, s.opts)), nil
}

func (s *service) Accessories(ctx context.Context) ([]Product, error) {
	items, err := s.fetcher.Accessories(ctx, s.itemQuery(s.listLimit))
	if err != nil {
		return nil, err
	}
	return s.count(SectionAccessories, NormalizeAll(items, AccessoryFields, s.opts)), nil
}

func (s *service) Brands(ctx context.Context) ([]Brand, error) {
	raw, err := s.fetcher.Brands(ctx, s.brandQuery())
	if err != nil {
		return nil, err
	}
	return s.normalizeBrands(raw), nil
}

func (s *service) SpeakerBrands(ctx context.Context) ([]Brand, error) {
	raw, err := s.fetcher.SpeakerBrands(ctx, s.brandQuery())
	if err != nil {
		return nil, err
	}
	return s.normalizeBrands(raw), nil
}

func (s *service) Product(ctx context.Context, id string) (*Product, error) {
	raw, err := s.fetcher.Phone(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	product := Normalize(*raw, DeviceFields, s.opts)
	return &product, nil
}

// Home fetches every landing section concurrently.
func (s *service) Home(ctx context.Context) (*Home, error) {
	home := &Home{}
	var mu sync.Mutex
	record := func(section Section, err error) {
		mu.Lock()
		defer mu.Unlock()
		if home.Errors == nil {
			home.Errors = map[Section]string{}
		}
		home.Errors[section] = section.FailureMessage()
		if s.logg != nil {
			logCtx := s.logg.WithField(ctx, "section", string(section))
			s.logg.Warn(logCtx, fmt.Sprintf("home section failed: %v", err))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(homeFetchLimit)

	products := func(section Section, dest *[]Product, fetch func(context.Context) ([]Product, error)) {
		g.Go(func() error {
			items, err := fetch(gctx)
			if err != nil {
				record(section, err)
				return nil
			}
			*dest = items
			return nil
		})
	}

	products(SectionApple, &home.Apple, func(ctx context.Context) ([]Product, error) { return s.Apple(ctx, false) })
	products(SectionAndroid, &home.Android, func(ctx context.Context) ([]Product, error) { return s.Android(ctx, "") })
	products(SectionUsed, &home.Used, s.Used)
	products(SectionSpeakers, &home.Speakers, s.Speakers)
	products(SectionCoolers, &home.Coolers, s.Coolers)
	products(SectionAccessories, &home.Accessories, s.Accessories)
	g.Go(func() error {
		brands, err := s.Brands(gctx)
		if err != nil {
			record(SectionBrands, err)
			return nil
		}
		home.Brands = brands
		return nil
	})

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	home.fillEmpty()
	return home, nil
}

func (h *Home) fillEmpty() {
	for _, list := range []*[]Product{&h.Apple, &h.Android, &h.Used, &h.Speakers, &h.Coolers, &h.Accessories} {
		if *list == nil {
			*list = []Product{}
		}
	}
	if h.Brands == nil {
		h.Brands = []Brand{}
	}
}

func (s *service) normalizeBrands(raw []RawBrand) []Brand {
	brands := make([]Brand, 0, len(raw))
	for _, b := range raw {
		brands = append(brands, NormalizeBrand(b, s.opts))
	}
	return brands
}

func (s *service) count(section Section, products []Product) []Product {
	s.metrics.AddItems(string(section), len(products))
	return products
}
