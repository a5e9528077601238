package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/pagination"
)

type listResponse struct {
	Items []catalog.Product `json:"items"`
	Meta  pagination.Meta   `json:"meta"`
}

func TestCatalogAppleSortsAndPaginates(t *testing.T) {
	svc := &fakeCatalog{apple: []catalog.Product{
		{ID: "a", Brand: "Apple", Name: "iPhone 15", Price: 900},
		{ID: "b", Brand: "Apple", Name: "iPhone 13", Price: 500},
		{ID: "c", Brand: "Apple", Name: "iPhone 16", Price: 1200},
	}}

	rec := serve(CatalogApple(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/catalog/apple?used=true&sort=price-low&limit=2", nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.lastUsed)

	var page listResponse
	decodeData(t, rec, &page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "b", page.Items[0].ID)
	assert.Equal(t, "a", page.Items[1].ID)
	assert.Equal(t, 3, page.Meta.Total)
	assert.True(t, page.Meta.HasNext)
}

func TestCatalogSpeakersFiltersByPriceAndSearch(t *testing.T) {
	svc := &fakeCatalog{speakers: []catalog.Product{
		{ID: "s1", Brand: "JBL", Name: "Flip 6", Price: 120},
		{ID: "s2", Brand: "JBL", Name: "Charge 5", Price: 180},
		{ID: "s3", Brand: "Sony", Name: "XB13", Price: 60},
	}}

	rec := serve(CatalogSpeakers(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/catalog/speakers?q=jbl&min_price=150", nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page listResponse
	decodeData(t, rec, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "s2", page.Items[0].ID)
}

func TestCatalogListRejectsBadQuery(t *testing.T) {
	svc := &fakeCatalog{}
	cases := []string{
		"/api/v1/catalog/speakers?sort=newest",
		"/api/v1/catalog/speakers?limit=abc",
		"/api/v1/catalog/speakers?min_price=-1",
		"/api/v1/catalog/speakers?min_price=50&max_price=10",
	}
	for _, target := range cases {
		rec := serve(CatalogSpeakers(svc, testLogger()), newRequest(http.MethodGet, target, nil, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestCatalogUsedResolvesPreOwnedType(t *testing.T) {
	svc := &fakeCatalog{used: []catalog.Product{
		{ID: "u1", Brand: "Apple", Name: "iPhone 12", CategoryType: "iPhone", Price: 400},
		{ID: "u2", Brand: "Samsung", Name: "Galaxy S21", CategoryType: "Smartphone", Price: 350},
		{ID: "u3", Brand: "Apple", Name: "Watch 7", CategoryType: "Watch", Price: 200},
	}}

	rec := serve(CatalogUsed(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/catalog/used?type=android-phone", nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Type  string            `json:"type"`
		Title string            `json:"title"`
		Items []catalog.Product `json:"items"`
	}
	decodeData(t, rec, &page)
	assert.Equal(t, "android-phone", page.Type)
	assert.Equal(t, "Pre-Owned Android Phones", page.Title)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "u2", page.Items[0].ID)

	rec = serve(CatalogUsed(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/catalog/used?type=toaster", nil, nil))
	decodeData(t, rec, &page)
	assert.Equal(t, "Pre-Owned Devices", page.Title)
	assert.Len(t, page.Items, 3)
}

func TestCatalogBrandsEmptyList(t *testing.T) {
	rec := serve(CatalogBrands(&fakeCatalog{}, testLogger()), newRequest(http.MethodGet, "/api/v1/catalog/brands", nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestCatalogDependencyFailure(t *testing.T) {
	svc := &fakeCatalog{err: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("dial tcp"), "Speakers fetch failed")}

	rec := serve(CatalogSpeakers(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/catalog/speakers", nil, nil))
	require.Equal(t, http.StatusBadGateway, rec.Code)
	apiErr := decodeError(t, rec)
	assert.Equal(t, string(pkgerrors.CodeDependency), apiErr.Code)
	assert.Equal(t, "Speakers fetch failed", apiErr.Message)
	assert.NotContains(t, rec.Body.String(), "dial tcp")
}

func TestHomeReturnsSections(t *testing.T) {
	svc := &fakeCatalog{
		apple:  []catalog.Product{{ID: "a"}},
		brands: []catalog.Brand{{ID: "b1", Name: "Samsung"}},
	}
	rec := serve(Home(svc, testLogger()), newRequest(http.MethodGet, "/api/v1/home", nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var home catalog.Home
	decodeData(t, rec, &home)
	require.Len(t, home.Apple, 1)
	assert.Equal(t, "Samsung", home.Brands[0].Name)
}

func TestNilCatalogService(t *testing.T) {
	rec := serve(Home(nil, testLogger()), newRequest(http.MethodGet, "/api/v1/home", nil, nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	rec := serve(HealthLive(cfg), newRequest(http.MethodGet, "/health/live", nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-Storefront-Env"))

	ok := HealthReady(cfg, testLogger(), map[string]Pinger{
		"redis": PingFunc(func(context.Context) error { return nil }),
		"db":    nil,
	})
	rec = serve(ok, newRequest(http.MethodGet, "/health/ready", nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"ok"`)

	failing := HealthReady(cfg, testLogger(), map[string]Pinger{
		"redis": PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})
	rec = serve(failing, newRequest(http.MethodGet, "/health/ready", nil, nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
