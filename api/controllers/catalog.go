package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/listing"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/pagination"
)

type productFetch func(ctx context.Context, r *http.Request) ([]catalog.Product, error)

// usedPage adds the pre-owned heading to a listing page.
type usedPage struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	listing.Page
}

func Home(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		home, err := svc.Home(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, home)
	}
}

// CatalogApple lists new iPhones, or pre-owned ones with ?used=true.
func CatalogApple(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc, logg, true, func(ctx context.Context, r *http.Request) ([]catalog.Product, error) {
		used, err := validators.ParseQueryBool(r, "used")
		if err != nil {
			return nil, err
		}
		return svc.Apple(ctx, used)
	})
}

// CatalogAndroid lists Android phones, scoped to ?brand= when present.
func CatalogAndroid(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc, logg, false, func(ctx context.Context, r *http.Request) ([]catalog.Product, error) {
		return svc.Android(ctx, strings.TrimSpace(r.URL.Query().Get("brand")))
	})
}

func CatalogSpeakers(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc, logg, true, func(ctx context.Context, _ *http.Request) ([]catalog.Product, error) {
		return svc.Speakers(ctx)
	})
}

func CatalogCoolers(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc, logg, true, func(ctx context.Context, _ *http.Request) ([]catalog.Product, error) {
		return svc.Coolers(ctx)
	})
}

func CatalogAccessories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc, logg, true, func(ctx context.Context, _ *http.Request) ([]catalog.Product, error) {
		return svc.Accessories(ctx)
	})
}

// CatalogUsed serves the pre-owned listing; ?type= picks one of the
// pre-owned views and unknown values fall back to all.
func CatalogUsed(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		query, err := parseListingQuery(r, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		kind := listing.ResolvePreOwned(r.URL.Query().Get("type"))

		products, err := svc.Used(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products = listing.Apply(products, kind.Filter())

		responses.WriteSuccess(w, usedPage{
			Type:  kind.Key,
			Title: kind.Title,
			Page:  listing.Run(products, query),
		})
	}
}

func CatalogBrands(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return brandHandler(svc, logg, false)
}

func CatalogSpeakerBrands(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return brandHandler(svc, logg, true)
}

func brandHandler(svc catalog.Service, logg *logger.Logger, speakers bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		var (
			brands []catalog.Brand
			err    error
		)
		if speakers {
			brands, err = svc.SpeakerBrands(r.Context())
		} else {
			brands, err = svc.Brands(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if brands == nil {
			brands = []catalog.Brand{}
		}
		responses.WriteSuccess(w, brands)
	}
}

func listHandler(svc catalog.Service, logg *logger.Logger, brandFilter bool, fetch productFetch) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		query, err := parseListingQuery(r, brandFilter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products, err := fetch(r.Context(), r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing.Run(products, query))
	}
}

// parseListingQuery reads the shared filter, sort and paging parameters. The
// android endpoint consumes ?brand= upstream, so brand filtering only applies
// where the fetch itself is not brand scoped.
func parseListingQuery(r *http.Request, brandFilter bool) (listing.Query, error) {
	var q listing.Query

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return q, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return q, err
	}
	q.Page = pagination.Params{Page: page, Limit: limit}

	sortBy, err := enums.ParseProductSort(r.URL.Query().Get("sort"))
	if err != nil {
		return q, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").WithDetails(map[string]any{"field": "sort"})
	}
	q.Sort = sortBy

	if q.Filter.MinPrice, err = validators.ParseQueryFloat(r, "min_price"); err != nil {
		return q, err
	}
	if q.Filter.MaxPrice, err = validators.ParseQueryFloat(r, "max_price"); err != nil {
		return q, err
	}
	if q.Filter.MinPrice != nil && q.Filter.MaxPrice != nil && *q.Filter.MinPrice > *q.Filter.MaxPrice {
		return q, pkgerrors.New(pkgerrors.CodeValidation, "min_price must not exceed max_price")
	}

	q.Filter.Search = strings.TrimSpace(r.URL.Query().Get("q"))
	q.Filter.CategoryTypes = validators.ParseQueryList(r, "category")
	if brandFilter {
		q.Filter.Brand = strings.TrimSpace(r.URL.Query().Get("brand"))
	}
	return q, nil
}
