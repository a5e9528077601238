package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/productview"
	"github.com/angelmondragon/storefront/internal/reviews"
	"github.com/angelmondragon/storefront/internal/theme"
	"github.com/angelmondragon/storefront/internal/wishlist"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/redis"
)

type rateLimiter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// NewRouter wires the storefront API. dbClient, redisClient and gatherer may
// be nil; the routes that depend on them degrade instead of failing.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	catalogService catalog.Service,
	productService productview.Service,
	cartManager *cart.Manager,
	wishlistService wishlist.Service,
	reviewService reviews.Service,
	themeService theme.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Recoverer(logg),
		middleware.CORS(cfg.CORS),
	)

	readiness := map[string]controllers.Pinger{}
	var limiter rateLimiter
	if dbClient != nil {
		readiness["db"] = dbClient
	}
	if redisClient != nil {
		readiness["redis"] = redisClient
		limiter = redisClient
	}

	reviewPolicy := middleware.NewRateLimitPolicy(
		"reviews",
		cfg.Reviews.RateLimitWindow,
		cfg.Reviews.RateLimitIP,
		cfg.Reviews.RateLimitSession,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))

		r.Get("/home", controllers.Home(catalogService, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/apple", controllers.CatalogApple(catalogService, logg))
			r.Get("/android", controllers.CatalogAndroid(catalogService, logg))
			r.Get("/used", controllers.CatalogUsed(catalogService, logg))
			r.Get("/speakers", controllers.CatalogSpeakers(catalogService, logg))
			r.Get("/coolers", controllers.CatalogCoolers(catalogService, logg))
			r.Get("/accessories", controllers.CatalogAccessories(catalogService, logg))
			r.Get("/brands", controllers.CatalogBrands(catalogService, logg))
			r.Get("/speaker-brands", controllers.CatalogSpeakerBrands(catalogService, logg))
		})

		r.Route("/products/{productId}", func(r chi.Router) {
			r.Get("/", controllers.ProductDetail(productService, wishlistService, logg))
			r.Post("/variant", controllers.ProductVariant(productService, cartManager, logg))
			r.Post("/preview", controllers.ProductPreview(productService, logg))
			r.Get("/reviews", controllers.ReviewsList(reviewService, logg))
			r.With(middleware.RateLimit(reviewPolicy, limiter, logg)).Post("/reviews", controllers.ReviewsCreate(reviewService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(cartManager, logg))
			r.Delete("/", controllers.CartClear(cartManager, logg))
			r.Post("/items", controllers.CartAddItem(cartManager, logg))
			r.Patch("/items/{lineId}", controllers.CartUpdateItem(cartManager, logg))
			r.Delete("/items/{lineId}", controllers.CartRemoveItem(cartManager, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistList(wishlistService, logg))
			r.Get("/{productId}", controllers.WishlistStatus(wishlistService, logg))
			r.Post("/{productId}", controllers.WishlistToggle(wishlistService, logg))
		})

		r.Route("/theme", func(r chi.Router) {
			r.Get("/", controllers.ThemeGet(themeService, logg))
			r.Put("/", controllers.ThemeSet(themeService, logg))
			r.Post("/toggle", controllers.ThemeToggle(themeService, logg))
		})
	})

	return r
}
