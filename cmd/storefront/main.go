package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/storefront/api/routes"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/jobs"
	"github.com/angelmondragon/storefront/internal/productview"
	"github.com/angelmondragon/storefront/internal/reviews"
	"github.com/angelmondragon/storefront/internal/theme"
	"github.com/angelmondragon/storefront/internal/wishlist"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/migrate"
	"github.com/angelmondragon/storefront/pkg/redis"
	"github.com/angelmondragon/storefront/pkg/storage"
)

const (
	serviceName = "storefront"
	jobsLockKey = "sf:jobs:lock:%s"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "storefront stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var closers []func() error
	defer func() {
		var closeErr error
		for i := len(closers) - 1; i >= 0; i-- {
			closeErr = multierr.Append(closeErr, closers[i]())
		}
		if closeErr != nil {
			logg.Error(context.Background(), "error closing resources", closeErr)
		}
	}()

	var dbClient *db.Client
	if cfg.Storage.Backend == config.StorageBackendSQL {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			return fmt.Errorf("bootstrap database: %w", err)
		}
		closers = append(closers, dbClient.Close)

		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			return fmt.Errorf("dev migrations: %w", err)
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return fmt.Errorf("bootstrap redis: %w", err)
		}
		closers = append(closers, redisClient.Close)
	}

	backends := storage.Backends{
		Redis:   redisClient,
		Metrics: metrics.NewStorageMetrics(registry),
	}
	if dbClient != nil {
		backends.DB = dbClient.DB()
	}
	adapter, err := storage.New(cfg.Storage, backends)
	if err != nil {
		return fmt.Errorf("storage backend: %w", err)
	}

	client, err := catalog.NewClient(cfg.Catalog.APIURL,
		catalog.WithTimeout(cfg.Catalog.Timeout),
		catalog.WithMetrics(metrics.NewCatalogMetrics(registry)),
	)
	if err != nil {
		return fmt.Errorf("catalog client: %w", err)
	}
	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Fetcher:          client,
		AssetBase:        cfg.Catalog.AssetBase,
		PlaceholderImage: cfg.Catalog.PlaceholderImage,
		ListLimit:        cfg.Catalog.ListLimit,
		BrandLimit:       cfg.Catalog.BrandLimit,
		Logger:           logg,
	})
	if err != nil {
		return fmt.Errorf("catalog service: %w", err)
	}

	productService, err := productview.NewService(productview.ServiceParams{
		Catalog:    catalogService,
		Adapter:    adapter,
		Logger:     logg,
		PreviewTTL: cfg.Storage.PreviewTTL,
	})
	if err != nil {
		return fmt.Errorf("product service: %w", err)
	}

	cartManager, err := cart.NewManager(cart.ManagerParams{
		Adapter:           adapter,
		Logger:            logg,
		Metrics:           metrics.NewCartMetrics(registry),
		TaxRate:           cfg.Cart.TaxRate,
		IdleTTL:           cfg.Cart.IdleTTL,
		ReloadEachRequest: cfg.Cart.ReloadEachRequest,
	})
	if err != nil {
		return fmt.Errorf("cart manager: %w", err)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{Adapter: adapter, Logger: logg})
	if err != nil {
		return fmt.Errorf("wishlist service: %w", err)
	}

	reviewService, err := reviews.NewService(reviews.ServiceParams{
		Adapter:       adapter,
		Logger:        logg,
		MaxImageBytes: cfg.Reviews.MaxImageBytes,
	})
	if err != nil {
		return fmt.Errorf("reviews service: %w", err)
	}

	themeService, err := theme.NewService(theme.ServiceParams{
		Adapter: adapter,
		Logger:  logg,
		Default: cfg.Session.DefaultTheme,
	})
	if err != nil {
		return fmt.Errorf("theme service: %w", err)
	}

	runner, err := newJobRunner(cfg, logg, registry, redisClient, adapter, cartManager)
	if err != nil {
		return fmt.Errorf("housekeeping runner: %w", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry,
			catalogService, productService, cartManager, wishlistService, reviewService, themeService),
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Backend,
	})
	logg.Info(logCtx, "starting storefront api")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.App.ShutdownTimeout)
		defer cancel()
		logg.Info(logCtx, "shutting down storefront api")
		return server.Shutdown(shutdownCtx)
	})
	if runner != nil {
		g.Go(func() error {
			if err := runner.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

func newJobRunner(
	cfg *config.Config,
	logg *logger.Logger,
	registry prometheus.Registerer,
	redisClient *redis.Client,
	adapter storage.Adapter,
	cartManager *cart.Manager,
) (*jobs.Runner, error) {
	if !cfg.Jobs.Enabled {
		return nil, nil
	}

	var lock jobs.Lock = &jobs.LocalLock{}
	if redisClient != nil {
		env := cfg.App.Env
		if env == "" {
			env = "local"
		}
		redisLock, err := jobs.NewRedisLock(redisClient, fmt.Sprintf(jobsLockKey, env), cfg.Jobs.LockTTL)
		if err != nil {
			return nil, err
		}
		lock = redisLock
	}

	return jobs.NewRunner(jobs.RunnerParams{
		Logger:   logg,
		Registry: jobs.NewRegistry(jobs.NewStorageExpiryJob(adapter), jobs.NewCartEvictionJob(cartManager)),
		Lock:     lock,
		Metrics:  metrics.NewJobMetrics(registry),
		Interval: cfg.Jobs.Interval,
	})
}
