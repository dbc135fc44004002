package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/tibacare/storefront/internal/handlers"
	"github.com/tibacare/storefront/internal/platform/config"
	pfirestore "github.com/tibacare/storefront/internal/platform/firestore"
	"github.com/tibacare/storefront/internal/platform/observability"
	"github.com/tibacare/storefront/internal/repositories"
	firestoreRepo "github.com/tibacare/storefront/internal/repositories/firestore"
	"github.com/tibacare/storefront/internal/services"
	"github.com/tibacare/storefront/internal/store"
)

func main() {
	ctx := context.Background()
	startedAt := time.Now().UTC()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("storefront")
	ctx = observability.WithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		var invalid *config.ValidationError
		if errors.As(err, &invalid) {
			logger.Fatal("invalid configuration", zap.Strings("fields", invalid.Fields()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	buildInfo := buildInfoFromEnv(startedAt)

	firestoreProvider := pfirestore.NewProvider(cfg.Firestore)
	firestoreClient, err := firestoreProvider.Client(ctx)
	if err != nil {
		logger.Fatal("failed to initialise firestore client", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := firestoreProvider.Close(closeCtx); err != nil {
			logger.Warn("firestore close error", zap.Error(err))
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	redis.SetLogger(observability.NewPrintfAdapter(logger.Named("redis")))
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close error", zap.Error(err))
		}
	}()

	backend, err := store.NewRedisBackend(redisClient)
	if err != nil {
		logger.Fatal("failed to initialise store backend", zap.Error(err))
	}

	cartStore, err := store.NewCart(store.CartDeps{
		Backend: backend,
		Logger:  logger.Named("store.cart"),
	})
	if err != nil {
		logger.Fatal("failed to initialise cart store", zap.Error(err))
	}

	favoritesStore, err := store.NewFavorites(store.FavoritesDeps{
		Backend: backend,
		Logger:  logger.Named("store.favorites"),
	})
	if err != nil {
		logger.Fatal("failed to initialise favorites store", zap.Error(err))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	var watchWG sync.WaitGroup
	watchWG.Add(2)
	go func() {
		defer watchWG.Done()
		if err := cartStore.Watch(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("cart watch stopped", zap.Error(err))
		}
	}()
	go func() {
		defer watchWG.Done()
		if err := favoritesStore.Watch(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("favorites watch stopped", zap.Error(err))
		}
	}()

	catalogRepo, err := firestoreRepo.NewCatalogRepository(firestoreProvider)
	if err != nil {
		logger.Fatal("failed to initialise catalog repository", zap.Error(err))
	}

	catalogService, err := services.NewCatalogService(services.CatalogServiceDeps{
		Catalog:  catalogRepo,
		CacheTTL: cfg.Catalog.CacheTTL,
	})
	if err != nil {
		logger.Fatal("failed to initialise catalog service", zap.Error(err))
	}

	cartService, err := services.NewCartService(services.CartServiceDeps{
		Cart:    cartStore,
		Catalog: catalogService,
	})
	if err != nil {
		logger.Fatal("failed to initialise cart service", zap.Error(err))
	}

	favoritesService, err := services.NewFavoritesService(services.FavoritesServiceDeps{
		Favorites: favoritesStore,
		Catalog:   catalogService,
	})
	if err != nil {
		logger.Fatal("failed to initialise favorites service", zap.Error(err))
	}

	checkoutService, err := services.NewCheckoutService(services.CheckoutServiceDeps{
		Cart:            cartStore,
		Catalog:         catalogService,
		TaxRate:         cfg.Pricing.TaxRate,
		ShippingOptions: cfg.Pricing.ShippingOptions,
	})
	if err != nil {
		logger.Fatal("failed to initialise checkout service", zap.Error(err))
	}

	systemService, err := newSystemService(firestoreClient, redisClient, buildInfo)
	if err != nil {
		logger.Warn("health: system service init failed", zap.Error(err))
	}

	middlewares := []func(http.Handler) http.Handler{
		observability.InjectLoggerMiddleware(logger.Named("http")),
		observability.TraceMiddleware(),
		observability.LanguageMiddleware(),
		observability.RecoveryMiddleware(logger.Named("http")),
		observability.RequestLoggerMiddleware(),
	}

	healthHandlers := handlers.NewHealthHandlers(
		handlers.WithHealthBuildInfo(buildInfo),
		handlers.WithHealthSystemService(systemService),
	)

	catalogHandlers := handlers.NewCatalogHandlers(catalogService)
	cartHandlers := handlers.NewCartHandlers(cartService)
	favoritesHandlers := handlers.NewFavoritesHandlers(favoritesService)
	checkoutHandlers := handlers.NewCheckoutHandlers(checkoutService)

	router := handlers.NewRouter(
		handlers.WithMiddlewares(middlewares...),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithCatalogRoutes(catalogHandlers.Routes),
		handlers.WithCartRoutes(cartHandlers.Routes),
		handlers.WithFavoritesRoutes(favoritesHandlers.Routes),
		handlers.WithCheckoutRoutes(checkoutHandlers.Routes),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("storefront api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	watchCancel()
	watchWG.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildInfoFromEnv(started time.Time) services.BuildInfo {
	version := strings.TrimSpace(os.Getenv("STOREFRONT_BUILD_VERSION"))
	if version == "" {
		version = "dev"
	}
	commit := strings.TrimSpace(os.Getenv("STOREFRONT_BUILD_COMMIT_SHA"))
	if commit == "" {
		commit = "unknown"
	}
	environment := strings.TrimSpace(os.Getenv("STOREFRONT_ENVIRONMENT"))
	if environment == "" {
		environment = "local"
	}
	return services.BuildInfo{
		Version:     version,
		CommitSHA:   commit,
		Environment: environment,
		StartedAt:   started,
	}
}

func newSystemService(client *firestore.Client, redisClient *redis.Client, build services.BuildInfo) (services.SystemService, error) {
	checks := make([]repositories.DependencyCheck, 0, 2)
	if client != nil {
		c := client
		checks = append(checks, repositories.DependencyCheck{
			Name:    "firestore",
			Timeout: 1500 * time.Millisecond,
			Check: func(ctx context.Context) error {
				iter := c.Collections(ctx)
				_, err := iter.Next()
				if errors.Is(err, iterator.Done) {
					return nil
				}
				return err
			},
		})
	}
	if redisClient != nil {
		r := redisClient
		checks = append(checks, repositories.DependencyCheck{
			Name:    "redis",
			Timeout: time.Second,
			Check: func(ctx context.Context) error {
				return r.Ping(ctx).Err()
			},
		})
	}
	if len(checks) == 0 {
		return nil, errors.New("health: no dependency checks configured")
	}
	repo, err := repositories.NewDependencyHealthRepository(checks)
	if err != nil {
		return nil, err
	}
	return services.NewSystemService(services.SystemServiceDeps{
		HealthRepository: repo,
		Clock:            time.Now,
		Build:            build,
	})
}
