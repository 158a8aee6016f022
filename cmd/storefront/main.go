package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/storefront-admin/storefront-admin/internal/app"
	"github.com/storefront-admin/storefront-admin/internal/auth"
	"github.com/storefront-admin/storefront-admin/internal/categories"
	"github.com/storefront-admin/storefront-admin/internal/observability"
	"github.com/storefront-admin/storefront-admin/internal/orders"
	"github.com/storefront-admin/storefront-admin/internal/platform/cache"
	"github.com/storefront-admin/storefront-admin/internal/platform/db"
	"github.com/storefront-admin/storefront-admin/internal/platform/httpx"
	"github.com/storefront-admin/storefront-admin/internal/products"
	"github.com/storefront-admin/storefront-admin/internal/rbac"
	"github.com/storefront-admin/storefront-admin/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("storefront stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	if cfg.AutoMigrate {
		if err := db.RunMigrations(cfg.PGDSN); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisOptions())
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	validator := httpx.NewValidator()
	limits := cfg.SearchLimits()
	metrics := observability.NewMetrics()

	categoryService := categories.NewService(categories.NewRepository(dbpool))
	if cfg.CategorySeedPath != "" {
		inserted, err := categoryService.SeedFromFile(ctx, cfg.CategorySeedPath)
		if err != nil {
			return err
		}
		logger.Info("category seed", slog.Int("inserted", inserted))
	}

	if err := os.MkdirAll(cfg.ImagesDir, 0o755); err != nil {
		return err
	}
	productService := products.NewService(products.NewRepository(dbpool), products.NewDiskImages(cfg.ImagesDir))
	orderService := orders.NewService(orders.NewRepository(dbpool), metrics)
	userService := users.NewService(users.NewRepository(dbpool))
	authService := auth.NewService(userService, auth.NewIssuer(cfg.TokenSecret, cfg.TokenTTL), auth.NewRedisTokenStore(redisClient)).
		WithLogger(logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		AuthHandler:       auth.NewHandler(logger, authService, validator),
		AuthService:       authService,
		CategoriesHandler: categories.NewHandler(logger, categoryService, validator, limits),
		ProductsHandler:   products.NewHandler(logger, productService, validator, limits),
		OrdersHandler:     orders.NewHandler(logger, orderService, validator),
		UsersHandler:      users.NewHandler(logger, userService, validator, limits),
		RBACMiddleware:    rbac.Middleware{Logger: logger},
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
