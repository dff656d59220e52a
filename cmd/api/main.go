package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/techstoreperu/storefront-backend/api/routes"
	"github.com/techstoreperu/storefront-backend/internal/analytics"
	"github.com/techstoreperu/storefront-backend/internal/cart"
	"github.com/techstoreperu/storefront-backend/internal/catalog"
	"github.com/techstoreperu/storefront-backend/internal/chat"
	"github.com/techstoreperu/storefront-backend/internal/orders"
	"github.com/techstoreperu/storefront-backend/internal/recommendations"
	"github.com/techstoreperu/storefront-backend/internal/seed"
	"github.com/techstoreperu/storefront-backend/pkg/ai"
	"github.com/techstoreperu/storefront-backend/pkg/config"
	"github.com/techstoreperu/storefront-backend/pkg/db"
	"github.com/techstoreperu/storefront-backend/pkg/logger"
	"github.com/techstoreperu/storefront-backend/pkg/metrics"
	"github.com/techstoreperu/storefront-backend/pkg/migrate"
	"github.com/techstoreperu/storefront-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	aiMetrics := metrics.NewAIMetrics(registry)
	jobMetrics := metrics.NewJobMetrics(registry)

	var aiClient *ai.Client
	if cfg.AI.APIKey != "" {
		aiClient, err = ai.NewClient(context.Background(), cfg.AI, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create AI client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "no AI api key configured, running with canned fallbacks")
	}

	analyticsRepo := analytics.NewRepository(dbClient.DB())
	snapshots, err := analytics.NewSnapshotWriter(analyticsRepo, logg, jobMetrics, analytics.RetryPolicy{})
	if err != nil {
		logg.Error(context.Background(), "failed to create snapshot writer", err)
		os.Exit(1)
	}

	analyticsParams := analytics.ServiceParams{
		Repo:         analyticsRepo,
		Cache:        redisClient,
		Snapshots:    snapshots,
		AIMetrics:    aiMetrics,
		Analytics:    cfg.Analytics,
		Logger:       logg,
		FallbackData: seed.FallbackDataset(),
	}
	if aiClient != nil {
		analyticsParams.Insights = aiClient
	}
	analyticsService, err := analytics.NewService(analyticsParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	chatParams := chat.ServiceParams{
		Repo:      chat.NewRepository(dbClient.DB()),
		AIMetrics: aiMetrics,
		Chat:      cfg.Chat,
		Logger:    logg,
	}
	if aiClient != nil {
		chatParams.Generator = aiClient
	}
	chatService, err := chat.NewService(chatParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}

	recommendationsParams := recommendations.ServiceParams{
		Repo:      recommendations.NewRepository(dbClient.DB()),
		AIMetrics: aiMetrics,
		Logger:    logg,
	}
	if aiClient != nil {
		recommendationsParams.Generator = aiClient
	}
	recommendationsService, err := recommendations.NewService(recommendationsParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create recommendations service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			analyticsService,
			catalogService,
			cartService,
			ordersService,
			chatService,
			recommendationsService,
			httpMetrics,
			registry,
		),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}

		// let in-flight snapshot writes drain
		snapshots.Wait()
	}
}
