package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jlizarraga/healthybreads-backend/api/routes"
	"github.com/jlizarraga/healthybreads-backend/internal/catalog"
	"github.com/jlizarraga/healthybreads-backend/internal/checkout"
	"github.com/jlizarraga/healthybreads-backend/internal/notifier"
	"github.com/jlizarraga/healthybreads-backend/internal/orders"
	"github.com/jlizarraga/healthybreads-backend/pkg/config"
	"github.com/jlizarraga/healthybreads-backend/pkg/db"
	"github.com/jlizarraga/healthybreads-backend/pkg/kvstore"
	"github.com/jlizarraga/healthybreads-backend/pkg/logger"
	"github.com/jlizarraga/healthybreads-backend/pkg/metrics"
	"github.com/jlizarraga/healthybreads-backend/pkg/migrate"
	"github.com/jlizarraga/healthybreads-backend/pkg/redis"
)

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

	var (
		records kvstore.Store
		pingers []db.Pinger
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()

		records, err = kvstore.NewRedisStore(redisClient)
		if err != nil {
			logg.Error(context.Background(), "failed to create record store", err)
			os.Exit(1)
		}
		pingers = append(pingers, redisClient)

	default:
		dbClient, err := db.New(context.Background(), cfg.Storage, logg)
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

		records, err = kvstore.NewGormStore(dbClient)
		if err != nil {
			logg.Error(context.Background(), "failed to create record store", err)
			os.Exit(1)
		}
		pingers = append(pingers, dbClient)
	}

	catalogStore, err := catalog.NewStore(records, catalog.SeedFor(cfg.App.Env), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog store", err)
		os.Exit(1)
	}

	ledger, err := orders.NewLedger(records, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order ledger", err)
		os.Exit(1)
	}

	var orderNotifier notifier.Notifier
	if cfg.Notifier.APIKey != "" {
		orderNotifier, err = notifier.NewResendClient(cfg.Notifier, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create email notifier", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "no notifier api key configured, order emails disabled")
		orderNotifier = notifier.Noop{Logg: logg}
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Catalog:  catalogStore,
		Ledger:   ledger,
		Notifier: orderNotifier,
		Metrics:  metrics.NewOrderMetrics(prometheus.DefaultRegisterer),
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Driver,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, catalogStore, ledger, checkout.NewRegistry(), checkoutService, pingers...),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
