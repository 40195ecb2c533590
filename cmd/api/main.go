package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mdewit/werkstatt-backend/api/routes"
	"github.com/mdewit/werkstatt-backend/internal/bookings"
	"github.com/mdewit/werkstatt-backend/internal/catalog"
	"github.com/mdewit/werkstatt-backend/internal/inventory"
	"github.com/mdewit/werkstatt-backend/internal/receiving"
	"github.com/mdewit/werkstatt-backend/pkg/config"
	"github.com/mdewit/werkstatt-backend/pkg/db"
	"github.com/mdewit/werkstatt-backend/pkg/logger"
	"github.com/mdewit/werkstatt-backend/pkg/metrics"
	"github.com/mdewit/werkstatt-backend/pkg/migrate"
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

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		logg.Error(context.Background(), "failed to extract sql database", err)
		os.Exit(1)
	}
	if err := migrate.Guard(context.Background(), sqlDB, migrate.Dialect(cfg.DB.Driver), logg); err != nil {
		logg.Error(context.Background(), "schema guard rejected the store", err)
		os.Exit(1)
	}

	catalogService := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	inventoryService := inventory.NewService(inventory.NewRepository(dbClient.DB()), cfg.Inventory.OldStockThresholdMonths)
	receivingService := receiving.NewService(receiving.NewRepository(dbClient.DB()), catalog.NewRepository(dbClient.DB()), dbClient)
	bookingsService := bookings.NewService(bookings.NewRepository(dbClient.DB()), dbClient)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	requestMetrics := metrics.NewRequestMetrics(registry)

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
			cfg, logg, dbClient, registry, requestMetrics,
			catalogService, inventoryService, receivingService, bookingsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
