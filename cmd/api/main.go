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

	"github.com/printflowhq/printflow-backend/api/controllers"
	"github.com/printflowhq/printflow-backend/api/routes"
	"github.com/printflowhq/printflow-backend/internal/catalog"
	"github.com/printflowhq/printflow-backend/internal/costs"
	"github.com/printflowhq/printflow-backend/internal/dashboard"
	"github.com/printflowhq/printflow-backend/internal/directory"
	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/internal/docstore/gormstore"
	"github.com/printflowhq/printflow-backend/internal/docstore/notion"
	"github.com/printflowhq/printflow-backend/internal/orders"
	"github.com/printflowhq/printflow-backend/internal/records"
	"github.com/printflowhq/printflow-backend/internal/stock"
	"github.com/printflowhq/printflow-backend/pkg/config"
	"github.com/printflowhq/printflow-backend/pkg/logger"
	"github.com/printflowhq/printflow-backend/pkg/metrics"
	"github.com/printflowhq/printflow-backend/pkg/redis"
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

	remoteMetrics := metrics.NewRemoteCallMetrics(prometheus.DefaultRegisterer)

	var store docstore.Store
	switch {
	case cfg.Docstore.IsNotion():
		client, err := notion.NewClient(context.Background(), cfg.Notion, logg, remoteMetrics)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap notion client", err)
			os.Exit(1)
		}
		store = client
	default:
		embedded, err := gormstore.New(context.Background(), cfg.Docstore, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap embedded store", err)
			os.Exit(1)
		}
		defer func() {
			if err := embedded.Close(); err != nil {
				logg.Error(context.Background(), "error closing embedded store", err)
			}
		}()
		store = embedded
	}

	pingers := map[string]controllers.Pinger{}
	var cache dashboard.Cache
	if cfg.Redis.Enabled() {
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
		cache = redisClient
		pingers["redis"] = redisClient
	}

	mapper, err := records.NewMapper(cfg.Locale, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build record mapper", err)
		os.Exit(1)
	}

	stockService, err := stock.NewService(stock.ServiceParams{
		Store:       store,
		Mapper:      mapper,
		Collections: cfg.Collections,
		Logger:      logg,
		PageSize:    cfg.Dashboard.PageSize,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create stock service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Store:       store,
		Mapper:      mapper,
		Adjuster:    stockService,
		Collections: cfg.Collections,
		Logger:      logg,
		PageSize:    cfg.Dashboard.PageSize,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Store:       store,
		Mapper:      mapper,
		Collections: cfg.Collections,
		Logger:      logg,
		PageSize:    cfg.Dashboard.PageSize,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	directoryService, err := directory.NewService(directory.ServiceParams{
		Store:       store,
		Mapper:      mapper,
		Collections: cfg.Collections,
		Logger:      logg,
		PageSize:    cfg.Dashboard.PageSize,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create directory service", err)
		os.Exit(1)
	}

	costService, err := costs.NewService(costs.ServiceParams{
		Store:       store,
		Mapper:      mapper,
		Collections: cfg.Collections,
		Logger:      logg,
		PageSize:    cfg.Dashboard.PageSize,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cost service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		Store:       store,
		Mapper:      mapper,
		Cache:       cache,
		Collections: cfg.Collections,
		Logger:      logg,
		Config:      cfg.Dashboard,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
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
		"backend": cfg.Docstore.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Logger:    logg,
			Catalog:   catalogService,
			Orders:    orderService,
			Stock:     stockService,
			Directory: directoryService,
			Costs:     costService,
			Dashboard: dashboardService,
			Pingers:   pingers,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stopCh:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error during shutdown", err)
		}
	}
}
