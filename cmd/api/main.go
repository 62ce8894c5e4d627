package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/smartstock-io/smartstock-backend/api/controllers"
	"github.com/smartstock-io/smartstock-backend/api/routes"
	"github.com/smartstock-io/smartstock-backend/internal/alerts"
	"github.com/smartstock-io/smartstock-backend/internal/catalog"
	"github.com/smartstock-io/smartstock-backend/internal/categories"
	"github.com/smartstock-io/smartstock-backend/internal/i18n"
	"github.com/smartstock-io/smartstock-backend/internal/products"
	"github.com/smartstock-io/smartstock-backend/internal/query"
	sessionstore "github.com/smartstock-io/smartstock-backend/internal/session"
	"github.com/smartstock-io/smartstock-backend/internal/stock"
	"github.com/smartstock-io/smartstock-backend/internal/stores"
	"github.com/smartstock-io/smartstock-backend/pkg/auth/session"
	"github.com/smartstock-io/smartstock-backend/pkg/config"
	"github.com/smartstock-io/smartstock-backend/pkg/db"
	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
	"github.com/smartstock-io/smartstock-backend/pkg/metrics"
	"github.com/smartstock-io/smartstock-backend/pkg/migrate"
	"github.com/smartstock-io/smartstock-backend/pkg/pubsub"
	"github.com/smartstock-io/smartstock-backend/pkg/redis"
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
		Format:      cfg.App.LogFormat,
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	identities, err := sessionstore.NewStore(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity store", err)
		os.Exit(1)
	}

	defaultLocale, err := enums.ParseLocale(cfg.App.DefaultLocale)
	if err != nil {
		defaultLocale = enums.DefaultLocale
	}
	i18nService, err := i18n.NewService(redisClient, logg, defaultLocale)
	if err != nil {
		logg.Error(context.Background(), "failed to create i18n service", err)
		os.Exit(1)
	}

	source, err := catalog.NewMemorySource(cfg.DataSource, catalog.DefaultFixtures())
	if err != nil {
		logg.Error(context.Background(), "failed to seed catalog data source", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	cache := query.NewCache(metrics.NewQueryCacheMetrics(registry), logg)

	productService, err := products.NewService(source, cache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	storeService, err := stores.NewService(source, cache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create store service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(source, cache, i18nService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	stockService, err := stock.NewService(stock.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock service", err)
		os.Exit(1)
	}

	health := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
	}

	var alertService alerts.Service
	if cfg.PubSub.AlertsTopic != "" && cfg.GCP.ProjectID != "" {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pub/sub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pub/sub", err)
			}
		}()
		health["pubsub"] = pubsubClient

		alertService, err = alerts.NewService(alerts.GCPPublisher(pubsubClient.AlertsPublisher()), logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create alert service", err)
			os.Exit(1)
		}
	} else {
		alertService, err = alerts.NewService(alerts.NopPublisher(), logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create alert service", err)
			os.Exit(1)
		}
		logg.Warn(context.Background(), "pub/sub not configured, depletion alerts are logged only")
	}

	presenter := products.NewPresenter(i18nService, stockService)

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
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			Registry:   registry,
			Health:     health,
			Sessions:   sessionManager,
			Identities: identities,
			I18n:       i18nService,
			Products:   productService,
			Presenter:  presenter,
			Stores:     storeService,
			Categories: categoryService,
			Stock:      stockService,
			Alerts:     alertService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
