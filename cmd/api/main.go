package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"mediaapi/docs"
	"mediaapi/internal/config"
	"mediaapi/internal/database"
	"mediaapi/internal/database/migration"
	handlers "mediaapi/internal/http/handler"
	"mediaapi/internal/http/middleware"
	"mediaapi/internal/logging"
	"mediaapi/internal/mediafile"
	"mediaapi/internal/otel"
	"mediaapi/internal/repository/postgres"
	"mediaapi/internal/route"
	"mediaapi/internal/service"
	"mediaapi/internal/storage"
)

// @title Media API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.Location())
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	store, err := newStorage(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("failed to register http metrics", zap.Error(err))
	}
	transferMetrics, err := mediafile.NewMetrics(reg)
	if err != nil {
		log.Fatal("failed to register transfer metrics", zap.Error(err))
	}

	// The fetch client bounds only connect and response headers; the body copy
	// itself runs until the source ends.
	fetchClient := &http.Client{
		Transport: otelhttp.NewTransport(&http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			ResponseHeaderTimeout: cfg.Media.FetchTimeout(),
			TLSHandshakeTimeout:   10 * time.Second,
		}),
	}
	probeClient := &http.Client{
		Timeout:   cfg.Media.ProbeTimeout(),
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	fetcher := mediafile.NewFetcher(store, fetchClient, mediafile.NewProber(probeClient), log,
		mediafile.WithMetrics(transferMetrics),
	)

	mediaRepo := postgres.NewMediaPostgres(db)
	langRepo := postgres.NewLanguagePostgres(db)
	mediaSvc := service.NewMediaService(fetcher, store, mediaRepo, cfg.Media.KeyPrefix)

	app := fiber.New(fiber.Config{
		ErrorHandler:      handlers.ErrorHandler(),
		StreamRequestBody: true,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(httpMetrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:            db,
		Media:         mediaSvc,
		Languages:     route.NewLanguageRoute(langRepo),
		SalesChannels: langRepo,
		Logger:        log,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Warn("http shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("http_server_starting",
		zap.String("addr", addr),
		zap.String("storage_backend", cfg.Media.StorageBackend),
	)
	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func newStorage(cfg *config.AppConfig, log *zap.Logger) (storage.Storage, error) {
	switch cfg.Media.StorageBackend {
	case "local":
		local, err := storage.NewLocal(cfg.Media.LocalRoot, log)
		if err != nil {
			return nil, err
		}
		return local, nil
	case "minio", "":
		return storage.NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown MEDIA_STORAGE_BACKEND %q", cfg.Media.StorageBackend)
	}
}
