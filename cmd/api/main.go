package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/api/handlers"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/cache"
	redisCache "github.com/Srbanana94/dashboard-monitores-energia/internal/cache/redis"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/metrics"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/middleware/security"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/report"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/source"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/source/csvfile"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/source/postgres"
	"github.com/Srbanana94/dashboard-monitores-energia/internal/source/sqlite"
	"github.com/Srbanana94/dashboard-monitores-energia/pkg/config"
	appLogger "github.com/Srbanana94/dashboard-monitores-energia/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting energy monitor dashboard server")

	metrics.Init()

	src, closeSrc, err := buildSource(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize data source", zap.Error(err))
	}
	defer closeSrc()

	recordCache, closeCache, err := buildCache(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize record cache", zap.Error(err))
	}
	defer closeCache()

	cached := source.NewCached(src, recordCache)
	engine := report.NewEngine(cached)

	sourceTimeout := time.Duration(cfg.Source.TimeoutSec) * time.Second

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(security.HeadersMiddleware(security.HeadersConfig{
		ScriptOrigins: []string{"https://cdn.jsdelivr.net"},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	dashboardHandler := handlers.NewDashboardHandler(engine, sourceTimeout)
	sitesHandler := handlers.NewSitesHandler(engine, sourceTimeout)

	api := app.Group("/api/v1")

	api.Get("/dashboard", dashboardHandler.GetDashboard)
	api.Get("/filters", dashboardHandler.GetFilters)
	api.Post("/refresh", dashboardHandler.Refresh)

	api.Get("/sites", sitesHandler.GetSites)
	api.Put("/sites", sitesHandler.SaveSites)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"source": src.Name(),
			"time":   time.Now().Unix(),
		})
	})

	app.Get("/metrics", metrics.MetricsHandler())
	app.Static("/", cfg.Web.Dir)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting",
		zap.String("address", addr),
		zap.String("source", src.Name()),
		zap.String("cache", cfg.Cache.Driver),
	)

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}

func buildSource(cfg *config.Config) (source.Source, func(), error) {
	switch cfg.Source.Driver {
	case "csv":
		return csvfile.NewSource(cfg.Source.CSV.Path), func() {}, nil

	case "postgres":
		pg, err := postgres.NewSource(cfg.Source.Postgres.DSN(), cfg.Source.Postgres.Table)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.InitSchema(); err != nil {
			appLogger.Warn("Failed to initialize postgres schema", zap.Error(err))
		}
		return pg, func() { pg.Close() }, nil

	case "sqlite":
		db, err := sqlite.NewSource(cfg.Source.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.InitSchema(); err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown source driver %q", cfg.Source.Driver)
}

func buildCache(cfg *config.Config) (cache.RecordCache, func(), error) {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second

	switch cfg.Cache.Driver {
	case "memory":
		return cache.NewMemory(ttl), func() {}, nil

	case "redis":
		client, err := redisCache.NewClient(
			cfg.Cache.Redis.Host,
			cfg.Cache.Redis.Port,
			cfg.Cache.Redis.Password,
			cfg.Cache.Redis.DB,
			ttl,
		)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
}
