package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/vmakarenko/storefront-api/internal/cache"
	"github.com/vmakarenko/storefront-api/internal/config"
	"github.com/vmakarenko/storefront-api/internal/db"
	"github.com/vmakarenko/storefront-api/internal/events"
	"github.com/vmakarenko/storefront-api/internal/httpserver"
	"github.com/vmakarenko/storefront-api/internal/images"
	"github.com/vmakarenko/storefront-api/internal/logging"
	loggingmw "github.com/vmakarenko/storefront-api/internal/middleware/logging"
	"github.com/vmakarenko/storefront-api/internal/repo"
	"github.com/vmakarenko/storefront-api/internal/search"
	"github.com/vmakarenko/storefront-api/internal/service"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET")

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	imageStore, err := images.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("image store: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	analyticsCache := cache.New(cfg.RedisAddr)

	r := &repo.GormRepo{DB: gdb}

	deps := &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{
				Repo:          r,
				JWTSecret:     cfg.JWTAccessSecret,
				RefreshSecret: cfg.JWTRefreshSecret,
			},
			Producer: producer,
		},
		CartHandler: &httpserver.CartHTTP{
			Svc:      &service.CartService{Repo: r},
			Producer: producer,
		},
		OrderHandler: &httpserver.OrderHTTP{
			Svc:      &service.OrderService{Repo: r},
			Producer: producer,
		},
		CatalogHandler: &httpserver.CatalogHTTP{
			Svc:      &service.CatalogService{Repo: r},
			Images:   imageStore,
			Producer: producer,
		},
		AnalyticsHandler: &httpserver.AnalyticsHTTP{
			Svc: &service.AnalyticsService{Repo: r, Cache: analyticsCache},
		},
		JWTSecret: cfg.JWTAccessSecret,
		UploadDir: cfg.UploadDir,
	}

	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		deps.SearchHandler = &httpserver.SearchHTTP{ES: esClient, Index: cfg.ESIndex}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), echomw.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close", "error", err)
		}
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}
	if err := analyticsCache.Close(); err != nil {
		logger.Error("redis close", "error", err)
	}

	logger.Info("shutdown complete")
}
