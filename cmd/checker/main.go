package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Robinak47/plagiarism-checker-api/internal/api"
	"github.com/Robinak47/plagiarism-checker-api/internal/cache"
	"github.com/Robinak47/plagiarism-checker-api/internal/comparison"
	"github.com/Robinak47/plagiarism-checker-api/internal/config"
	"github.com/Robinak47/plagiarism-checker-api/internal/report"
	"github.com/Robinak47/plagiarism-checker-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	logger.Info("Starting plagiarism checker...")

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/checker.json"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
	}
	logger.Info("Config loaded", zap.String("path", cfgPath))

	if cfg.Database.Postgres.DSN == "" {
		logger.Fatal("postgres DSN is required")
	}
	st, err := store.New(cfg.Database.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("postgres unavailable", zap.Error(err))
	}
	if err := st.Migrate(context.Background(), "migrations"); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	// The score cache is optional; the service computes everything fresh
	// without it.
	var scoreCache *cache.ScoreCache
	if cfg.Database.Redis.URL != "" {
		ttl := time.Duration(cfg.Comparison.CacheTTLMinutes) * time.Minute
		sc, cacheErr := cache.New(cfg.Database.Redis.URL, ttl, logger)
		if cacheErr != nil {
			logger.Warn("Redis unavailable, running without score cache", zap.Error(cacheErr))
		} else {
			scoreCache = sc
		}
	}

	reports := report.NewWriter(cfg.Comparison.ResultsDir, cfg.Comparison.BlockSize, logger)

	// Avoid handing a typed nil to the interface fields.
	var engineCache comparison.ScoreCache
	var invalid api.Invalidator
	if scoreCache != nil {
		engineCache = scoreCache
		invalid = scoreCache
	}
	engine := comparison.New(st, engineCache, reports, logger)
	handler := api.NewHandler(st, engine, invalid, logger)

	port := fmt.Sprintf("%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("Plagiarism checker listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down plagiarism checker...")
	ctx := context.Background()
	srv.Shutdown(ctx)
	if scoreCache != nil {
		scoreCache.Close()
	}
	st.Close()
}
