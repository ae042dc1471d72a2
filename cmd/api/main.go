package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"taglens/internal/config"
	taghttp "taglens/internal/http"
	"taglens/internal/pkg/logger"
	"taglens/internal/repository/memory"
	"taglens/internal/repository/postgres"
	redisrepo "taglens/internal/repository/redis"
	"taglens/internal/service/analyzer"
	"taglens/internal/service/api"
	"taglens/internal/service/suggest"

	"taglens/internal/domain"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	log.Info("Starting taglens API service...")

	// Storage: PostgreSQL when configured, in-memory otherwise
	var analysisRepo domain.AnalysisRepository
	var tagsRepo domain.GeneratedTagsRepository
	var db *sql.DB

	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			log.Error("Failed to ping database", "error", err)
			os.Exit(1)
		}

		if err := postgres.RunMigrations(db, log); err != nil {
			log.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}

		analysisRepo = postgres.NewAnalysisRepository(db, log)
		tagsRepo = postgres.NewGeneratedTagsRepository(db, log)
	} else {
		log.Info("DATABASE_URL not set - using in-memory storage")
		analysisRepo = memory.NewAnalysisRepository()
		tagsRepo = memory.NewGeneratedTagsRepository()
	}

	// Analysis cache: optional, best-effort
	var cache domain.AnalysisCache
	if cfg.RedisURL != "" {
		redisClient, err := redisrepo.NewClient(cfg.RedisURL, log)
		if err != nil {
			log.Warn("Redis unavailable - continuing without analysis cache", "error", err)
		} else {
			defer redisClient.Close()
			cache = redisrepo.NewAnalysisCache(redisClient, log)
		}
	}

	// Extraction pipeline
	renderer := analyzer.NewRenderer(log)
	static := analyzer.NewStaticExtractor(log)
	suggester := suggest.New(cfg.GeminiAPIKey, cfg.GeminiModel, log)
	pipeline := analyzer.New(renderer, static, suggester, log)

	router := taghttp.NewRouter(log, pipeline, suggester, analysisRepo, tagsRepo, cache)
	server := api.New(cfg, log, router.SetupRoutes())

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("API server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Shutdown signal received, stopping API service...")
	case <-done:
		log.Info("API server stopped")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Error("Error stopping API server", "error", err)
	}

	// Release the shared browser last; in-flight analyses are done by now
	renderer.Shutdown()

	log.Info("API service shutdown complete")
}
