package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taizguy/zamapedia/internal/page/cache"
	"github.com/taizguy/zamapedia/internal/page/config"
	"github.com/taizguy/zamapedia/internal/page/domain"
	"github.com/taizguy/zamapedia/internal/page/events"
	"github.com/taizguy/zamapedia/internal/page/extractor"
	"github.com/taizguy/zamapedia/internal/page/fetcher"
	"github.com/taizguy/zamapedia/internal/page/handler"
	"github.com/taizguy/zamapedia/internal/page/metrics"
	"github.com/taizguy/zamapedia/internal/page/relay"
	"github.com/taizguy/zamapedia/internal/page/repository"
	"github.com/taizguy/zamapedia/internal/page/service"
	"github.com/taizguy/zamapedia/pkg/validator"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Initialize cache backend
	cacheLayer, err := initCache(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}

	// Initialize fetch history repository (optional)
	var repo repository.Repository
	if cfg.Database.Enabled {
		db, err := initDB(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer db.Close()
		repo = repository.NewPostgresRepository(db)
	}

	// Initialize Kafka publisher (optional)
	var publisher domain.EventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		publisher, err = events.NewEventPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Fatal("Failed to initialize event publisher", zap.Error(err))
		}
	}
	defer publisher.Close()

	// Initialize service
	pageService := service.NewPageService(
		validator.NewDefaultValidator(),
		cacheLayer,
		fetcher.New(cfg.Fetch.Timeout(), cfg.Fetch.UserAgent),
		extractor.New(),
		repo,
		publisher,
		metrics.NewInMemoryMetrics(),
		logger,
	)

	aiRelay := relay.New(cfg.Relay.APIKey, cfg.Relay.Model)

	httpHandler := handler.NewHTTPHandler(pageService, aiRelay, logger)
	router := gin.Default()
	httpHandler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPPort,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		logger.Fatal("Server error", zap.Error(err))
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
	return nil
}

func initCache(cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return cache.NewRedisCache(client, cfg.Cache.TTL()), nil
	case "file", "":
		return cache.NewFileCache(cfg.Cache.Dir, cfg.Cache.TTL())
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func initDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
