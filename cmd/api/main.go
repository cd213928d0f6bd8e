package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-tracker/backend/config"
	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/server"
	"github.com/pageza/recipe-tracker/backend/internal/storage"
	"github.com/pageza/recipe-tracker/backend/migrations"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fatal("Failed to load configuration", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fatal("Failed to configure logging", err)
	}

	if err := config.ValidateConfig(cfg); err != nil {
		fatal("Invalid configuration", err)
	}
	logger.Info("Configuration loaded", slog.String("environment", string(cfg.Environment)))

	db, err := database.New(cfg)
	if err != nil {
		fatal("Failed to connect to database", err)
	}

	if cfg.AutoMigrate {
		if err := database.RunMigrations(db, migrations.FS); err != nil {
			fatal("Failed to run migrations", err)
		}
	}

	// Redis only backs rate limiting; run without it when unreachable
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, rate limiting disabled", slog.Any("error", err))
			redisClient = nil
		}
	}

	var images storage.ImagePresigner
	if cfg.S3Bucket != "" {
		client, err := config.NewS3Client(context.Background(), cfg)
		if err != nil {
			fatal("Failed to configure S3", err)
		}
		images = storage.NewS3ImageStore(client, storage.ImageStoreConfig{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			PublicBaseURL: cfg.S3PublicBaseURL,
			Expiry:        cfg.S3PresignExpiry,
		})
	}

	srv := server.NewServer(cfg, db, server.Options{
		Redis:  redisClient,
		Images: images,
		Logger: logger,
	})

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			fatal("Server error", err)
		}
	case sig := <-quit:
		logger.Info("Received signal", slog.String("signal", sig.String()))
	}

	// Gracefully shutdown the server
	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Error("Server shutdown error", slog.Any("error", err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server stopped")
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
