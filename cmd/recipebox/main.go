// Package main is the entry point for the recipe API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"recipebox/internal/ai"
	"recipebox/internal/cache"
	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/handlers"
	"recipebox/internal/middleware"
	"recipebox/internal/router"
	"recipebox/internal/storage"
	"recipebox/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Sample recipes for development (no-op if recipes already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Image storage: S3-compatible when configured, local disk otherwise.
	// Only disk uploads are served by this process.
	var images storage.Store
	var uploadDir string
	if cfg.UseS3() {
		s3, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		images = s3
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		disk, err := storage.NewDisk(cfg.UploadDir)
		if err != nil {
			slog.Error("failed to initialize upload directory", "error", err, "dir", cfg.UploadDir)
			os.Exit(1)
		}
		images = disk
		uploadDir = disk.Root()
		slog.Info("storing images on disk", "dir", uploadDir)
	}

	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// The rate limiter is optional; without Valkey writes are not limited.
	var limiter *middleware.RateLimiter
	if addr := cfg.ValkeyAddr(); addr != "" && cfg.RateLimit > 0 {
		valkeyClient, err := cache.ConnectValkey(addr, cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey unavailable, rate limiting disabled", "error", err, "addr", addr)
		} else {
			defer valkeyClient.Close()
			limiter = middleware.NewRateLimiter(cache.NewWindowCounter(valkeyClient), cfg.RateLimit, time.Minute)
			slog.Info("rate limiting enabled", "limit_per_minute", cfg.RateLimit)
		}
	}

	api := handlers.NewAPI(
		store.NewCategoryStore(db),
		store.NewRecipeStore(db),
		store.NewCommentStore(db),
		images,
		aiRegistry,
	)

	r := router.New(db, api, router.Options{
		CORSOrigin:  cfg.CORSOrigin,
		UploadDir:   uploadDir,
		RateLimiter: limiter,
	})

	// WriteTimeout must accommodate suggestion requests that wait on the
	// provider (up to 60s) and 10 MB uploads.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
