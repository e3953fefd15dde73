// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the PostForge API server.
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

	"postforge/internal/ai"
	"postforge/internal/cache"
	"postforge/internal/config"
	"postforge/internal/database"
	"postforge/internal/ghl"
	"postforge/internal/handlers"
	"postforge/internal/linkcheck"
	"postforge/internal/pipeline"
	"postforge/internal/router"
	"postforge/internal/sitemap"
	"postforge/internal/social"
	"postforge/internal/storage"
	"postforge/internal/store"
	"postforge/internal/wordpress"
)

func main() {
	// Structured logger — text output, debug level everywhere for now.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// A local .env is a development convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (Redis-compatible cache). The cache is an
	// optimization: without it every client lookup hits Postgres, so a
	// missing Valkey degrades rather than blocking startup.
	var profileCache *cache.ProfileCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, profile caching disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		profileCache = cache.NewProfileCache(valkeyClient, cache.DefaultProfileTTL)
	}

	// Initialize data stores.
	clientStore := store.NewClientStore(db)
	urlStore := store.NewURLStore(db)
	topicStore := store.NewTopicStore(db)
	socialPostStore := store.NewSocialPostStore(db)
	subAccountStore := store.NewSubAccountStore(db)

	// Connect to S3-compatible object storage (optional — generated images
	// degrade to description-only without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — generated images will not be persisted")
	}

	// AI clients for text and image generation.
	aiCfg := ai.Config{
		APIKey:     cfg.GeminiKey,
		Model:      cfg.GeminiModel,
		ImageModel: cfg.GeminiImageModel,
		BaseURL:    cfg.GeminiBaseURL,
	}
	textAI := ai.NewGemini(aiCfg)
	imageAI := ai.NewGeminiImage(aiCfg)

	// Outbound vendor clients.
	wpClient := wordpress.New()
	ghlClient := ghl.New(cfg.GHLBaseURL)

	// Pipelines.
	linkValidator := linkcheck.NewValidator()
	blogPipeline := pipeline.New(
		textAI, imageAI, topicStore, urlStore, linkValidator,
		wpClient, profileCache, storageClient,
	)
	socialPipeline := social.New(
		textAI, imageAI, socialPostStore, subAccountStore,
		ghlClient, storageClient,
	)

	// Site discovery tools.
	fetcher := sitemap.NewFetcher()
	crawler := sitemap.NewCrawler(sitemap.DefaultCrawlLimit)

	api := handlers.New(
		clientStore, urlStore, socialPostStore, subAccountStore,
		blogPipeline, socialPipeline,
		wpClient, ghlClient,
		fetcher, crawler,
		profileCache,
	)

	r := router.New(api, cfg.AllowedOrigins())

	// The write timeout is generous because pipeline routes wait on
	// multiple sequential LLM calls.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for an interrupt or termination signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Give in-flight requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited cleanly")
}
