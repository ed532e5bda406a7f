// Package main is the entry point for the Storyforge API server.
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

	"storyforge/internal/ai"
	"storyforge/internal/cache"
	"storyforge/internal/config"
	"storyforge/internal/database"
	"storyforge/internal/generator"
	"storyforge/internal/handlers"
	"storyforge/internal/router"
	"storyforge/internal/storage"
	"storyforge/internal/store"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

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

	// Connect to PostgreSQL and run pending migrations.
	db, err := database.Shared(cfg.DSN())
	if err != nil {
		slog.Error("failed to set up database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Valkey (Redis-compatible cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	storyCache := cache.NewStoryCache(valkeyClient, cache.DefaultStoryTTL)
	statsCache := cache.NewStatsCache(valkeyClient, cache.DefaultStatsTTL)

	// Initialize data stores.
	storyStore := store.NewStoryStore(db)
	eventStore := store.NewEventStore(db)

	// Connect to S3-compatible object storage (optional — the app serves
	// mood-color placeholders when illustrations cannot be stored).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"bucket", cfg.S3Bucket,
			)
		}
	} else {
		slog.Warn("s3 storage not configured — illustrations disabled")
	}

	// Set up the AI generation path when a provider is configured.
	// Without one, the service runs on the deterministic templates alone.
	var writer generator.StoryWriter
	var illustrator generator.Illustrator
	var sink generator.IllustrationSink
	if cfg.AIProvider != "" {
		aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
			"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, ModelImage: cfg.OpenAIModelImage, BaseURL: cfg.OpenAIBaseURL},
			"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, ModelImage: cfg.GeminiModelImage, BaseURL: cfg.GeminiBaseURL},
			"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
			"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
		})

		slog.Info("ai providers initialized",
			"active", aiRegistry.ActiveName(),
			"available", aiRegistry.Available(),
		)

		writer = ai.NewWriter(aiRegistry)
		if storageClient != nil && aiRegistry.SupportsImageGeneration() {
			illustrator = ai.NewIllustrator(aiRegistry)
			sink = storageClient
		}
	} else {
		slog.Info("no ai provider configured — template generation only")
	}

	gen := generator.New(writer, illustrator, sink, logger)

	// Create the API handler group and the Chi router.
	api := handlers.NewAPI(gen, storyStore, eventStore, storyCache, statsCache)
	r, limiter := router.New(api)
	defer limiter.Stop()

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate the generation endpoint, which waits
	// on LLM and image model responses.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
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

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
