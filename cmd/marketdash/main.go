// Package main is the entry point for the marketdash server.
// It loads configuration, opens the database, wires the generation clients
// and starts the HTTP server with graceful shutdown support.
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

	"marketdash/internal/ai"
	"marketdash/internal/appstate"
	"marketdash/internal/cache"
	"marketdash/internal/config"
	"marketdash/internal/database"
	"marketdash/internal/generator"
	"marketdash/internal/handlers"
	"marketdash/internal/middleware"
	"marketdash/internal/router"
	"marketdash/internal/secret"
	"marketdash/internal/storage"
	"marketdash/internal/store"
)

// appTitle identifies the application to OpenRouter.
const appTitle = "marketdash"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// An optional .env file fills in variables not set in the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"db_driver", cfg.DBDriver,
	)

	db, err := database.Connect(database.Dialect(cfg.DBDriver), cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed a sample brand profile in development (no-op once one exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// The application context lives in Valkey when one is configured,
	// otherwise in the app_state table.
	var backend appstate.Backend = store.NewAppStateStore(db)
	if cfg.UseValkey() {
		valkeyClient, err := cache.Dial(context.Background(), cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		backend = cache.NewStateStore(valkeyClient, cache.DefaultStateKey)
	}

	var sealer appstate.KeySealer
	if cfg.AppSecret != "" {
		s, err := secret.NewSealer(cfg.AppSecret)
		if err != nil {
			slog.Error("failed to initialize key sealing", "error", err)
			os.Exit(1)
		}
		sealer = s
	} else {
		slog.Warn("APP_SECRET not set, api keys are stored unsealed")
	}

	state, err := appstate.Load(context.Background(), backend, sealer)
	if err != nil {
		slog.Error("failed to load application state", "error", err)
		os.Exit(1)
	}

	assetStore := store.NewAssetStore(db)
	settingsStore := store.NewSettingsStore(db)

	// A key entered in the UI takes precedence over OPENROUTER_API_KEY.
	openRouter := ai.ProviderConfig{
		APIKey:  cfg.OpenRouterKey,
		Model:   cfg.OpenRouterModel,
		BaseURL: cfg.OpenRouterBaseURL,
		Referer: cfg.OpenRouterReferer,
		Title:   appTitle,
	}
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		ai.ProviderOpenAI:  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		ai.ProviderClaude:  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		ai.ProviderGemini:  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		ai.ProviderMistral: {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})

	// Optional S3 mirror for generated images. DALL-E URLs expire, the
	// mirrored copy does not.
	storageClient, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}

	imageClient := ai.NewImageClient(cfg.ImageBaseURL, cfg.ImageModel)
	gen := generator.New(settingsStore, aiRegistry, imageClient)
	if storageClient != nil {
		gen.WithMirror(storageClient)
		slog.Info("s3 image mirror enabled", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, generated images keep their upstream url")
	}

	api := handlers.New(assetStore, settingsStore, state, gen, aiRegistry, openRouter, storageClient).
		WithImageKey(cfg.OpenAIKey)
	api.SyncContentKey()

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
		"image_model", imageClient.Model(),
	)

	limiter := middleware.NewRateLimiter(20, time.Minute)
	defer limiter.Stop()

	r := router.New(api, limiter)

	// WriteTimeout must accommodate generation endpoints that wait on LLM
	// and image responses.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 120 * time.Second,
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
