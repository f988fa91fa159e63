// Package main is the entry point for the bessonnitsa backend server.
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

	"bessonnitsa/internal/cache"
	"bessonnitsa/internal/config"
	"bessonnitsa/internal/database"
	"bessonnitsa/internal/handlers"
	"bessonnitsa/internal/router"
	"bessonnitsa/internal/session"
	"bessonnitsa/internal/storage"
	"bessonnitsa/internal/store"
	"bessonnitsa/internal/telegram"
)

func main() {
	// Structured logger — text output, debug level while the project is
	// young enough that every request is worth seeing.
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

	// Seed the admin account and sample content (no-op if users exist).
	if cfg.IsDev() {
		if err := database.Seed(db, cfg.SeedAdminLogin, cfg.SeedAdminPassword); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session store backed by Valkey. Outside development, session cookies
	// are Secure (HTTPS-only).
	sessionStore := session.NewStore(valkeyClient, !cfg.IsDev())

	// Public response cache in Valkey.
	contentCache := cache.NewContentCache(valkeyClient, cache.DefaultContentTTL)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	roleStore := store.NewRoleStore(db)
	eventStore := store.NewEventStore(db)
	categoryStore := store.NewMenuCategoryStore(db)
	imageStore := store.NewMenuImageStore(db)

	// Connect to S3-compatible object storage (optional — the app works
	// without it, with image uploads disabled).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3EventBucket, cfg.S3MenuBucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"event_bucket", cfg.S3EventBucket,
			"menu_bucket", cfg.S3MenuBucket,
		)
	} else {
		slog.Warn("s3 storage not configured — image uploads disabled")
	}

	// Telegram booking relay. Without the bot secrets the booking endpoint
	// answers a configuration error instead of forwarding.
	tgClient := telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID)
	if !tgClient.Configured() {
		slog.Warn("telegram relay not configured — bookings will be rejected")
	}

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(sessionStore, userStore)
	adminHandlers := handlers.NewAdmin(eventStore, categoryStore, imageStore, storageClient, contentCache)
	publicHandlers := handlers.NewPublic(eventStore, categoryStore, imageStore, contentCache)
	bookingHandlers := handlers.NewBooking(tgClient)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, roleStore, authHandlers, adminHandlers, publicHandlers, bookingHandlers)

	// Create the HTTP server with sensible timeouts. WriteTimeout covers
	// multi-image uploads to S3 over slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
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
