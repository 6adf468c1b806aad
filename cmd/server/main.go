package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	gamestore "github.com/set-night/gamestore"
	"github.com/set-night/gamestore/internal/config"
	"github.com/set-night/gamestore/internal/events"
	"github.com/set-night/gamestore/internal/handler"
	"github.com/set-night/gamestore/internal/middleware"
	"github.com/set-night/gamestore/internal/repository"
	"github.com/set-night/gamestore/internal/service"
	"github.com/set-night/gamestore/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL, repository.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(gamestore.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := repository.NewPGStore(pool)

	// Optional side channels. Interfaces stay nil when not configured.
	var publisher service.OrderPublisher
	if cfg.RabbitURL != "" {
		p, err := events.NewPublisher(cfg.RabbitURL, cfg.OrderExchange)
		if err != nil {
			slog.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer p.Close()
		publisher = p
		slog.Info("order events enabled", "exchange", cfg.OrderExchange)
	}

	var tgLogger service.PurchaseLogger
	if cfg.TelegramLogEnabled() {
		b, err := telegram.NewBot(cfg.LogTelegramBotToken)
		if err != nil {
			slog.Error("failed to create telegram bot", "error", err)
			os.Exit(1)
		}
		tgLogger = telegram.NewTelegramLogger(b, cfg)
		slog.Info("telegram log chat enabled", "chat_id", cfg.LogTelegramChatID)
	}

	// Initialize services
	cartService := service.NewCartService(store)
	checkoutService := service.NewCheckoutService(store, publisher, tgLogger, cfg.CheckoutTimeout)
	ownershipService := service.NewOwnershipService(store)
	orderService := service.NewOrderService(store)

	// HTTP
	router := chi.NewRouter()
	router.Use(chimw.RequestID, chimw.RealIP, middleware.Logging, middleware.Recover)

	apiConfig := huma.DefaultConfig("Game Store", "1.0.0")
	apiConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		middleware.SecurityScheme: {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(router, apiConfig)
	api.UseMiddleware(middleware.NewAuthenticator(cfg.JWTSecret).Auth(api))

	handler.New(handler.Deps{
		CartService:      cartService,
		CheckoutService:  checkoutService,
		OwnershipService: ownershipService,
		OrderService:     orderService,
		DB:               store,
	}).Register(api)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	go func() {
		slog.Info("starting http server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown", "error", err)
	}
	slog.Info("server stopped gracefully")
}
