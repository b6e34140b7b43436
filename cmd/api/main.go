package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daurulang/internal/authclient"
	"daurulang/internal/config"
	"daurulang/internal/database"
	"daurulang/internal/geo"
	"daurulang/internal/handler"
	"daurulang/internal/repository"
	"daurulang/internal/router"
	"daurulang/internal/service"
	"daurulang/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger, "daurulang-api")
	logger.Info().Msg("starting daurulang API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(pool, logger)
	opportunityRepo := repository.NewOpportunityRepository(pool, logger)
	tutorialRepo := repository.NewTutorialRepository(pool, logger)
	buyerRepo := repository.NewBuyerRepository(pool, logger)

	// Sessions live in memory; the sweeper stops with ctx
	sessions := session.NewStore(cfg.Session.TTL, cfg.Session.SweepInterval, logger)
	sessions.Start(ctx)
	defer sessions.Close()

	authClient := authclient.New(cfg.AuthService.BaseURL, cfg.AuthService.Timeout, logger)

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo, cfg.Listing, logger)
	opportunityService := service.NewOpportunityService(opportunityRepo, cfg.Listing.OpportunityPageSize, logger)
	tutorialService := service.NewTutorialService(tutorialRepo, logger)
	buyerService := service.NewBuyerService(buyerRepo, logger)
	authService := service.NewAuthService(authClient, sessions, logger)
	forumService := service.NewForumService(logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Catalog:     handler.NewCatalogHandler(catalogService, logger),
		Opportunity: handler.NewOpportunityHandler(opportunityService, logger),
		Tutorial:    handler.NewTutorialHandler(tutorialService, logger),
		Auth:        handler.NewAuthHandler(authService, logger),
		Forum:       handler.NewForumHandler(forumService, logger),
		Buyer:       handler.NewBuyerHandler(buyerService, geo.NewEditor(buyerRepo, cfg.Session.MapEditTTL, logger), logger),
		Ready: func(ctx context.Context) error {
			return database.Ping(ctx, pool)
		},
	}

	// Initialize router
	mux := router.New(handlers, sessions, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
