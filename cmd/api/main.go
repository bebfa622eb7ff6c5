package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmprice/internal/config"
	"farmprice/internal/database"
	"farmprice/internal/handler"
	"farmprice/internal/metrics"
	"farmprice/internal/repository"
	"farmprice/internal/router"
	"farmprice/internal/service"
	"farmprice/internal/snapshot"
	"farmprice/internal/upstream"

	"github.com/rs/zerolog"
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
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting farmprice API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New("farmprice")

	// Initialize session state repositories
	var (
		sessionRepo repository.SessionRepository
		likedRepo   repository.LikedRepository
	)
	switch cfg.Store.Backend {
	case config.StorePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger,
			database.WithMigration(repository.Migrate),
			database.WithMetrics(m),
		)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		sessionRepo = repository.NewSessionRepository(pool, logger)
		likedRepo = repository.NewLikedRepository(pool, logger)
	default:
		logger.Info().Int("max_sessions", cfg.Store.MaxSessions).Msg("using in-memory session store")
		sessionRepo, likedRepo = repository.NewMemoryRepositories(cfg.Store.MaxSessions, logger)
	}

	// Upstream price API client
	api := upstream.NewClient(cfg.Upstream, logger, upstream.WithMetrics(m))

	// Catalogue snapshot used when the price API is unreachable
	store := snapshot.NewStore(logger)
	if cfg.Snapshot.Enabled {
		seedSnapshot(ctx, cfg, store, logger)
	}

	// Initialize services
	catalogService := service.NewCatalogService(api, likedRepo, store, m, cfg.Catalog.SearchThreshold, logger)
	productService := service.NewProductService(api, logger)
	trendService := service.NewTrendService(api, cfg.Catalog.HistoryWindow, logger)
	likedService := service.NewLikedService(likedRepo, sessionRepo, api, m, cfg.Catalog.LikedFanout, logger)
	sessionService := service.NewSessionService(sessionRepo, logger)
	accountService := service.NewAccountService(api, sessionRepo, logger)

	// Initialize HTTP handlers
	validator := handler.NewValidator()
	handlers := router.Handlers{
		Products: handler.NewProductHandler(catalogService, productService, logger),
		Markets:  handler.NewMarketHandler(catalogService, trendService, logger),
		Liked:    handler.NewLikedHandler(likedService, logger),
		Sessions: handler.NewSessionHandler(sessionService, validator, logger),
		Accounts: handler.NewAccountHandler(accountService, validator, logger),
	}

	// Initialize router
	mux := router.New(handlers, m, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("upstream", cfg.Upstream.BaseURL).
			Str("store", cfg.Store.Backend).
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

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		if cfg.Snapshot.Enabled {
			persistSnapshot(shutdownCtx, cfg, store, logger)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// seedSnapshot loads the last catalogue snapshot from S3, falling back to the
// local file system. A missing snapshot is not fatal.
func seedSnapshot(ctx context.Context, cfg *config.Config, store *snapshot.Store, logger zerolog.Logger) {
	fileLoader := snapshot.NewFileLoader(logger)

	var s3Loader snapshot.Loader
	if cfg.S3.Enabled {
		loader, err := snapshot.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for catalogue snapshot (S3 disabled)")
	}

	loader := snapshot.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)
	if err := store.Seed(ctx, loader, cfg.Snapshot.Path); err != nil {
		logger.Warn().Err(err).Msg("no catalogue snapshot loaded; home grid will fail while the price service is down")
	}
}

// persistSnapshot writes the last known listing to the local file and, when S3
// is enabled, to the object the next start seeds from.
func persistSnapshot(ctx context.Context, cfg *config.Config, store *snapshot.Store, logger zerolog.Logger) {
	if err := store.Save(cfg.Snapshot.Path); err != nil {
		logger.Warn().Err(err).Msg("failed to save catalogue snapshot")
	}

	if !cfg.S3.Enabled {
		return
	}

	publisher, err := snapshot.NewS3Publisher(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialise S3 publisher, snapshot not uploaded")
		return
	}
	if err := store.Publish(ctx, publisher, cfg.S3.Prefix+cfg.Snapshot.Path); err != nil {
		logger.Warn().Err(err).Msg("failed to upload catalogue snapshot to S3")
	}
}
