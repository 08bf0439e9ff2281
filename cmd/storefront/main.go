package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course-market/internal/admin"
	"course-market/internal/catalog"
	"course-market/internal/client"
	"course-market/internal/config"
	"course-market/internal/handler"
	"course-market/internal/metrics"
	"course-market/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ValidateStorefront(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger, "storefront")
	logger.Info().
		Str("products_api", cfg.ProductAPI.BaseURL).
		Dur("timeout", cfg.ProductAPI.Timeout).
		Msg("starting course-market storefront")

	m := metrics.New("course_market_storefront")

	products, err := client.New(cfg.ProductAPI.BaseURL, logger,
		client.WithTimeout(cfg.ProductAPI.Timeout),
		client.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("failed to create products client: %w", err)
	}

	controller := admin.NewController(products, logger, admin.WithMetrics(m))
	catalogService := catalog.NewService(products, cfg.Catalog.PlaceholderImage, logger)

	mux := router.NewStorefront(
		handler.NewCatalogHandler(catalogService, logger),
		handler.NewAdminHandler(controller, logger),
		m,
		logger,
	)

	// Populate the admin list once on startup, as the page does on mount.
	// A failure is already reflected in the controller status.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = controller.Load(ctx)
	}()

	server := &http.Server{
		Addr:         cfg.Storefront.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", server.Addr).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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
