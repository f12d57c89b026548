package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fonfolio/internal/api"
	"fonfolio/internal/api/flash"
	"fonfolio/internal/config"
	"fonfolio/internal/database"
	"fonfolio/internal/scheduler"
	"fonfolio/internal/service"
	"fonfolio/internal/store"
	"fonfolio/internal/store/sheets"
	"fonfolio/internal/store/sqlite"
	"fonfolio/internal/tefas"
	"fonfolio/internal/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Open the holding store
	holdingStore, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open holding store: %v", err)
	}
	defer cleanup()

	log.Printf("Using %s holding store", cfg.Store.Backend)

	// Create the price feed client and services
	feed := tefas.NewFundClient(cfg.PriceFeed.BaseURL)
	portfolioService := service.NewPortfolioService(holdingStore, feed)

	// Presentation dependencies
	flashes, err := flash.NewJar(cfg.Web.FlashKey)
	if err != nil {
		log.Fatalf("Failed to set up flash messages: %v", err)
	}
	templates, err := web.Templates()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// Create router
	router := api.NewRouter(portfolioService, flashes, templates, cfg)

	// Daily valuation report
	reports, err := scheduler.New(cfg.Report.Schedule, portfolioService)
	if err != nil {
		log.Fatalf("Failed to set up report schedule: %v", err)
	}
	reports.Start()
	defer reports.Stop()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// openStore builds the configured store backend. The returned cleanup
// releases any underlying connection.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case "sheets":
		s, err := sheets.New(ctx, cfg.Store)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil

	case "sqlite":
		db, err := database.Open(cfg.Store.DBPath)
		if err != nil {
			return nil, nil, err
		}
		s, err := sqlite.New(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
