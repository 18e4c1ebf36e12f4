package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/praperty/photo2value/internal/api"
	"github.com/praperty/photo2value/internal/database"
	"github.com/praperty/photo2value/internal/services"
)

func main() {
	// Load .env if present, real environment wins
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./photo2value.db"
	}

	// Initialize database
	if err := database.Initialize(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-change-me"
		log.Println("WARNING: JWT_SECRET not set, using insecure development secret")
	}

	// Initialize eBay comp search (disabled without a token)
	ebayToken := os.Getenv("EBAY_API_TOKEN")
	ebayDailyLimit := 100 // Default free tier limit
	if limitStr := os.Getenv("EBAY_DAILY_LIMIT"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			ebayDailyLimit = limit
		}
	}
	ebayService := services.NewEbayService(ebayToken, ebayDailyLimit)
	if !ebayService.IsEnabled() {
		log.Println("EBAY_API_TOKEN not set, comp refresh will run without eBay data")
	}

	// Initialize services
	valuationService := services.NewValuationService(database.GetDB())
	researchService := services.NewResearchService(database.GetDB())
	barcodeService := services.NewBarcodeService(os.Getenv("BARCODE_API_KEY"))

	// Initialize refresh worker for queued comp lookups
	refreshWorker := services.NewRefreshWorker(ebayService, valuationService)

	// Initialize snapshot service for daily value tracking
	snapshotService := services.NewSnapshotService(valuationService)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start refresh worker in background with panic recovery
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("PANIC in refresh worker: %v - restarting in 30 seconds", r)
					}
				}()
				refreshWorker.Start(ctx)
			}()

			select {
			case <-ctx.Done():
				return // Graceful shutdown
			case <-time.After(30 * time.Second):
				log.Println("Refresh worker restarting after panic recovery...")
			}
		}
	}()

	// Start snapshot service in background
	go snapshotService.Start(ctx)

	// Setup router
	router := api.SetupRouter(jwtSecret, valuationService, snapshotService, refreshWorker, ebayService, barcodeService, researchService)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop background workers
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
