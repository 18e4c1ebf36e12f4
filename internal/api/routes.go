package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/praperty/photo2value/internal/api/handlers"
	"github.com/praperty/photo2value/internal/services"
)

func SetupRouter(jwtSecret string, valuation *services.ValuationService, snapshots *services.SnapshotService, refreshWorker *services.RefreshWorker, ebay *services.EbayService, barcode *services.BarcodeService, research *services.ResearchService) *gin.Engine {
	router := gin.Default()

	// Get frontend dist path from env
	frontendPath := os.Getenv("FRONTEND_DIST_PATH")
	serveFrontend := frontendPath != "" && dirExists(frontendPath)

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false // Explicitly set
	router.Use(cors.New(config))
	router.Use(PrometheusMiddleware())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(jwtSecret)
	itemHandler := handlers.NewItemHandler(valuation, refreshWorker)
	insightsHandler := handlers.NewInsightsHandler()
	researchHandler := handlers.NewResearchHandler(research)
	scanHandler := handlers.NewScanHandler(barcode)
	watchlistHandler := handlers.NewWatchlistHandler()
	portfolioHandler := handlers.NewPortfolioHandler(snapshots)

	// Auth routes (no token required)
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// API routes
	api := router.Group("/api")
	api.Use(AuthRequired(jwtSecret))
	{
		// Item routes
		items := api.Group("/items")
		{
			items.GET("", itemHandler.ListItems)
			items.POST("", itemHandler.CreateItem)
			items.GET("/:id", itemHandler.GetItem)
			items.PUT("/:id", itemHandler.UpdateItem)
			items.DELETE("/:id", itemHandler.DeleteItem)
			items.POST("/:id/sold", itemHandler.MarkSold)
			items.POST("/:id/comps", itemHandler.AddComp)
			items.DELETE("/:id/comps/:compID", itemHandler.DeleteComp)
			items.POST("/:id/refresh-comps", itemHandler.RefreshComps)
			items.GET("/:id/history", itemHandler.GetHistory)
		}

		// Insight routes
		api.GET("/alerts", insightsHandler.GetAlerts)
		api.GET("/movers", insightsHandler.GetMovers)

		// Portfolio routes
		portfolio := api.Group("/portfolio")
		{
			portfolio.GET("/stats", portfolioHandler.GetStats)
			portfolio.GET("/history", portfolioHandler.GetHistory)
			portfolio.POST("/snapshot", portfolioHandler.Snapshot)
		}

		// Research and lookup routes
		api.GET("/research", researchHandler.Research)
		api.GET("/marketplaces", researchHandler.Marketplaces)
		api.GET("/scan/barcode/:code", scanHandler.LookupBarcode)
		api.GET("/products/match", scanHandler.MatchProduct)

		// Watchlist routes
		watchlist := api.Group("/watchlist")
		{
			watchlist.GET("", watchlistHandler.List)
			watchlist.POST("", watchlistHandler.Create)
			watchlist.DELETE("/:id", watchlistHandler.Delete)
		}

		// Background refresh status
		api.GET("/refresh/status", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"worker":         refreshWorker.Status(),
				"ebay_enabled":   ebay.IsEnabled(),
				"ebay_remaining": ebay.RequestsRemaining(),
			})
		})
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Serve frontend static files
	if serveFrontend {
		indexPath := filepath.Join(frontendPath, "index.html")

		// Serve static assets
		router.Static("/assets", filepath.Join(frontendPath, "assets"))

		// Serve root index.html
		router.GET("/", func(c *gin.Context) {
			c.File(indexPath)
		})

		// SPA fallback - serve index.html for all non-API routes
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path

			// Don't serve index.html for API routes
			if strings.HasPrefix(path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}

			// Serve index.html for SPA routing
			c.File(indexPath)
		})
	}

	return router
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
