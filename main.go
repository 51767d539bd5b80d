package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"greencycle-server/config"
	"greencycle-server/database"
	"greencycle-server/jobs"
	"greencycle-server/middleware"
	"greencycle-server/routes"
	"greencycle-server/services"
	ws "greencycle-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security middleware stack
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())
	middleware.StartRateLimiterCleanup()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "GreenCycle Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Collector live feed hub: new pending reports are pushed to every
	// connected collector
	collectorHub := ws.NewHub()
	go collectorHub.Run()
	routes.InitCollectorHub(collectorHub)

	router.GET("/api/v1/ws/collector", middleware.AuthMiddleware(), ws.HandleCollector(collectorHub))

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			reportRoutes := protected.Group("/reports")
			routes.RegisterReportRoutes(reportRoutes)

			collectorRoutes := protected.Group("/collector")
			routes.RegisterCollectorRoutes(collectorRoutes)

			routes.RegisterTransactionRoutes(protected)

			rewardRoutes := protected.Group("/rewards")
			routes.RegisterRewardRoutes(rewardRoutes)

			notificationRoutes := protected.Group("/notifications")
			routes.RegisterNotificationRoutes(notificationRoutes)
		}

		// Admin routes (protected with admin authentication)
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware())
		routes.RegisterAdminRoutes(adminRoutes)
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start background jobs
	balanceJob := jobs.NewBalanceCacheJob(services.NewLedgerService(database.DB))
	balanceJob.Start()
	defer balanceJob.Stop()

	log.Printf("🚀 Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
