package main

import (
	"os"
	"strconv"

	"github.com/bookworm-labs/book-review-hub/internal/auth"
	"github.com/bookworm-labs/book-review-hub/internal/book"
	"github.com/bookworm-labs/book-review-hub/internal/health"
	"github.com/bookworm-labs/book-review-hub/internal/middleware"
	"github.com/bookworm-labs/book-review-hub/internal/review"
	"github.com/bookworm-labs/book-review-hub/internal/user"
	"github.com/bookworm-labs/book-review-hub/pkg/database"
	"github.com/bookworm-labs/book-review-hub/pkg/logger"
	"github.com/bookworm-labs/book-review-hub/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (optional)
	_ = godotenv.Load()

	// Initialize logger
	logLevel := logger.INFO
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logLevel = logger.LogLevel(level)
	}
	jsonFormat := os.Getenv("LOG_FORMAT") == "json"
	logger.Init(logLevel, jsonFormat, os.Stdout)

	log := logger.GetLogger().WithContext("component", "api_server")
	log.Info("starting_api_server", "version", "1.0.0")

	// Initialize database
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/bookhub.db"
	}

	if err := database.InitDatabase(dbPath); err != nil {
		log.Error("failed_to_initialize_database", "error", err.Error(), "path", dbPath)
		os.Exit(1)
	}
	defer database.Close()

	// Get JWT secret from environment or use default (change in production!)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-this-in-production"
		log.Warn("using_default_jwt_secret", "message", "Set JWT_SECRET environment variable in production!")
	}

	// Frontend URL from environment or use default
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
		log.Info("using_default_frontend_url", "url", frontendURL)
	}

	// Rate limit from environment or use default
	rps := 10.0
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			rps = parsed
		}
	}

	// Initialize handlers
	authHandler := auth.NewHandler(jwtSecret)
	bookHandler := book.NewHandler()
	reviewHandler := review.NewHandler()
	userHandler := user.NewHandler()
	healthHandler := health.NewHandler()
	metricsHandler := metrics.NewHandler()

	// Setup Gin router
	router := gin.Default()

	// CORS middleware configuration
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{frontendURL}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.ExposeHeaders = []string{"Content-Length"}
	config.AllowCredentials = true
	router.Use(cors.New(config))
	router.Use(metrics.Middleware())
	router.Use(middleware.RateLimit(rps, int(rps)*2))

	// Root banner and operational endpoints
	router.GET("/", func(c *gin.Context) {
		c.String(200, "Book Review API is running")
	})
	router.GET("/health", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)
	router.GET("/metrics", metricsHandler.Metrics)

	// Auth routes (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}
	// Protected account routes
	protectedAuth := router.Group("/auth")
	protectedAuth.Use(auth.AuthMiddleware(jwtSecret))
	{
		protectedAuth.POST("/change-password", authHandler.ChangePassword)
	}

	// Book routes (public reads, protected writes)
	bookGroup := router.Group("/books")
	{
		bookGroup.GET("", bookHandler.ListBooks)       // List/search books with ratings
		bookGroup.GET("/:id", bookHandler.GetBookByID) // Book detail with reviews

		protected := bookGroup.Group("")
		protected.Use(auth.AuthMiddleware(jwtSecret))
		{
			protected.POST("", bookHandler.CreateBook)       // Create book
			protected.PUT("/:id", bookHandler.UpdateBook)    // Update book (creator only)
			protected.DELETE("/:id", bookHandler.DeleteBook) // Delete book (creator only)
		}
	}

	// Review routes (public reads, protected writes)
	reviewGroup := router.Group("/reviews")
	{
		reviewGroup.GET("/:bookId", reviewHandler.GetReviewsByBook) // All reviews for a book

		protected := reviewGroup.Group("")
		protected.Use(auth.AuthMiddleware(jwtSecret))
		{
			protected.POST("", reviewHandler.AddReview)          // Add review (one per user per book)
			protected.PUT("/:id", reviewHandler.UpdateReview)    // Update review (author only)
			protected.DELETE("/:id", reviewHandler.DeleteReview) // Delete review (author only)
		}
	}

	// User routes (all protected)
	userGroup := router.Group("/users")
	userGroup.Use(auth.AuthMiddleware(jwtSecret))
	{
		userGroup.GET("/me", userHandler.GetProfile) // Get current user profile
	}

	// Get port from environment or use default
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("starting_api_server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("failed_to_start_api_server", "error", err.Error())
		os.Exit(1)
	}
}
