package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"nestegg/internal/config"
	"nestegg/internal/database"
	"nestegg/internal/handlers"
	"nestegg/internal/ledger"
	"nestegg/internal/logger"
	"nestegg/internal/middleware"
	"nestegg/internal/notify"
	"nestegg/internal/services"
	"nestegg/internal/state"
	"nestegg/internal/validator"

	_ "nestegg/internal/docs" // Import swagger docs
)

// @title           Nestegg API
// @version         1.0
// @description     Nestegg is a personal investment tracker: record investments, log deposits and withdrawals, view reports, and export or import the ledger as JSON.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// State, ledger, and notifications
	db := dbManager.DB()
	stateStore := state.NewGormStore(db)
	store := ledger.NewStore(stateStore)

	center := notify.NewCenter()
	// Startup advisory scan over an independent snapshot of the persisted
	// slots; later scans run on demand against the live store.
	if added := center.ScanStore(stateStore); added > 0 {
		log.Infow("startup notification scan", "added", added)
	}

	// Services and handlers
	userService := services.NewUserService(db)

	authHandler := handlers.NewAuthHandler(userService)
	investmentHandler := handlers.NewInvestmentHandler(store)
	transactionHandler := handlers.NewTransactionHandler(store)
	notificationHandler := handlers.NewNotificationHandler(center, store)
	reportHandler := handlers.NewReportHandler(store)
	dataHandler := handlers.NewDataHandler(store)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/types", investmentHandler.GetInvestmentTypes)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.GET("/:id/transactions", investmentHandler.GetInvestmentTransactions)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.RecordTransaction)
	transactions.GET("", transactionHandler.GetTransactions)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.POST("/scan", notificationHandler.Scan)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.DELETE("", notificationHandler.Clear)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/performance", reportHandler.GetPerformance)
	reports.GET("/monthly", reportHandler.GetMonthlyFlows)
	reports.GET("/summary", reportHandler.GetSummary)

	// Data export/import routes
	data := protected.Group("/data")
	data.GET("/export", dataHandler.Export)
	data.POST("/import", dataHandler.Import)

	log.Infof("Starting Nestegg backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
