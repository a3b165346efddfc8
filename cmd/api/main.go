package main

import (
	"fmt"
	"net/http"
	"os"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/timeutil"
	"fintrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fintrack/internal/docs" // Import swagger docs
)

// @title           Fintrack API
// @version         1.0
// @description     Fintrack is a personal finance backend for tracking transactions, calendar events, bills, sales and petty cash.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Browsers may instead carry the token in the access_token cookie.

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
	timeutil.SetLocation(appConfig.Location)
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	loc := appConfig.Location
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db, loc)
	eventService := services.NewCalendarEventService(db, loc)
	pettyCashService := services.NewPettyCashService(db, loc)
	billService := services.NewBillService(db, loc)
	saleService := services.NewSaleService(db, loc)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	eventHandler := handlers.NewCalendarEventHandler(eventService)
	pettyCashHandler := handlers.NewPettyCashHandler(pettyCashService)
	billHandler := handlers.NewBillHandler(billService)
	saleHandler := handlers.NewSaleHandler(saleService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CookieToHeader())

	// CORS middleware; credentials require a concrete origin, not a wildcard
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", appConfig.CORSOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
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
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Session endpoints
	router.POST("/token/", authHandler.Login)
	router.POST("/token/refresh/", authHandler.Refresh)
	router.POST("/token/verify/", authHandler.Verify)
	router.POST("/logout/", authHandler.Logout)

	// Everything below requires a valid access token
	protected := router.Group("/")
	protected.Use(middleware.RequireAuth())

	protected.GET("/me/", authHandler.Me)

	transactions := protected.Group("/transactions")
	transactions.GET("/", transactionHandler.List)
	transactions.POST("/", transactionHandler.Create)
	transactions.GET("/filter_by_category/", transactionHandler.FilterByCategory)
	transactions.GET("/todays_transactions/", transactionHandler.TodaysTransactions)
	transactions.GET("/filter_by_transaction_type/", transactionHandler.FilterByType)
	transactions.GET("/today_total_transactions/", transactionHandler.TodayTotals)
	transactions.GET("/yesterday_total_transactions/", transactionHandler.YesterdayTotals)
	transactions.GET("/summary/", transactionHandler.Summary)
	transactions.GET("/:id/", transactionHandler.Get)
	transactions.PUT("/:id/", transactionHandler.Update)
	transactions.PATCH("/:id/", transactionHandler.Update)
	transactions.DELETE("/:id/", transactionHandler.Delete)

	events := protected.Group("/calendar-events")
	events.GET("/", eventHandler.List)
	events.POST("/", eventHandler.Create)
	events.GET("/todays_events/", eventHandler.TodaysEvents)
	events.GET("/:id/", eventHandler.Get)
	events.PUT("/:id/", eventHandler.Update)
	events.PATCH("/:id/", eventHandler.Update)
	events.DELETE("/:id/", eventHandler.Delete)

	pettyCash := protected.Group("/petty-cash")
	pettyCash.GET("/", pettyCashHandler.List)
	pettyCash.POST("/", pettyCashHandler.Create)
	pettyCash.GET("/todays_petty_cash/", pettyCashHandler.TodaysEntries)
	pettyCash.GET("/pending_petty_cash/", pettyCashHandler.PendingEntries)
	pettyCash.GET("/total_petty_cash/", pettyCashHandler.TotalApproved)
	pettyCash.GET("/:id/", pettyCashHandler.Get)
	pettyCash.PUT("/:id/", pettyCashHandler.Update)
	pettyCash.PATCH("/:id/", pettyCashHandler.Update)
	pettyCash.DELETE("/:id/", pettyCashHandler.Delete)

	bills := protected.Group("/bills")
	bills.GET("/", billHandler.List)
	bills.POST("/", billHandler.Create)
	bills.GET("/todays_bills/", billHandler.TodaysBills)
	bills.GET("/pending_bills/", billHandler.PendingBills)
	bills.GET("/total_paid_bills/", billHandler.TotalPaid)
	bills.GET("/total_unpaid_bills/", billHandler.TotalUnpaid)
	bills.GET("/total_bills/", billHandler.Total)
	bills.GET("/:id/", billHandler.Get)
	bills.PUT("/:id/", billHandler.Update)
	bills.PATCH("/:id/", billHandler.Update)
	bills.DELETE("/:id/", billHandler.Delete)

	sales := protected.Group("/sales")
	sales.GET("/", saleHandler.List)
	sales.POST("/", saleHandler.Create)
	sales.GET("/todays_sales/", saleHandler.TodaysSales)
	sales.GET("/total_sales/", saleHandler.Total)
	sales.GET("/:id/", saleHandler.Get)
	sales.PUT("/:id/", saleHandler.Update)
	sales.PATCH("/:id/", saleHandler.Update)
	sales.DELETE("/:id/", saleHandler.Delete)

	log.Infof("Starting Fintrack backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
