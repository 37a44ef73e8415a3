package main

import (
	"context"                           // context package is needed for Redis operations
	"log"                               // log package is needed for logging
	"leave_tracker/internal/api"        // Custom package for API handlers
	"leave_tracker/internal/config"     // Custom package for configuration
	"leave_tracker/internal/ledger"     // Balance ledger
	"leave_tracker/internal/leave"      // Request lifecycle service
	"leave_tracker/internal/middleware" // Custom package for middleware
	"leave_tracker/internal/notify"     // Decision notifications
	"leave_tracker/internal/store"      // Persistence stores

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Wire the core: stores, ledger, notifier queue, lifecycle service
	users := store.NewGormUserStore(db)
	leaves := store.NewGormLeaveStore(db)
	ldg := ledger.New(users)
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	dispatcher := notify.NewDispatcher(mailer, 64)
	defer dispatcher.Close()
	svc := leave.NewService(users, leaves, ldg, dispatcher)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Allow the browser client plus local dev origins
	origins := []string{"http://localhost:3000", "http://localhost:3001"}
	if cfg.ClientURL != "" {
		origins = append(origins, cfg.ClientURL)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "Server is running"})
	})

	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", api.RegisterHandler(users))          // Registration endpoint
	authGroup.POST("/login", api.LoginHandler(users, cfg.JWTSecret)) // Login endpoint
	authGroup.GET("/profile", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.ProfileHandler(users))

	// Leave routes (protected by JWT)
	leaveGroup := r.Group("/api/leave")
	leaveGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	leaveGroup.POST("/apply", api.ApplyLeaveHandler(svc, redisClient))    // Apply endpoint
	leaveGroup.GET("/myLeaves", api.MyLeavesHandler(svc, redisClient))    // Own requests endpoint
	leaveGroup.GET("/balance", api.LeaveBalanceHandler(svc, redisClient)) // Balance endpoint

	// Admin routes (protected, admin only)
	adminGroup := leaveGroup.Group("")
	adminGroup.Use(middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/all", api.AllLeavesHandler(svc, redisClient))           // All requests endpoint
	adminGroup.PUT("/status/:id", api.UpdateStatusHandler(svc, redisClient)) // Decision endpoint
	adminGroup.GET("/analytics", api.AnalyticsHandler(svc, redisClient))     // Analytics endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
