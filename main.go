package main

import (
	"log"
	"time"

	"taskhive-be/internal/cache"
	"taskhive-be/internal/config"
	"taskhive-be/internal/controllers"
	"taskhive-be/internal/database"
	"taskhive-be/internal/jwt"
	"taskhive-be/internal/mailer"
	"taskhive-be/internal/middleware"
	"taskhive-be/internal/oauth"
	"taskhive-be/internal/realtime"
	"taskhive-be/internal/repository"
	"taskhive-be/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	listRepo := repository.NewListRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize the realtime hub (connection registry + broadcaster)
	hub := realtime.NewHub(jwtService)

	// Initialize external collaborators
	smtpMailer := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	googleProvider := oauth.NewGoogleProvider(oauth.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.BackendURL + "/api/v1/auth/google/callback",
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, smtpMailer)
	listService := service.NewListService(listRepo, userRepo, taskRepo, cacheClient, hub)
	taskService := service.NewTaskService(taskRepo, listService, cacheClient, hub)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, googleProvider, cfg.FrontendURL)
	listController := controllers.NewListController(listService)
	taskController := controllers.NewTaskController(taskService)
	qrcodeController := controllers.NewQRCodeController(cfg.FrontendURL)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// WebSocket endpoint; clients authenticate over the socket itself
	router.GET("/ws", realtime.ServeWS(hub))

	// API v1 routes group with general rate limiting
	api := router.Group("/api/v1")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.GET("/google", authController.GoogleLogin)
			auth.GET("/google/callback", authController.GoogleCallback)
			auth.POST("/password-reset/request", authController.RequestPasswordReset)
			auth.POST("/password-reset/verify", authController.VerifyOTP)
			auth.POST("/password-reset", authController.ResetPassword)
		}

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			lists := protected.Group("/lists")
			{
				lists.POST("", listController.Create)
				lists.GET("", listController.GetAll)
				lists.GET("/:id", listController.Get)
				lists.GET("/:id/qrcode", qrcodeController.GenerateQRCode)
				lists.PUT("/:id", middleware.RequireListEdit(listRepo, "id"), listController.Update)
				lists.DELETE("/:id", listController.Delete)
				lists.POST("/:id/share", middleware.RequireListEdit(listRepo, "id"), listController.Share)
				lists.DELETE("/:id/share", middleware.RequireListEdit(listRepo, "id"), listController.RemoveShare)
			}

			tasks := protected.Group("/tasks")
			tasks.Use(middleware.RequireListEdit(listRepo, "listId"))
			{
				tasks.POST("/:listId", taskController.Create)
				tasks.PUT("/:listId/:id", taskController.Update)
				tasks.DELETE("/:listId/:id", taskController.Delete)
			}
		}
	}

	// Start the server
	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
