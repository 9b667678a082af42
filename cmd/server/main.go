package main

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/warbler-api/internal/config"
	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/database"
	"github.com/yukikurage/warbler-api/internal/handlers"
	"github.com/yukikurage/warbler-api/internal/logger"
	"github.com/yukikurage/warbler-api/internal/middleware"
	"github.com/yukikurage/warbler-api/internal/monitoring"
	"github.com/yukikurage/warbler-api/internal/repository"
	"github.com/yukikurage/warbler-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), monitoring.InstrumentHandler(), middleware.NoCache())

	store, err := newSessionStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create session store")
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize AI service, left nil without an API key
	var drafter services.MessageDrafter
	if cfg.OpenAIAPIKey != "" {
		drafter = services.NewAIService(cfg.OpenAIAPIKey)
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	authService := services.NewAuthService(userRepo)
	relationshipService := services.NewRelationshipService(userRepo, messageRepo, followRepo, likeRepo)
	feedService := services.NewFeedService(userRepo, messageRepo, followRepo, likeRepo)
	messageService := services.NewMessageService(userRepo, messageRepo, drafter)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService, relationshipService, feedService)
	messageHandler := handlers.NewMessageHandler(messageService, relationshipService, feedService)
	timelineHandler := handlers.NewTimelineHandler(feedService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Warbler API is running",
		})
	})
	r.GET("/metrics", monitoring.Handler())

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		api.GET("/timeline", middleware.RequireAuth(), timelineHandler.Home)

		// User routes, profile reads are public
		users := api.Group("/users")
		{
			users.GET("", userHandler.SearchUsers)
			users.PATCH("/me", middleware.RequireAuth(), userHandler.UpdateProfile)
			users.DELETE("/me", middleware.RequireAuth(), userHandler.DeleteAccount)
			users.GET("/me/likes", middleware.RequireAuth(), userHandler.ListLikes)
			users.GET("/:id", middleware.OptionalAuth(), userHandler.GetUser)
			users.GET("/:id/following", middleware.RequireAuth(), userHandler.ListFollowing)
			users.GET("/:id/followers", middleware.RequireAuth(), userHandler.ListFollowers)
			users.POST("/:id/follow", middleware.RequireAuth(), userHandler.Follow)
			users.DELETE("/:id/follow", middleware.RequireAuth(), userHandler.Unfollow)
		}

		// Message routes
		messages := api.Group("/messages")
		{
			messages.POST("", middleware.RequireAuth(), messageHandler.CreateMessage)
			messages.POST("/suggest", middleware.RequireAuth(), messageHandler.SuggestMessages)
			messages.GET("/:id", middleware.OptionalAuth(), middleware.RequireMessage(), messageHandler.GetMessage)
			messages.DELETE("/:id", middleware.RequireAuth(), middleware.RequireMessage(), middleware.RequireMessageOwner(), messageHandler.DeleteMessage)
			messages.POST("/:id/like", middleware.RequireAuth(), middleware.RequireMessage(), messageHandler.ToggleLike)
		}
	}

	// Start server
	logrus.WithField("port", cfg.Port).Info("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionStore == "cookie" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	return redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
}
