package router

import (
	"log"

	"github.com/aminebkr/linkup-backend/internal/handlers"
	"github.com/aminebkr/linkup-backend/internal/middleware"
	"github.com/aminebkr/linkup-backend/internal/repositories"
	"github.com/aminebkr/linkup-backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, mgClient *mongo.Client, cfg *config.Config) {
	db := mgClient.Database("linkup")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Uploaded files are served back under a static path
	e.Static("/api/uploads", cfg.UploadDir)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	postRepo := repositories.NewMongoPostRepository(db)
	convRepo := repositories.NewMongoConversationRepository(db)
	msgRepo := repositories.NewMongoMessageRepository(db)
	notifRepo := repositories.NewMongoNotificationRepository(db)

	// --- Auth routes ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.UploadDir, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	protectedAuth := e.Group("/api/auth")
	protectedAuth.Use(middleware.JWTAuthMiddleware())
	authHandler.RegisterProtectedRoutes(protectedAuth)
	log.Println("Auth routes configured.")

	// --- User and friendship routes ---
	userGroup := e.Group("/api/user")
	userHandler := handlers.NewUserHandler(userRepo, postRepo, msgRepo, cfg.UploadDir)
	userHandler.RegisterUserRoutes(userGroup)

	friendshipHandler := handlers.NewFriendshipHandler(userRepo)
	friendshipHandler.RegisterFriendshipRoutes(userGroup)
	log.Println("User routes configured.")

	// --- Post, feed and engagement routes ---
	postGroup := e.Group("/api/posts")
	postHandler := handlers.NewPostHandler(postRepo, userRepo, cfg.UploadDir)
	postHandler.RegisterPostRoutes(postGroup)

	feedHandler := handlers.NewFeedHandler(postRepo, userRepo)
	feedHandler.RegisterFeedRoutes(postGroup)

	likeHandler := handlers.NewLikeHandler(postRepo, userRepo, notifRepo)
	likeHandler.RegisterLikeRoutes(postGroup)

	commentHandler := handlers.NewCommentHandler(postRepo, userRepo, notifRepo)
	commentHandler.RegisterCommentRoutes(postGroup)

	notificationHandler := handlers.NewNotificationHandler(notifRepo)
	notificationHandler.RegisterNotificationRoutes(postGroup)
	log.Println("Post routes configured.")

	// --- Conversation and message routes ---
	convGroup := e.Group("/api/conv")
	convHandler := handlers.NewConversationHandler(convRepo)
	convHandler.RegisterConversationRoutes(convGroup)

	msgGroup := e.Group("/api/msg")
	msgHandler := handlers.NewMessageHandler(msgRepo, cfg.UploadDir)
	msgHandler.RegisterMessageRoutes(msgGroup)
	log.Println("Conversation routes configured.")

	log.Println("All routes configured.")
}
