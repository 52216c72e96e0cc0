package router

import (
	"log"

	"github.com/ecotrack/backend/internal/handlers"
	"github.com/ecotrack/backend/internal/middleware"
	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/repositories"
	"github.com/ecotrack/backend/internal/services"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB) {
	// AutoMigrate PostgreSQL models
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Reaction{},
		&models.Comment{},
		&models.PasswordResetCode{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	reactionRepo := repositories.NewPostgresReactionRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	resetCodeRepo := repositories.NewPostgresResetCodeRepository(db)

	// --- Initialize Services ---
	mailService := services.NewMailService()
	reactionService := services.NewReactionService(reactionRepo, postRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	resetService := services.NewPasswordResetService(resetCodeRepo, userRepo, mailService)

	// --- Public auth routes ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)

	resetHandler := handlers.NewPasswordResetHandler(resetService)
	resetHandler.RegisterPasswordResetRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public read routes (optional authentication) ---
	public := e.Group("/api")
	public.Use(middleware.OptionalJWTAuthMiddleware())

	postHandler := handlers.NewPostHandler(postRepo, reactionService, commentService)
	postHandler.RegisterPublicPostRoutes(public)

	commentHandler := handlers.NewCommentHandler(commentService, commentRepo, postRepo)
	commentHandler.RegisterPublicCommentRoutes(public)

	userHandler := handlers.NewUserHandler(userRepo, postRepo)
	userHandler.RegisterPublicRoutes(public)
	log.Println("Public feed routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())

	authHandler.RegisterProtectedAuthRoutes(api.Group("/auth"))
	userHandler.RegisterProfileRoutes(api)
	postHandler.RegisterProtectedPostRoutes(api)
	commentHandler.RegisterProtectedCommentRoutes(api)
	log.Println("Protected routes configured.")

	log.Println("All routes configured.")
}
