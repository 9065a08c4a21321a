package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pawtrail/pawtrail/backend/internal/handlers"
	"github.com/pawtrail/pawtrail/backend/internal/middleware"
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"github.com/pawtrail/pawtrail/backend/internal/repositories"
	"github.com/pawtrail/pawtrail/backend/pkg/config"
	"github.com/pawtrail/pawtrail/backend/pkg/gemini"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, cfg *config.Config, logger *logrus.Logger) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.HealthRecord{},
		&models.Spot{},
		&models.CommunityAlert{},
		&models.Verification{},
		&models.SocialPost{},
		&models.SocialPostComment{},
		&models.SocialPostReaction{},
		&models.SocialActivity{},
	)
	if err != nil {
		logger.Fatalf("Failed to auto migrate models: %v", err)
	}
	logger.Info("PostgreSQL auto-migrations completed for all models")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Uploaded images are served straight from disk
	e.Static("/uploads", cfg.UploadDir)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	petRepo := repositories.NewPostgresPetRepository(pgdb)
	spotRepo := repositories.NewPostgresSpotRepository(pgdb)
	alertRepo := repositories.NewPostgresAlertRepository(pgdb)
	verificationRepo := repositories.NewPostgresVerificationRepository(pgdb)
	postRepo := repositories.NewPostgresSocialPostRepository(pgdb)
	commentRepo := repositories.NewPostgresSocialCommentRepository(pgdb)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	activityRepo := repositories.NewPostgresActivityRepository(pgdb)
	analysisRepo := repositories.NewMongoFoodAnalysisRepository(mgClient.Database("pawtrail"))

	geminiClient := gemini.NewClient(cfg.GeminiAPIKey, logger)

	// --- API routes with identity resolution ---
	api := e.Group("/api/v1")
	api.Use(middleware.Identity(firebaseAuthClient, cfg.JWTSecret, cfg.Env))

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)

	petHandler := handlers.NewPetHandler(petRepo, analysisRepo)
	petHandler.RegisterPetRoutes(api)

	spotHandler := handlers.NewSpotHandler(spotRepo)
	spotHandler.RegisterSpotRoutes(api)

	communityHandler := handlers.NewCommunityHandler(alertRepo, verificationRepo, userRepo)
	communityHandler.RegisterCommunityRoutes(api)

	socialHandler := handlers.NewSocialHandler(postRepo, commentRepo, reactionRepo, activityRepo, userRepo, cfg.UploadDir)
	socialHandler.RegisterSocialRoutes(api)

	activityHandler := handlers.NewActivityHandler(activityRepo, userRepo)
	activityHandler.RegisterActivityRoutes(api)

	foodAnalysisHandler := handlers.NewFoodAnalysisHandler(petRepo, analysisRepo, geminiClient, cfg.UploadDir, logger)
	foodAnalysisHandler.RegisterFoodAnalysisRoutes(api)

	logger.Info("All routes configured")
}
