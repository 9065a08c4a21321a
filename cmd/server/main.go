package main

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/pawtrail/pawtrail/backend/internal/router"
	"github.com/pawtrail/pawtrail/backend/pkg/config"
	"github.com/pawtrail/pawtrail/backend/pkg/firebase"
	"github.com/pawtrail/pawtrail/backend/validators"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()

	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(logger)
	if err != nil {
		logger.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Firebase is optional; without it the identity resolver falls back to
	// local tokens, the X-User-Id header and the dev placeholder.
	var authClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		authClient, err = firebase.InitAuth(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			logger.Fatalf("Failed to initialize Firebase: %v", err)
		}
		logger.Info("Firebase auth client initialized")
	} else {
		logger.Warn("Firebase credentials not configured, token verification disabled")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, authClient, cfg, logger)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
