package main

import (
	"log"

	"github.com/aminebkr/linkup-backend/internal/router"
	"github.com/aminebkr/linkup-backend/pkg/cache"
	"github.com/aminebkr/linkup-backend/pkg/config"
	"github.com/aminebkr/linkup-backend/pkg/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Initialize database connection (loads .env first)
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	cfg := config.Load()

	// Optional feed cache, best effort
	cache.InitRedis(cfg.RedisAddr)
	defer cache.Close()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Mongo, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
