package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hospital-management-server/internal/config"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/routes"
)

func main() {
	// Load environment variables; a missing .env falls back to the process env
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database connection and run migrations
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	// Bootstrap the department directory and the default admin account
	if err := models.Seed(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Error seeding database: %v", err)
	}

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes - passing DB and config to let routes.go create the handlers
	routes.SetupRoutes(router, db, cfg)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Server running on port %s\n", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
