package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/splitmate-app/splitmate-backend/config"
	"github.com/splitmate-app/splitmate-backend/logger"
	"github.com/splitmate-app/splitmate-backend/repository"
	"github.com/splitmate-app/splitmate-backend/routes"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Infow(".env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("Failed to load configuration", "error", err)
	}

	// Initialize New Relic
	var app *newrelic.Application
	if cfg.NewRelicLicenseKey != "" {
		app, err = newrelic.NewApplication(
			newrelic.ConfigAppName("SplitMate API"),
			newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			log.Warnw("Failed to initialize New Relic", "error", err)
		}
	}

	// Initialize database
	if err := repository.InitDB(&cfg.Database); err != nil {
		log.Fatalw("Failed to initialize database", "error", err)
	}
	defer repository.CloseDB()

	// Set up Gin router
	router := gin.Default()

	if app != nil {
		router.Use(nrgin.Middleware(app))
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(router, cfg.Server.JwtSecretKey)

	log.Infow("Server starting", "port", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalw("Failed to start server", "error", err)
	}
}
