package main

import (
	"log"

	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/routes"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/stripe/stripe-go/v81"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(cfg)

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Error initializing database: %v", err)
	}

	// Initialize object storage (optional in local development)
	var storage *utils.Storage
	if cfg.MinioEndpoint != "" {
		storage, err = utils.NewStorage(cfg)
		if err != nil {
			logger.Fatalf("Error initializing object storage: %v", err)
		}
	} else {
		logger.Warn("MINIO_ENDPOINT not set, file uploads disabled")
	}

	// Stripe client key for payment intents
	if cfg.StripeSecretKey != "" {
		stripe.Key = cfg.StripeSecretKey
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, payment intents disabled")
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, storage)

	// Start server
	logger.Fatal(app.Listen(":" + cfg.ServerPort))
}
