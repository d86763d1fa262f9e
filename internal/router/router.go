// Package router wires the fiber app: middlewares, routes and handlers.
package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/demandcast/demandcast/internal/config"
	"github.com/demandcast/demandcast/internal/handlers"
	"github.com/demandcast/demandcast/internal/logging"
	"github.com/demandcast/demandcast/internal/middleware"
	"github.com/demandcast/demandcast/internal/services"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, forecastService *services.ForecastService,
	trendingService *services.TrendingService, predictionService *services.PredictionService,
	cfg config.Config,
) *handlers.Handler {
	h := handlers.New(logger, forecastService, trendingService, predictionService)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Forecast Routes
	v1.Get("/forecast/inventory", h.InventoryForecast)
	v1.Get("/forecast/demand", h.DemandForecast)
	v1.Get("/forecast/categories/:categoryId/trends", h.CategoryTrends)

	// Trending Routes
	v1.Get("/trending", h.TrendingProducts)

	// Prediction Routes. Accuracy is registered before the :id lookup so the
	// literal path wins.
	v1.Post("/predictions/generate", h.GeneratePredictions)
	v1.Get("/predictions/accuracy", h.PredictionAccuracy)
	v1.Get("/predictions/:id", h.GetPrediction)
	v1.Get("/predictions", h.ListPredictions)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, forecastService *services.ForecastService,
	trendingService *services.TrendingService, predictionService *services.PredictionService,
	cfg config.Config,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Demandcast API",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, forecastService, trendingService, predictionService, cfg)

	return app
}
