// Package handlers contains the fiber HTTP handlers for the forecasting API.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/demandcast/demandcast/internal/logging"
	"github.com/demandcast/demandcast/internal/models"
	"github.com/demandcast/demandcast/internal/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger            *logging.Logger
	forecastService   *services.ForecastService
	trendingService   *services.TrendingService
	predictionService *services.PredictionService
}

// New creates a new handler instance
func New(logger *logging.Logger, forecastService *services.ForecastService,
	trendingService *services.TrendingService, predictionService *services.PredictionService,
) *Handler {
	return &Handler{
		logger:            logger,
		forecastService:   forecastService,
		trendingService:   trendingService,
		predictionService: predictionService,
	}
}

// respondServiceError maps a service layer error onto an HTTP response.
func respondServiceError(c *fiber.Ctx, err error, fallbackCode string) error {
	if svcErr, ok := err.(*services.ServiceError); ok {
		status := fiber.StatusInternalServerError
		switch svcErr.Code {
		case services.CodeInvalidRequest:
			status = fiber.StatusBadRequest
		case services.CodeNotFound:
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Details: svcErr.Details,
			},
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    fallbackCode,
			Message: err.Error(),
		},
	})
}
