package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/demandcast/demandcast/internal/models"
	"github.com/demandcast/demandcast/internal/services"
)

// defaultAccuracyWindowDays bounds the accuracy report when the caller does
// not ask for a specific window.
const defaultAccuracyWindowDays = 30

// GenerateRequest is the batch prediction generation request body.
type GenerateRequest struct {
	CategoryIDs []string `json:"category_ids"`
	Type        string   `json:"type"` // INVENTORY (default), TRENDING, DEMAND
}

// GenerateResponse summarizes a batch generation run.
type GenerateResponse struct {
	Results []services.BatchResult `json:"results"`
}

// PredictionListResponse wraps a category's stored predictions.
type PredictionListResponse struct {
	CategoryID  string              `json:"category_id"`
	Predictions []models.Prediction `json:"predictions"`
}

// GeneratePredictions handles admin batch generation.
// POST /v1/predictions/generate
func (h *Handler) GeneratePredictions(c *fiber.Ctx) error {
	var body GenerateRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	if len(body.CategoryIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "category_ids must not be empty",
			},
		})
	}

	predType := models.PredictionTypeInventory
	switch body.Type {
	case "", string(models.PredictionTypeInventory):
	case string(models.PredictionTypeTrending):
		predType = models.PredictionTypeTrending
	case string(models.PredictionTypeDemand):
		predType = models.PredictionTypeDemand
	default:
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "type must be one of INVENTORY, TRENDING, DEMAND",
			},
		})
	}

	results := h.predictionService.GenerateBatch(c.Context(), body.CategoryIDs, predType)

	return c.JSON(GenerateResponse{Results: results})
}

// PredictionAccuracy handles accuracy reports over archived predictions.
// GET /v1/predictions/accuracy?days=
func (h *Handler) PredictionAccuracy(c *fiber.Ctx) error {
	days := defaultAccuracyWindowDays
	if raw := c.Query("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}

	report, err := h.predictionService.GetAccuracyReport(c.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		return respondServiceError(c, err, "ACCURACY_FAILED")
	}

	return c.JSON(report)
}

// GetPrediction handles single prediction lookups.
// GET /v1/predictions/:id
func (h *Handler) GetPrediction(c *fiber.Ctx) error {
	prediction, err := h.predictionService.GetPrediction(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err, "PREDICTION_FAILED")
	}

	return c.JSON(prediction)
}

// ListPredictions handles per-category prediction listings.
// GET /v1/predictions?categoryId=&limit=
func (h *Handler) ListPredictions(c *fiber.Ctx) error {
	categoryID := c.Query("categoryId")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	predictions, err := h.predictionService.ListPredictions(c.Context(), categoryID, limit)
	if err != nil {
		return respondServiceError(c, err, "PREDICTION_FAILED")
	}

	return c.JSON(PredictionListResponse{
		CategoryID:  categoryID,
		Predictions: predictions,
	})
}
