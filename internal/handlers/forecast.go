package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/demandcast/demandcast/internal/models"
)

// InventoryForecast handles on-demand inventory forecasts.
// GET /v1/forecast/inventory?categoryId=&productId=&days=
func (h *Handler) InventoryForecast(c *fiber.Ctx) error {
	scope := models.Scope{
		ProductID:  c.Query("productId"),
		CategoryID: c.Query("categoryId"),
	}
	days := parseDays(c.Query("days"))

	result, err := h.forecastService.GenerateForecast(c.Context(), scope, days)
	if err != nil {
		return respondServiceError(c, err, "FORECAST_FAILED")
	}

	return c.JSON(result)
}

// DemandForecast handles per-product demand forecasts.
// GET /v1/forecast/demand?productId=&days=
func (h *Handler) DemandForecast(c *fiber.Ctx) error {
	productID := c.Query("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "productId is required",
			},
		})
	}
	days := parseDays(c.Query("days"))

	result, err := h.forecastService.GenerateForecast(c.Context(), models.Scope{ProductID: productID}, days)
	if err != nil {
		return respondServiceError(c, err, "FORECAST_FAILED")
	}

	return c.JSON(result)
}

// CategoryTrends handles category-level trend forecasts.
// GET /v1/forecast/categories/:categoryId/trends
func (h *Handler) CategoryTrends(c *fiber.Ctx) error {
	categoryID := c.Params("categoryId")
	days := parseDays(c.Query("days"))

	result, err := h.forecastService.GenerateForecast(c.Context(), models.Scope{CategoryID: categoryID}, days)
	if err != nil {
		return respondServiceError(c, err, "FORECAST_FAILED")
	}

	return c.JSON(result)
}

// parseDays parses the forecast horizon query parameter. Zero means "use the
// configured default"; the service applies it.
func parseDays(raw string) int {
	if raw == "" {
		return 0
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0
	}
	return days
}
