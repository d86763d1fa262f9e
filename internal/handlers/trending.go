package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/demandcast/demandcast/internal/models"
)

// TrendingResponse wraps the trending products ranking.
type TrendingResponse struct {
	CategoryID string                `json:"category_id"`
	Items      []models.TrendingItem `json:"items"`
}

// TrendingProducts handles trending product rankings.
// GET /v1/trending?categoryId=&limit=
func (h *Handler) TrendingProducts(c *fiber.Ctx) error {
	categoryID := c.Query("categoryId")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	items, err := h.trendingService.GetTrendingProducts(c.Context(), categoryID, limit)
	if err != nil {
		return respondServiceError(c, err, "TRENDING_FAILED")
	}

	return c.JSON(TrendingResponse{
		CategoryID: categoryID,
		Items:      items,
	})
}
