package analytics

import (
	"math"
	"time"

	"github.com/demandcast/demandcast/internal/models"
)

// Common test data and helpers for the analytics tests

var testBaseDate = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

// generateDailySales creates one record per consecutive day with the given quantities.
func generateDailySales(quantities []float64) []models.SalesRecord {
	records := make([]models.SalesRecord, len(quantities))
	for i, q := range quantities {
		records[i] = models.SalesRecord{
			ProductID:  "prod-1",
			ShopID:     "shop-1",
			CategoryID: "ELECTRONICS",
			Date:       testBaseDate.AddDate(0, 0, i),
			Quantity:   q,
			Revenue:    q * 10,
			OrderCount: 1,
		}
	}
	return records
}

// generateIncreasingSales creates n daily records starting at start,
// increasing by step each day.
func generateIncreasingSales(n int, start, step float64) []models.SalesRecord {
	quantities := make([]float64, n)
	for i := range quantities {
		quantities[i] = start + step*float64(i)
	}
	return generateDailySales(quantities)
}

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
