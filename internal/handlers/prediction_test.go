package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/demandcast/demandcast/internal/models"
	"github.com/demandcast/demandcast/internal/services"
)

func TestHandler_GeneratePredictions(t *testing.T) {
	sales := &fakeSalesRepo{records: salesHistory(40, func(i int) float64 { return float64(i + 1) })}
	predictions := newFakePredictionRepo()
	app := newTestApp(sales, predictions)

	body := strings.NewReader(`{"category_ids": ["ELECTRONICS", "BOOKS"]}`)
	req := httptest.NewRequest("POST", "/v1/predictions/generate", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d", fiber.StatusOK, resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var genResp GenerateResponse
	if err := json.Unmarshal(raw, &genResp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(genResp.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(genResp.Results))
	}
	for _, result := range genResp.Results {
		if !result.Generated {
			t.Errorf("Expected category %s to generate, got error %q", result.CategoryID, result.Error)
		}
	}
	if len(predictions.inserted) != 2 {
		t.Errorf("Expected 2 persisted predictions, got %d", len(predictions.inserted))
	}
	for _, p := range predictions.inserted {
		if p.Type != models.PredictionTypeInventory {
			t.Errorf("Expected default INVENTORY type, got %s", p.Type)
		}
	}
}

func TestHandler_GeneratePredictionsValidation(t *testing.T) {
	app := newTestApp(&fakeSalesRepo{}, newFakePredictionRepo())

	tests := []struct {
		name string
		body string
	}{
		{"empty categories", `{"category_ids": []}`},
		{"bad type", `{"category_ids": ["BOOKS"], "type": "WEATHER"}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/v1/predictions/generate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to perform request: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("Expected status %d, got %d", fiber.StatusBadRequest, resp.StatusCode)
			}
		})
	}
}

func TestHandler_PredictionAccuracy(t *testing.T) {
	predictions := newFakePredictionRepo()
	predictions.archived = []models.Prediction{
		{CategoryID: "BOOKS", ConfidenceScore: 0.8, Status: models.PredictionStatusArchived},
		{CategoryID: "BOOKS", ConfidenceScore: 0.6, Status: models.PredictionStatusArchived},
	}
	app := newTestApp(&fakeSalesRepo{}, predictions)

	req := httptest.NewRequest("GET", "/v1/predictions/accuracy", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d", fiber.StatusOK, resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var report services.AccuracyReport
	if err := json.Unmarshal(raw, &report); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if report.TotalPredictions != 2 {
		t.Errorf("Expected 2 predictions in report, got %d", report.TotalPredictions)
	}
	if report.ByCategory["BOOKS"].Count != 2 {
		t.Errorf("Expected 2 BOOKS predictions, got %d", report.ByCategory["BOOKS"].Count)
	}
}

func TestHandler_GetPrediction(t *testing.T) {
	predictions := newFakePredictionRepo()
	predictions.byID["pred-42"] = &models.Prediction{
		ID:         "pred-42",
		Type:       models.PredictionTypeTrending,
		CategoryID: "BOOKS",
		Status:     models.PredictionStatusActive,
		ValidUntil: time.Now().Add(24 * time.Hour),
	}
	app := newTestApp(&fakeSalesRepo{}, predictions)

	req := httptest.NewRequest("GET", "/v1/predictions/pred-42", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d", fiber.StatusOK, resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var p models.Prediction
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if p.ID != "pred-42" {
		t.Errorf("Expected pred-42, got %s", p.ID)
	}
}

func TestHandler_GetPredictionNotFound(t *testing.T) {
	app := newTestApp(&fakeSalesRepo{}, newFakePredictionRepo())

	req := httptest.NewRequest("GET", "/v1/predictions/missing", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected status %d, got %d", fiber.StatusNotFound, resp.StatusCode)
	}
}
