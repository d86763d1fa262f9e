package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/demandcast/demandcast/internal/models"
)

func TestHandler_TrendingProducts(t *testing.T) {
	sales := &fakeSalesRepo{trending: []models.TrendingItem{
		{ProductID: "prod-1", TotalQuantity: 120},
		{ProductID: "prod-2", TotalQuantity: 80},
	}}
	app := newTestApp(sales, newFakePredictionRepo())

	req := httptest.NewRequest("GET", "/v1/trending?categoryId=ELECTRONICS&limit=5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d", fiber.StatusOK, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var trendingResp TrendingResponse
	if err := json.Unmarshal(body, &trendingResp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if trendingResp.CategoryID != "ELECTRONICS" {
		t.Errorf("Expected category ELECTRONICS, got %s", trendingResp.CategoryID)
	}
	if len(trendingResp.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(trendingResp.Items))
	}
	if trendingResp.Items[0].ProductID != "prod-1" {
		t.Errorf("Expected prod-1 first, got %s", trendingResp.Items[0].ProductID)
	}
}

func TestHandler_TrendingRequiresCategory(t *testing.T) {
	app := newTestApp(&fakeSalesRepo{}, newFakePredictionRepo())

	req := httptest.NewRequest("GET", "/v1/trending", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", fiber.StatusBadRequest, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if errResp.Error.Code != "INVALID_REQUEST" {
		t.Errorf("Expected INVALID_REQUEST, got %s", errResp.Error.Code)
	}
}
