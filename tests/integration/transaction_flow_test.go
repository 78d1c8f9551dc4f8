package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestTransactionFlow_CreateListUpdateDelete(t *testing.T) {
	app := setupApp(t)
	categories := seedCategories(t, app.DB)
	accessToken, _, _ := app.registerUser(t, "tx@test.com", "password123", "Minh")

	food := categories["Ăn uống"]
	study := categories["Học tập"]

	// Create
	txID := app.createTransaction(t, accessToken, food.ID, 35000, "2026-08-30")

	// List
	rec := app.request("GET", "/api/v1/transactions", "", accessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_items"] != float64(1) {
		t.Errorf("expected 1 transaction, got %v", result["total_items"])
	}
	data := result["data"].([]interface{})
	first := data[0].(map[string]interface{})
	category := first["category"].(map[string]interface{})
	if category["name"] != "Ăn uống" {
		t.Errorf("expected category attached, got %v", category["name"])
	}

	// Update
	body := fmt.Sprintf(`{"category_id":%q,"amount":99000,"description":"Sách","transaction_date":"2026-08-29"}`, study.ID)
	rec = app.request("PUT", "/api/v1/transactions/"+txID, body, accessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if updated["amount"] != float64(99000) {
		t.Errorf("expected amount 99000, got %v", updated["amount"])
	}

	// Delete
	rec = app.request("DELETE", "/api/v1/transactions/"+txID, "", accessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/transactions/"+txID, "", accessToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestTransactionFlow_OwnershipIsolation(t *testing.T) {
	app := setupApp(t)
	categories := seedCategories(t, app.DB)

	ownerToken, _, _ := app.registerUser(t, "owner@test.com", "password123", "Owner")
	intruderToken, _, _ := app.registerUser(t, "intruder@test.com", "password123", "Intruder")

	txID := app.createTransaction(t, ownerToken, categories["Ăn uống"].ID, 50000, "2026-08-30")

	// The other user cannot see, update, or delete the row.
	rec := app.request("GET", "/api/v1/transactions/"+txID, "", intruderToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign read, got %d", rec.Code)
	}

	rec = app.request("DELETE", "/api/v1/transactions/"+txID, "", intruderToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign delete, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/transactions", "", intruderToken)
	result := parseJSON(t, rec)
	if result["total_items"] != float64(0) {
		t.Errorf("expected empty list for the other user, got %v", result["total_items"])
	}
}

func TestTransactionFlow_FilteredList(t *testing.T) {
	app := setupApp(t)
	categories := seedCategories(t, app.DB)
	accessToken, _, _ := app.registerUser(t, "filter@test.com", "password123", "Minh")

	food := categories["Ăn uống"]
	travel := categories["Di chuyển"]

	app.createTransaction(t, accessToken, food.ID, 10000, "2026-08-01")
	app.createTransaction(t, accessToken, food.ID, 20000, "2026-08-15")
	app.createTransaction(t, accessToken, travel.ID, 30000, "2026-08-15")

	rec := app.request("GET", "/api/v1/transactions?from_date=2026-08-10&category_id="+food.ID, "", accessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered list failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_items"] != float64(1) {
		t.Errorf("expected 1 filtered row, got %v", result["total_items"])
	}
}

func TestTransactionFlow_Validation(t *testing.T) {
	app := setupApp(t)
	categories := seedCategories(t, app.DB)
	accessToken, _, _ := app.registerUser(t, "valid@test.com", "password123", "Minh")

	food := categories["Ăn uống"]

	// Zero amount
	body := fmt.Sprintf(`{"category_id":%q,"amount":0,"transaction_date":"2026-08-30"}`, food.ID)
	rec := app.request("POST", "/api/v1/transactions", body, accessToken)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero amount, got %d", rec.Code)
	}

	// Malformed date
	body = fmt.Sprintf(`{"category_id":%q,"amount":1000,"transaction_date":"30/08/2026"}`, food.ID)
	rec = app.request("POST", "/api/v1/transactions", body, accessToken)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed date, got %d", rec.Code)
	}

	// Unknown category
	body = `{"category_id":"00000000-0000-0000-0000-000000000000","amount":1000,"transaction_date":"2026-08-30"}`
	rec = app.request("POST", "/api/v1/transactions", body, accessToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown category, got %d", rec.Code)
	}
}

func TestDashboardFlow_Aggregates(t *testing.T) {
	app := setupApp(t)
	categories := seedCategories(t, app.DB)
	accessToken, _, _ := app.registerUser(t, "dash@test.com", "password123", "Minh")

	today := time.Now().Format(time.DateOnly)
	app.createTransaction(t, accessToken, categories["Ăn uống"].ID, 50000, today)
	app.createTransaction(t, accessToken, categories["Di chuyển"].ID, 20000, today)

	rec := app.request("GET", "/api/v1/dashboard", "", accessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)

	if result["today_total"] != float64(70000) {
		t.Errorf("expected today_total 70000, got %v", result["today_total"])
	}
	if result["monthly_budget"] != float64(500000) {
		t.Errorf("expected default budget, got %v", result["monthly_budget"])
	}
	series := result["daily_series"].([]interface{})
	if len(series) != 7 {
		t.Errorf("expected 7 daily buckets, got %d", len(series))
	}
	breakdown := result["category_breakdown"].([]interface{})
	if len(breakdown) != 2 {
		t.Errorf("expected 2 breakdown entries, got %d", len(breakdown))
	}
	recent := result["recent_transactions"].([]interface{})
	if len(recent) != 2 {
		t.Errorf("expected 2 recent transactions, got %d", len(recent))
	}
}
