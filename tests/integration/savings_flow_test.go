package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func (app *testApp) createGoal(t *testing.T, token, name string, targetAmount int64) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"target_amount":%d}`, name, targetAmount)
	rec := app.request("POST", "/api/v1/goals", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create goal failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	goal := result["goal"].(map[string]interface{})
	return goal["id"].(string)
}

func (app *testApp) deposit(t *testing.T, token, goalID string, amount int64) map[string]interface{} {
	t.Helper()
	body := fmt.Sprintf(`{"amount":%d}`, amount)
	rec := app.request("POST", "/api/v1/goals/"+goalID+"/deposit", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("deposit failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["goal"].(map[string]interface{})
}

func TestSavingsFlow_DepositUntilCompleted(t *testing.T) {
	app := setupApp(t)
	accessToken, _, _ := app.registerUser(t, "saver@test.com", "password123", "Minh")

	goalID := app.createGoal(t, accessToken, "Laptop mới", 1000000)

	goal := app.deposit(t, accessToken, goalID, 400000)
	if goal["current_amount"] != float64(400000) {
		t.Errorf("expected 400000 after first deposit, got %v", goal["current_amount"])
	}
	if goal["is_completed"] != false {
		t.Error("goal should not be completed yet")
	}

	goal = app.deposit(t, accessToken, goalID, 600000)
	if goal["current_amount"] != float64(1000000) {
		t.Errorf("expected 1000000 after second deposit, got %v", goal["current_amount"])
	}
	if goal["is_completed"] != true {
		t.Error("goal should be completed at exactly the target")
	}
}

func TestSavingsFlow_OvershootKeepsFullAmount(t *testing.T) {
	app := setupApp(t)
	accessToken, _, _ := app.registerUser(t, "over@test.com", "password123", "Minh")

	goalID := app.createGoal(t, accessToken, "Du lịch", 500000)

	goal := app.deposit(t, accessToken, goalID, 750000)
	if goal["current_amount"] != float64(750000) {
		t.Errorf("expected overshoot to be kept, got %v", goal["current_amount"])
	}
	if goal["is_completed"] != true {
		t.Error("overshooting the target should complete the goal")
	}
}

func TestSavingsFlow_ZeroDepositIsNoop(t *testing.T) {
	app := setupApp(t)
	accessToken, _, _ := app.registerUser(t, "noop@test.com", "password123", "Minh")

	goalID := app.createGoal(t, accessToken, "Xe đạp", 300000)
	app.deposit(t, accessToken, goalID, 100000)

	goal := app.deposit(t, accessToken, goalID, 0)
	if goal["current_amount"] != float64(100000) {
		t.Errorf("expected zero deposit to leave progress unchanged, got %v", goal["current_amount"])
	}
}

func TestSavingsFlow_UpdatePreservesProgress(t *testing.T) {
	app := setupApp(t)
	accessToken, _, _ := app.registerUser(t, "update@test.com", "password123", "Minh")

	goalID := app.createGoal(t, accessToken, "Điện thoại", 2000000)
	app.deposit(t, accessToken, goalID, 500000)

	rec := app.request("PUT", "/api/v1/goals/"+goalID,
		`{"name":"Điện thoại mới","target_amount":2500000}`, accessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("update goal failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/goals/"+goalID, "", accessToken)
	goal := parseJSON(t, rec)["goal"].(map[string]interface{})
	if goal["name"] != "Điện thoại mới" {
		t.Errorf("expected updated name, got %v", goal["name"])
	}
	if goal["current_amount"] != float64(500000) {
		t.Errorf("expected progress preserved across update, got %v", goal["current_amount"])
	}
}

func TestSavingsFlow_DefaultIcon(t *testing.T) {
	app := setupApp(t)
	accessToken, _, _ := app.registerUser(t, "icon@test.com", "password123", "Minh")

	goalID := app.createGoal(t, accessToken, "Quỹ dự phòng", 100000)

	rec := app.request("GET", "/api/v1/goals/"+goalID, "", accessToken)
	goal := parseJSON(t, rec)["goal"].(map[string]interface{})
	if goal["icon"] != "🎯" {
		t.Errorf("expected default icon, got %v", goal["icon"])
	}
}

func TestSavingsFlow_OwnershipIsolation(t *testing.T) {
	app := setupApp(t)

	ownerToken, _, _ := app.registerUser(t, "goalowner@test.com", "password123", "Owner")
	intruderToken, _, _ := app.registerUser(t, "goalintruder@test.com", "password123", "Intruder")

	goalID := app.createGoal(t, ownerToken, "Riêng tư", 100000)

	rec := app.request("GET", "/api/v1/goals/"+goalID, "", intruderToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign goal read, got %d", rec.Code)
	}

	rec = app.request("POST", "/api/v1/goals/"+goalID+"/deposit", `{"amount":50000}`, intruderToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign deposit, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/goals", "", intruderToken)
	goals := parseJSON(t, rec)["goals"].([]interface{})
	if len(goals) != 0 {
		t.Errorf("expected empty goal list for the other user, got %d", len(goals))
	}
}

func TestSavingsFlow_DeleteGoal(t *testing.T) {
	app := setupApp(t)
	accessToken, _, _ := app.registerUser(t, "deletegoal@test.com", "password123", "Minh")

	goalID := app.createGoal(t, accessToken, "Tạm thời", 100000)

	rec := app.request("DELETE", "/api/v1/goals/"+goalID, "", accessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete goal failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/goals/"+goalID, "", accessToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}
