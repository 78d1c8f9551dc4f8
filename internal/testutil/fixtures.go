package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"pocketwise/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProfile creates a profile with the default monthly budget.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID string) *models.Profile {
	t.Helper()
	return CreateTestProfileWithBudget(t, db, userID, models.DefaultMonthlyBudget)
}

// CreateTestProfileWithBudget creates a profile with the given budget (in VND).
func CreateTestProfileWithBudget(t *testing.T, db *gorm.DB, userID string, budget int64) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		UserID:        userID,
		DisplayName:   fmt.Sprintf("Test User %d", nextID()),
		MonthlyBudget: budget,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestCategory creates a category with the given name, icon and color.
func CreateTestCategory(t *testing.T, db *gorm.DB, name, icon, color string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:  name,
		Icon:  icon,
		Color: color,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates an expense of the given amount (in VND) on the
// given calendar date (YYYY-MM-DD).
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, categoryID string, amount int64, date string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:          userID,
		CategoryID:      categoryID,
		Amount:          amount,
		Description:     fmt.Sprintf("Test expense %d", nextID()),
		TransactionDate: date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestGoal creates a savings goal with the given target (in VND) and
// zero progress.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, targetAmount int64) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Goal %d", nextID()),
		Icon:         "🎯",
		TargetAmount: targetAmount,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
