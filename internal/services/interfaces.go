package services

import (
	"context"
	"time"

	"pocketwise/internal/ai"
	"pocketwise/internal/models"
	"pocketwise/internal/pagination"
)

// UserServicer defines the contract for account-related business logic.
type UserServicer interface {
	Register(email, password, displayName string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// ProfileServicer defines the contract for profile settings.
type ProfileServicer interface {
	GetProfile(userID string) (*models.Profile, error)
	UpdateProfile(userID, displayName string, monthlyBudget int64) (*models.Profile, error)
}

// CategoryServicer defines the contract for the shared category list.
type CategoryServicer interface {
	ListCategories() ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
// Dates are calendar dates (YYYY-MM-DD).
type TransactionFilter struct {
	FromDate   *string
	ToDate     *string
	CategoryID *string
}

// TransactionServicer defines the contract for expense records. All reads
// and writes are scoped to the owning user.
type TransactionServicer interface {
	CreateTransaction(userID, categoryID string, amount int64, description, transactionDate string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID, categoryID string, amount int64, description, transactionDate string) (*models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	DeleteTransaction(userID, transactionID string) error

	// GetWindow returns rows dated on or after sinceDate, newest first,
	// with categories preloaded. limit <= 0 means no limit.
	GetWindow(userID, sinceDate string, limit int) ([]models.Transaction, error)

	// GetMonthRows returns the current month's rows, newest first, with
	// categories preloaded.
	GetMonthRows(userID string, now time.Time) ([]models.Transaction, error)
}

// GoalServicer defines the contract for savings goals.
type GoalServicer interface {
	CreateGoal(userID, name, icon string, targetAmount int64, deadline *string) (*models.SavingsGoal, error)
	GetUserGoals(userID string) ([]models.SavingsGoal, error)
	GetGoalByID(userID, goalID string) (*models.SavingsGoal, error)
	UpdateGoal(userID, goalID, name, icon string, targetAmount int64, deadline *string) (*models.SavingsGoal, error)
	DeleteGoal(userID, goalID string) error

	// Deposit increases the goal's current amount and recomputes the
	// completion flag in the same write. A non-positive amount is a no-op
	// that returns the goal unchanged.
	Deposit(userID, goalID string, amount int64) (*models.SavingsGoal, error)
}

// InsightServicer defines the contract for the AI endpoints. Both methods
// always resolve to a human-readable reply string: upstream failures are
// converted to canned error text, never propagated.
type InsightServicer interface {
	Chat(ctx context.Context, userID string, messages []ai.Message) string
	Analyze(ctx context.Context, userID string) string
}
