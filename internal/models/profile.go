package models

// DefaultMonthlyBudget is the starting budget for new profiles, in VND.
const DefaultMonthlyBudget int64 = 500000

// Profile holds per-user display settings and the monthly spending budget.
// Exactly one profile exists per user; it is created at signup and never
// deleted by the application.
type Profile struct {
	Base
	UserID        string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	DisplayName   string `json:"display_name"`
	MonthlyBudget int64  `gorm:"not null;default:500000" json:"monthly_budget"`
}
