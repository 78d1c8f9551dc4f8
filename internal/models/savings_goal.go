package models

// SavingsGoal tracks incremental progress toward a target amount.
// Invariant: IsCompleted == (CurrentAmount >= TargetAmount), recomputed as
// part of every deposit write. Deposits only ever increase CurrentAmount.
type SavingsGoal struct {
	Base
	UserID        string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string  `gorm:"not null" json:"name"`
	Icon          string  `json:"icon"`
	TargetAmount  int64   `gorm:"not null" json:"target_amount"`
	CurrentAmount int64   `gorm:"not null;default:0" json:"current_amount"`
	Deadline      *string `gorm:"type:date" json:"deadline"`
	IsCompleted   bool    `gorm:"default:false" json:"is_completed"`
}
