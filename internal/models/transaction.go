package models

// Transaction is a single expense record. Amounts are whole VND; dates are
// calendar dates stored as YYYY-MM-DD with no time component, so string
// comparison is calendar comparison.
type Transaction struct {
	Base
	UserID          string `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID      string `gorm:"type:uuid;not null" json:"category_id"`
	Amount          int64  `gorm:"not null" json:"amount"`
	Description     string `json:"description"`
	TransactionDate string `gorm:"type:date;not null;index" json:"transaction_date"`

	// Category is preloaded on reads so downstream aggregation sees a single
	// optional reference instead of a raw join shape.
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
