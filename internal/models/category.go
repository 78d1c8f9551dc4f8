package models

// Category is a shared, read-only reference list used to tag transactions.
// Rows are seeded by migration; the application never writes to this table.
type Category struct {
	Base
	Name  string `gorm:"not null;uniqueIndex" json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}
