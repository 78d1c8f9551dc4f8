// Package report derives dashboard aggregates from expense rows.
// All functions are pure: given the same rows and reference time they return
// the same result, and empty input yields zero values rather than errors.
// Amounts are whole VND, so sums are exact integer arithmetic.
package report

import (
	"time"

	"pocketwise/internal/models"
)

// Labels and metadata used when a transaction's category reference cannot be
// resolved (e.g. the category row was removed after the transaction was written).
const (
	FallbackCategoryName  = "Khác"
	FallbackCategoryIcon  = "📦"
	FallbackCategoryColor = "#6b7280"
)

// DailyBucket is one day in a daily spending series.
type DailyBucket struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// CategoryTotal is the summed spending for one category label.
type CategoryTotal struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
}

// weekdayShortNames maps weekdays to their Vietnamese short names,
// matching the labels the dashboard chart displays.
var weekdayShortNames = map[time.Weekday]string{
	time.Sunday:    "CN",
	time.Monday:    "Th 2",
	time.Tuesday:   "Th 3",
	time.Wednesday: "Th 4",
	time.Thursday:  "Th 5",
	time.Friday:    "Th 6",
	time.Saturday:  "Th 7",
}

// TotalForDate sums the amounts of rows whose transaction date equals date
// (YYYY-MM-DD).
func TotalForDate(rows []models.Transaction, date string) int64 {
	var total int64
	for _, t := range rows {
		if t.TransactionDate == date {
			total += t.Amount
		}
	}
	return total
}

// TotalSince sums the amounts of rows dated on or after threshold
// (YYYY-MM-DD). Lexicographic comparison of date-only strings is calendar
// comparison.
func TotalSince(rows []models.Transaction, threshold string) int64 {
	var total int64
	for _, t := range rows {
		if t.TransactionDate >= threshold {
			total += t.Amount
		}
	}
	return total
}

// DailySeries buckets spending per calendar day over the windowDays days
// ending at now. It always returns exactly windowDays buckets, oldest first,
// regardless of how sparse rows is.
func DailySeries(rows []models.Transaction, now time.Time, windowDays int) []DailyBucket {
	series := make([]DailyBucket, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		date := day.Format(time.DateOnly)
		series = append(series, DailyBucket{
			Name:   weekdayShortNames[day.Weekday()],
			Amount: TotalForDate(rows, date),
		})
	}
	return series
}

// ResolveCategoryName returns the transaction's category name, or the
// fallback label when the reference is unresolved.
func ResolveCategoryName(t models.Transaction) string {
	if t.Category != nil && t.Category.Name != "" {
		return t.Category.Name
	}
	return FallbackCategoryName
}

// CategoryBreakdown groups rows by resolved category name and sums amounts
// per group. Entries appear in first-seen order, and a group's icon/color
// come from the first row seen for that label. The breakdown partitions the
// input: the entry amounts always sum to the total of rows.
func CategoryBreakdown(rows []models.Transaction) []CategoryTotal {
	index := make(map[string]int)
	breakdown := make([]CategoryTotal, 0)

	for _, t := range rows {
		name := ResolveCategoryName(t)
		if i, ok := index[name]; ok {
			breakdown[i].Amount += t.Amount
			continue
		}

		entry := CategoryTotal{
			Name:   name,
			Amount: t.Amount,
			Icon:   FallbackCategoryIcon,
			Color:  FallbackCategoryColor,
		}
		if t.Category != nil {
			if t.Category.Icon != "" {
				entry.Icon = t.Category.Icon
			}
			if t.Category.Color != "" {
				entry.Color = t.Category.Color
			}
		}
		index[name] = len(breakdown)
		breakdown = append(breakdown, entry)
	}

	return breakdown
}
