package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pocketwise/internal/models"
	"pocketwise/internal/report"
	"pocketwise/internal/services"
)

const (
	// dashboardSeriesDays is the length of the daily spending chart.
	dashboardSeriesDays = 7
	// dashboardRecentCount caps the recent-transactions list.
	dashboardRecentCount = 5
)

// DashboardHandler aggregates the spending dashboard.
type DashboardHandler struct {
	transactionService services.TransactionServicer
	profileService     services.ProfileServicer
	now                func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(transactionService services.TransactionServicer, profileService services.ProfileServicer) *DashboardHandler {
	return &DashboardHandler{
		transactionService: transactionService,
		profileService:     profileService,
		now:                time.Now,
	}
}

// DashboardResponse represents the aggregated dashboard payload.
type DashboardResponse struct {
	TodayTotal         int64                  `json:"today_total"`
	WeekTotal          int64                  `json:"week_total"`
	MonthTotal         int64                  `json:"month_total"`
	MonthlyBudget      int64                  `json:"monthly_budget"`
	BudgetUsedPct      float64                `json:"budget_used_pct"`
	DailySeries        []report.DailyBucket   `json:"daily_series"`
	CategoryBreakdown  []report.CategoryTotal `json:"category_breakdown"`
	RecentTransactions []models.Transaction   `json:"recent_transactions"`
}

// GetDashboard handles the dashboard aggregation
// @Summary     Get dashboard
// @Description Get today/week/month totals, budget usage, the 7-day daily series, category breakdown, and recent transactions
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} DashboardResponse "Dashboard aggregates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := h.now()
	today := now.Format(time.DateOnly)
	weekStart := now.AddDate(0, 0, -dashboardSeriesDays).Format(time.DateOnly)
	seriesStart := now.AddDate(0, 0, -(dashboardSeriesDays - 1)).Format(time.DateOnly)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(time.DateOnly)

	// One query covers every aggregate: the widest window is whichever of
	// the month start and the series start is older.
	since := monthStart
	if seriesStart < since {
		since = seriesStart
	}
	rows, err := h.transactionService.GetWindow(userID, since, 0)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthRows := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		if row.TransactionDate >= monthStart {
			monthRows = append(monthRows, row)
		}
	}

	var monthlyBudget int64
	if profile, err := h.profileService.GetProfile(userID); err == nil {
		monthlyBudget = profile.MonthlyBudget
	}

	monthTotal := report.TotalSince(monthRows, monthStart)
	budgetUsedPct := 0.0
	if monthlyBudget > 0 {
		budgetUsedPct = float64(monthTotal) / float64(monthlyBudget) * 100
		if budgetUsedPct > 100 {
			budgetUsedPct = 100
		}
	}

	recent := monthRows
	if len(recent) > dashboardRecentCount {
		recent = recent[:dashboardRecentCount]
	}

	c.JSON(http.StatusOK, DashboardResponse{
		TodayTotal:         report.TotalForDate(rows, today),
		WeekTotal:          report.TotalSince(rows, weekStart),
		MonthTotal:         monthTotal,
		MonthlyBudget:      monthlyBudget,
		BudgetUsedPct:      budgetUsedPct,
		DailySeries:        report.DailySeries(rows, now, dashboardSeriesDays),
		CategoryBreakdown:  report.CategoryBreakdown(monthRows),
		RecentTransactions: recent,
	})
}
