package http

import (
	"net/http"
	"time"

	"finboard/internal/core"
	"finboard/internal/mock"
	"finboard/internal/workspace"
)

type dashboardData struct {
	Summary    core.DashboardSummary
	Month      time.Time
	Recent     []core.Transaction
	Categories []core.CategoryAmount
	Overview   []core.CategoryProgress
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.mount(w, r, workspace.Dashboard)

	recent := mock.RecentTransactions()
	categories := mock.DashboardCategories()
	data := dashboardData{
		Summary:    core.SummarizeDashboard(mock.DashboardMonths()),
		Month:      latestDate(recent),
		Recent:     recent,
		Categories: categories,
		Overview:   core.BudgetOverview(categories, 4),
	}
	s.renderPage(w, r, http.StatusOK, "dashboard", workspace.Dashboard, "Dashboard", data)
}

// latestDate is the most recent transaction date; the header badge shows
// its month.
func latestDate(txs []core.Transaction) time.Time {
	var latest time.Time
	for _, t := range txs {
		if t.Date.After(latest) {
			latest = t.Date.Time
		}
	}
	return latest
}
