// Package mock holds the seed datasets every view is mounted with.
//
// Each accessor returns a fresh slice so a view can mutate its copy freely.
package mock

import "finboard/internal/core"

// Transactions seeds the ledger view.
func Transactions() []core.Transaction {
	return []core.Transaction{
		{ID: 1, Date: core.MustDate("2024-07-12"), Description: "Whole Foods Market", Category: "Food", Amount: core.Dollars(-125.50), Type: core.Expense},
		{ID: 2, Date: core.MustDate("2024-07-12"), Description: "Coffee Shop", Category: "Food", Amount: core.Dollars(-4.75), Type: core.Expense},
		{ID: 3, Date: core.MustDate("2024-07-11"), Description: "Monthly Salary", Category: "Salary", Amount: core.Dollars(4500), Type: core.Income},
		{ID: 4, Date: core.MustDate("2024-07-11"), Description: "Uber Ride", Category: "Transport", Amount: core.Dollars(-18.50), Type: core.Expense},
		{ID: 5, Date: core.MustDate("2024-07-10"), Description: "Gas Station", Category: "Transport", Amount: core.Dollars(-45.20), Type: core.Expense},
		{ID: 6, Date: core.MustDate("2024-07-10"), Description: "Amazon Purchase", Category: "Shopping", Amount: core.Dollars(-89.99), Type: core.Expense},
		{ID: 7, Date: core.MustDate("2024-07-09"), Description: "Netflix Subscription", Category: "Entertainment", Amount: core.Dollars(-15.99), Type: core.Expense},
		{ID: 8, Date: core.MustDate("2024-07-09"), Description: "Freelance Project", Category: "Freelance", Amount: core.Dollars(750), Type: core.Income},
		{ID: 9, Date: core.MustDate("2024-07-08"), Description: "Rent Payment", Category: "Housing", Amount: core.Dollars(-1200), Type: core.Expense},
		{ID: 10, Date: core.MustDate("2024-07-08"), Description: "Electricity Bill", Category: "Utilities", Amount: core.Dollars(-85.30), Type: core.Expense},
	}
}

// RecentTransactions seeds the dashboard's recent activity list.
func RecentTransactions() []core.Transaction {
	return []core.Transaction{
		{ID: 1, Date: core.MustDate("2024-07-12"), Description: "Grocery Store", Category: "Food", Amount: core.Dollars(-85.50), Type: core.Expense},
		{ID: 2, Date: core.MustDate("2024-07-11"), Description: "Salary Deposit", Category: "Income", Amount: core.Dollars(2500), Type: core.Income},
		{ID: 3, Date: core.MustDate("2024-07-10"), Description: "Gas Station", Category: "Transport", Amount: core.Dollars(-45.20), Type: core.Expense},
		{ID: 4, Date: core.MustDate("2024-07-09"), Description: "Netflix Subscription", Category: "Entertainment", Amount: core.Dollars(-15.99), Type: core.Expense},
		{ID: 5, Date: core.MustDate("2024-07-08"), Description: "Freelance Payment", Category: "Income", Amount: core.Dollars(750), Type: core.Income},
	}
}

// BudgetCategories seeds the budget planner.
func BudgetCategories() []core.BudgetCategory {
	return []core.BudgetCategory{
		{ID: 1, Name: "Housing", Budgeted: core.Dollars(1200), Spent: core.Dollars(1200), Color: "#3b82f6"},
		{ID: 2, Name: "Food", Budgeted: core.Dollars(600), Spent: core.Dollars(485), Color: "#22c55e"},
		{ID: 3, Name: "Transport", Budgeted: core.Dollars(300), Spent: core.Dollars(245), Color: "#eab308"},
		{ID: 4, Name: "Entertainment", Budgeted: core.Dollars(200), Spent: core.Dollars(175), Color: "#a855f7"},
		{ID: 5, Name: "Utilities", Budgeted: core.Dollars(150), Spent: core.Dollars(125), Color: "#f97316"},
		{ID: 6, Name: "Shopping", Budgeted: core.Dollars(250), Spent: core.Dollars(320), Color: "#ec4899"},
		{ID: 7, Name: "Health", Budgeted: core.Dollars(100), Spent: core.Dollars(65), Color: "#ef4444"},
		{ID: 8, Name: "Savings", Budgeted: core.Dollars(800), Spent: core.Dollars(800), Color: "#10b981"},
	}
}

// SavingsGoals seeds the savings tracker.
func SavingsGoals() []core.SavingsGoal {
	return []core.SavingsGoal{
		{ID: 1, Name: "Emergency Fund", Target: core.Dollars(10000), Current: core.Dollars(6500), Deadline: core.MustDate("2024-12-31"), Description: "6 months of living expenses", Priority: core.PriorityHigh},
		{ID: 2, Name: "Vacation to Europe", Target: core.Dollars(3500), Current: core.Dollars(1200), Deadline: core.MustDate("2024-09-15"), Description: "2-week trip to Europe", Priority: core.PriorityMedium},
		{ID: 3, Name: "New Laptop", Target: core.Dollars(2000), Current: core.Dollars(1800), Deadline: core.MustDate("2024-08-01"), Description: "MacBook Pro for work", Priority: core.PriorityHigh},
		{ID: 4, Name: "Car Down Payment", Target: core.Dollars(5000), Current: core.Dollars(2300), Deadline: core.MustDate("2025-03-01"), Description: "Down payment for new car", Priority: core.PriorityMedium},
		{ID: 5, Name: "Investment Fund", Target: core.Dollars(15000), Current: core.Dollars(8500), Deadline: core.MustDate("2025-06-01"), Description: "Stock market investments", Priority: core.PriorityLow},
	}
}

// DashboardMonths is the six-month income/expense series of the overview.
func DashboardMonths() []core.MonthFigure {
	return []core.MonthFigure{
		{Month: "Jan", Income: core.Dollars(5000), Expenses: core.Dollars(3200)},
		{Month: "Feb", Income: core.Dollars(5200), Expenses: core.Dollars(3400)},
		{Month: "Mar", Income: core.Dollars(4800), Expenses: core.Dollars(3100)},
		{Month: "Apr", Income: core.Dollars(5400), Expenses: core.Dollars(3600)},
		{Month: "May", Income: core.Dollars(5100), Expenses: core.Dollars(3300)},
		{Month: "Jun", Income: core.Dollars(5300), Expenses: core.Dollars(3500)},
	}
}

// DashboardCategories is the expense breakdown of the overview pie.
func DashboardCategories() []core.CategoryAmount {
	return []core.CategoryAmount{
		{Name: "Housing", Amount: core.Dollars(1200), Color: "#3b82f6"},
		{Name: "Food", Amount: core.Dollars(800), Color: "#10b981"},
		{Name: "Transport", Amount: core.Dollars(400), Color: "#f59e0b"},
		{Name: "Entertainment", Amount: core.Dollars(300), Color: "#ef4444"},
		{Name: "Utilities", Amount: core.Dollars(250), Color: "#8b5cf6"},
		{Name: "Other", Amount: core.Dollars(200), Color: "#6b7280"},
	}
}

// ReportMonths is the seven-month series of the reports view, with savings.
func ReportMonths() []core.MonthFigure {
	return []core.MonthFigure{
		{Month: "Jan", Income: core.Dollars(5000), Expenses: core.Dollars(3200), Savings: core.Dollars(1800)},
		{Month: "Feb", Income: core.Dollars(5200), Expenses: core.Dollars(3400), Savings: core.Dollars(1800)},
		{Month: "Mar", Income: core.Dollars(4800), Expenses: core.Dollars(3100), Savings: core.Dollars(1700)},
		{Month: "Apr", Income: core.Dollars(5400), Expenses: core.Dollars(3600), Savings: core.Dollars(1800)},
		{Month: "May", Income: core.Dollars(5100), Expenses: core.Dollars(3300), Savings: core.Dollars(1800)},
		{Month: "Jun", Income: core.Dollars(5300), Expenses: core.Dollars(3500), Savings: core.Dollars(1800)},
		{Month: "Jul", Income: core.Dollars(5500), Expenses: core.Dollars(3700), Savings: core.Dollars(1800)},
	}
}

// ReportCategories is the expense breakdown of the reports view.
func ReportCategories() []core.CategoryAmount {
	return []core.CategoryAmount{
		{Name: "Housing", Amount: core.Dollars(1200), Color: "#3b82f6"},
		{Name: "Food", Amount: core.Dollars(800), Color: "#10b981"},
		{Name: "Transport", Amount: core.Dollars(400), Color: "#f59e0b"},
		{Name: "Entertainment", Amount: core.Dollars(300), Color: "#ef4444"},
		{Name: "Utilities", Amount: core.Dollars(250), Color: "#8b5cf6"},
		{Name: "Shopping", Amount: core.Dollars(200), Color: "#ec4899"},
		{Name: "Other", Amount: core.Dollars(350), Color: "#6b7280"},
	}
}

// YearlyComparison is the multi-year income/expense table.
func YearlyComparison() []core.YearFigure {
	return []core.YearFigure{
		{Year: 2022, Income: core.Dollars(58000), Expenses: core.Dollars(42000)},
		{Year: 2023, Income: core.Dollars(62000), Expenses: core.Dollars(45000)},
		{Year: 2024, Income: core.Dollars(66000), Expenses: core.Dollars(47000)},
	}
}

// Settings seeds the settings view.
func Settings() core.Settings {
	return core.Settings{
		Profile: core.Profile{Name: "John Doe", Email: "john.doe@example.com", Currency: "USD"},
		Notifications: core.NotificationPrefs{
			BudgetAlerts:       true,
			GoalReminders:      true,
			WeeklyReports:      false,
			EmailNotifications: true,
		},
		Privacy: core.PrivacyPrefs{ShowBalance: true, DataSharing: false, Analytics: true},
	}
}
