package core

import (
	"fmt"
	"math"
)

// DashboardBudgetScale is the fixed denominator of the dashboard's
// budget-overview bars.
var DashboardBudgetScale = Dollars(1500)

// MonthFigure is one point of the monthly income/expense series.
type MonthFigure struct {
	Month    string
	Income   Money
	Expenses Money
	Savings  Money
}

// Net is income minus expenses.
func (m MonthFigure) Net() Money { return m.Income.Sub(m.Expenses) }

// CategoryAmount is an amount aggregated by category name, with its display color.
type CategoryAmount struct {
	Name   string
	Amount Money
	Color  string
}

// CategoryShare is a CategoryAmount with its share of the total, rounded to
// one decimal.
type CategoryShare struct {
	CategoryAmount
	Share float64
}

// ShareLabel formats Share with one decimal.
func (c CategoryShare) ShareLabel() string { return fmt.Sprintf("%.1f", c.Share) }

// YearFigure is one row of the yearly comparison.
type YearFigure struct {
	Year     int
	Income   Money
	Expenses Money
}

// Net is income minus expenses.
func (y YearFigure) Net() Money { return y.Income.Sub(y.Expenses) }

// DashboardSummary holds the overview cards.
type DashboardSummary struct {
	Income   Money
	Expenses Money
	Net      Money
	Month    string
}

// SummarizeDashboard takes the latest month of the series as the current
// month.
func SummarizeDashboard(months []MonthFigure) DashboardSummary {
	if len(months) == 0 {
		return DashboardSummary{}
	}
	last := months[len(months)-1]
	return DashboardSummary{
		Income:   last.Income,
		Expenses: last.Expenses,
		Net:      last.Net(),
		Month:    last.Month,
	}
}

// CategoryProgress is a dashboard budget-overview bar.
type CategoryProgress struct {
	CategoryAmount
	Percent float64
}

// BudgetOverview returns progress bars for the first n categories against
// DashboardBudgetScale. Bars are clamped to 100.
func BudgetOverview(cats []CategoryAmount, n int) []CategoryProgress {
	if n > len(cats) {
		n = len(cats)
	}
	out := make([]CategoryProgress, 0, n)
	for _, c := range cats[:n] {
		p := Percent(c.Amount, DashboardBudgetScale)
		out = append(out, CategoryProgress{CategoryAmount: c, Percent: math.Min(p, 100)})
	}
	return out
}

// ReportSummary holds the totals and averages of the report series.
type ReportSummary struct {
	Income      Money
	Expenses    Money
	Savings     Money
	SavingsRate float64
	AvgIncome   Money
	AvgExpenses Money
	AvgSavings  Money
	Months      int
}

// SavingsRateLabel formats SavingsRate with one decimal.
func (r ReportSummary) SavingsRateLabel() string {
	return fmt.Sprintf("%.1f", r.SavingsRate)
}

// SummarizeReport sums the series and derives the savings rate and
// per-month averages.
func SummarizeReport(months []MonthFigure) ReportSummary {
	var r ReportSummary
	for _, m := range months {
		r.Income = r.Income.Add(m.Income)
		r.Expenses = r.Expenses.Add(m.Expenses)
		r.Savings = r.Savings.Add(m.Savings)
	}
	r.Months = len(months)
	r.SavingsRate = Percent(r.Savings, r.Income)
	if n := int64(len(months)); n > 0 {
		r.AvgIncome = Money{Cents: r.Income.Cents / n}
		r.AvgExpenses = Money{Cents: r.Expenses.Cents / n}
		r.AvgSavings = Money{Cents: r.Savings.Cents / n}
	}
	return r
}

// LastMonths returns the trailing n entries of the series.
func LastMonths(months []MonthFigure, n int) []MonthFigure {
	if n >= len(months) {
		return months
	}
	return months[len(months)-n:]
}

// CategoryShares computes each category's share of the total.
func CategoryShares(cats []CategoryAmount) []CategoryShare {
	var total Money
	for _, c := range cats {
		total = total.Add(c.Amount)
	}
	out := make([]CategoryShare, 0, len(cats))
	for _, c := range cats {
		share := math.Round(Percent(c.Amount, total)*10) / 10
		out = append(out, CategoryShare{CategoryAmount: c, Share: share})
	}
	return out
}

// Growth is the relative change between two yearly figures, in percent.
type Growth struct {
	Year     int
	Income   float64
	Expenses float64
	Net      float64
	Known    bool
}

// Label formats a growth percentage as "+6.5%" or "-3.0%".
func (g Growth) Label(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// YearOverYear compares year with the year before it. Known is false when
// either year is missing from the series.
func YearOverYear(years []YearFigure, year int) Growth {
	var cur, prev *YearFigure
	for i := range years {
		switch years[i].Year {
		case year:
			cur = &years[i]
		case year - 1:
			prev = &years[i]
		}
	}
	g := Growth{Year: year}
	if cur == nil || prev == nil {
		return g
	}
	g.Known = true
	g.Income = change(prev.Income, cur.Income)
	g.Expenses = change(prev.Expenses, cur.Expenses)
	g.Net = change(prev.Net(), cur.Net())
	return g
}

func change(from, to Money) float64 {
	if from.Cents == 0 {
		return 0
	}
	return float64(to.Cents-from.Cents) / math.Abs(float64(from.Cents)) * 100
}
