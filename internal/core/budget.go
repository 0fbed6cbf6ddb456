package core

import (
	"fmt"
	"strconv"
)

// BudgetStatus classifies spending against an allotment.
type BudgetStatus string

const (
	StatusGood    BudgetStatus = "good"
	StatusWarning BudgetStatus = "warning"
	StatusOver    BudgetStatus = "over"
)

// BudgetPalette is cycled through when a category is added without a color.
var BudgetPalette = []string{
	"#3b82f6", "#22c55e", "#eab308", "#a855f7",
	"#f97316", "#ec4899", "#ef4444", "#10b981",
}

// Tone maps a status to the red/yellow/green display tone.
func (s BudgetStatus) Tone() string {
	switch s {
	case StatusOver:
		return "red"
	case StatusWarning:
		return "yellow"
	default:
		return "green"
	}
}

// Percent returns spent/budgeted*100.
func (c BudgetCategory) Percent() float64 {
	return Percent(c.Spent, c.Budgeted)
}

// Status: >=100% over, >=80% warning, otherwise good.
func (c BudgetCategory) Status() BudgetStatus {
	switch {
	case atLeastPercent(c.Spent, c.Budgeted, 100):
		return StatusOver
	case atLeastPercent(c.Spent, c.Budgeted, 80):
		return StatusWarning
	default:
		return StatusGood
	}
}

// Remaining is budgeted minus spent. Negative when over budget.
func (c BudgetCategory) Remaining() Money {
	return c.Budgeted.Sub(c.Spent)
}

// Alert returns the badge text shown under a category, or "" when none
// applies. Strictly above 100% reports the overspend; the warning band
// reports the share left.
func (c BudgetCategory) Alert() string {
	if c.Spent.Cents > c.Budgeted.Cents {
		return "Over budget by " + c.Spent.Sub(c.Budgeted).String()
	}
	if c.Status() == StatusWarning {
		return strconv.FormatFloat(100-c.Percent(), 'f', 1, 64) + "% remaining"
	}
	return ""
}

// BudgetTotals summarizes a set of budget categories.
type BudgetTotals struct {
	Budgeted     Money
	Spent        Money
	Remaining    Money
	SpentPercent float64
}

// SpentPercentLabel formats SpentPercent with one decimal.
func (t BudgetTotals) SpentPercentLabel() string {
	return fmt.Sprintf("%.1f", t.SpentPercent)
}

// SummarizeBudget sums budgeted and spent across cats.
func SummarizeBudget(cats []BudgetCategory) BudgetTotals {
	var t BudgetTotals
	for _, c := range cats {
		t.Budgeted = t.Budgeted.Add(c.Budgeted)
		t.Spent = t.Spent.Add(c.Spent)
	}
	t.Remaining = t.Budgeted.Sub(t.Spent)
	t.SpentPercent = Percent(t.Spent, t.Budgeted)
	return t
}

// AppendBudgetCategory adds draft with the next id. Spent is reset to zero
// and an empty color is taken from BudgetPalette.
func AppendBudgetCategory(cats []BudgetCategory, draft BudgetCategory) ([]BudgetCategory, BudgetCategory, error) {
	if err := draft.Validate(); err != nil {
		return cats, BudgetCategory{}, err
	}
	var highest int64
	for _, c := range cats {
		if c.ID > highest {
			highest = c.ID
		}
	}
	draft.ID = highest + 1
	draft.Spent = Money{}
	if draft.Color == "" {
		draft.Color = BudgetPalette[len(cats)%len(BudgetPalette)]
	}
	out := make([]BudgetCategory, 0, len(cats)+1)
	out = append(out, cats...)
	out = append(out, draft)
	return out, draft, nil
}
