package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DateLayout is the wire and display format for dates.
const DateLayout = "2006-01-02"

type (
	TransactionType string

	Priority string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single dated monetary movement. Amount is signed:
	// expenses are negative, income positive.
	Transaction struct {
		ID          int64
		Date        Date
		Description string
		Category    string
		Amount      Money
		Type        TransactionType
	}

	BudgetCategory struct {
		ID       int64
		Name     string
		Budgeted Money
		Spent    Money
		Color    string
	}

	SavingsGoal struct {
		ID          int64
		Name        string
		Target      Money
		Current     Money
		Deadline    Date
		Description string
		Priority    Priority
	}
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyName        = errors.New("empty name")
)

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// MustDate parses a YYYY-MM-DD literal and panics on error. Fixtures only.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic("core: bad date literal " + s)
	}
	return d
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// ParseTransactionType accepts "income" or "expense", case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", ErrInvalidType
}

// ParsePriority accepts "high", "medium" or "low", case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	}
	return "", ErrInvalidPriority
}

// SignedAmount applies the ledger sign convention: expenses are stored as
// -|amount|, income as +|amount|.
func SignedAmount(t TransactionType, amount Money) Money {
	abs := amount.Abs()
	if t == Expense {
		return Money{Cents: -abs.Cents}
	}
	return abs
}

// Validate checks structural completeness only. Cross-field relations
// (spent over budget, current over target, past deadlines) are allowed.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Type != Income && t.Type != Expense {
		return ErrInvalidType
	}
	return nil
}

func (c BudgetCategory) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.Priority != "" {
		if _, err := ParsePriority(string(g.Priority)); err != nil {
			return err
		}
	}
	return nil
}
