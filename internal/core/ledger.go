package core

import (
	"fmt"
	"strings"
)

// AllCategories is the filter value matching every category.
const AllCategories = "All"

// LedgerCategories is the category list offered by the ledger filter and forms.
var LedgerCategories = []string{
	AllCategories, "Food", "Transport", "Housing", "Utilities",
	"Entertainment", "Shopping", "Salary", "Freelance",
}

// TransactionEdit carries the fields the edit dialog may change. The
// transaction type is not editable.
type TransactionEdit struct {
	Date        Date
	Description string
	Category    string
	Amount      Money
}

// TransactionTotals summarizes a ledger slice.
type TransactionTotals struct {
	Income   Money
	Expenses Money // magnitude of all negative amounts
	Net      Money
	Count    int
}

// MatchesFilter reports whether t passes the ledger search box and
// category dropdown. Search is a case-insensitive substring match on the
// description.
func (t Transaction) MatchesFilter(search, category string) bool {
	if search != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(search)) {
		return false
	}
	return category == "" || category == AllCategories || t.Category == category
}

// FilterTransactions returns the transactions matching search and category.
// The search term is used as typed, surrounding spaces included. The input
// slice is not modified.
func FilterTransactions(txs []Transaction, search, category string) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if t.MatchesFilter(search, category) {
			out = append(out, t)
		}
	}
	return out
}

// FindTransaction returns the transaction with the given id.
func FindTransaction(txs []Transaction, id int64) (Transaction, bool) {
	for _, t := range txs {
		if t.ID == id {
			return t, true
		}
	}
	return Transaction{}, false
}

// ReplaceTransaction returns a copy of txs where the record matching id
// carries the edited fields. Its amount sign follows its existing type.
// Every other record is returned untouched.
func ReplaceTransaction(txs []Transaction, id int64, edit TransactionEdit) ([]Transaction, Transaction, error) {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	for i, t := range out {
		if t.ID != id {
			continue
		}
		t.Date = edit.Date
		t.Description = edit.Description
		t.Category = edit.Category
		t.Amount = SignedAmount(t.Type, edit.Amount)
		if err := t.Validate(); err != nil {
			return txs, Transaction{}, err
		}
		out[i] = t
		return out, t, nil
	}
	return txs, Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
}

// RemoveTransaction returns txs without the record matching id.
func RemoveTransaction(txs []Transaction, id int64) ([]Transaction, error) {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if t.ID != id {
			out = append(out, t)
		}
	}
	if len(out) == len(txs) {
		return txs, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	return out, nil
}

// AppendTransaction assigns the next id to draft, normalizes its amount
// sign and prepends it so the newest entry is listed first.
func AppendTransaction(txs []Transaction, draft Transaction) ([]Transaction, Transaction, error) {
	draft.Amount = SignedAmount(draft.Type, draft.Amount)
	if err := draft.Validate(); err != nil {
		return txs, Transaction{}, err
	}
	draft.ID = nextTransactionID(txs)
	out := make([]Transaction, 0, len(txs)+1)
	out = append(out, draft)
	out = append(out, txs...)
	return out, draft, nil
}

func nextTransactionID(txs []Transaction) int64 {
	var highest int64
	for _, t := range txs {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

// SummarizeTransactions sums income, expenses and the net of txs.
func SummarizeTransactions(txs []Transaction) TransactionTotals {
	var tot TransactionTotals
	for _, t := range txs {
		if t.Amount.Cents >= 0 {
			tot.Income = tot.Income.Add(t.Amount)
		} else {
			tot.Expenses = tot.Expenses.Add(t.Amount.Abs())
		}
	}
	tot.Net = tot.Income.Sub(tot.Expenses)
	tot.Count = len(txs)
	return tot
}

var categoryTones = map[string]string{
	"Food":          "green",
	"Transport":     "blue",
	"Housing":       "purple",
	"Utilities":     "yellow",
	"Entertainment": "pink",
	"Shopping":      "indigo",
	"Salary":        "emerald",
	"Freelance":     "cyan",
}

// CategoryTone returns the badge tone of a ledger category. Unknown
// categories are gray.
func CategoryTone(category string) string {
	if tone, ok := categoryTones[category]; ok {
		return tone
	}
	return "gray"
}
