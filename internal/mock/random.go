package mock

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"finboard/internal/core"
)

var expenseCategories = []string{"Food", "Transport", "Housing", "Utilities", "Entertainment", "Shopping"}

// RandomTransactions generates n extra ledger rows with ids following
// startID. The same seed always yields the same rows, so a re-mounted view
// looks identical.
func RandomTransactions(n int, startID int64, seed int64) []core.Transaction {
	if n <= 0 {
		return nil
	}
	f := gofakeit.New(seed)
	from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.July, 7, 0, 0, 0, 0, time.UTC)

	out := make([]core.Transaction, 0, n)
	for i := 0; i < n; i++ {
		tx := core.Transaction{
			ID:   startID + int64(i) + 1,
			Date: core.Date{Time: f.DateRange(from, to).Truncate(24 * time.Hour)},
		}
		// Roughly one in eight rows is income.
		if f.Number(1, 8) == 1 {
			tx.Type = core.Income
			tx.Category = f.RandomString([]string{"Salary", "Freelance"})
			tx.Description = f.Company() + " Payment"
			tx.Amount = core.Dollars(f.Price(200, 2500))
		} else {
			tx.Type = core.Expense
			tx.Category = f.RandomString(expenseCategories)
			tx.Description = f.Company()
			tx.Amount = core.Dollars(-f.Price(3, 250))
		}
		out = append(out, tx)
	}
	return out
}

// SeededTransactions is the ledger fixture followed by n generated rows.
func SeededTransactions(extra int, seed int64) []core.Transaction {
	base := Transactions()
	var last int64
	for _, t := range base {
		if t.ID > last {
			last = t.ID
		}
	}
	return append(base, RandomTransactions(extra, last, seed)...)
}
