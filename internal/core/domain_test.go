package core

import (
	"errors"
	"testing"
)

func sampleLedger() []Transaction {
	return []Transaction{
		{ID: 1, Date: MustDate("2024-07-12"), Description: "Whole Foods Market", Category: "Food", Amount: Dollars(-125.50), Type: Expense},
		{ID: 2, Date: MustDate("2024-07-12"), Description: "Coffee Shop", Category: "Food", Amount: Dollars(-4.75), Type: Expense},
		{ID: 3, Date: MustDate("2024-07-11"), Description: "Monthly Salary", Category: "Salary", Amount: Dollars(4500), Type: Income},
		{ID: 4, Date: MustDate("2024-07-11"), Description: "Uber Ride", Category: "Transport", Amount: Dollars(-18.50), Type: Expense},
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Description: "ok", Category: "Food", Type: Expense}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{Description: " ", Category: "Food", Type: Expense}, ErrEmptyDescription},
		{Transaction{Description: "a", Category: "", Type: Expense}, ErrEmptyCategory},
		{Transaction{Description: "a", Category: "Food", Type: "transfer"}, ErrInvalidType},
	}
	for i, tc := range cases {
		if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestProfileValidate(t *testing.T) {
	for _, email := range []string{"john@example.com", "john at example", ""} {
		if err := (Profile{Name: "John Doe", Email: email, Currency: "USD"}).Validate(); err != nil {
			t.Errorf("Validate(email %q) = %v, want nil", email, err)
		}
	}
	if err := (Profile{Name: " ", Email: "john@example.com"}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Validate(blank name) = %v, want ErrEmptyName", err)
	}
}

func TestParseTransactionType(t *testing.T) {
	for in, want := range map[string]TransactionType{"income": Income, " Expense ": Expense} {
		got, err := ParseTransactionType(in)
		if err != nil || got != want {
			t.Fatalf("ParseTransactionType(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseTransactionType("refund"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestFilterTransactions(t *testing.T) {
	txs := sampleLedger()
	cases := []struct {
		name     string
		search   string
		category string
		wantIDs  []int64
	}{
		{"all", "", AllCategories, []int64{1, 2, 3, 4}},
		{"empty category means all", "", "", []int64{1, 2, 3, 4}},
		{"case insensitive", "COFFEE", AllCategories, []int64{2}},
		{"substring", "o", AllCategories, []int64{1, 2, 3}},
		{"category only", "", "Food", []int64{1, 2}},
		{"search and category", "whole", "Food", []int64{1}},
		{"search misses category", "uber", "Food", nil},
		{"unknown category", "", "Travel", nil},
		{"trailing space is literal", "Shop ", AllCategories, nil},
		{"inner space", "e S", AllCategories, []int64{2}},
		{"blank search is a term", " ", AllCategories, []int64{1, 2, 3, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterTransactions(txs, tc.search, tc.category)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d rows, want %d", len(got), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Errorf("row %d id = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestReplaceTransaction(t *testing.T) {
	txs := sampleLedger()
	edit := TransactionEdit{
		Date:        MustDate("2024-07-13"),
		Description: "Farmers Market",
		Category:    "Food",
		Amount:      Dollars(60), // positive input on an expense
	}

	got, updated, err := ReplaceTransaction(txs, 1, edit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Amount.Cents != -6000 {
		t.Errorf("expense amount = %d, want -6000", updated.Amount.Cents)
	}
	if updated.Type != Expense {
		t.Errorf("type changed to %q", updated.Type)
	}
	if got[0] != updated {
		t.Errorf("record 1 not replaced: %+v", got[0])
	}
	for i := 1; i < len(txs); i++ {
		if got[i] != txs[i] {
			t.Errorf("record %d changed: %+v", txs[i].ID, got[i])
		}
	}
	if txs[0].Description != "Whole Foods Market" {
		t.Errorf("input slice mutated")
	}

	// Income keeps a positive sign even if a negative amount is entered.
	_, salary, err := ReplaceTransaction(txs, 3, TransactionEdit{
		Date: MustDate("2024-07-11"), Description: "Salary", Category: "Salary", Amount: Dollars(-4600),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if salary.Amount.Cents != 460000 {
		t.Errorf("income amount = %d, want 460000", salary.Amount.Cents)
	}

	if _, _, err := ReplaceTransaction(txs, 99, edit); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveTransaction(t *testing.T) {
	txs := sampleLedger()
	got, err := RemoveTransaction(txs, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(txs)-1 {
		t.Fatalf("len = %d, want %d", len(got), len(txs)-1)
	}
	for _, tx := range got {
		if tx.ID == 3 {
			t.Fatalf("id 3 still present")
		}
	}
	if _, err := RemoveTransaction(txs, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAppendTransaction(t *testing.T) {
	txs := sampleLedger()
	got, added, err := AppendTransaction(txs, Transaction{
		Date: MustDate("2024-07-14"), Description: "Book", Category: "Shopping", Amount: Dollars(12), Type: Expense,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added.ID != 5 {
		t.Errorf("id = %d, want 5", added.ID)
	}
	if added.Amount.Cents != -1200 {
		t.Errorf("amount = %d, want -1200", added.Amount.Cents)
	}
	if got[0].ID != 5 || len(got) != 5 {
		t.Errorf("new transaction not listed first")
	}

	if _, _, err := AppendTransaction(txs, Transaction{Category: "Food", Type: Expense}); !errors.Is(err, ErrEmptyDescription) {
		t.Errorf("expected ErrEmptyDescription, got %v", err)
	}
}

func TestSummarizeTransactions(t *testing.T) {
	tot := SummarizeTransactions(sampleLedger())
	if tot.Income.Cents != 450000 {
		t.Errorf("income = %d", tot.Income.Cents)
	}
	if tot.Expenses.Cents != 12550+475+1850 {
		t.Errorf("expenses = %d", tot.Expenses.Cents)
	}
	if tot.Net.Cents != 450000-(12550+475+1850) {
		t.Errorf("net = %d", tot.Net.Cents)
	}
	if tot.Count != 4 {
		t.Errorf("count = %d", tot.Count)
	}
}

func TestCategoryTone(t *testing.T) {
	if CategoryTone("Food") != "green" || CategoryTone("Mystery") != "gray" {
		t.Fatalf("unexpected tones")
	}
}
