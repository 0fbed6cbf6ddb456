package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"finboard/internal/core"
)

var parserToday = time.Date(2024, time.July, 15, 18, 30, 0, 0, time.UTC)

func TestParseTransactionDraft(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantType   core.TransactionType
		wantCents  int64
		wantDate   string
	}{
		{
			name:      "expense with date",
			form:      url.Values{"amount": {"125.50"}, "type": {"expense"}, "date": {"2024-07-12"}, "description": {"Groceries"}, "category": {"Food"}},
			wantType:  core.Expense,
			wantCents: 12550,
			wantDate:  "2024-07-12",
		},
		{
			name:      "empty date means today",
			form:      url.Values{"amount": {"4500"}, "type": {"Income"}, "description": {"Salary"}, "category": {"Salary"}},
			wantType:  core.Income,
			wantCents: 450000,
			wantDate:  "2024-07-15",
		},
		{
			name:       "invalid amount",
			form:       url.Values{"amount": {"abc"}, "type": {"expense"}},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "missing amount",
			form:       url.Values{"type": {"expense"}},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "invalid type",
			form:       url.Values{"amount": {"10"}, "type": {"transfer"}},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "invalid date",
			form:       url.Values{"amount": {"10"}, "type": {"expense"}, "date": {"12/07/2024"}},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, fail := ParseTransactionDraft(tt.form, parserToday)
			if tt.wantStatus != 0 {
				if fail == nil {
					t.Fatalf("expected failure, got %+v", tx)
				}
				w := httptest.NewRecorder()
				fail.Write(w)
				if w.Code != tt.wantStatus {
					t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
				}
				return
			}
			if fail != nil {
				t.Fatalf("unexpected failure")
			}
			if tx.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", tx.Type, tt.wantType)
			}
			if tx.Amount.Cents != tt.wantCents {
				t.Errorf("Amount = %d, want %d", tx.Amount.Cents, tt.wantCents)
			}
			if got := tx.Date.Format(core.DateLayout); got != tt.wantDate {
				t.Errorf("Date = %s, want %s", got, tt.wantDate)
			}
		})
	}
}

func TestParseTransactionDraft_Sanitizes(t *testing.T) {
	form := url.Values{"amount": {"1"}, "type": {"expense"}, "description": {"  Coffee\x00\x07  "}, "category": {" Food "}}
	tx, fail := ParseTransactionDraft(form, parserToday)
	if fail != nil {
		t.Fatal("unexpected failure")
	}
	if tx.Description != "Coffee" {
		t.Errorf("Description = %q, want %q", tx.Description, "Coffee")
	}
	if tx.Category != "Food" {
		t.Errorf("Category = %q, want %q", tx.Category, "Food")
	}
}

func TestParseGoalDraft(t *testing.T) {
	form := url.Values{
		"name":     {"Vacation"},
		"target":   {"3000"},
		"current":  {"-250"},
		"deadline": {"2025-06-01"},
		"priority": {"HIGH"},
	}
	g, fail := ParseGoalDraft(form, parserToday)
	if fail != nil {
		t.Fatal("unexpected failure")
	}
	if g.Target.Cents != 300000 || g.Current.Cents != 25000 {
		t.Errorf("Target/Current = %d/%d, want 300000/25000", g.Target.Cents, g.Current.Cents)
	}
	if g.Priority != core.PriorityHigh {
		t.Errorf("Priority = %q, want high", g.Priority)
	}

	noCurrent := url.Values{"name": {"Car"}, "target": {"100"}}
	g, fail = ParseGoalDraft(noCurrent, parserToday)
	if fail != nil {
		t.Fatal("unexpected failure without current")
	}
	if g.Current.Cents != 0 {
		t.Errorf("Current = %d, want 0", g.Current.Cents)
	}

	badPriority := url.Values{"name": {"Car"}, "target": {"100"}, "priority": {"urgent"}}
	if _, fail := ParseGoalDraft(badPriority, parserToday); fail == nil {
		t.Error("expected failure for unknown priority")
	}
}

func TestParseBudgetDraft(t *testing.T) {
	c, fail := ParseBudgetDraft(url.Values{"name": {"Pets"}, "budgeted": {"-80"}})
	if fail != nil {
		t.Fatal("unexpected failure")
	}
	if c.Name != "Pets" || c.Budgeted.Cents != 8000 {
		t.Errorf("got %+v, want Pets/8000", c)
	}
	if _, fail := ParseBudgetDraft(url.Values{"name": {"Pets"}}); fail == nil {
		t.Error("expected failure without budgeted amount")
	}
}

func TestParseSwitches(t *testing.T) {
	n := ParseNotifications(url.Values{"budget_alerts": {"on"}, "weekly_reports": {"true"}, "goal_reminders": {"off"}})
	if !n.BudgetAlerts || !n.WeeklyReports || n.GoalReminders || n.EmailNotifications {
		t.Errorf("notifications = %+v", n)
	}

	p := ParsePrivacy(url.Values{"analytics": {"1"}})
	if p.ShowBalance || p.DataSharing || !p.Analytics {
		t.Errorf("privacy = %+v", p)
	}
}

func TestParseYear(t *testing.T) {
	offered := []int{2022, 2023, 2024}
	tests := []struct {
		query string
		want  int
	}{
		{"year=2023", 2023},
		{"year=2019", 2024},
		{"year=abc", 2024},
		{"", 2024},
	}
	for _, tt := range tests {
		q, _ := url.ParseQuery(tt.query)
		if got := ParseYear(q, 2024, offered); got != tt.want {
			t.Errorf("ParseYear(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		value  string
		want   int64
		wantOK bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodDelete, "/transactions/"+tt.value, nil)
		r.SetPathValue("id", tt.value)
		id, fail := ParseID(r)
		if (fail == nil) != tt.wantOK {
			t.Errorf("ParseID(%q) ok = %v, want %v", tt.value, fail == nil, tt.wantOK)
			continue
		}
		if tt.wantOK && id != tt.want {
			t.Errorf("ParseID(%q) = %d, want %d", tt.value, id, tt.want)
		}
	}
}

func TestRequestBodyParser(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{"form", "amount=12.5&description=Taxi", "application/x-www-form-urlencoded"},
		{"json", `{"amount":12.5,"description":"Taxi"}`, "application/json"},
		{"json without header", `{"amount":"12.5","description":"Taxi"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPut, "/transactions/1", strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			p, fail := ParseBodyOrFail(r)
			if fail != nil {
				t.Fatal("unexpected failure")
			}
			if got := p.Get("amount"); got != "12.5" {
				t.Errorf("amount = %q, want %q", got, "12.5")
			}
			if got := p.Get("description"); got != "Taxi" {
				t.Errorf("description = %q, want %q", got, "Taxi")
			}
		})
	}

	r := httptest.NewRequest(http.MethodPut, "/transactions/1", strings.NewReader(`{"amount":`))
	r.Header.Set("Content-Type", "application/json")
	if _, fail := ParseBodyOrFail(r); fail == nil {
		t.Error("expected failure for malformed JSON")
	}
}

func TestDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("edit transaction: %w", core.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("add transaction: %w", core.ErrEmptyDescription), http.StatusUnprocessableEntity},
		{core.ErrEmptyCategory, http.StatusUnprocessableEntity},
		{core.ErrEmptyName, http.StatusUnprocessableEntity},
		{core.ErrInvalidPriority, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		resp := DomainError(tt.err)
		if resp == nil {
			t.Errorf("DomainError(%v) = nil", tt.err)
			continue
		}
		w := httptest.NewRecorder()
		resp.Write(w)
		if w.Code != tt.want {
			t.Errorf("DomainError(%v) status = %d, want %d", tt.err, w.Code, tt.want)
		}
	}

	if DomainError(errors.New("disk on fire")) != nil {
		t.Error("unknown errors should not map to a response")
	}
}
