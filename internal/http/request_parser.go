// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.
// Every form the views submit is turned into a core value here, so handlers
// only deal with typed drafts or a ready-made error response.

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"finboard/internal/core"
)

// FormSource is anything form fields can be read from: url.Values or a
// RequestBodyParser.
type FormSource interface {
	Get(key string) string
}

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, commonly used with HTMX.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	if r.Body != nil {
		p.body, p.err = io.ReadAll(r.Body)
	}
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if p.body[0] == '{' || strings.Contains(p.contentType, "application/json") {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// stringValue converts a decoded JSON value to string.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// ParseBodyOrFail parses a PUT/POST body in either encoding.
func ParseBodyOrFail(r *http.Request) (*RequestBodyParser, *HTMXResponseBuilder) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		return nil, BadRequestError("Invalid request format")
	}
	return p, nil
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}

// ParseID reads the {id} path segment.
func ParseID(r *http.Request) (int64, *HTMXResponseBuilder) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, NotFoundError("Unknown id")
	}
	return id, nil
}

// ParseYear reads ?year=, keeping fallback when it is missing or not one of
// the offered years.
func ParseYear(query url.Values, fallback int, offered []int) int {
	y, err := strconv.Atoi(strings.TrimSpace(query.Get("year")))
	if err != nil {
		return fallback
	}
	for _, o := range offered {
		if o == y {
			return y
		}
	}
	return fallback
}

// parseAmountField parses a positive magnitude; the sign is applied by the
// domain from the transaction type.
func parseAmountField(f FormSource, key string) (core.Money, *HTMXResponseBuilder) {
	m, err := core.ParseAmount(f.Get(key))
	if err != nil {
		return core.Money{}, UnprocessableEntityError("Invalid amount")
	}
	return m, nil
}

func parseDateField(f FormSource, key string, today time.Time) (core.Date, *HTMXResponseBuilder) {
	v := strings.TrimSpace(f.Get(key))
	if v == "" {
		y, m, d := today.Date()
		return core.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
	}
	date, err := core.ParseDate(v)
	if err != nil {
		return core.Date{}, UnprocessableEntityError("Invalid date")
	}
	return date, nil
}

// ParseTransactionDraft reads the add-transaction form. An empty date
// means today.
func ParseTransactionDraft(f FormSource, today time.Time) (core.Transaction, *HTMXResponseBuilder) {
	amount, fail := parseAmountField(f, "amount")
	if fail != nil {
		return core.Transaction{}, fail
	}
	typ, err := core.ParseTransactionType(f.Get("type"))
	if err != nil {
		return core.Transaction{}, UnprocessableEntityError("Invalid transaction type")
	}
	date, fail := parseDateField(f, "date", today)
	if fail != nil {
		return core.Transaction{}, fail
	}
	return core.Transaction{
		Date:        date,
		Description: sanitizeInput(f.Get("description")),
		Category:    sanitizeInput(f.Get("category")),
		Amount:      amount,
		Type:        typ,
	}, nil
}

// ParseTransactionEdit reads the edit dialog.
func ParseTransactionEdit(f FormSource, today time.Time) (core.TransactionEdit, *HTMXResponseBuilder) {
	amount, fail := parseAmountField(f, "amount")
	if fail != nil {
		return core.TransactionEdit{}, fail
	}
	date, fail := parseDateField(f, "date", today)
	if fail != nil {
		return core.TransactionEdit{}, fail
	}
	return core.TransactionEdit{
		Date:        date,
		Description: sanitizeInput(f.Get("description")),
		Category:    sanitizeInput(f.Get("category")),
		Amount:      amount,
	}, nil
}

// ParseBudgetDraft reads the add-category form.
func ParseBudgetDraft(f FormSource) (core.BudgetCategory, *HTMXResponseBuilder) {
	amount, fail := parseAmountField(f, "budgeted")
	if fail != nil {
		return core.BudgetCategory{}, fail
	}
	return core.BudgetCategory{
		Name:     sanitizeInput(f.Get("name")),
		Budgeted: amount.Abs(),
	}, nil
}

// ParseGoalDraft reads the add-goal form. Current savings default to zero.
func ParseGoalDraft(f FormSource, today time.Time) (core.SavingsGoal, *HTMXResponseBuilder) {
	target, fail := parseAmountField(f, "target")
	if fail != nil {
		return core.SavingsGoal{}, fail
	}
	var current core.Money
	if strings.TrimSpace(f.Get("current")) != "" {
		if current, fail = parseAmountField(f, "current"); fail != nil {
			return core.SavingsGoal{}, fail
		}
	}
	deadline, fail := parseDateField(f, "deadline", today)
	if fail != nil {
		return core.SavingsGoal{}, fail
	}
	var priority core.Priority
	if v := f.Get("priority"); v != "" {
		p, err := core.ParsePriority(v)
		if err != nil {
			return core.SavingsGoal{}, UnprocessableEntityError("Invalid priority")
		}
		priority = p
	}
	return core.SavingsGoal{
		Name:        sanitizeInput(f.Get("name")),
		Target:      target.Abs(),
		Current:     current.Abs(),
		Deadline:    deadline,
		Description: sanitizeInput(f.Get("description")),
		Priority:    priority,
	}, nil
}

// ParseProfile reads the profile form.
func ParseProfile(f FormSource) core.Profile {
	return core.Profile{
		Name:     sanitizeInput(f.Get("name")),
		Email:    sanitizeInput(f.Get("email")),
		Currency: sanitizeInput(f.Get("currency")),
	}
}

// ParseNotifications reads the notification switches. Unchecked boxes are
// not submitted at all.
func ParseNotifications(f FormSource) core.NotificationPrefs {
	return core.NotificationPrefs{
		BudgetAlerts:       checked(f, "budget_alerts"),
		GoalReminders:      checked(f, "goal_reminders"),
		WeeklyReports:      checked(f, "weekly_reports"),
		EmailNotifications: checked(f, "email_notifications"),
	}
}

// ParsePrivacy reads the privacy switches.
func ParsePrivacy(f FormSource) core.PrivacyPrefs {
	return core.PrivacyPrefs{
		ShowBalance: checked(f, "show_balance"),
		DataSharing: checked(f, "data_sharing"),
		Analytics:   checked(f, "analytics"),
	}
}

func checked(f FormSource, key string) bool {
	switch strings.ToLower(f.Get(key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// DomainError maps a core validation error to a 422 or 404 response.
func DomainError(err error) *HTMXResponseBuilder {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return NotFoundError("Not found")
	case errors.Is(err, core.ErrEmptyDescription):
		return UnprocessableEntityError("Description is required")
	case errors.Is(err, core.ErrEmptyCategory):
		return UnprocessableEntityError("Category is required")
	case errors.Is(err, core.ErrEmptyName):
		return UnprocessableEntityError("Name is required")
	case errors.Is(err, core.ErrInvalidType), errors.Is(err, core.ErrInvalidPriority):
		return UnprocessableEntityError("Invalid data")
	}
	return nil
}
