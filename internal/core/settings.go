package core

import "strings"

// Theme is the persisted light/dark preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps anything other than "dark" to light.
func ParseTheme(s string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(s))) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle flips between light and dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Currencies offered by the profile form.
var Currencies = []string{"USD", "EUR", "GBP", "JPY"}

type Profile struct {
	Name     string
	Email    string
	Currency string
}

type NotificationPrefs struct {
	BudgetAlerts       bool
	GoalReminders      bool
	WeeklyReports      bool
	EmailNotifications bool
}

type PrivacyPrefs struct {
	ShowBalance bool
	DataSharing bool
	Analytics   bool
}

// Settings groups the preference records of the settings view. Only the
// theme outlives the view.
type Settings struct {
	Profile       Profile
	Notifications NotificationPrefs
	Privacy       PrivacyPrefs
}

// Validate requires a name. The email is stored as typed.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
