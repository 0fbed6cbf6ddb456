package http

import (
	"net/http"

	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/workspace"
)

type settingsData struct {
	Settings   core.Settings
	Currencies []string
	Theme      core.Theme
}

func (s *Server) handleSettingsPage(w http.ResponseWriter, r *http.Request) {
	ws := s.mount(w, r, workspace.Settings)
	_, theme := s.theme(w, r)
	d := settingsData{Currencies: core.Currencies, Theme: theme}
	ws.Read(func(st *workspace.State) {
		d.Settings = st.Settings
	})
	s.renderPage(w, r, http.StatusOK, "settings", workspace.Settings, "Settings", d)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if fail := ParseFormOrFail(r); fail != nil {
		fail.Write(w)
		return
	}
	ws := s.workspace(w, r)
	if err := s.svc.UpdateProfile(r.Context(), ws, ParseProfile(r.Form)); err != nil {
		s.domainFailure(w, r, err, log.ComponentSettings, log.OpUpdate)
		return
	}
	NewHTMXResponse().
		Status(http.StatusNoContent).
		TriggerSuccessNotification("Profile Updated", "Your profile settings have been saved successfully.").
		Write(w)
}

func (s *Server) handleUpdateNotifications(w http.ResponseWriter, r *http.Request) {
	if fail := ParseFormOrFail(r); fail != nil {
		fail.Write(w)
		return
	}
	s.svc.UpdateNotifications(r.Context(), s.workspace(w, r), ParseNotifications(r.Form))
	NewHTMXResponse().
		Status(http.StatusNoContent).
		TriggerSuccessNotification("Notifications Updated", "Your notification preferences have been saved.").
		Write(w)
}

func (s *Server) handleUpdatePrivacy(w http.ResponseWriter, r *http.Request) {
	if fail := ParseFormOrFail(r); fail != nil {
		fail.Write(w)
		return
	}
	s.svc.UpdatePrivacy(r.Context(), s.workspace(w, r), ParsePrivacy(r.Form))
	NewHTMXResponse().
		Status(http.StatusNoContent).
		TriggerSuccessNotification("Privacy Updated", "Your privacy settings have been saved.").
		Write(w)
}

// handleExportData only acknowledges; no export file is produced.
func (s *Server) handleExportData(w http.ResponseWriter, r *http.Request) {
	NewHTMXResponse().
		Status(http.StatusNoContent).
		TriggerSuccessNotification("Export Started", "Your financial data export will be ready shortly.").
		Write(w)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	NewHTMXResponse().
		Status(http.StatusNoContent).
		TriggerToast(Toast{
			Title:       "Account Deletion",
			Description: "Please contact support to delete your account.",
			Variant:     ToastDestructive,
		}).
		Write(w)
}

// handleToggleTheme flips and persists the theme, mirrors it into the
// theme cookie and returns the refreshed toggle button.
func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	clientID, current := s.theme(w, r)
	next, err := s.svc.ToggleTheme(r.Context(), clientID, current)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Theme toggle failed",
			log.FieldComponent, log.ComponentTheme,
			log.FieldOperation, log.OpToggle,
			"error_type", log.ErrorTypeDatabase,
			"error", err)
		InternalServerError("Could not save theme").Write(w)
		return
	}
	setThemeCookie(w, next)
	s.respond(w, r, NewHTMXResponse().TriggerThemeChanged(next), "theme_toggle", next)
}
