package http

import (
	"net/http"
	"time"

	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/workspace"
)

type savingsData struct {
	Goals  []core.SavingsGoal
	Totals core.SavingsTotals
	Now    time.Time
	Today  string
}

func (s *Server) savingsSnapshot(ws *workspace.Workspace) savingsData {
	d := savingsData{Now: s.now()}
	ws.Read(func(st *workspace.State) {
		d.Goals = append([]core.SavingsGoal(nil), st.Goals...)
	})
	d.Totals = core.SummarizeGoals(d.Goals)
	d.Today = d.Now.Format(core.DateLayout)
	return d
}

func (s *Server) handleSavingsPage(w http.ResponseWriter, r *http.Request) {
	ws := s.mount(w, r, workspace.Savings)
	s.renderPage(w, r, http.StatusOK, "savings", workspace.Savings, "Savings Goals", s.savingsSnapshot(ws))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	if fail := ParseFormOrFail(r); fail != nil {
		fail.Write(w)
		return
	}
	draft, fail := ParseGoalDraft(r.Form, s.now())
	if fail != nil {
		fail.Write(w)
		return
	}

	ws := s.workspace(w, r)
	g, err := s.svc.AddGoal(r.Context(), ws, draft)
	if err != nil {
		s.domainFailure(w, r, err, log.ComponentGoal, log.OpCreate)
		return
	}

	b := NewHTMXResponse().
		TriggerDialogClose().
		TriggerFormReset().
		TriggerSuccessNotification("Goal Created", g.Name+" is now being tracked.")
	s.respond(w, r, b, "savings_body", s.savingsSnapshot(ws))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, fail := ParseID(r)
	if fail != nil {
		fail.Write(w)
		return
	}

	ws := s.workspace(w, r)
	if err := s.svc.DeleteGoal(r.Context(), ws, id); err != nil {
		s.domainFailure(w, r, err, log.ComponentGoal, log.OpDelete)
		return
	}

	b := NewHTMXResponse().TriggerToast(Toast{
		Title:   "Goal Deleted",
		Variant: ToastDestructive,
	})
	s.respond(w, r, b, "savings_body", s.savingsSnapshot(ws))
}
