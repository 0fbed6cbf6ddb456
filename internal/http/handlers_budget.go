package http

import (
	"net/http"

	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/workspace"
)

type budgetData struct {
	Categories []core.BudgetCategory
	Totals     core.BudgetTotals
}

func budgetSnapshot(ws *workspace.Workspace) budgetData {
	var d budgetData
	ws.Read(func(st *workspace.State) {
		d.Categories = append([]core.BudgetCategory(nil), st.Budget...)
	})
	d.Totals = core.SummarizeBudget(d.Categories)
	return d
}

func (s *Server) handleBudgetPage(w http.ResponseWriter, r *http.Request) {
	ws := s.mount(w, r, workspace.Budget)
	s.renderPage(w, r, http.StatusOK, "budget", workspace.Budget, "Budget Planner", budgetSnapshot(ws))
}

func (s *Server) handleCreateBudgetCategory(w http.ResponseWriter, r *http.Request) {
	if fail := ParseFormOrFail(r); fail != nil {
		fail.Write(w)
		return
	}
	draft, fail := ParseBudgetDraft(r.Form)
	if fail != nil {
		fail.Write(w)
		return
	}

	ws := s.workspace(w, r)
	c, err := s.svc.AddBudgetCategory(r.Context(), ws, draft)
	if err != nil {
		s.domainFailure(w, r, err, log.ComponentBudget, log.OpCreate)
		return
	}

	b := NewHTMXResponse().
		TriggerDialogClose().
		TriggerFormReset().
		TriggerSuccessNotification("Category Added", c.Name+" was added to your budget.")
	s.respond(w, r, b, "budget_body", budgetSnapshot(ws))
}
