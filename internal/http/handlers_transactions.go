package http

import (
	"net/http"

	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/workspace"
)

type ledgerData struct {
	Rows       []core.Transaction
	Totals     core.TransactionTotals
	Filter     workspace.LedgerFilter
	Categories []string
	Today      string
}

type editData struct {
	Tx         core.Transaction
	Categories []string
}

// formCategories is the category list without the "All" filter entry.
func formCategories() []string {
	out := make([]string, 0, len(core.LedgerCategories))
	for _, c := range core.LedgerCategories {
		if c != core.AllCategories {
			out = append(out, c)
		}
	}
	return out
}

// ledger snapshots the filtered ledger. Totals follow the filter, like the
// row count in the table header.
func (s *Server) ledger(ws *workspace.Workspace) ledgerData {
	var d ledgerData
	ws.Read(func(st *workspace.State) {
		d.Filter = st.Filter
		d.Rows = core.FilterTransactions(st.Ledger, st.Filter.Search, st.Filter.Category)
	})
	d.Totals = core.SummarizeTransactions(d.Rows)
	d.Categories = core.LedgerCategories
	d.Today = s.now().Format(core.DateLayout)
	return d
}

func (s *Server) handleTransactionsPage(w http.ResponseWriter, r *http.Request) {
	ws := s.mount(w, r, workspace.Transactions)
	s.renderPage(w, r, http.StatusOK, "transactions", workspace.Transactions, "Transactions", struct {
		ledgerData
		FormCategories []string
	}{s.ledger(ws), formCategories()})
}

// handleTransactionList applies the search box and category select.
func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	ws := s.workspace(w, r)
	q := r.URL.Query()
	category := sanitizeInput(q.Get("category"))
	if category == "" {
		category = core.AllCategories
	}
	ws.Mutate(func(st *workspace.State) {
		st.Filter = workspace.LedgerFilter{Search: stripControl(q.Get("search")), Category: category}
	})
	s.respond(w, r, NewHTMXResponse(), "ledger", s.ledger(ws))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if fail := ParseFormOrFail(r); fail != nil {
		fail.Write(w)
		return
	}
	draft, fail := ParseTransactionDraft(r.Form, s.now())
	if fail != nil {
		fail.Write(w)
		return
	}

	ws := s.workspace(w, r)
	tx, err := s.svc.AddTransaction(r.Context(), ws, draft)
	if err != nil {
		s.domainFailure(w, r, err, log.ComponentTransaction, log.OpCreate)
		return
	}

	b := NewHTMXResponse().
		TriggerDialogClose().
		TriggerFormReset().
		TriggerSuccessNotification("Transaction Added", tx.Description+" has been added.")
	s.respond(w, r, b, "ledger", s.ledger(ws))
}

func (s *Server) handleEditTransactionForm(w http.ResponseWriter, r *http.Request) {
	id, fail := ParseID(r)
	if fail != nil {
		fail.Write(w)
		return
	}
	ws := s.workspace(w, r)
	var (
		tx    core.Transaction
		found bool
	)
	ws.Read(func(st *workspace.State) {
		tx, found = core.FindTransaction(st.Ledger, id)
	})
	if !found {
		NotFoundError("Transaction not found").Write(w)
		return
	}
	s.respond(w, r, NewHTMXResponse(), "tx_edit", editData{Tx: tx, Categories: formCategories()})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, fail := ParseID(r)
	if fail != nil {
		fail.Write(w)
		return
	}
	body, fail := ParseBodyOrFail(r)
	if fail != nil {
		fail.Write(w)
		return
	}
	edit, fail := ParseTransactionEdit(body, s.now())
	if fail != nil {
		fail.Write(w)
		return
	}

	ws := s.workspace(w, r)
	if _, err := s.svc.EditTransaction(r.Context(), ws, id, edit); err != nil {
		s.domainFailure(w, r, err, log.ComponentTransaction, log.OpUpdate)
		return
	}

	b := NewHTMXResponse().
		TriggerDialogClose().
		TriggerSuccessNotification("Transaction Updated", "The transaction has been successfully updated.")
	s.respond(w, r, b, "ledger", s.ledger(ws))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, fail := ParseID(r)
	if fail != nil {
		fail.Write(w)
		return
	}

	ws := s.workspace(w, r)
	if err := s.svc.DeleteTransaction(r.Context(), ws, id); err != nil {
		s.domainFailure(w, r, err, log.ComponentTransaction, log.OpDelete)
		return
	}

	b := NewHTMXResponse().TriggerToast(Toast{
		Title:       "Transaction Deleted",
		Description: "The transaction has been successfully deleted.",
		Variant:     ToastDestructive,
	})
	s.respond(w, r, b, "ledger", s.ledger(ws))
}

// domainFailure answers a failed mutation: validation and unknown ids map
// to 422 and 404, anything else is logged and rendered as a generic 500.
func (s *Server) domainFailure(w http.ResponseWriter, r *http.Request, err error, component, op string) {
	if resp := DomainError(err); resp != nil {
		s.mutations.Rejected(r.Context(), component, op, err)
		resp.Write(w)
		return
	}
	s.mutations.Failed(r.Context(), component, op, err)
	InternalServerError("Something went wrong").Write(w)
}
