package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"toolrent-backend/internal/service"

	"github.com/gorilla/mux"
)

const dateLayout = "2006-01-02"

// LoanHandler exposes the loan workflow over HTTP
type LoanHandler struct {
	loans service.LoanService
}

func NewLoanHandler(loans service.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

type createLoanRequest struct {
	CustomerID string   `json:"customer_id"`
	ToolNames  []string `json:"tool_names"`
	StartDate  string   `json:"start_date"`
	DueDate    string   `json:"due_date"`
}

type returnLoanRequest struct {
	DamagedTools    []string `json:"damaged_tools"`
	DiscardedTools  []string `json:"discarded_tools"`
	RepairCostCents int64    `json:"repair_cost_cents"`
}

// HandleCreate handles POST /api/v1/loans
func (h *LoanHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeBadRequest(w, "invalid start_date, expected YYYY-MM-DD")
		return
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		writeBadRequest(w, "invalid due_date, expected YYYY-MM-DD")
		return
	}

	loan, err := h.loans.CreateLoan(r.Context(), req.CustomerID, req.ToolNames, startDate, dueDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, "loan created", loan)
}

// HandleReturn handles POST /api/v1/loans/{id}/return
func (h *LoanHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	loanID, ok := parseLoanID(w, r)
	if !ok {
		return
	}
	var req returnLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	loan, err := h.loans.ReturnLoan(r.Context(), loanID, req.DamagedTools, req.DiscardedTools, req.RepairCostCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "loan returned", loan)
}

// HandlePay handles POST /api/v1/loans/{id}/pay
func (h *LoanHandler) HandlePay(w http.ResponseWriter, r *http.Request) {
	loanID, ok := parseLoanID(w, r)
	if !ok {
		return
	}
	loan, err := h.loans.MarkLoanPaid(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "loan marked paid", loan)
}

// HandleGet handles GET /api/v1/loans/{id}
func (h *LoanHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	loanID, ok := parseLoanID(w, r)
	if !ok {
		return
	}
	loan, err := h.loans.GetLoan(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "loan found", loan)
}

// HandleListByCustomer handles GET /api/v1/loans?customer_id=
func (h *LoanHandler) HandleListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	loans, err := h.loans.FindLoansByCustomer(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "loans found", loans)
}

// HandleListActive handles GET /api/v1/loans/active?from=&to=
func (h *LoanHandler) HandleListActive(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseOptionalRange(w, r)
	if !ok {
		return
	}
	loans, err := h.loans.ListActiveLoans(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "active loans", loans)
}

// HandleListOverdue handles GET /api/v1/loans/active/overdue?from=&to=
func (h *LoanHandler) HandleListOverdue(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseOptionalRange(w, r)
	if !ok {
		return
	}
	loans, err := h.loans.ListOverdueActiveLoans(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "overdue loans", loans)
}

// HandleListGrouped handles GET /api/v1/loans/active/grouped?from=&to=
func (h *LoanHandler) HandleListGrouped(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseOptionalRange(w, r)
	if !ok {
		return
	}
	grouped, err := h.loans.ListActiveLoansGrouped(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "active loans grouped", grouped)
}

func parseLoanID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		writeBadRequest(w, "invalid loan id")
		return 0, false
	}
	return int32(id), true
}

// parseOptionalRange reads optional from/to date query parameters.
func parseOptionalRange(w http.ResponseWriter, r *http.Request) (*time.Time, *time.Time, bool) {
	var from, to *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeBadRequest(w, "invalid from date, expected YYYY-MM-DD")
			return nil, nil, false
		}
		from = &t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeBadRequest(w, "invalid to date, expected YYYY-MM-DD")
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}
