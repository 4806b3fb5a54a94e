package http

import (
	"net/http"
	"strconv"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/service"

	"github.com/gorilla/mux"
)

// KardexHandler exposes read access to the movement ledger. There is no
// write endpoint: movements are appended by the inventory ledger only.
type KardexHandler struct {
	kardex service.KardexService
}

func NewKardexHandler(kardex service.KardexService) *KardexHandler {
	return &KardexHandler{kardex: kardex}
}

// HandleListAll handles GET /api/v1/kardex
func (h *KardexHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	movements, err := h.kardex.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "movements", movements)
}

// HandleToolHistory handles GET /api/v1/kardex/tools/{name}
func (h *KardexHandler) HandleToolHistory(w http.ResponseWriter, r *http.Request) {
	toolName := mux.Vars(r)["name"]
	movements, err := h.kardex.ToolHistory(r.Context(), toolName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "tool movement history", movements)
}

// HandleCustomerHistory handles GET /api/v1/kardex/customers/{id}
func (h *KardexHandler) HandleCustomerHistory(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["id"]
	movements, err := h.kardex.CustomerHistory(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "customer movement history", movements)
}

// HandleRange handles GET /api/v1/kardex/range?from=&to=&type=
func (h *KardexHandler) HandleRange(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		writeBadRequest(w, "invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		writeBadRequest(w, "invalid to date, expected YYYY-MM-DD")
		return
	}
	movementType := domain.MovementType(r.URL.Query().Get("type"))

	movements, err := h.kardex.MovementsInRange(r.Context(), from, to, movementType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "movements in range", movements)
}

// HandleTopLoaned handles GET /api/v1/kardex/top-loaned?from=&to=&limit=
func (h *KardexHandler) HandleTopLoaned(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseOptionalRange(w, r)
	if !ok {
		return
	}
	var limit int32
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			writeBadRequest(w, "invalid limit")
			return
		}
		limit = int32(parsed)
	}

	ranking, err := h.kardex.TopLoanedTools(r.Context(), from, to, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "top loaned tools", ranking)
}
