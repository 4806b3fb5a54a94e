package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/service"

	"github.com/gorilla/mux"
)

// InventoryHandler exposes the stock ledger over HTTP
type InventoryHandler struct {
	inventory service.InventoryService
}

func NewInventoryHandler(inventory service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type registerToolRequest struct {
	ActorID               string `json:"actor_id"`
	Name                  string `json:"name"`
	Category              string `json:"category"`
	ReplacementValueCents int64  `json:"replacement_value_cents"`
	Quantity              int32  `json:"quantity"`
}

type stockTransitionRequest struct {
	ActorID  string `json:"actor_id"`
	Quantity int32  `json:"quantity"`
}

type setValueRequest struct {
	NewValueCents int64 `json:"new_value_cents"`
}

// HandleRegister handles POST /api/v1/tools
func (h *InventoryHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	lot, err := h.inventory.Register(r.Context(), req.ActorID, req.Name, req.Category, req.ReplacementValueCents, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, "tool registered", lot)
}

// HandleSearch handles GET /api/v1/tools?name=
func (h *InventoryHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	lots, err := h.inventory.SearchByName(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "tools found", lots)
}

// HandleReserve handles POST /api/v1/tools/{id}/reserve
func (h *InventoryHandler) HandleReserve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.inventory.ReserveForLoan, "units reserved")
}

// HandleReturn handles POST /api/v1/tools/{id}/return
func (h *InventoryHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.inventory.ReturnToAvailable, "units returned to stock")
}

// HandleRepair handles POST /api/v1/tools/{id}/repair
func (h *InventoryHandler) HandleRepair(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.inventory.SendToRepair, "units sent to repair")
}

// HandleDecommission handles POST /api/v1/tools/{id}/decommission
func (h *InventoryHandler) HandleDecommission(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.inventory.Decommission, "units decommissioned")
}

// HandleSetReplacementValue handles PUT /api/v1/tools/{id}/replacement-value
func (h *InventoryHandler) HandleSetReplacementValue(w http.ResponseWriter, r *http.Request) {
	lotID, ok := parseLotID(w, r)
	if !ok {
		return
	}
	var req setValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	lot, err := h.inventory.SetReplacementValue(r.Context(), lotID, req.NewValueCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "replacement value updated", lot)
}

func (h *InventoryHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error),
	message string,
) {
	lotID, ok := parseLotID(w, r)
	if !ok {
		return
	}
	var req stockTransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	lot, err := op(r.Context(), lotID, req.ActorID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, message, lot)
}

func parseLotID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		writeBadRequest(w, "invalid lot id")
		return 0, false
	}
	return int32(id), true
}
