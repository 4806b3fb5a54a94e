package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"toolrent-backend/internal/service"
)

// PricingHandler exposes the pricing configuration and the fee
// calculators. The calculator endpoints are the ones the loan
// orchestrator's HTTP client consumes when pricing runs remotely.
type PricingHandler struct {
	pricing service.PricingService
}

func NewPricingHandler(pricing service.PricingService) *PricingHandler {
	return &PricingHandler{pricing: pricing}
}

type updateRateRequest struct {
	NewValueCents int64 `json:"new_value_cents"`
}

// HandleGetConfig handles GET /api/v1/pricing/config
func (h *PricingHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.pricing.GetConfig(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "pricing config", cfg)
}

// HandleUpdateRentalFee handles PUT /api/v1/pricing/rental-fee
func (h *PricingHandler) HandleUpdateRentalFee(w http.ResponseWriter, r *http.Request) {
	var req updateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	cfg, err := h.pricing.UpdateRentalFeeDaily(r.Context(), req.NewValueCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "daily rental fee updated", cfg)
}

// HandleUpdateLateFee handles PUT /api/v1/pricing/late-fee
func (h *PricingHandler) HandleUpdateLateFee(w http.ResponseWriter, r *http.Request) {
	var req updateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	cfg, err := h.pricing.UpdateLateFeeDaily(r.Context(), req.NewValueCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "daily late fee updated", cfg)
}

// HandleLoanFee handles GET /api/v1/pricing/loan-fee?days=
func (h *PricingHandler) HandleLoanFee(w http.ResponseWriter, r *http.Request) {
	days, ok := parseDays(w, r)
	if !ok {
		return
	}
	quote, err := h.pricing.CalculateLoanFee(r.Context(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "loan fee", quote)
}

// HandleLateFee handles GET /api/v1/pricing/late-fee?days=
func (h *PricingHandler) HandleLateFee(w http.ResponseWriter, r *http.Request) {
	days, ok := parseDays(w, r)
	if !ok {
		return
	}
	quote, err := h.pricing.CalculateLateFee(r.Context(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, "late fee", quote)
}

func parseDays(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := r.URL.Query().Get("days")
	days, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		writeBadRequest(w, "invalid days parameter")
		return 0, false
	}
	return int32(days), true
}
