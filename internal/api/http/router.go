package http

import (
	"net/http"

	"toolrent-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires every API endpoint onto a mux router.
func NewRouter(
	inventory service.InventoryService,
	loans service.LoanService,
	kardex service.KardexService,
	pricing service.PricingService,
) *mux.Router {
	inventoryHandler := NewInventoryHandler(inventory)
	loanHandler := NewLoanHandler(loans)
	kardexHandler := NewKardexHandler(kardex)
	pricingHandler := NewPricingHandler(pricing)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	// Inventory ledger
	api.HandleFunc("/tools", inventoryHandler.HandleRegister).Methods(http.MethodPost)
	api.HandleFunc("/tools", inventoryHandler.HandleSearch).Methods(http.MethodGet)
	api.HandleFunc("/tools/{id}/reserve", inventoryHandler.HandleReserve).Methods(http.MethodPost)
	api.HandleFunc("/tools/{id}/return", inventoryHandler.HandleReturn).Methods(http.MethodPost)
	api.HandleFunc("/tools/{id}/repair", inventoryHandler.HandleRepair).Methods(http.MethodPost)
	api.HandleFunc("/tools/{id}/decommission", inventoryHandler.HandleDecommission).Methods(http.MethodPost)
	api.HandleFunc("/tools/{id}/replacement-value", inventoryHandler.HandleSetReplacementValue).Methods(http.MethodPut)

	// Loans
	api.HandleFunc("/loans", loanHandler.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/loans", loanHandler.HandleListByCustomer).Methods(http.MethodGet)
	api.HandleFunc("/loans/active", loanHandler.HandleListActive).Methods(http.MethodGet)
	api.HandleFunc("/loans/active/overdue", loanHandler.HandleListOverdue).Methods(http.MethodGet)
	api.HandleFunc("/loans/active/grouped", loanHandler.HandleListGrouped).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}", loanHandler.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/return", loanHandler.HandleReturn).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}/pay", loanHandler.HandlePay).Methods(http.MethodPost)

	// Kardex (read-only)
	api.HandleFunc("/kardex", kardexHandler.HandleListAll).Methods(http.MethodGet)
	api.HandleFunc("/kardex/tools/{name}", kardexHandler.HandleToolHistory).Methods(http.MethodGet)
	api.HandleFunc("/kardex/customers/{id}", kardexHandler.HandleCustomerHistory).Methods(http.MethodGet)
	api.HandleFunc("/kardex/range", kardexHandler.HandleRange).Methods(http.MethodGet)
	api.HandleFunc("/kardex/top-loaned", kardexHandler.HandleTopLoaned).Methods(http.MethodGet)

	// Pricing
	api.HandleFunc("/pricing/config", pricingHandler.HandleGetConfig).Methods(http.MethodGet)
	api.HandleFunc("/pricing/rental-fee", pricingHandler.HandleUpdateRentalFee).Methods(http.MethodPut)
	api.HandleFunc("/pricing/late-fee", pricingHandler.HandleUpdateLateFee).Methods(http.MethodPut)
	api.HandleFunc("/pricing/loan-fee", pricingHandler.HandleLoanFee).Methods(http.MethodGet)
	api.HandleFunc("/pricing/late-fee", pricingHandler.HandleLateFee).Methods(http.MethodGet)

	return router
}
