package service

import (
	"context"
	"time"

	"toolrent-backend/internal/domain"
)

type InventoryService interface {
	Register(ctx context.Context, actorID, name, category string, replacementValueCents int64, quantity int32) (*domain.ToolLot, error)
	ReserveForLoan(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error)
	ReturnToAvailable(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error)
	SendToRepair(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error)
	Decommission(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error)
	SearchByName(ctx context.Context, name string) ([]domain.ToolLot, error)
	SetReplacementValue(ctx context.Context, lotID int32, newValueCents int64) (*domain.ToolLot, error)
}

type KardexService interface {
	Append(ctx context.Context, movement *domain.KardexMovement) (*domain.KardexMovement, error)
	ListAll(ctx context.Context) ([]domain.KardexMovement, error)
	ToolHistory(ctx context.Context, toolName string) ([]domain.KardexMovement, error)
	CustomerHistory(ctx context.Context, customerID string) ([]domain.KardexMovement, error)
	MovementsInRange(ctx context.Context, from, to time.Time, movementType domain.MovementType) ([]domain.KardexMovement, error)
	TopLoanedTools(ctx context.Context, from, to *time.Time, limit int32) ([]domain.ToolMovementCount, error)
}

// PricingClient is the fee-calculator contract the loan orchestrator
// depends on. Implementations must be idempotent and side-effect-free.
type PricingClient interface {
	CalculateLoanFee(ctx context.Context, days int32) (*domain.FeeQuote, error)
	CalculateLateFee(ctx context.Context, lateDays int32) (*domain.FeeQuote, error)
}

type PricingService interface {
	PricingClient
	GetConfig(ctx context.Context) (*domain.PricingConfig, error)
	UpdateRentalFeeDaily(ctx context.Context, newValueCents int64) (*domain.PricingConfig, error)
	UpdateLateFeeDaily(ctx context.Context, newValueCents int64) (*domain.PricingConfig, error)
}

// CustomerDirectory is the external customer-record collaborator. Only
// existence checks cross this boundary.
type CustomerDirectory interface {
	Exists(ctx context.Context, customerID string) (bool, error)
}

type LoanService interface {
	CreateLoan(ctx context.Context, customerID string, toolNames []string, startDate, dueDate time.Time) (*domain.Loan, error)
	ReturnLoan(ctx context.Context, loanID int32, damaged, discarded []string, repairCostCents int64) (*domain.Loan, error)
	MarkLoanPaid(ctx context.Context, loanID int32) (*domain.Loan, error)
	GetLoan(ctx context.Context, loanID int32) (*domain.Loan, error)
	FindLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error)
	ListActiveLoans(ctx context.Context, from, to *time.Time) ([]domain.Loan, error)
	ListOverdueActiveLoans(ctx context.Context, from, to *time.Time) ([]domain.Loan, error)
	ListActiveLoansGrouped(ctx context.Context, from, to *time.Time) (map[string][]domain.Loan, error)
}
