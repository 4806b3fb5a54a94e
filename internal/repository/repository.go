package repository

import (
	"context"
	"time"

	"toolrent-backend/internal/domain"
)

type ToolLotRepository interface {
	Create(ctx context.Context, lot *domain.ToolLot) error
	GetByID(ctx context.Context, id int32) (*domain.ToolLot, error)
	Update(ctx context.Context, lot *domain.ToolLot) error
	Delete(ctx context.Context, id int32) error
	// SearchByName returns lots in any state matching the exact name,
	// ordered by id ascending so first-match selection is deterministic.
	SearchByName(ctx context.Context, name string) ([]domain.ToolLot, error)
	// FindByIdentityAndState returns the merge target for the identity
	// tuple in the given state, or (nil, nil) when none exists.
	FindByIdentityAndState(ctx context.Context, name, category string, replacementValueCents int64, state domain.LotState) (*domain.ToolLot, error)
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error)
	// ListOpen returns open loans, optionally restricted to a start-date range.
	ListOpen(ctx context.Context, from, to *time.Time) ([]domain.Loan, error)
	ListClosedUnpaid(ctx context.Context) ([]domain.Loan, error)
	HasOpenPastDue(ctx context.Context, customerID string, asOf time.Time) (bool, error)
	HasClosedUnpaid(ctx context.Context, customerID string) (bool, error)
}

// KardexRepository is append-only: no update or delete operations exist.
type KardexRepository interface {
	Append(ctx context.Context, movement *domain.KardexMovement) error
	ListAll(ctx context.Context) ([]domain.KardexMovement, error)
	ListByTool(ctx context.Context, toolName string) ([]domain.KardexMovement, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.KardexMovement, error)
	ListByDateRangeAndType(ctx context.Context, from, to time.Time, movementType domain.MovementType) ([]domain.KardexMovement, error)
	// TopLoanedTools ranks tool names by total loaned quantity, optionally
	// restricted to a movement-date range.
	TopLoanedTools(ctx context.Context, from, to *time.Time, limit int32) ([]domain.ToolMovementCount, error)
}

type PricingConfigRepository interface {
	// Get returns the single pricing config row, creating it with zero
	// rates when absent.
	Get(ctx context.Context) (*domain.PricingConfig, error)
	Update(ctx context.Context, cfg *domain.PricingConfig) error
}
