package domain

import (
	"time"

	"github.com/google/uuid"
)

// MovementType classifies a kardex movement. The values are the ledger's
// wire vocabulary and form a closed set.
type MovementType string

const (
	MovementTypeRegistration MovementType = "Ingreso"
	MovementTypeDecommission MovementType = "Baja"
	MovementTypeLoan         MovementType = "Préstamo"
	MovementTypeReturn       MovementType = "Devolución"
	MovementTypeRepair       MovementType = "Reparación"
)

// Valid reports whether t belongs to the closed movement-type set.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeRegistration, MovementTypeDecommission, MovementTypeLoan,
		MovementTypeReturn, MovementTypeRepair:
		return true
	}
	return false
}

// KardexMovement is one immutable audit record of a stock transition.
// Movements are append-only: never updated, never removed.
type KardexMovement struct {
	ID           uuid.UUID    `json:"id"`
	CustomerID   string       `json:"customer_id"`
	MovementType MovementType `json:"movement_type"`
	MovementDate time.Time    `json:"movement_date"`
	ToolName     string       `json:"tool_name"`
	Quantity     int32        `json:"quantity"`
	CreatedOn    time.Time    `json:"created_on"`
}

// ToolMovementCount is one row of the most-loaned-tools ranking.
type ToolMovementCount struct {
	ToolName      string `json:"tool_name"`
	TotalQuantity int64  `json:"total_quantity"`
}
