package service

import (
	"context"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"

	"github.com/google/uuid"
)

type kardexService struct {
	kardexRepo repository.KardexRepository
}

func NewKardexService(kardexRepo repository.KardexRepository) KardexService {
	return &kardexService{kardexRepo: kardexRepo}
}

// Append validates and persists one movement. Movements are immutable:
// there is no update or delete path anywhere in this service.
func (s *kardexService) Append(ctx context.Context, movement *domain.KardexMovement) (*domain.KardexMovement, error) {
	if movement == nil {
		return nil, domain.Validationf("movement is required")
	}
	if movement.CustomerID == "" {
		return nil, domain.Validationf("customer id is required")
	}
	if !movement.MovementType.Valid() {
		return nil, domain.Validationf("invalid movement type: %q", movement.MovementType)
	}
	if movement.ToolName == "" {
		return nil, domain.Validationf("tool name is required")
	}
	if movement.Quantity <= 0 {
		return nil, domain.Validationf("quantity must be greater than 0")
	}
	if movement.MovementDate.IsZero() {
		movement.MovementDate = time.Now()
	}
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}

	if err := s.kardexRepo.Append(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

func (s *kardexService) ListAll(ctx context.Context) ([]domain.KardexMovement, error) {
	return s.kardexRepo.ListAll(ctx)
}

func (s *kardexService) ToolHistory(ctx context.Context, toolName string) ([]domain.KardexMovement, error) {
	if toolName == "" {
		return nil, domain.Validationf("tool name is required")
	}
	return s.kardexRepo.ListByTool(ctx, toolName)
}

func (s *kardexService) CustomerHistory(ctx context.Context, customerID string) ([]domain.KardexMovement, error) {
	if customerID == "" {
		return nil, domain.Validationf("customer id is required")
	}
	return s.kardexRepo.ListByCustomer(ctx, customerID)
}

func (s *kardexService) MovementsInRange(ctx context.Context, from, to time.Time, movementType domain.MovementType) ([]domain.KardexMovement, error) {
	if to.Before(from) {
		return nil, domain.Validationf("invalid date range: to is before from")
	}
	if !movementType.Valid() {
		return nil, domain.Validationf("invalid movement type: %q", movementType)
	}
	return s.kardexRepo.ListByDateRangeAndType(ctx, from, to, movementType)
}

func (s *kardexService) TopLoanedTools(ctx context.Context, from, to *time.Time, limit int32) ([]domain.ToolMovementCount, error) {
	if limit <= 0 {
		limit = 10
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.Validationf("invalid date range: to is before from")
	}
	return s.kardexRepo.TopLoanedTools(ctx, from, to, limit)
}
