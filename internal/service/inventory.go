package service

import (
	"context"
	"sync"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/repository"
)

type inventoryService struct {
	lotRepo repository.ToolLotRepository
	kardex  KardexService

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewInventoryService(lotRepo repository.ToolLotRepository, kardex KardexService) InventoryService {
	return &inventoryService{
		lotRepo: lotRepo,
		kardex:  kardex,
		locks:   make(map[string]*sync.Mutex),
	}
}

// lockName serializes stock transitions per tool name, so concurrent
// reservations against the same tool can never race a quantity below zero.
// All lots of one name share a lock because merges cross lot boundaries.
func (s *inventoryService) lockName(name string) func() {
	s.mu.Lock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// getLotLocked fetches the lot, takes its name lock, and re-reads inside
// the lock since the lot may have changed or vanished in between.
func (s *inventoryService) getLotLocked(ctx context.Context, lotID int32) (*domain.ToolLot, func(), error) {
	lot, err := s.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		return nil, nil, err
	}
	if lot == nil {
		return nil, nil, domain.Businessf("tool lot %d not found", lotID)
	}
	unlock := s.lockName(lot.Name)
	lot, err = s.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	if lot == nil {
		unlock()
		return nil, nil, domain.Businessf("tool lot %d not found", lotID)
	}
	return lot, unlock, nil
}

func (s *inventoryService) Register(ctx context.Context, actorID, name, category string, replacementValueCents int64, quantity int32) (*domain.ToolLot, error) {
	if actorID == "" {
		return nil, domain.Validationf("actor id is required")
	}
	if name == "" {
		return nil, domain.Validationf("tool name is required")
	}
	if category == "" {
		return nil, domain.Validationf("category is required")
	}
	if replacementValueCents <= 0 {
		return nil, domain.Validationf("replacement value must be greater than 0")
	}
	if quantity <= 0 {
		return nil, domain.Validationf("quantity must be greater than 0")
	}

	unlock := s.lockName(name)
	defer unlock()

	// Merge into the existing Available lot with the same identity
	// instead of creating a duplicate.
	target, err := s.lotRepo.FindByIdentityAndState(ctx, name, category, replacementValueCents, domain.LotStateAvailable)
	if err != nil {
		return nil, err
	}

	created := false
	if target == nil {
		target = &domain.ToolLot{
			Name:                  name,
			Category:              category,
			ReplacementValueCents: replacementValueCents,
			State:                 domain.LotStateAvailable,
			Quantity:              quantity,
		}
		if err := s.lotRepo.Create(ctx, target); err != nil {
			return nil, err
		}
		created = true
	} else {
		target.Quantity += quantity
		if err := s.lotRepo.Update(ctx, target); err != nil {
			return nil, err
		}
	}

	if err := s.appendMovement(ctx, actorID, domain.MovementTypeRegistration, name, quantity); err != nil {
		if created {
			s.deleteBestEffort(ctx, target.ID)
		} else {
			target.Quantity -= quantity
			s.updateBestEffort(ctx, target)
		}
		return nil, err
	}
	return target, nil
}

func (s *inventoryService) ReserveForLoan(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error) {
	if actorID == "" {
		return nil, domain.Validationf("actor id is required")
	}
	if quantity <= 0 {
		return nil, domain.Validationf("quantity must be greater than 0")
	}

	lot, unlock, err := s.getLotLocked(ctx, lotID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if quantity > lot.Quantity {
		return nil, domain.Businessf("cannot reserve %d units, lot %d holds %d", quantity, lot.ID, lot.Quantity)
	}
	if lot.State != domain.LotStateAvailable {
		return nil, domain.Businessf("only lots in state %s can be reserved", domain.LotStateAvailable)
	}

	undo, err := s.moveStock(ctx, lot, domain.LotStateLoaned, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.appendMovement(ctx, actorID, domain.MovementTypeLoan, lot.Name, quantity); err != nil {
		undo(ctx)
		return nil, err
	}
	return lot, nil
}

func (s *inventoryService) ReturnToAvailable(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error) {
	if actorID == "" {
		return nil, domain.Validationf("actor id is required")
	}
	if quantity <= 0 {
		return nil, domain.Validationf("quantity must be greater than 0")
	}

	lot, unlock, err := s.getLotLocked(ctx, lotID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if quantity > lot.Quantity {
		return nil, domain.Businessf("cannot return %d units, lot %d holds %d", quantity, lot.ID, lot.Quantity)
	}
	if lot.State == domain.LotStateAvailable {
		return nil, domain.Businessf("lot %d is already available", lot.ID)
	}

	undo, err := s.moveStock(ctx, lot, domain.LotStateAvailable, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.appendMovement(ctx, actorID, domain.MovementTypeReturn, lot.Name, quantity); err != nil {
		undo(ctx)
		return nil, err
	}
	return lot, nil
}

func (s *inventoryService) SendToRepair(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error) {
	if actorID == "" {
		return nil, domain.Validationf("actor id is required")
	}
	if quantity <= 0 {
		return nil, domain.Validationf("quantity must be greater than 0")
	}

	lot, unlock, err := s.getLotLocked(ctx, lotID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if quantity > lot.Quantity {
		return nil, domain.Businessf("cannot send %d units to repair, lot %d holds %d", quantity, lot.ID, lot.Quantity)
	}
	if lot.State == domain.LotStateDecommissioned {
		return nil, domain.Businessf("a decommissioned lot cannot be sent to repair")
	}

	undo, err := s.moveStock(ctx, lot, domain.LotStateInRepair, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.appendMovement(ctx, actorID, domain.MovementTypeRepair, lot.Name, quantity); err != nil {
		undo(ctx)
		return nil, err
	}
	return lot, nil
}

func (s *inventoryService) Decommission(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error) {
	if actorID == "" {
		return nil, domain.Validationf("actor id is required")
	}
	if quantity <= 0 {
		return nil, domain.Validationf("quantity must be greater than 0")
	}

	lot, unlock, err := s.getLotLocked(ctx, lotID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if quantity > lot.Quantity {
		return nil, domain.Businessf("cannot decommission %d units, lot %d holds %d", quantity, lot.ID, lot.Quantity)
	}

	undo, err := s.decommissionStock(ctx, lot, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.appendMovement(ctx, actorID, domain.MovementTypeDecommission, lot.Name, quantity); err != nil {
		undo(ctx)
		return nil, err
	}
	return lot, nil
}

func (s *inventoryService) SearchByName(ctx context.Context, name string) ([]domain.ToolLot, error) {
	if name == "" {
		return nil, domain.Validationf("tool name is required")
	}
	return s.lotRepo.SearchByName(ctx, name)
}

func (s *inventoryService) SetReplacementValue(ctx context.Context, lotID int32, newValueCents int64) (*domain.ToolLot, error) {
	if newValueCents <= 0 {
		return nil, domain.Validationf("replacement value must be greater than 0")
	}
	lot, unlock, err := s.getLotLocked(ctx, lotID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	lot.ReplacementValueCents = newValueCents
	if err := s.lotRepo.Update(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// moveStock decrements the source lot and merges the moved quantity into
// (or creates) the lot holding the same identity in destState. A source
// emptied by the move is deleted, never left dangling at zero. The
// returned closure reverts the move, best effort; it is used when the
// kardex append that must follow every transition fails.
func (s *inventoryService) moveStock(ctx context.Context, source *domain.ToolLot, destState domain.LotState, quantity int32) (func(context.Context), error) {
	if source.State == destState {
		// Nothing to move between lots; the movement is still recorded.
		return func(context.Context) {}, nil
	}

	dest, err := s.lotRepo.FindByIdentityAndState(ctx, source.Name, source.Category, source.ReplacementValueCents, destState)
	if err != nil {
		return nil, err
	}

	sourceCopy := *source
	source.Quantity -= quantity
	sourceDeleted := source.Quantity == 0
	if sourceDeleted {
		err = s.lotRepo.Delete(ctx, source.ID)
	} else {
		err = s.lotRepo.Update(ctx, source)
	}
	if err != nil {
		*source = sourceCopy
		return nil, err
	}

	destCreated := false
	if dest == nil {
		dest = &domain.ToolLot{
			Name:                  source.Name,
			Category:              source.Category,
			ReplacementValueCents: source.ReplacementValueCents,
			State:                 destState,
			Quantity:              quantity,
		}
		err = s.lotRepo.Create(ctx, dest)
		destCreated = true
	} else {
		dest.Quantity += quantity
		err = s.lotRepo.Update(ctx, dest)
	}
	if err != nil {
		// Put the source back before surfacing the failure.
		restored := sourceCopy
		if sourceDeleted {
			s.createBestEffort(ctx, &restored)
		} else {
			s.updateBestEffort(ctx, &restored)
		}
		*source = sourceCopy
		return nil, err
	}

	undo := func(undoCtx context.Context) {
		if destCreated {
			s.deleteBestEffort(undoCtx, dest.ID)
		} else {
			dest.Quantity -= quantity
			s.updateBestEffort(undoCtx, dest)
		}
		restored := sourceCopy
		if sourceDeleted {
			s.createBestEffort(undoCtx, &restored)
		} else {
			s.updateBestEffort(undoCtx, &restored)
		}
		*source = sourceCopy
	}
	return undo, nil
}

// decommissionStock removes quantity from the source lot and records it on
// the Decommissioned lot of the same identity. A source emptied by the
// removal becomes the decommissioned record itself when no merge target
// exists, preserving one lot per identity tuple and state.
func (s *inventoryService) decommissionStock(ctx context.Context, source *domain.ToolLot, quantity int32) (func(context.Context), error) {
	if source.State == domain.LotStateDecommissioned {
		return func(context.Context) {}, nil
	}

	dest, err := s.lotRepo.FindByIdentityAndState(ctx, source.Name, source.Category, source.ReplacementValueCents, domain.LotStateDecommissioned)
	if err != nil {
		return nil, err
	}

	sourceCopy := *source
	source.Quantity -= quantity

	if source.Quantity == 0 {
		if dest == nil {
			// The emptied row becomes the decommissioned lot.
			source.State = domain.LotStateDecommissioned
			source.Quantity = quantity
			if err := s.lotRepo.Update(ctx, source); err != nil {
				*source = sourceCopy
				return nil, err
			}
			undo := func(undoCtx context.Context) {
				restored := sourceCopy
				s.updateBestEffort(undoCtx, &restored)
				*source = sourceCopy
			}
			return undo, nil
		}
		if err := s.lotRepo.Delete(ctx, source.ID); err != nil {
			*source = sourceCopy
			return nil, err
		}
		dest.Quantity += quantity
		if err := s.lotRepo.Update(ctx, dest); err != nil {
			restored := sourceCopy
			s.createBestEffort(ctx, &restored)
			*source = sourceCopy
			return nil, err
		}
		undo := func(undoCtx context.Context) {
			dest.Quantity -= quantity
			s.updateBestEffort(undoCtx, dest)
			restored := sourceCopy
			s.createBestEffort(undoCtx, &restored)
			*source = sourceCopy
		}
		return undo, nil
	}

	if err := s.lotRepo.Update(ctx, source); err != nil {
		*source = sourceCopy
		return nil, err
	}

	destCreated := false
	if dest == nil {
		dest = &domain.ToolLot{
			Name:                  source.Name,
			Category:              source.Category,
			ReplacementValueCents: source.ReplacementValueCents,
			State:                 domain.LotStateDecommissioned,
			Quantity:              quantity,
		}
		err = s.lotRepo.Create(ctx, dest)
		destCreated = true
	} else {
		dest.Quantity += quantity
		err = s.lotRepo.Update(ctx, dest)
	}
	if err != nil {
		restored := sourceCopy
		s.updateBestEffort(ctx, &restored)
		*source = sourceCopy
		return nil, err
	}

	undo := func(undoCtx context.Context) {
		if destCreated {
			s.deleteBestEffort(undoCtx, dest.ID)
		} else {
			dest.Quantity -= quantity
			s.updateBestEffort(undoCtx, dest)
		}
		restored := sourceCopy
		s.updateBestEffort(undoCtx, &restored)
		*source = sourceCopy
	}
	return undo, nil
}

// appendMovement chains the kardex write that every state-changing
// operation must end with. Its failure fails the enclosing operation.
func (s *inventoryService) appendMovement(ctx context.Context, actorID string, movementType domain.MovementType, toolName string, quantity int32) error {
	_, err := s.kardex.Append(ctx, &domain.KardexMovement{
		CustomerID:   actorID,
		MovementType: movementType,
		ToolName:     toolName,
		Quantity:     quantity,
	})
	if err != nil {
		return &domain.CollaboratorError{Service: "kardex", Op: "append", Err: err}
	}
	return nil
}

func (s *inventoryService) updateBestEffort(ctx context.Context, lot *domain.ToolLot) {
	if err := s.lotRepo.Update(ctx, lot); err != nil {
		logger.Error("failed to revert stock transition", "lot_id", lot.ID, "error", err)
	}
}

func (s *inventoryService) createBestEffort(ctx context.Context, lot *domain.ToolLot) {
	if err := s.lotRepo.Create(ctx, lot); err != nil {
		logger.Error("failed to restore deleted lot", "name", lot.Name, "error", err)
	}
}

func (s *inventoryService) deleteBestEffort(ctx context.Context, lotID int32) {
	if err := s.lotRepo.Delete(ctx, lotID); err != nil {
		logger.Error("failed to remove lot while reverting", "lot_id", lotID, "error", err)
	}
}
