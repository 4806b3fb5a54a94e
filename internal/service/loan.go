package service

import (
	"context"
	"sync"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/repository"

	"github.com/google/uuid"
)

type loanService struct {
	loanRepo  repository.LoanRepository
	inventory InventoryService
	pricing   PricingClient
	directory CustomerDirectory // nil when no directory is configured

	mu    sync.Mutex
	locks map[int32]*sync.Mutex
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	inventory InventoryService,
	pricing PricingClient,
	directory CustomerDirectory,
) LoanService {
	return &loanService{
		loanRepo:  loanRepo,
		inventory: inventory,
		pricing:   pricing,
		directory: directory,
		locks:     make(map[int32]*sync.Mutex),
	}
}

// lockLoan serializes mutations of one loan aggregate, so a second return
// of the same loan waits and is then rejected on the closed-loan check.
func (s *loanService) lockLoan(loanID int32) func() {
	s.mu.Lock()
	l, ok := s.locks[loanID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[loanID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (s *loanService) CreateLoan(ctx context.Context, customerID string, toolNames []string, startDate, dueDate time.Time) (*domain.Loan, error) {
	if customerID == "" {
		return nil, domain.Validationf("customer id is required")
	}
	requested := make([]string, 0, len(toolNames))
	for _, name := range toolNames {
		if name != "" {
			requested = append(requested, name)
		}
	}
	if len(requested) == 0 {
		return nil, domain.Validationf("at least one tool name is required")
	}
	if dueDate.Before(startDate) {
		return nil, domain.Validationf("due date must not be before start date")
	}
	days := daysBetween(startDate, dueDate)
	if days < 1 {
		return nil, domain.Validationf("rental span must be at least one day")
	}

	if s.directory != nil {
		ok, err := s.directory.Exists(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.Businessf("customer %s not found", customerID)
		}
	}

	overdue, err := s.loanRepo.HasOpenPastDue(ctx, customerID, time.Now())
	if err != nil {
		return nil, err
	}
	unpaid, err := s.loanRepo.HasClosedUnpaid(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if overdue || unpaid {
		return nil, domain.Businessf("customer %s is not eligible: overdue or unpaid loans on record", customerID)
	}

	sagaID := uuid.New()
	var reserved []string

	// abort releases every already-reserved unit in reverse order, one
	// compensating call per unit, best effort. A reserved unit lives in
	// the Loaned lot of its tool, not the drained source, so each release
	// locates that lot first. The walk-back runs detached from request
	// cancellation: the timeout that caused the abort must not starve the
	// compensation too. With nothing reserved the rejection is clean.
	abort := func(step int, cause error) error {
		if len(reserved) == 0 {
			return cause
		}
		compCtx := context.WithoutCancel(ctx)
		released, failed := 0, 0
		for i := len(reserved) - 1; i >= 0; i-- {
			toolName := reserved[i]
			loaned, compErr := s.findLoanedLot(compCtx, toolName)
			if compErr == nil {
				_, compErr = s.inventory.ReturnToAvailable(compCtx, loaned.ID, customerID, 1)
			}
			if compErr != nil {
				failed++
				logger.Error("loan saga compensation failed",
					"saga_id", sagaID, "tool", toolName, "error", compErr)
			} else {
				released++
			}
		}
		return &domain.SagaAbortedError{
			SagaID:      sagaID,
			Step:        step,
			Compensated: released,
			FailedComps: failed,
			Cause:       cause,
		}
	}

	for i, toolName := range requested {
		lots, err := s.inventory.SearchByName(ctx, toolName)
		if err != nil {
			return nil, abort(i, err)
		}
		var chosen *domain.ToolLot
		for j := range lots {
			if lots[j].State == domain.LotStateAvailable && lots[j].Quantity >= 1 {
				chosen = &lots[j]
				break
			}
		}
		if chosen == nil {
			return nil, abort(i, domain.Businessf("no available stock for tool %q", toolName))
		}
		if _, err := s.inventory.ReserveForLoan(ctx, chosen.ID, customerID, 1); err != nil {
			return nil, abort(i, err)
		}
		reserved = append(reserved, toolName)
		logger.Debug("loan saga reserved unit",
			"saga_id", sagaID, "step", i, "lot_id", chosen.ID, "tool", toolName)
	}

	quote, err := s.pricing.CalculateLoanFee(ctx, days)
	if err != nil {
		return nil, abort(len(requested), err)
	}

	loan := &domain.Loan{
		CustomerID:     customerID,
		ToolNames:      requested,
		StartDate:      startDate,
		DueDate:        dueDate,
		RentalFeeCents: quote.TotalCents,
		DamagedTools:   []string{},
		DiscardedTools: []string{},
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, abort(len(requested)+1, err)
	}

	logger.Info("loan created",
		"saga_id", sagaID, "loan_id", loan.ID, "customer_id", customerID, "units", len(requested))
	return loan, nil
}

func (s *loanService) ReturnLoan(ctx context.Context, loanID int32, damaged, discarded []string, repairCostCents int64) (*domain.Loan, error) {
	if repairCostCents < 0 {
		return nil, domain.Validationf("repair cost must not be negative")
	}

	unlock := s.lockLoan(loanID)
	defer unlock()

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, domain.Businessf("loan %d not found", loanID)
	}
	if !loan.Open() {
		return nil, domain.Businessf("loan %d is already closed", loanID)
	}

	if damaged == nil {
		damaged = []string{}
	}
	if discarded == nil {
		discarded = []string{}
	}
	loan.DamagedTools = damaged
	loan.DiscardedTools = discarded

	sagaID := uuid.New()
	endDate := time.Now()
	loan.EndDate = &endDate

	lateDays := daysBetween(loan.DueDate, endDate)
	var lateFine int64
	if lateDays > 0 {
		quote, err := s.pricing.CalculateLateFee(ctx, lateDays)
		if err != nil {
			// Deliberately degraded: an unreachable calculator must not
			// block the return, the late fine defaults to zero.
			logger.Warn("late fee lookup failed, defaulting to zero",
				"saga_id", sagaID, "loan_id", loanID, "late_days", lateDays, "error", err)
		} else {
			lateFine = quote.TotalCents
		}
	}
	loan.FineCents = lateFine

	for i, toolName := range loan.ToolNames {
		loaned, err := s.findLoanedLot(ctx, toolName)
		if err != nil {
			return nil, s.returnAborted(sagaID, loanID, i, err)
		}

		switch {
		case containsName(discarded, toolName):
			if _, err := s.inventory.Decommission(ctx, loaned.ID, loan.CustomerID, 1); err != nil {
				return nil, s.returnAborted(sagaID, loanID, i, err)
			}
			loan.FineCents += loaned.ReplacementValueCents
		case containsName(damaged, toolName):
			if _, err := s.inventory.SendToRepair(ctx, loaned.ID, loan.CustomerID, 1); err != nil {
				return nil, s.returnAborted(sagaID, loanID, i, err)
			}
			if repairCostCents > 0 {
				loan.FineCents += repairCostCents
			}
		default:
			if _, err := s.inventory.ReturnToAvailable(ctx, loaned.ID, loan.CustomerID, 1); err != nil {
				return nil, s.returnAborted(sagaID, loanID, i, err)
			}
		}
	}

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}
	logger.Info("loan returned",
		"saga_id", sagaID, "loan_id", loan.ID, "late_days", lateDays, "fine_cents", loan.FineCents)
	return loan, nil
}

// findLoanedLot locates the lot holding loaned units of the tool, lowest
// id first.
func (s *loanService) findLoanedLot(ctx context.Context, toolName string) (*domain.ToolLot, error) {
	lots, err := s.inventory.SearchByName(ctx, toolName)
	if err != nil {
		return nil, err
	}
	for i := range lots {
		if lots[i].State == domain.LotStateLoaned && lots[i].Quantity >= 1 {
			return &lots[i], nil
		}
	}
	return nil, domain.Businessf("inventory inconsistency: no loaned lot found for tool %q", toolName)
}

// returnAborted surfaces a mid-walk failure of the return saga. Units
// already transitioned stay transitioned: there is no compensation on the
// return side, the inconsistency window is logged for reconciliation.
func (s *loanService) returnAborted(sagaID uuid.UUID, loanID int32, step int, cause error) error {
	if step > 0 {
		logger.Error("loan return aborted mid-walk, earlier units stay committed",
			"saga_id", sagaID, "loan_id", loanID, "failed_step", step, "error", cause)
	}
	return cause
}

func (s *loanService) MarkLoanPaid(ctx context.Context, loanID int32) (*domain.Loan, error) {
	unlock := s.lockLoan(loanID)
	defer unlock()

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, domain.Businessf("loan %d not found", loanID)
	}
	loan.Paid = true
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *loanService) GetLoan(ctx context.Context, loanID int32) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, domain.Businessf("loan %d not found", loanID)
	}
	return loan, nil
}

func (s *loanService) FindLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	if customerID == "" {
		return nil, domain.Validationf("customer id is required")
	}
	return s.loanRepo.ListByCustomer(ctx, customerID)
}

func (s *loanService) ListActiveLoans(ctx context.Context, from, to *time.Time) ([]domain.Loan, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.Validationf("invalid date range: to is before from")
	}
	return s.loanRepo.ListOpen(ctx, from, to)
}

func (s *loanService) ListOverdueActiveLoans(ctx context.Context, from, to *time.Time) ([]domain.Loan, error) {
	open, err := s.ListActiveLoans(ctx, from, to)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var overdue []domain.Loan
	for _, loan := range open {
		if loan.OverdueAt(now) {
			overdue = append(overdue, loan)
		}
	}
	return overdue, nil
}

// ListActiveLoansGrouped splits open loans into the report buckets
// consumed by the reporting side: "Atrasos" (past due) and "Vigentes".
func (s *loanService) ListActiveLoansGrouped(ctx context.Context, from, to *time.Time) (map[string][]domain.Loan, error) {
	open, err := s.ListActiveLoans(ctx, from, to)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	grouped := map[string][]domain.Loan{
		"Atrasos":  {},
		"Vigentes": {},
	}
	for _, loan := range open {
		if loan.OverdueAt(now) {
			grouped["Atrasos"] = append(grouped["Atrasos"], loan)
		} else {
			grouped["Vigentes"] = append(grouped["Vigentes"], loan)
		}
	}
	return grouped, nil
}

// daysBetween counts whole calendar days from one date to another,
// ignoring the time of day. Negative when to precedes from.
func daysBetween(from, to time.Time) int32 {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int32(toDay.Sub(fromDay).Hours() / 24)
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
