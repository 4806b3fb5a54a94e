package service_test

import (
	"context"
	"time"

	"toolrent-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockToolLotRepo
type MockToolLotRepo struct {
	mock.Mock
}

func (m *MockToolLotRepo) Create(ctx context.Context, lot *domain.ToolLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}
func (m *MockToolLotRepo) GetByID(ctx context.Context, id int32) (*domain.ToolLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolLot), args.Error(1)
}
func (m *MockToolLotRepo) Update(ctx context.Context, lot *domain.ToolLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}
func (m *MockToolLotRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockToolLotRepo) SearchByName(ctx context.Context, name string) ([]domain.ToolLot, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ToolLot), args.Error(1)
}
func (m *MockToolLotRepo) FindByIdentityAndState(ctx context.Context, name, category string, replacementValueCents int64, state domain.LotState) (*domain.ToolLot, error) {
	args := m.Called(ctx, name, category, replacementValueCents, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolLot), args.Error(1)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListOpen(ctx context.Context, from, to *time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListClosedUnpaid(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) HasOpenPastDue(ctx context.Context, customerID string, at time.Time) (bool, error) {
	args := m.Called(ctx, customerID, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockLoanRepo) HasClosedUnpaid(ctx context.Context, customerID string) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

// MockKardexRepo
type MockKardexRepo struct {
	mock.Mock
}

func (m *MockKardexRepo) Append(ctx context.Context, movement *domain.KardexMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}
func (m *MockKardexRepo) ListAll(ctx context.Context) ([]domain.KardexMovement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KardexMovement), args.Error(1)
}
func (m *MockKardexRepo) ListByTool(ctx context.Context, toolName string) ([]domain.KardexMovement, error) {
	args := m.Called(ctx, toolName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KardexMovement), args.Error(1)
}
func (m *MockKardexRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.KardexMovement, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KardexMovement), args.Error(1)
}
func (m *MockKardexRepo) ListByDateRangeAndType(ctx context.Context, from, to time.Time, movementType domain.MovementType) ([]domain.KardexMovement, error) {
	args := m.Called(ctx, from, to, movementType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KardexMovement), args.Error(1)
}
func (m *MockKardexRepo) TopLoanedTools(ctx context.Context, from, to *time.Time, limit int32) ([]domain.ToolMovementCount, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ToolMovementCount), args.Error(1)
}

// MockPricingConfigRepo
type MockPricingConfigRepo struct {
	mock.Mock
}

func (m *MockPricingConfigRepo) Get(ctx context.Context) (*domain.PricingConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingConfig), args.Error(1)
}
func (m *MockPricingConfigRepo) Update(ctx context.Context, cfg *domain.PricingConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// MockKardexService
type MockKardexService struct {
	mock.Mock
}

func (m *MockKardexService) Append(ctx context.Context, movement *domain.KardexMovement) (*domain.KardexMovement, error) {
	args := m.Called(ctx, movement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KardexMovement), args.Error(1)
}
func (m *MockKardexService) ListAll(ctx context.Context) ([]domain.KardexMovement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KardexMovement), args.Error(1)
}
func (m *MockKardexService) ToolHistory(ctx context.Context, toolName string) ([]domain.KardexMovement, error) {
	args := m.Called(ctx, toolName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KardexMovement), args.Error(1)
}
func (m *MockKardexService) CustomerHistory(ctx context.Context, customerID string) ([]domain.KardexMovement, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KardexMovement), args.Error(1)
}
func (m *MockKardexService) MovementsInRange(ctx context.Context, from, to time.Time, movementType domain.MovementType) ([]domain.KardexMovement, error) {
	args := m.Called(ctx, from, to, movementType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KardexMovement), args.Error(1)
}
func (m *MockKardexService) TopLoanedTools(ctx context.Context, from, to *time.Time, limit int32) ([]domain.ToolMovementCount, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ToolMovementCount), args.Error(1)
}

// MockInventoryService
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) Register(ctx context.Context, actorID, name, category string, replacementValueCents int64, quantity int32) (*domain.ToolLot, error) {
	args := m.Called(ctx, actorID, name, category, replacementValueCents, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolLot), args.Error(1)
}
func (m *MockInventoryService) ReserveForLoan(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error) {
	args := m.Called(ctx, lotID, actorID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolLot), args.Error(1)
}
func (m *MockInventoryService) ReturnToAvailable(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error) {
	args := m.Called(ctx, lotID, actorID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolLot), args.Error(1)
}
func (m *MockInventoryService) SendToRepair(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error) {
	args := m.Called(ctx, lotID, actorID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolLot), args.Error(1)
}
func (m *MockInventoryService) Decommission(ctx context.Context, lotID int32, actorID string, quantity int32) (*domain.ToolLot, error) {
	args := m.Called(ctx, lotID, actorID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolLot), args.Error(1)
}
func (m *MockInventoryService) SearchByName(ctx context.Context, name string) ([]domain.ToolLot, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ToolLot), args.Error(1)
}
func (m *MockInventoryService) SetReplacementValue(ctx context.Context, lotID int32, newValueCents int64) (*domain.ToolLot, error) {
	args := m.Called(ctx, lotID, newValueCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolLot), args.Error(1)
}

// MockPricingClient
type MockPricingClient struct {
	mock.Mock
}

func (m *MockPricingClient) CalculateLoanFee(ctx context.Context, days int32) (*domain.FeeQuote, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeQuote), args.Error(1)
}
func (m *MockPricingClient) CalculateLateFee(ctx context.Context, lateDays int32) (*domain.FeeQuote, error) {
	args := m.Called(ctx, lateDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeQuote), args.Error(1)
}

// MockCustomerDirectory
type MockCustomerDirectory struct {
	mock.Mock
}

func (m *MockCustomerDirectory) Exists(ctx context.Context, customerID string) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}
