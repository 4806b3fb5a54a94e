package service_test

import (
	"context"
	"errors"
	"testing"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newInventoryFixture() (*MockToolLotRepo, *MockKardexService, service.InventoryService) {
	lotRepo := new(MockToolLotRepo)
	kardexSvc := new(MockKardexService)
	svc := service.NewInventoryService(lotRepo, kardexSvc)
	return lotRepo, kardexSvc, svc
}

func TestInventoryService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("merges into existing available lot", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		existing := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateAvailable, Quantity: 3,
		}
		lotRepo.On("FindByIdentityAndState", ctx, "Drill", "Power Tools", int64(50000), domain.LotStateAvailable).Return(existing, nil)
		lotRepo.On("Update", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		kardexSvc.On("Append", ctx, mock.AnythingOfType("*domain.KardexMovement")).Return(&domain.KardexMovement{}, nil)

		lot, err := svc.Register(ctx, "admin-1", "Drill", "Power Tools", 50000, 5)
		assert.NoError(t, err)
		assert.Equal(t, int32(8), lot.Quantity)
		assert.Equal(t, int32(1), lot.ID)
		lotRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates a new lot when no identity match exists", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		lotRepo.On("FindByIdentityAndState", ctx, "Drill", "Power Tools", int64(50000), domain.LotStateAvailable).Return(nil, nil)
		lotRepo.On("Create", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		kardexSvc.On("Append", ctx, mock.AnythingOfType("*domain.KardexMovement")).Return(&domain.KardexMovement{}, nil)

		lot, err := svc.Register(ctx, "admin-1", "Drill", "Power Tools", 50000, 5)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), lot.Quantity)
		assert.Equal(t, domain.LotStateAvailable, lot.State)
	})

	t.Run("rejects non-positive quantity without touching the store", func(t *testing.T) {
		lotRepo, _, svc := newInventoryFixture()

		lot, err := svc.Register(ctx, "admin-1", "Drill", "Power Tools", 50000, 0)
		assert.Error(t, err)
		assert.Nil(t, lot)
		assert.True(t, domain.IsValidation(err))
		lotRepo.AssertNotCalled(t, "FindByIdentityAndState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reverts the stock increment when the kardex append fails", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		existing := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateAvailable, Quantity: 3,
		}
		lotRepo.On("FindByIdentityAndState", ctx, "Drill", "Power Tools", int64(50000), domain.LotStateAvailable).Return(existing, nil)
		lotRepo.On("Update", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		kardexSvc.On("Append", ctx, mock.AnythingOfType("*domain.KardexMovement")).Return(nil, errors.New("kardex down"))

		lot, err := svc.Register(ctx, "admin-1", "Drill", "Power Tools", 50000, 5)
		assert.Error(t, err)
		assert.Nil(t, lot)
		assert.True(t, domain.IsCollaborator(err))
		assert.Equal(t, int32(3), existing.Quantity)
		lotRepo.AssertNumberOfCalls(t, "Update", 2)
	})
}

func TestInventoryService_ReserveForLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("moves units from available to loaned", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		source := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateAvailable, Quantity: 5,
		}
		lotRepo.On("GetByID", ctx, int32(1)).Return(source, nil)
		lotRepo.On("FindByIdentityAndState", ctx, "Drill", "Power Tools", int64(50000), domain.LotStateLoaned).Return(nil, nil)
		lotRepo.On("Update", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		lotRepo.On("Create", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		kardexSvc.On("Append", ctx, mock.AnythingOfType("*domain.KardexMovement")).Return(&domain.KardexMovement{}, nil)

		lot, err := svc.ReserveForLoan(ctx, 1, "cust-9", 2)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), lot.Quantity)
	})

	t.Run("rejects a reservation beyond the lot quantity", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		source := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateAvailable, Quantity: 5,
		}
		lotRepo.On("GetByID", ctx, int32(1)).Return(source, nil)

		lot, err := svc.ReserveForLoan(ctx, 1, "cust-9", 10)
		assert.Error(t, err)
		assert.Nil(t, lot)
		assert.True(t, domain.IsBusiness(err))
		assert.Equal(t, int32(5), source.Quantity)
		lotRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		kardexSvc.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("rejects reserving from a non-available lot", func(t *testing.T) {
		lotRepo, _, svc := newInventoryFixture()
		source := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateInRepair, Quantity: 5,
		}
		lotRepo.On("GetByID", ctx, int32(1)).Return(source, nil)

		lot, err := svc.ReserveForLoan(ctx, 1, "cust-9", 1)
		assert.Error(t, err)
		assert.Nil(t, lot)
		assert.True(t, domain.IsBusiness(err))
	})

	t.Run("reverts the move when the kardex append fails", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		source := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateAvailable, Quantity: 5,
		}
		lotRepo.On("GetByID", ctx, int32(1)).Return(source, nil)
		lotRepo.On("FindByIdentityAndState", ctx, "Drill", "Power Tools", int64(50000), domain.LotStateLoaned).Return(nil, nil)
		lotRepo.On("Update", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		lotRepo.On("Create", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		lotRepo.On("Delete", ctx, mock.AnythingOfType("int32")).Return(nil)
		kardexSvc.On("Append", ctx, mock.AnythingOfType("*domain.KardexMovement")).Return(nil, errors.New("kardex down"))

		lot, err := svc.ReserveForLoan(ctx, 1, "cust-9", 2)
		assert.Error(t, err)
		assert.Nil(t, lot)
		assert.True(t, domain.IsCollaborator(err))
		assert.Equal(t, int32(5), source.Quantity)
		lotRepo.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("int32"))
	})

	t.Run("deletes a source lot emptied by the move", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		source := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateAvailable, Quantity: 2,
		}
		dest := &domain.ToolLot{
			ID: 2, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateLoaned, Quantity: 1,
		}
		lotRepo.On("GetByID", ctx, int32(1)).Return(source, nil)
		lotRepo.On("FindByIdentityAndState", ctx, "Drill", "Power Tools", int64(50000), domain.LotStateLoaned).Return(dest, nil)
		lotRepo.On("Delete", ctx, int32(1)).Return(nil)
		lotRepo.On("Update", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		kardexSvc.On("Append", ctx, mock.AnythingOfType("*domain.KardexMovement")).Return(&domain.KardexMovement{}, nil)

		_, err := svc.ReserveForLoan(ctx, 1, "cust-9", 2)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), dest.Quantity)
		lotRepo.AssertCalled(t, "Delete", ctx, int32(1))
	})
}

func TestInventoryService_ReturnToAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("merges loaned units back into the available lot", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		source := &domain.ToolLot{
			ID: 2, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateLoaned, Quantity: 1,
		}
		dest := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateAvailable, Quantity: 4,
		}
		lotRepo.On("GetByID", ctx, int32(2)).Return(source, nil)
		lotRepo.On("FindByIdentityAndState", ctx, "Drill", "Power Tools", int64(50000), domain.LotStateAvailable).Return(dest, nil)
		lotRepo.On("Delete", ctx, int32(2)).Return(nil)
		lotRepo.On("Update", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		kardexSvc.On("Append", ctx, mock.AnythingOfType("*domain.KardexMovement")).Return(&domain.KardexMovement{}, nil)

		_, err := svc.ReturnToAvailable(ctx, 2, "cust-9", 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), dest.Quantity)
		lotRepo.AssertCalled(t, "Delete", ctx, int32(2))
	})

	t.Run("rejects a lot that is already available", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		source := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateAvailable, Quantity: 4,
		}
		lotRepo.On("GetByID", ctx, int32(1)).Return(source, nil)

		lot, err := svc.ReturnToAvailable(ctx, 1, "cust-9", 1)
		assert.Error(t, err)
		assert.Nil(t, lot)
		assert.True(t, domain.IsBusiness(err))
		assert.Equal(t, int32(4), source.Quantity)
		kardexSvc.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestInventoryService_Decommission(t *testing.T) {
	ctx := context.Background()

	t.Run("emptied source becomes the decommissioned lot", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		source := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateLoaned, Quantity: 1,
		}
		lotRepo.On("GetByID", ctx, int32(1)).Return(source, nil)
		lotRepo.On("FindByIdentityAndState", ctx, "Drill", "Power Tools", int64(50000), domain.LotStateDecommissioned).Return(nil, nil)
		lotRepo.On("Update", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		kardexSvc.On("Append", ctx, mock.AnythingOfType("*domain.KardexMovement")).Return(&domain.KardexMovement{}, nil)

		lot, err := svc.Decommission(ctx, 1, "cust-9", 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.LotStateDecommissioned, lot.State)
		assert.Equal(t, int32(1), lot.Quantity)
	})

	t.Run("merges into an existing decommissioned lot", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		source := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateLoaned, Quantity: 1,
		}
		dest := &domain.ToolLot{
			ID: 2, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateDecommissioned, Quantity: 4,
		}
		lotRepo.On("GetByID", ctx, int32(1)).Return(source, nil)
		lotRepo.On("FindByIdentityAndState", ctx, "Drill", "Power Tools", int64(50000), domain.LotStateDecommissioned).Return(dest, nil)
		lotRepo.On("Delete", ctx, int32(1)).Return(nil)
		lotRepo.On("Update", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		kardexSvc.On("Append", ctx, mock.AnythingOfType("*domain.KardexMovement")).Return(&domain.KardexMovement{}, nil)

		_, err := svc.Decommission(ctx, 1, "cust-9", 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), dest.Quantity)
		lotRepo.AssertCalled(t, "Delete", ctx, int32(1))
	})

	t.Run("partial decommission keeps the source lot", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		source := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateLoaned, Quantity: 3,
		}
		lotRepo.On("GetByID", ctx, int32(1)).Return(source, nil)
		lotRepo.On("FindByIdentityAndState", ctx, "Drill", "Power Tools", int64(50000), domain.LotStateDecommissioned).Return(nil, nil)
		lotRepo.On("Update", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		lotRepo.On("Create", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)
		kardexSvc.On("Append", ctx, mock.AnythingOfType("*domain.KardexMovement")).Return(&domain.KardexMovement{}, nil)

		lot, err := svc.Decommission(ctx, 1, "cust-9", 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), lot.Quantity)
		assert.Equal(t, domain.LotStateLoaned, lot.State)
		lotRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestInventoryService_SetReplacementValue(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the value without a kardex movement", func(t *testing.T) {
		lotRepo, kardexSvc, svc := newInventoryFixture()
		source := &domain.ToolLot{
			ID: 1, Name: "Drill", Category: "Power Tools",
			ReplacementValueCents: 50000, State: domain.LotStateAvailable, Quantity: 5,
		}
		lotRepo.On("GetByID", ctx, int32(1)).Return(source, nil)
		lotRepo.On("Update", ctx, mock.AnythingOfType("*domain.ToolLot")).Return(nil)

		lot, err := svc.SetReplacementValue(ctx, 1, 60000)
		assert.NoError(t, err)
		assert.Equal(t, int64(60000), lot.ReplacementValueCents)
		kardexSvc.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("rejects a non-positive value", func(t *testing.T) {
		lotRepo, _, svc := newInventoryFixture()

		lot, err := svc.SetReplacementValue(ctx, 1, 0)
		assert.Error(t, err)
		assert.Nil(t, lot)
		assert.True(t, domain.IsValidation(err))
		lotRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
