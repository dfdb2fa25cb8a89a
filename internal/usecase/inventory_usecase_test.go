package usecase_test

import (
	"context"
	"errors"
	"testing"

	"grocery/internal/domain/model"
	repo "grocery/internal/repository"
	"grocery/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestInventoryUsecase_AvailableQuantity(t *testing.T) {
	inventory := new(InventoryRepoMock)
	inventory.On("AvailableQuantity", mock.Anything, int64(1)).Return(int64(3), nil)

	uc := usecase.NewInventoryUsecase(new(TxManagerMock), inventory)
	avail, err := uc.AvailableQuantity(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), avail)
}

func TestInventoryUsecase_AvailableQuantity_NotFound(t *testing.T) {
	inventory := new(InventoryRepoMock)
	inventory.On("AvailableQuantity", mock.Anything, int64(9)).Return(int64(0), repo.ErrNotFound)

	uc := usecase.NewInventoryUsecase(new(TxManagerMock), inventory)
	_, err := uc.AvailableQuantity(context.Background(), 9)

	var nf *usecase.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestInventoryUsecase_SetTotalQuantity_NegativeRejected(t *testing.T) {
	uc := usecase.NewInventoryUsecase(new(TxManagerMock), new(InventoryRepoMock))

	err := uc.SetTotalQuantity(context.Background(), 1, 1, -1, "typo")

	var ve *usecase.ValidationError
	assert.True(t, errors.As(err, &ve))
}

// 引当済みを下回る総在庫は拒否
func TestInventoryUsecase_SetTotalQuantity_BelowReservedRejected(t *testing.T) {
	products := new(ProductRepoMock)
	inventory := new(InventoryRepoMock)
	tx := newTxMock(new(OrderRepoMock), products, new(CustomerRepoMock), inventory, new(AuditLogRepoMock))

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, TotalQuantity: 10, ReservedQuantity: 7,
	}, nil)

	uc := usecase.NewInventoryUsecase(tx, inventory)
	err := uc.SetTotalQuantity(context.Background(), 1, 1, 5, "shrink")

	var ve *usecase.ValidationError
	assert.True(t, errors.As(err, &ve))
	inventory.AssertNotCalled(t, "SetTotalQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryUsecase_SetTotalQuantity_RecordsAdjustmentAndAudit(t *testing.T) {
	products := new(ProductRepoMock)
	inventory := new(InventoryRepoMock)
	audits := new(AuditLogRepoMock)
	tx := newTxMock(new(OrderRepoMock), products, new(CustomerRepoMock), inventory, audits)

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, TotalQuantity: 10, ReservedQuantity: 4,
	}, nil)
	inventory.On("SetTotalQuantity", mock.Anything, int64(1), int64(25)).Return(true, nil)
	inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(a model.InventoryAdjustment) bool {
		return a.ProductID == 1 && a.Delta == 15 && a.Reason == "restock"
	})).Return(nil)
	audits.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateStock && l.ResourceID == 1
	})).Return(nil)

	uc := usecase.NewInventoryUsecase(tx, inventory)
	err := uc.SetTotalQuantity(context.Background(), 1, 1, 25, "restock")

	assert.NoError(t, err)
	inventory.AssertExpectations(t)
	audits.AssertExpectations(t)
}

// 読み取り後に引当が増えて条件付きUPDATEが外れたケース
func TestInventoryUsecase_SetTotalQuantity_ConditionalUpdateLost(t *testing.T) {
	products := new(ProductRepoMock)
	inventory := new(InventoryRepoMock)
	tx := newTxMock(new(OrderRepoMock), products, new(CustomerRepoMock), inventory, new(AuditLogRepoMock))

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, TotalQuantity: 10, ReservedQuantity: 4,
	}, nil)
	inventory.On("SetTotalQuantity", mock.Anything, int64(1), int64(5)).Return(false, nil)

	uc := usecase.NewInventoryUsecase(tx, inventory)
	err := uc.SetTotalQuantity(context.Background(), 1, 1, 5, "shrink")

	var ve *usecase.ValidationError
	assert.True(t, errors.As(err, &ve))
	inventory.AssertNotCalled(t, "CreateAdjustment", mock.Anything, mock.Anything)
}
