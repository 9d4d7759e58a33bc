package service

import (
	"context"
	"testing"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports/mocks"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type tradeTestDeps struct {
	svc       ports.TradeService
	orderRepo *mocks.MockOrderRepository
	assetRepo *mocks.MockAssetRepository
	ctrl      *gomock.Controller
}

func setupTradeService(t *testing.T) *tradeTestDeps {
	ctrl := gomock.NewController(t)
	d := &tradeTestDeps{
		orderRepo: mocks.NewMockOrderRepository(ctrl),
		assetRepo: mocks.NewMockAssetRepository(ctrl),
		ctrl:      ctrl,
	}
	d.svc = NewTradeService(d.orderRepo, d.assetRepo, zerolog.Nop())
	return d
}

func TestTradeService_Create_Success(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	assetID := uuid.New()
	ownerID := uuid.New()

	d.assetRepo.EXPECT().GetByID(ctx, assetID).
		Return(&domain.Asset{ID: assetID, IsActive: true}, nil)
	d.orderRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, o *domain.TradeOrder) error {
			assert.Equal(t, domain.OrderStatusPending, o.Status)
			require.NotNil(t, o.ExpiresAt, "default expiry should be set")
			assert.WithinDuration(t, time.Now().Add(defaultOrderLifetime), *o.ExpiresAt, time.Second)
			return nil
		})

	order, err := d.svc.Create(ctx, ports.CreateOrderRequest{
		OwnerID:      ownerID,
		AssetID:      assetID,
		OrderType:    domain.OrderTypeBuy,
		Quantity:     2,
		PricePerUnit: 65.40,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
}

func TestTradeService_Create_InactiveAsset(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	assetID := uuid.New()

	d.assetRepo.EXPECT().GetByID(ctx, assetID).
		Return(&domain.Asset{ID: assetID, IsActive: false}, nil)

	_, err := d.svc.Create(ctx, ports.CreateOrderRequest{AssetID: assetID, OrderType: domain.OrderTypeSell})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ASSET_001", appErr.Code)
}

func TestTradeService_Update_NotOwner(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	orderID := uuid.New()
	order := &domain.TradeOrder{ID: orderID, OwnerID: uuid.New(), Status: domain.OrderStatusPending}

	d.orderRepo.EXPECT().GetByID(ctx, orderID).Return(order, nil)

	_, err := d.svc.Update(ctx, uuid.New(), orderID, ports.UpdateOrderRequest{})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ORDER_002", appErr.Code)
}

func TestTradeService_Update_NotPending(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	orderID := uuid.New()
	order := &domain.TradeOrder{ID: orderID, OwnerID: ownerID, Status: domain.OrderStatusFilled}

	d.orderRepo.EXPECT().GetByID(ctx, orderID).Return(order, nil)

	_, err := d.svc.Update(ctx, ownerID, orderID, ports.UpdateOrderRequest{})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ORDER_001", appErr.Code)
}

func TestTradeService_Cancel_Success(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	orderID := uuid.New()
	order := &domain.TradeOrder{ID: orderID, OwnerID: ownerID, Status: domain.OrderStatusPending}

	d.orderRepo.EXPECT().GetByID(ctx, orderID).Return(order, nil)
	d.orderRepo.EXPECT().UpdateStatus(ctx, orderID, domain.OrderStatusPending, domain.OrderStatusCancelled).
		Return(true, nil)

	err := d.svc.Cancel(ctx, ownerID, orderID)
	assert.NoError(t, err)
}

func TestTradeService_Cancel_AlreadyTerminal(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	orderID := uuid.New()
	order := &domain.TradeOrder{ID: orderID, OwnerID: ownerID, Status: domain.OrderStatusPending}

	d.orderRepo.EXPECT().GetByID(ctx, orderID).Return(order, nil)
	// Guard misses: a concurrent transition won the race.
	d.orderRepo.EXPECT().UpdateStatus(ctx, orderID, domain.OrderStatusPending, domain.OrderStatusCancelled).
		Return(false, nil)

	err := d.svc.Cancel(ctx, ownerID, orderID)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ORDER_001", appErr.Code)
}

func TestTradeService_Execute_OwnOrder(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	orderID := uuid.New()
	order := &domain.TradeOrder{ID: orderID, OwnerID: ownerID, Status: domain.OrderStatusPending}

	d.orderRepo.EXPECT().GetByID(ctx, orderID).Return(order, nil)

	err := d.svc.Execute(ctx, ownerID, orderID)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ORDER_003", appErr.Code)
}

func TestTradeService_Execute_Success(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	orderID := uuid.New()
	order := &domain.TradeOrder{ID: orderID, OwnerID: uuid.New(), Status: domain.OrderStatusPending}

	d.orderRepo.EXPECT().GetByID(ctx, orderID).Return(order, nil)
	d.orderRepo.EXPECT().UpdateStatus(ctx, orderID, domain.OrderStatusPending, domain.OrderStatusFilled).
		Return(true, nil)

	err := d.svc.Execute(ctx, uuid.New(), orderID)
	assert.NoError(t, err)
}

func TestTradeService_Execute_Expired(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	orderID := uuid.New()
	past := time.Now().Add(-time.Hour)
	order := &domain.TradeOrder{ID: orderID, OwnerID: uuid.New(), Status: domain.OrderStatusPending, ExpiresAt: &past}

	d.orderRepo.EXPECT().GetByID(ctx, orderID).Return(order, nil)

	err := d.svc.Execute(ctx, uuid.New(), orderID)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ORDER_001", appErr.Code)
}

func TestTradeService_ExpireDue(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.orderRepo.EXPECT().ExpireDue(ctx, gomock.Any()).Return(int64(5), nil)

	n, err := d.svc.ExpireDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}
