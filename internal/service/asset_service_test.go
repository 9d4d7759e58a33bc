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

type assetTestDeps struct {
	svc         ports.AssetService
	assetRepo   *mocks.MockAssetRepository
	userRepo    *mocks.MockUserRepository
	orderRepo   *mocks.MockOrderRepository
	historyRepo *mocks.MockPriceHistoryRepository
	tokenizer   *mocks.MockTokenizer
	ctrl        *gomock.Controller
}

func setupAssetService(t *testing.T) *assetTestDeps {
	ctrl := gomock.NewController(t)
	d := &assetTestDeps{
		assetRepo:   mocks.NewMockAssetRepository(ctrl),
		userRepo:    mocks.NewMockUserRepository(ctrl),
		orderRepo:   mocks.NewMockOrderRepository(ctrl),
		historyRepo: mocks.NewMockPriceHistoryRepository(ctrl),
		tokenizer:   mocks.NewMockTokenizer(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewAssetService(d.assetRepo, d.userRepo, d.orderRepo, d.historyRepo, d.tokenizer, zerolog.Nop())
	return d
}

func TestAssetService_Create_Success(t *testing.T) {
	d := setupAssetService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	owner := &domain.User{ID: ownerID, WalletAddress: "OwnerWallet", IsActive: true}

	d.userRepo.EXPECT().GetByID(ctx, ownerID).Return(owner, nil)
	d.tokenizer.EXPECT().Derive("OwnerWallet", gomock.Any()).Return("MintAddr", "TokenAcc")
	d.assetRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, a *domain.Asset) error {
			assert.Equal(t, domain.AssetTypeGold, a.AssetType)
			assert.True(t, a.IsActive)
			require.NotNil(t, a.MintAddress)
			assert.Equal(t, "MintAddr", *a.MintAddress)
			return nil
		})

	asset, err := d.svc.Create(ctx, ports.CreateAssetRequest{
		OwnerID:      ownerID,
		AssetType:    domain.AssetTypeGold,
		Weight:       10,
		Purity:       99.9,
		CurrentPrice: 65.40,
	})
	require.NoError(t, err)
	assert.Equal(t, ownerID, asset.OwnerID)
}

func TestAssetService_Create_UnknownType(t *testing.T) {
	d := setupAssetService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Create(context.Background(), ports.CreateAssetRequest{
		OwnerID:   uuid.New(),
		AssetType: "bronze",
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ASSET_003", appErr.Code)
}

func TestAssetService_Update_NotOwner(t *testing.T) {
	d := setupAssetService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	assetID := uuid.New()
	asset := &domain.Asset{ID: assetID, OwnerID: uuid.New(), IsActive: true}

	d.assetRepo.EXPECT().GetByID(ctx, assetID).Return(asset, nil)

	_, err := d.svc.Update(ctx, uuid.New(), assetID, ports.UpdateAssetRequest{})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ASSET_002", appErr.Code)
}

func TestAssetService_Update_PriceBumpsTimestamp(t *testing.T) {
	d := setupAssetService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	assetID := uuid.New()
	asset := &domain.Asset{ID: assetID, OwnerID: ownerID, IsActive: true, CurrentPrice: 60}

	newPrice := 66.0

	d.assetRepo.EXPECT().GetByID(ctx, assetID).Return(asset, nil)
	d.assetRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, a *domain.Asset) error {
			assert.Equal(t, newPrice, a.CurrentPrice)
			require.NotNil(t, a.LastPriceUpdate)
			assert.WithinDuration(t, time.Now(), *a.LastPriceUpdate, time.Second)
			return nil
		})

	updated, err := d.svc.Update(ctx, ownerID, assetID, ports.UpdateAssetRequest{CurrentPrice: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, newPrice, updated.CurrentPrice)
}

func TestAssetService_Update_Inactive(t *testing.T) {
	d := setupAssetService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	assetID := uuid.New()
	asset := &domain.Asset{ID: assetID, OwnerID: ownerID, IsActive: false}

	d.assetRepo.EXPECT().GetByID(ctx, assetID).Return(asset, nil)

	_, err := d.svc.Update(ctx, ownerID, assetID, ports.UpdateAssetRequest{})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ASSET_001", appErr.Code)
}

func TestAssetService_Delete_Success(t *testing.T) {
	d := setupAssetService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	assetID := uuid.New()
	asset := &domain.Asset{ID: assetID, OwnerID: ownerID, IsActive: true}

	d.assetRepo.EXPECT().GetByID(ctx, assetID).Return(asset, nil)
	d.assetRepo.EXPECT().Deactivate(ctx, assetID).Return(nil)

	err := d.svc.Delete(ctx, ownerID, assetID)
	assert.NoError(t, err)
}

func TestAssetService_Delete_NotFound(t *testing.T) {
	d := setupAssetService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.assetRepo.EXPECT().GetByID(ctx, gomock.Any()).Return(nil, nil)

	err := d.svc.Delete(ctx, uuid.New(), uuid.New())
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "RES_001", appErr.Code)
}

func TestAssetService_MarketSummary(t *testing.T) {
	d := setupAssetService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.assetRepo.EXPECT().MarketSummary(ctx).Return(int64(2), 700.0, nil)
	d.orderRepo.EXPECT().CountActive(ctx).Return(int64(3), nil)
	d.historyRepo.EXPECT().Count(ctx).Return(int64(10), nil)

	summary, err := d.svc.MarketSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalAssets)
	assert.Equal(t, 700.0, summary.TotalValue)
	assert.Equal(t, int64(3), summary.ActiveOrders)
	assert.Equal(t, int64(10), summary.PriceUpdates)
}
