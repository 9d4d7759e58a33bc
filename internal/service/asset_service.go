package service

import (
	"context"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type assetService struct {
	assetRepo   ports.AssetRepository
	userRepo    ports.UserRepository
	orderRepo   ports.OrderRepository
	historyRepo ports.PriceHistoryRepository
	tokenizer   ports.Tokenizer
	log         zerolog.Logger
}

// NewAssetService creates a new asset management service.
func NewAssetService(
	assetRepo ports.AssetRepository,
	userRepo ports.UserRepository,
	orderRepo ports.OrderRepository,
	historyRepo ports.PriceHistoryRepository,
	tokenizer ports.Tokenizer,
	log zerolog.Logger,
) ports.AssetService {
	return &assetService{
		assetRepo:   assetRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		tokenizer:   tokenizer,
		log:         log,
	}
}

func (s *assetService) Create(ctx context.Context, req ports.CreateAssetRequest) (*domain.Asset, error) {
	if !req.AssetType.IsValid() {
		return nil, apperror.ErrUnknownAssetType()
	}

	owner, err := s.userRepo.GetByID(ctx, req.OwnerID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if owner == nil {
		return nil, apperror.ErrNotFound("user")
	}

	now := time.Now().UTC()
	asset := &domain.Asset{
		ID:            uuid.New(),
		OwnerID:       req.OwnerID,
		AssetType:     req.AssetType,
		Weight:        req.Weight,
		Purity:        req.Purity,
		Certification: req.Certification,
		CurrentPrice:  req.CurrentPrice,
		CreatedAt:     now,
		IsActive:      true,
	}

	mint, tokenAccount := s.tokenizer.Derive(owner.WalletAddress, asset.ID)
	asset.MintAddress = &mint
	asset.TokenAccount = &tokenAccount

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("asset_id", asset.ID.String()).
		Str("asset_type", string(asset.AssetType)).
		Str("mint", mint).
		Msg("asset tokenized")

	return asset, nil
}

func (s *assetService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if asset == nil {
		return nil, apperror.ErrNotFound("asset")
	}
	return asset, nil
}

func (s *assetService) List(ctx context.Context, params ports.AssetListParams) ([]domain.Asset, error) {
	assets, err := s.assetRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return assets, nil
}

func (s *assetService) Update(ctx context.Context, actorID, assetID uuid.UUID, req ports.UpdateAssetRequest) (*domain.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if asset == nil {
		return nil, apperror.ErrNotFound("asset")
	}
	if asset.OwnerID != actorID {
		return nil, apperror.ErrNotAssetOwner()
	}
	if !asset.IsActive {
		return nil, apperror.ErrAssetInactive()
	}

	if req.Weight != nil {
		asset.Weight = *req.Weight
	}
	if req.Purity != nil {
		asset.Purity = *req.Purity
	}
	if req.Certification != nil {
		asset.Certification = req.Certification
	}
	if req.CurrentPrice != nil {
		asset.CurrentPrice = *req.CurrentPrice
		now := time.Now().UTC()
		asset.LastPriceUpdate = &now
	}

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return asset, nil
}

// Delete soft-deletes an asset. Only the owner may delete; the row stays
// behind so order and price history remain resolvable.
func (s *assetService) Delete(ctx context.Context, actorID, assetID uuid.UUID) error {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if asset == nil {
		return apperror.ErrNotFound("asset")
	}
	if asset.OwnerID != actorID {
		return apperror.ErrNotAssetOwner()
	}

	if err := s.assetRepo.Deactivate(ctx, assetID); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	s.log.Info().Str("asset_id", assetID.String()).Msg("asset deactivated")
	return nil
}

func (s *assetService) MarketSummary(ctx context.Context) (*domain.MarketSummary, error) {
	totalAssets, totalValue, err := s.assetRepo.MarketSummary(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	activeOrders, err := s.orderRepo.CountActive(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	priceUpdates, err := s.historyRepo.Count(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	return &domain.MarketSummary{
		TotalAssets:  totalAssets,
		TotalValue:   totalValue,
		ActiveOrders: activeOrders,
		PriceUpdates: priceUpdates,
		LastUpdated:  time.Now().UTC(),
	}, nil
}
