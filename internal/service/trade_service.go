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

// defaultOrderLifetime bounds how long an order without an explicit expiry
// stays open before the sweeper retires it.
const defaultOrderLifetime = 24 * time.Hour

type tradeService struct {
	orderRepo ports.OrderRepository
	assetRepo ports.AssetRepository
	log       zerolog.Logger
}

// NewTradeService creates a new trade-order service.
func NewTradeService(
	orderRepo ports.OrderRepository,
	assetRepo ports.AssetRepository,
	log zerolog.Logger,
) ports.TradeService {
	return &tradeService{
		orderRepo: orderRepo,
		assetRepo: assetRepo,
		log:       log,
	}
}

func (s *tradeService) Create(ctx context.Context, req ports.CreateOrderRequest) (*domain.TradeOrder, error) {
	asset, err := s.assetRepo.GetByID(ctx, req.AssetID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if asset == nil {
		return nil, apperror.ErrNotFound("asset")
	}
	if !asset.IsActive {
		return nil, apperror.ErrAssetInactive()
	}

	now := time.Now().UTC()
	expiresAt := req.ExpiresAt
	if expiresAt == nil {
		e := now.Add(defaultOrderLifetime)
		expiresAt = &e
	}

	order := &domain.TradeOrder{
		ID:           uuid.New(),
		AssetID:      req.AssetID,
		OwnerID:      req.OwnerID,
		OrderType:    req.OrderType,
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
		Status:       domain.OrderStatusPending,
		CreatedAt:    now,
		ExpiresAt:    expiresAt,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("order_type", string(order.OrderType)).
		Str("asset_id", order.AssetID.String()).
		Msg("trade order created")

	return order, nil
}

func (s *tradeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if order == nil {
		return nil, apperror.ErrNotFound("order")
	}
	return order, nil
}

func (s *tradeService) List(ctx context.Context, params ports.OrderListParams) ([]domain.TradeOrder, error) {
	orders, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return orders, nil
}

func (s *tradeService) Update(ctx context.Context, actorID, orderID uuid.UUID, req ports.UpdateOrderRequest) (*domain.TradeOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if order == nil {
		return nil, apperror.ErrNotFound("order")
	}
	if order.OwnerID != actorID {
		return nil, apperror.ErrNotOrderOwner()
	}
	if !order.IsPending() || order.IsExpiredAt(time.Now().UTC()) {
		return nil, apperror.ErrOrderNotPending()
	}

	if req.Quantity != nil {
		order.Quantity = *req.Quantity
	}
	if req.PricePerUnit != nil {
		order.PricePerUnit = *req.PricePerUnit
	}
	now := time.Now().UTC()
	order.UpdatedAt = &now

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return order, nil
}

func (s *tradeService) Cancel(ctx context.Context, actorID, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if order == nil {
		return apperror.ErrNotFound("order")
	}
	if order.OwnerID != actorID {
		return apperror.ErrNotOrderOwner()
	}

	ok, err := s.orderRepo.UpdateStatus(ctx, orderID, domain.OrderStatusPending, domain.OrderStatusCancelled)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if !ok {
		return apperror.ErrOrderNotPending()
	}

	s.log.Info().Str("order_id", orderID.String()).Msg("trade order cancelled")
	return nil
}

// Execute fills a pending order. The counterparty must not be the order
// owner; the pending guard in UpdateStatus keeps a concurrent cancel and
// execute from both succeeding.
func (s *tradeService) Execute(ctx context.Context, actorID, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if order == nil {
		return apperror.ErrNotFound("order")
	}
	if order.OwnerID == actorID {
		return apperror.ErrOwnOrderExecution()
	}
	if order.IsExpiredAt(time.Now().UTC()) {
		return apperror.ErrOrderNotPending()
	}

	ok, err := s.orderRepo.UpdateStatus(ctx, orderID, domain.OrderStatusPending, domain.OrderStatusFilled)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if !ok {
		return apperror.ErrOrderNotPending()
	}

	s.log.Info().
		Str("order_id", orderID.String()).
		Str("executor_id", actorID.String()).
		Msg("trade order executed")
	return nil
}

// ExpireDue sweeps pending orders whose expiry has passed. Called by the
// scheduler; safe to run concurrently with user-facing transitions.
func (s *tradeService) ExpireDue(ctx context.Context) (int64, error) {
	n, err := s.orderRepo.ExpireDue(ctx, time.Now().UTC())
	if err != nil {
		return 0, apperror.ErrDatabaseError(err)
	}
	if n > 0 {
		s.log.Info().Int64("expired", n).Msg("expired stale trade orders")
	}
	return n, nil
}
