package ports

import (
	"context"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByWalletAddress(ctx context.Context, wallet string) (*domain.User, error)
	List(ctx context.Context, skip, limit int) ([]domain.User, error)
}

// AssetListParams holds filter + pagination for listing assets.
type AssetListParams struct {
	AssetType *domain.AssetType
	OwnerID   *uuid.UUID
	IsActive  *bool
	Skip      int
	Limit     int
}

// AssetRepository defines persistence operations for tokenized assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error)
	List(ctx context.Context, params AssetListParams) ([]domain.Asset, error)
	Update(ctx context.Context, asset *domain.Asset) error
	// Deactivate soft-deletes an asset; the row is retained for history.
	Deactivate(ctx context.Context, id uuid.UUID) error
	// MarketSummary aggregates active assets: count and Σ price×weight.
	MarketSummary(ctx context.Context) (totalAssets int64, totalValue float64, err error)
	// UpdatePrice bumps the current price and last_price_update within a
	// transaction alongside the price history insert.
	UpdatePrice(ctx context.Context, tx pgx.Tx, id uuid.UUID, price float64, at time.Time) error
}

// OrderListParams holds filter + pagination for listing trade orders.
type OrderListParams struct {
	AssetID   *uuid.UUID
	OrderType *domain.OrderType
	Status    *domain.OrderStatus
	OwnerID   *uuid.UUID
	Skip      int
	Limit     int
}

// OrderRepository defines persistence operations for trade orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.TradeOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeOrder, error)
	List(ctx context.Context, params OrderListParams) ([]domain.TradeOrder, error)
	Update(ctx context.Context, order *domain.TradeOrder) error
	// UpdateStatus moves an order to a new status, guarded on the current
	// status so concurrent transitions cannot double-apply. Returns false
	// when the guard did not match.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (bool, error)
	CountActive(ctx context.Context) (int64, error)
	// ExpireDue marks every pending order whose expiry has passed as
	// expired. Returns the number of orders transitioned.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

// PriceHistoryRepository defines persistence for recorded price points.
type PriceHistoryRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.PriceHistory) error
	// ListByAsset returns history within [from, to], newest first.
	ListByAsset(ctx context.Context, assetID uuid.UUID, from, to time.Time, skip, limit int) ([]domain.PriceHistory, error)
	// ListByWindow returns history within [from, to] across assets,
	// optionally filtered by asset type, oldest first.
	ListByWindow(ctx context.Context, assetType *domain.AssetType, from, to time.Time) ([]domain.PriceHistory, error)
	Count(ctx context.Context) (int64, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
