package ports

import (
	"context"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=services.go -destination=mocks/services.go -package=mocks

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID uuid.UUID, walletAddress string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID        uuid.UUID
	WalletAddress string
}

// MarketCache caches per-asset-type spot prices.
type MarketCache interface {
	GetPrice(ctx context.Context, assetType domain.AssetType) (*domain.MarketPrice, error) // nil on miss
	SetPrice(ctx context.Context, price *domain.MarketPrice, ttl time.Duration) error
}

// --- Service Ports (Business Logic) ---

// CreateUserRequest holds validated input for user creation.
type CreateUserRequest struct {
	WalletAddress string
	Username      *string
	Email         *string
}

// LoginResult is the outcome of a wallet login.
type LoginResult struct {
	User    *domain.User
	Token   string
	Expiry  time.Time
	Created bool // true when the login created the account
}

// UserService defines account and wallet-login business logic.
type UserService interface {
	// Login authenticates by wallet address, creating the account on
	// first login, and returns a bearer token.
	Login(ctx context.Context, walletAddress string) (*LoginResult, error)
	Create(ctx context.Context, req CreateUserRequest) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, skip, limit int) ([]domain.User, error)
}

// CreateAssetRequest holds validated input for asset creation.
type CreateAssetRequest struct {
	OwnerID       uuid.UUID
	AssetType     domain.AssetType
	Weight        float64
	Purity        float64
	Certification *string
	CurrentPrice  float64
}

// UpdateAssetRequest holds partial-update input for an asset.
type UpdateAssetRequest struct {
	Weight        *float64
	Purity        *float64
	Certification *string
	CurrentPrice  *float64
}

// AssetService defines asset CRUD and market-summary business logic.
type AssetService interface {
	Create(ctx context.Context, req CreateAssetRequest) (*domain.Asset, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error)
	List(ctx context.Context, params AssetListParams) ([]domain.Asset, error)
	Update(ctx context.Context, actorID, assetID uuid.UUID, req UpdateAssetRequest) (*domain.Asset, error)
	// Delete soft-deletes; only the owner may delete.
	Delete(ctx context.Context, actorID, assetID uuid.UUID) error
	MarketSummary(ctx context.Context) (*domain.MarketSummary, error)
}

// CreateOrderRequest holds validated input for trade-order creation.
type CreateOrderRequest struct {
	OwnerID      uuid.UUID
	AssetID      uuid.UUID
	OrderType    domain.OrderType
	Quantity     float64
	PricePerUnit float64
	ExpiresAt    *time.Time
}

// UpdateOrderRequest holds partial-update input for a pending order.
type UpdateOrderRequest struct {
	Quantity     *float64
	PricePerUnit *float64
}

// TradeService defines trade-order business logic. Status transitions are
// server-side only; clients observe them through refetch.
type TradeService interface {
	Create(ctx context.Context, req CreateOrderRequest) (*domain.TradeOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeOrder, error)
	List(ctx context.Context, params OrderListParams) ([]domain.TradeOrder, error)
	Update(ctx context.Context, actorID, orderID uuid.UUID, req UpdateOrderRequest) (*domain.TradeOrder, error)
	Cancel(ctx context.Context, actorID, orderID uuid.UUID) error
	// Execute fills a pending order. The actor must not be the order owner.
	Execute(ctx context.Context, actorID, orderID uuid.UUID) error
	// ExpireDue is invoked by the scheduler to sweep expired orders.
	ExpireDue(ctx context.Context) (int64, error)
}

// CreatePriceHistoryRequest holds input for a manual price-history entry.
type CreatePriceHistoryRequest struct {
	AssetID uuid.UUID
	Price   float64
	Source  *string
}

// PricingService defines market data and price-history business logic.
type PricingService interface {
	MarketPrices(ctx context.Context) ([]domain.MarketPrice, error)
	MarketPrice(ctx context.Context, assetType domain.AssetType) (*domain.MarketPrice, error)
	CreateHistory(ctx context.Context, req CreatePriceHistoryRequest) (*domain.PriceHistory, error)
	History(ctx context.Context, assetID uuid.UUID, days, skip, limit int) ([]domain.PriceHistory, error)
	// UpdateAllPrices refreshes every active asset from the market feed,
	// recording a history entry per asset. Returns the update count.
	UpdateAllPrices(ctx context.Context) (int64, error)
	Trends(ctx context.Context, assetType *domain.AssetType, days int) (*domain.PriceTrend, error)
}
