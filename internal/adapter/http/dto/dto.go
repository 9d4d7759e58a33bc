package dto

// CreateUserRequest is the request body for user registration.
type CreateUserRequest struct {
	WalletAddress string  `json:"wallet_address" binding:"required,min=20,max=64,safe_id"`
	Username      *string `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
}

// LoginRequest is the request body for wallet login.
type LoginRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required,min=20,max=64,safe_id"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	Expiry    int64        `json:"expiry"` // Unix timestamp
	Created   bool         `json:"created"`
	User      UserResponse `json:"user"`
	TokenType string       `json:"token_type"`
}

// UserResponse is the response body for user data.
type UserResponse struct {
	ID            string  `json:"id"`
	WalletAddress string  `json:"wallet_address"`
	Username      *string `json:"username,omitempty"`
	Email         *string `json:"email,omitempty"`
	CreatedAt     string  `json:"created_at"`
	IsActive      bool    `json:"is_active"`
}

// CreateAssetRequest is the request body for asset tokenization.
type CreateAssetRequest struct {
	AssetType     string  `json:"asset_type" binding:"required"`
	Weight        float64 `json:"weight" binding:"required,gt=0"`
	Purity        float64 `json:"purity" binding:"required,gte=0,lte=100"`
	Certification *string `json:"certification,omitempty" binding:"omitempty,max=100"`
	CurrentPrice  float64 `json:"current_price" binding:"required,gte=0"`
}

// UpdateAssetRequest is the request body for partial asset updates.
type UpdateAssetRequest struct {
	Weight        *float64 `json:"weight,omitempty" binding:"omitempty,gt=0"`
	Purity        *float64 `json:"purity,omitempty" binding:"omitempty,gte=0,lte=100"`
	Certification *string  `json:"certification,omitempty" binding:"omitempty,max=100"`
	CurrentPrice  *float64 `json:"current_price,omitempty" binding:"omitempty,gte=0"`
}

// AssetResponse is the response body for asset data.
type AssetResponse struct {
	ID              string  `json:"id"`
	OwnerID         string  `json:"owner_id"`
	AssetType       string  `json:"asset_type"`
	Weight          float64 `json:"weight"`
	Purity          float64 `json:"purity"`
	Certification   *string `json:"certification,omitempty"`
	CurrentPrice    float64 `json:"current_price"`
	TotalValue      float64 `json:"total_value"`
	CreatedAt       string  `json:"created_at"`
	LastPriceUpdate *string `json:"last_price_update,omitempty"`
	IsActive        bool    `json:"is_active"`
	MintAddress     *string `json:"mint_address,omitempty"`
	TokenAccount    *string `json:"token_account,omitempty"`
}

// CreateOrderRequest is the request body for trade order creation.
type CreateOrderRequest struct {
	AssetID      string  `json:"asset_id" binding:"required,uuid"`
	OrderType    string  `json:"order_type" binding:"required,oneof=buy sell"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	PricePerUnit float64 `json:"price_per_unit" binding:"required,gt=0"`
	ExpiresAt    *int64  `json:"expires_at,omitempty"` // Unix timestamp
}

// UpdateOrderRequest is the request body for pending order updates.
type UpdateOrderRequest struct {
	Quantity     *float64 `json:"quantity,omitempty" binding:"omitempty,gt=0"`
	PricePerUnit *float64 `json:"price_per_unit,omitempty" binding:"omitempty,gt=0"`
}

// OrderResponse is the response body for trade order data.
type OrderResponse struct {
	ID           string  `json:"id"`
	AssetID      string  `json:"asset_id"`
	OwnerID      string  `json:"owner_id"`
	OrderType    string  `json:"order_type"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	TotalValue   float64 `json:"total_value"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    *string `json:"updated_at,omitempty"`
	ExpiresAt    *string `json:"expires_at,omitempty"`
}

// CreatePriceHistoryRequest is the request body for manual price entries.
type CreatePriceHistoryRequest struct {
	AssetID string  `json:"asset_id" binding:"required,uuid"`
	Price   float64 `json:"price" binding:"required,gt=0"`
	Source  *string `json:"source,omitempty" binding:"omitempty,oneof=api_update manual oracle"`
}

// PriceHistoryResponse is the response body for a recorded price point.
type PriceHistoryResponse struct {
	ID        string  `json:"id"`
	AssetID   string  `json:"asset_id"`
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"`
	Source    *string `json:"source,omitempty"`
}

// MarketPriceResponse is the response body for a spot price.
type MarketPriceResponse struct {
	AssetType   string  `json:"asset_type"`
	Price       float64 `json:"price"`
	Change24h   float64 `json:"change_24h"`
	Volume24h   float64 `json:"volume_24h"`
	LastUpdated string  `json:"last_updated"`
}

// MarketSummaryResponse is the response body for aggregate market stats.
type MarketSummaryResponse struct {
	TotalAssets  int64   `json:"total_assets"`
	TotalValue   float64 `json:"total_value"`
	ActiveOrders int64   `json:"active_orders"`
	PriceUpdates int64   `json:"price_updates"`
	LastUpdated  string  `json:"last_updated"`
}

// PriceTrendResponse is the response body for trend analysis.
type PriceTrendResponse struct {
	Trend         string  `json:"trend"`
	ChangePercent float64 `json:"change_percent"`
	Volatility    float64 `json:"volatility"`
	DataPoints    int     `json:"data_points"`
	FirstPrice    float64 `json:"first_price,omitempty"`
	LastPrice     float64 `json:"last_price,omitempty"`
}

// UpdatePricesResponse is the response body for the bulk price update.
type UpdatePricesResponse struct {
	Updated int64 `json:"updated"`
}
