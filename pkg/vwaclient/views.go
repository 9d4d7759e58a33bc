package vwaclient

import (
	"context"
	"fmt"
)

// Asset is the client-side asset record.
type Asset struct {
	ID           string  `json:"id"`
	OwnerID      string  `json:"owner_id"`
	AssetType    string  `json:"asset_type"`
	Weight       float64 `json:"weight"`
	Purity       float64 `json:"purity"`
	CurrentPrice float64 `json:"current_price"`
	TotalValue   float64 `json:"total_value"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
}

// Order is the client-side trade-order record.
type Order struct {
	ID           string  `json:"id"`
	AssetID      string  `json:"asset_id"`
	OwnerID      string  `json:"owner_id"`
	OrderType    string  `json:"order_type"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	TotalValue   float64 `json:"total_value"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	ExpiresAt    *string `json:"expires_at,omitempty"`
}

// User is the client-side account record.
type User struct {
	ID            string `json:"id"`
	WalletAddress string `json:"wallet_address"`
	IsActive      bool   `json:"is_active"`
}

// MarketSummary is the client-side aggregate market record.
type MarketSummary struct {
	TotalAssets  int64   `json:"total_assets"`
	TotalValue   float64 `json:"total_value"`
	ActiveOrders int64   `json:"active_orders"`
	PriceUpdates int64   `json:"price_updates"`
	LastUpdated  string  `json:"last_updated"`
}

// MarketPrice is the client-side spot-price record.
type MarketPrice struct {
	AssetType   string  `json:"asset_type"`
	Price       float64 `json:"price"`
	Change24h   float64 `json:"change_24h"`
	Volume24h   float64 `json:"volume_24h"`
	LastUpdated string  `json:"last_updated"`
}

// PriceTrend is the client-side trend record.
type PriceTrend struct {
	Trend         string  `json:"trend"`
	ChangePercent float64 `json:"change_percent"`
	Volatility    float64 `json:"volatility"`
	DataPoints    int     `json:"data_points"`
}

// --- Pure view derivations ---

// TotalValue is the summed holding value: Σ price × weight. The value
// is recomputed from inputs on every call, never cached separately.
func TotalValue(assets []Asset) float64 {
	var total float64
	for _, a := range assets {
		total += a.CurrentPrice * a.Weight
	}
	return total
}

// DistributionByType maps asset type to its percentage share of total
// holding value. All shares are 0 when the total is 0.
func DistributionByType(assets []Asset) map[string]float64 {
	byType := make(map[string]float64)
	for _, a := range assets {
		byType[a.AssetType] += a.CurrentPrice * a.Weight
	}
	total := TotalValue(assets)
	dist := make(map[string]float64, len(byType))
	for t, v := range byType {
		if total == 0 {
			dist[t] = 0
			continue
		}
		dist[t] = v / total * 100
	}
	return dist
}

// TopPerformer returns the asset maximizing price × weight. Ties
// resolve to the first encountered; ok is false for an empty input.
func TopPerformer(assets []Asset) (Asset, bool) {
	if len(assets) == 0 {
		return Asset{}, false
	}
	best := assets[0]
	bestValue := best.CurrentPrice * best.Weight
	for _, a := range assets[1:] {
		if v := a.CurrentPrice * a.Weight; v > bestValue {
			best = a
			bestValue = v
		}
	}
	return best, true
}

// --- Composer ---

// Confirmer gates destructive mutations. Confirm returns false to
// abort without dispatching.
type Confirmer interface {
	Confirm(prompt string) bool
}

// AutoConfirm is a Confirmer that approves everything. Intended for
// non-interactive consumers.
type AutoConfirm struct{}

func (AutoConfirm) Confirm(string) bool { return true }

// ErrAborted is returned when a Confirmer declines a destructive
// mutation. Nothing was dispatched.
var ErrAborted = fmt.Errorf("aborted by user")

// CreateAssetInput is the request body for asset creation.
type CreateAssetInput struct {
	AssetType    string  `json:"asset_type"`
	Weight       float64 `json:"weight"`
	Purity       float64 `json:"purity"`
	CurrentPrice float64 `json:"current_price"`
}

// CreateOrderInput is the request body for trade-order creation.
type CreateOrderInput struct {
	AssetID      string  `json:"asset_id"`
	OrderType    string  `json:"order_type"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	ExpiresAt    *int64  `json:"expires_at,omitempty"`
}

// Portfolio composes keyed queries and mutations for the dashboard
// views. Queries go through the cache; mutations are fire-and-confirm,
// invalidating the mutated resource on success so dependent queries
// refetch. No optimistic local mutation, no retries.
type Portfolio struct {
	client  *Client
	cache   *Cache
	confirm Confirmer
}

// NewPortfolio creates a composer over a client and cache. A nil
// confirmer defaults to AutoConfirm.
func NewPortfolio(client *Client, cache *Cache, confirm Confirmer) *Portfolio {
	if confirm == nil {
		confirm = AutoConfirm{}
	}
	return &Portfolio{client: client, cache: cache, confirm: confirm}
}

// ListAssets issues the keyed asset-list query. Filters become both the
// cache key and the request query string.
func (p *Portfolio) ListAssets(ctx context.Context, filters map[string]string) ([]Asset, error) {
	key := NewKey("assets", filters)
	return Run(ctx, p.cache, key, func(ctx context.Context) ([]Asset, error) {
		path := registry[EpAssetList].Path
		if key.Filters != "" {
			path += "?" + key.Filters
		}
		body, err := p.client.Do(ctx, "GET", path, nil)
		if err != nil {
			return nil, err
		}
		return decode[[]Asset](EpAssetList, body)
	})
}

// ListOrders issues the keyed order-list query.
func (p *Portfolio) ListOrders(ctx context.Context, filters map[string]string) ([]Order, error) {
	key := NewKey("orders", filters)
	return Run(ctx, p.cache, key, func(ctx context.Context) ([]Order, error) {
		path := registry[EpOrderList].Path
		if key.Filters != "" {
			path += "?" + key.Filters
		}
		body, err := p.client.Do(ctx, "GET", path, nil)
		if err != nil {
			return nil, err
		}
		return decode[[]Order](EpOrderList, body)
	})
}

// Summary issues the keyed market-summary query. Derived views live
// under reserved keys so no user-supplied filter set can alias them.
func (p *Portfolio) Summary(ctx context.Context) (MarketSummary, error) {
	key := viewKey("assets", "summary")
	return Run(ctx, p.cache, key, func(ctx context.Context) (MarketSummary, error) {
		return Call[MarketSummary](ctx, p.client, EpAssetSummary, nil, nil)
	})
}

// MarketPrices issues the keyed spot-price query.
func (p *Portfolio) MarketPrices(ctx context.Context) ([]MarketPrice, error) {
	key := viewKey("pricing", "market")
	return Run(ctx, p.cache, key, func(ctx context.Context) ([]MarketPrice, error) {
		return Call[[]MarketPrice](ctx, p.client, EpPricingMarket, nil, nil)
	})
}

// Me issues the keyed current-account query.
func (p *Portfolio) Me(ctx context.Context) (User, error) {
	key := viewKey("users", "me")
	return Run(ctx, p.cache, key, func(ctx context.Context) (User, error) {
		return Call[User](ctx, p.client, EpUserMe, nil, nil)
	})
}

// Trends issues the keyed trend query for an optional asset type.
func (p *Portfolio) Trends(ctx context.Context, assetType string) (PriceTrend, error) {
	key := viewKey("pricing", "trends")
	if assetType != "" {
		key.Filters = "asset_type=" + assetType
	}
	return Run(ctx, p.cache, key, func(ctx context.Context) (PriceTrend, error) {
		path := registry[EpPricingTrends].Path
		if assetType != "" {
			path += "?asset_type=" + assetType
		}
		body, err := p.client.Do(ctx, "GET", path, nil)
		if err != nil {
			return PriceTrend{}, err
		}
		return decode[PriceTrend](EpPricingTrends, body)
	})
}

// CreateAsset dispatches asset creation, invalidating the asset
// resource on success.
func (p *Portfolio) CreateAsset(ctx context.Context, input CreateAssetInput) (Asset, error) {
	asset, err := Call[Asset](ctx, p.client, EpAssetCreate, nil, input)
	if err != nil {
		return Asset{}, err
	}
	p.cache.InvalidateResource("assets")
	return asset, nil
}

// DeleteAsset dispatches asset deletion after confirmation,
// invalidating the asset resource on success.
func (p *Portfolio) DeleteAsset(ctx context.Context, id string) error {
	if !p.confirm.Confirm("delete asset " + id + "?") {
		return ErrAborted
	}
	if _, err := Call[map[string]bool](ctx, p.client, EpAssetDelete, map[string]string{"id": id}, nil); err != nil {
		return err
	}
	p.cache.InvalidateResource("assets")
	return nil
}

// CreateOrder dispatches order creation, invalidating the order
// resource on success.
func (p *Portfolio) CreateOrder(ctx context.Context, input CreateOrderInput) (Order, error) {
	order, err := Call[Order](ctx, p.client, EpOrderCreate, nil, input)
	if err != nil {
		return Order{}, err
	}
	p.cache.InvalidateResource("orders")
	return order, nil
}

// CancelOrder dispatches order cancellation after confirmation,
// invalidating the order resource on success.
func (p *Portfolio) CancelOrder(ctx context.Context, id string) error {
	if !p.confirm.Confirm("cancel order " + id + "?") {
		return ErrAborted
	}
	if _, err := Call[map[string]bool](ctx, p.client, EpOrderCancel, map[string]string{"id": id}, nil); err != nil {
		return err
	}
	p.cache.InvalidateResource("orders")
	return nil
}

// ExecuteOrder dispatches order execution after confirmation. Filling
// an order changes order state server-side only; clients observe it
// through the refetch triggered here.
func (p *Portfolio) ExecuteOrder(ctx context.Context, id string) error {
	if !p.confirm.Confirm("execute order " + id + "?") {
		return ErrAborted
	}
	if _, err := Call[map[string]bool](ctx, p.client, EpOrderExecute, map[string]string{"id": id}, nil); err != nil {
		return err
	}
	p.cache.InvalidateResource("orders")
	return nil
}

// Login authenticates with a wallet address and stores the returned
// bearer token in the session store.
func (p *Portfolio) Login(ctx context.Context, walletAddress string) error {
	type loginResponse struct {
		Token string `json:"token"`
	}
	resp, err := Call[loginResponse](ctx, p.client, EpAuthLogin, nil, map[string]string{
		"wallet_address": walletAddress,
	})
	if err != nil {
		return err
	}
	p.client.session.SetToken(resp.Token)
	return nil
}
