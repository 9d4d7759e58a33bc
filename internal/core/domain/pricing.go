package domain

import (
	"time"

	"github.com/google/uuid"
)

// PriceHistory is a single recorded price point for an asset.
type PriceHistory struct {
	ID        uuid.UUID `json:"id"`
	AssetID   uuid.UUID `json:"asset_id"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
	Source    *string   `json:"source,omitempty"` // "api_update", "manual", "oracle"
}

// MarketPrice is the current spot price for an asset type.
type MarketPrice struct {
	AssetType   AssetType `json:"asset_type"`
	Price       float64   `json:"price"`
	Change24h   float64   `json:"change_24h"`
	Volume24h   float64   `json:"volume_24h"`
	LastUpdated time.Time `json:"last_updated"`
}

// MarketSummary holds aggregate market counters.
// Read-only: recomputed on every fetch, never merged incrementally.
type MarketSummary struct {
	TotalAssets  int64     `json:"total_assets"`
	TotalValue   float64   `json:"total_value"`
	ActiveOrders int64     `json:"active_orders"`
	PriceUpdates int64     `json:"price_updates"`
	LastUpdated  time.Time `json:"last_updated"`
}

// TrendDirection tags the direction of a price trend.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// PriceTrend summarizes price movement over a window.
// Volatility is the coefficient of variation (stddev/mean) in percent.
type PriceTrend struct {
	Trend         TrendDirection `json:"trend"`
	ChangePercent float64        `json:"change_percent"`
	Volatility    float64        `json:"volatility"`
	DataPoints    int            `json:"data_points"`
	FirstPrice    float64        `json:"first_price,omitempty"`
	LastPrice     float64        `json:"last_price,omitempty"`
}
