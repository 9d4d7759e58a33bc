package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderType represents the trade direction.
type OrderType string

const (
	OrderTypeBuy  OrderType = "buy"
	OrderTypeSell OrderType = "sell"
)

// IsValid reports whether t is a known order type.
func (t OrderType) IsValid() bool {
	return t == OrderTypeBuy || t == OrderTypeSell
}

// OrderStatus represents the lifecycle state of a trade order.
// pending is the only non-terminal state; transitions happen server-side.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFilled    OrderStatus = "filled"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusExpired   OrderStatus = "expired"
)

// IsTerminal returns true if the order is in a final state.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusFilled || s == OrderStatusCancelled || s == OrderStatusExpired
}

// TradeOrder represents a buy or sell order against a tokenized asset.
type TradeOrder struct {
	ID           uuid.UUID   `json:"id"`
	AssetID      uuid.UUID   `json:"asset_id"`
	OwnerID      uuid.UUID   `json:"owner_id"`
	OrderType    OrderType   `json:"order_type"`
	Quantity     float64     `json:"quantity"`
	PricePerUnit float64     `json:"price_per_unit"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    *time.Time  `json:"updated_at,omitempty"`
	ExpiresAt    *time.Time  `json:"expires_at,omitempty"`
}

// IsPending returns true if the order can still be updated, cancelled or executed.
func (o *TradeOrder) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsExpiredAt reports whether the order's expiry has passed at the given time.
// Orders without an expiry never expire.
func (o *TradeOrder) IsExpiredAt(now time.Time) bool {
	return o.ExpiresAt != nil && now.After(*o.ExpiresAt)
}
