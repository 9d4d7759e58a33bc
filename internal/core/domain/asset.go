package domain

import (
	"time"

	"github.com/google/uuid"
)

// AssetType enumerates the supported precious-asset categories.
type AssetType string

const (
	AssetTypeGold      AssetType = "gold"
	AssetTypeSilver    AssetType = "silver"
	AssetTypePlatinum  AssetType = "platinum"
	AssetTypePalladium AssetType = "palladium"
	AssetTypeDiamond   AssetType = "diamond"
	AssetTypeRuby      AssetType = "ruby"
	AssetTypeEmerald   AssetType = "emerald"
	AssetTypeSapphire  AssetType = "sapphire"
)

// AssetTypes lists every valid asset type in a stable order.
func AssetTypes() []AssetType {
	return []AssetType{
		AssetTypeGold, AssetTypeSilver, AssetTypePlatinum, AssetTypePalladium,
		AssetTypeDiamond, AssetTypeRuby, AssetTypeEmerald, AssetTypeSapphire,
	}
}

// IsValid reports whether t is a known asset type.
func (t AssetType) IsValid() bool {
	switch t {
	case AssetTypeGold, AssetTypeSilver, AssetTypePlatinum, AssetTypePalladium,
		AssetTypeDiamond, AssetTypeRuby, AssetTypeEmerald, AssetTypeSapphire:
		return true
	}
	return false
}

// Asset represents a tokenized precious asset.
// Weight is in grams, purity a percentage in [0,100], price in USD.
type Asset struct {
	ID              uuid.UUID  `json:"id"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	AssetType       AssetType  `json:"asset_type"`
	Weight          float64    `json:"weight"`
	Purity          float64    `json:"purity"`
	Certification   *string    `json:"certification,omitempty"`
	CurrentPrice    float64    `json:"current_price"`
	CreatedAt       time.Time  `json:"created_at"`
	LastPriceUpdate *time.Time `json:"last_price_update,omitempty"`
	IsActive        bool       `json:"is_active"`
	MintAddress     *string    `json:"mint_address,omitempty"`
	TokenAccount    *string    `json:"token_account,omitempty"`
}

// Value returns the current holding value (price × weight).
// Always recomputed from its inputs, never stored.
func (a *Asset) Value() float64 {
	return a.CurrentPrice * a.Weight
}
