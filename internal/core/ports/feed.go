package ports

import (
	"context"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=feed.go -destination=mocks/feed.go -package=mocks

// PriceFeed fetches spot prices (USD per gram) from an external
// market-data provider.
type PriceFeed interface {
	Spot(ctx context.Context, assetType domain.AssetType) (float64, error)
}

// Tokenizer derives on-chain addresses for newly tokenized assets.
type Tokenizer interface {
	Derive(ownerWallet string, assetID uuid.UUID) (mintAddress, tokenAccount string)
}
