package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// MarketCache implements ports.MarketCache using Redis.
// Prices are stored as JSON under a per-asset-type key.
type MarketCache struct {
	client *goredis.Client
	prefix string
}

// NewMarketCache creates a new Redis-backed market price cache.
func NewMarketCache(client *goredis.Client) *MarketCache {
	return &MarketCache{
		client: client,
		prefix: "market:price:",
	}
}

// GetPrice retrieves a cached spot price by asset type.
// Returns nil, nil if the key does not exist.
func (c *MarketCache) GetPrice(ctx context.Context, assetType domain.AssetType) (*domain.MarketPrice, error) {
	val, err := c.client.Get(ctx, c.prefix+string(assetType)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis market price get: %w", err)
	}

	price := &domain.MarketPrice{}
	if err := json.Unmarshal(val, price); err != nil {
		return nil, fmt.Errorf("decode cached market price: %w", err)
	}
	return price, nil
}

// SetPrice stores a spot price with TTL.
func (c *MarketCache) SetPrice(ctx context.Context, price *domain.MarketPrice, ttl time.Duration) error {
	val, err := json.Marshal(price)
	if err != nil {
		return fmt.Errorf("encode market price: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+string(price.AssetType), val, ttl).Err(); err != nil {
		return fmt.Errorf("redis market price set: %w", err)
	}
	return nil
}
