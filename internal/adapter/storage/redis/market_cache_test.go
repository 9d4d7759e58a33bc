package redis

import (
	"context"
	"testing"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewMarketCache(client)
	ctx := context.Background()

	price := &domain.MarketPrice{
		AssetType:   domain.AssetTypeGold,
		Price:       65.40,
		Change24h:   1.2,
		Volume24h:   15000,
		LastUpdated: time.Now().UTC().Truncate(time.Second),
	}

	// Get before set => nil
	result, err := cache.GetPrice(ctx, domain.AssetTypeGold)
	assert.NoError(t, err)
	assert.Nil(t, result)

	// Set
	err = cache.SetPrice(ctx, price, 5*time.Minute)
	require.NoError(t, err)

	// Get after set
	result, err = cache.GetPrice(ctx, domain.AssetTypeGold)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, price.Price, result.Price)
	assert.Equal(t, price.AssetType, result.AssetType)
}

func TestMarketCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewMarketCache(client)
	ctx := context.Background()

	price := &domain.MarketPrice{
		AssetType:   domain.AssetTypeSilver,
		Price:       0.85,
		LastUpdated: time.Now().UTC(),
	}

	err := cache.SetPrice(ctx, price, 1*time.Second)
	require.NoError(t, err)

	// Fast-forward time in miniredis
	s.FastForward(2 * time.Second)

	result, err := cache.GetPrice(ctx, domain.AssetTypeSilver)
	assert.NoError(t, err)
	assert.Nil(t, result, "expired price should return nil")
}

func TestMarketCache_TypesAreIndependent(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewMarketCache(client)
	ctx := context.Background()

	gold := &domain.MarketPrice{AssetType: domain.AssetTypeGold, Price: 65.40, LastUpdated: time.Now().UTC()}
	ruby := &domain.MarketPrice{AssetType: domain.AssetTypeRuby, Price: 1100, LastUpdated: time.Now().UTC()}

	require.NoError(t, cache.SetPrice(ctx, gold, time.Hour))
	require.NoError(t, cache.SetPrice(ctx, ruby, time.Hour))

	result, err := cache.GetPrice(ctx, domain.AssetTypeRuby)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1100.0, result.Price)

	result, err = cache.GetPrice(ctx, domain.AssetTypeGold)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 65.40, result.Price)
}
