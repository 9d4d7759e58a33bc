package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAssetType_IsValid(t *testing.T) {
	for _, at := range AssetTypes() {
		assert.True(t, at.IsValid(), string(at))
	}
	assert.False(t, AssetType("copper").IsValid())
	assert.False(t, AssetType("").IsValid())
}

func TestAsset_Value(t *testing.T) {
	a := &Asset{CurrentPrice: 60, Weight: 10}
	assert.Equal(t, 600.0, a.Value())

	a.CurrentPrice = 0
	assert.Equal(t, 0.0, a.Value())
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.True(t, OrderStatusFilled.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.True(t, OrderStatusExpired.IsTerminal())
}

func TestTradeOrder_IsExpiredAt(t *testing.T) {
	now := time.Now()

	noExpiry := &TradeOrder{Status: OrderStatusPending}
	assert.False(t, noExpiry.IsExpiredAt(now))

	past := now.Add(-time.Hour)
	expired := &TradeOrder{Status: OrderStatusPending, ExpiresAt: &past}
	assert.True(t, expired.IsExpiredAt(now))

	future := now.Add(time.Hour)
	live := &TradeOrder{Status: OrderStatusPending, ExpiresAt: &future}
	assert.False(t, live.IsExpiredAt(now))
}

func TestOrderType_IsValid(t *testing.T) {
	assert.True(t, OrderTypeBuy.IsValid())
	assert.True(t, OrderTypeSell.IsValid())
	assert.False(t, OrderType("hold").IsValid())
}
