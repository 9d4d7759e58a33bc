package vwaclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalValue(t *testing.T) {
	assets := []Asset{
		{AssetType: "gold", Weight: 10, CurrentPrice: 60},
		{AssetType: "silver", Weight: 5, CurrentPrice: 20},
	}
	assert.Equal(t, float64(700), TotalValue(assets))
	assert.Equal(t, float64(0), TotalValue(nil))
	assert.Equal(t, float64(0), TotalValue([]Asset{}))
}

func TestDistributionByType(t *testing.T) {
	assets := []Asset{
		{AssetType: "gold", Weight: 10, CurrentPrice: 60},
		{AssetType: "silver", Weight: 5, CurrentPrice: 20},
	}
	dist := DistributionByType(assets)
	assert.InDelta(t, 85.7, dist["gold"], 0.05)
	assert.InDelta(t, 14.3, dist["silver"], 0.05)

	var sum float64
	for _, pct := range dist {
		sum += pct
	}
	assert.InDelta(t, 100, sum, 1e-9)
}

func TestDistributionByType_ZeroTotal(t *testing.T) {
	assets := []Asset{
		{AssetType: "gold", Weight: 10, CurrentPrice: 0},
		{AssetType: "ruby", Weight: 2, CurrentPrice: 0},
	}
	dist := DistributionByType(assets)
	assert.Equal(t, float64(0), dist["gold"])
	assert.Equal(t, float64(0), dist["ruby"])
}

func TestTopPerformer(t *testing.T) {
	assets := []Asset{
		{ID: "a1", AssetType: "gold", Weight: 10, CurrentPrice: 60},
		{ID: "a2", AssetType: "silver", Weight: 5, CurrentPrice: 20},
	}
	top, ok := TopPerformer(assets)
	require.True(t, ok)
	assert.Equal(t, "gold", top.AssetType)
}

func TestTopPerformer_TiesResolveToFirst(t *testing.T) {
	assets := []Asset{
		{ID: "a1", Weight: 10, CurrentPrice: 60},
		{ID: "a2", Weight: 60, CurrentPrice: 10},
		{ID: "a3", Weight: 20, CurrentPrice: 30},
	}
	top, ok := TopPerformer(assets)
	require.True(t, ok)
	assert.Equal(t, "a1", top.ID)
}

func TestTopPerformer_Empty(t *testing.T) {
	_, ok := TopPerformer(nil)
	assert.False(t, ok)
}

// --- Composer integration ---

// portfolioServer is a minimal in-memory API backing composer tests.
type portfolioServer struct {
	mu     sync.Mutex
	orders []Order
	assets []Asset
}

func (s *portfolioServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": User{
			ID:            "u1",
			WalletAddress: "GCEZWKCA5VLDNRLN3RPRJMRZOX3Z6G5CH",
			IsActive:      true,
		}})
	})
	mux.HandleFunc("GET /api/v1/assets", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"data": s.assets})
	})
	mux.HandleFunc("POST /api/v1/assets", func(w http.ResponseWriter, r *http.Request) {
		var input CreateAssetInput
		json.NewDecoder(r.Body).Decode(&input)
		s.mu.Lock()
		asset := Asset{
			ID:           "a-new",
			AssetType:    input.AssetType,
			Weight:       input.Weight,
			Purity:       input.Purity,
			CurrentPrice: input.CurrentPrice,
			IsActive:     true,
		}
		s.assets = append(s.assets, asset)
		s.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"data": asset})
	})
	mux.HandleFunc("GET /api/v1/assets/market/summary", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		var total float64
		for _, a := range s.assets {
			total += a.CurrentPrice * a.Weight
		}
		json.NewEncoder(w).Encode(map[string]any{"data": MarketSummary{
			TotalAssets: int64(len(s.assets)),
			TotalValue:  total,
		}})
	})
	mux.HandleFunc("GET /api/v1/trades/orders", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"data": s.orders})
	})
	mux.HandleFunc("POST /api/v1/trades/orders", func(w http.ResponseWriter, r *http.Request) {
		var input CreateOrderInput
		json.NewDecoder(r.Body).Decode(&input)
		s.mu.Lock()
		order := Order{
			ID:           "o-new",
			AssetID:      input.AssetID,
			OrderType:    input.OrderType,
			Quantity:     input.Quantity,
			PricePerUnit: input.PricePerUnit,
			Status:       "pending",
		}
		s.orders = append(s.orders, order)
		s.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"data": order})
	})
	mux.HandleFunc("DELETE /api/v1/trades/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		for i := range s.orders {
			if s.orders[i].ID == r.PathValue("id") {
				s.orders[i].Status = "cancelled"
			}
		}
		s.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]bool{"cancelled": true}})
	})
	return mux
}

func TestPortfolio_CreateOrderInvalidatesListing(t *testing.T) {
	backend := &portfolioServer{orders: []Order{{ID: "o1", Status: "pending"}}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := NewClient(srv.URL, NewMemorySessionStore())
	cache := NewCache(time.Minute)
	p := NewPortfolio(client, cache, nil)

	orders, err := p.ListOrders(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	_, err = p.CreateOrder(context.Background(), CreateOrderInput{
		AssetID:      "a1",
		OrderType:    "buy",
		Quantity:     2,
		PricePerUnit: 350,
	})
	require.NoError(t, err)

	// Refetch happens without any reload: the create invalidated the
	// orders resource.
	orders, err = p.ListOrders(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestPortfolio_SummaryKeyDoesNotAliasListFilters(t *testing.T) {
	backend := &portfolioServer{assets: []Asset{
		{ID: "a1", AssetType: "gold", Weight: 10, CurrentPrice: 60},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := NewClient(srv.URL, NewMemorySessionStore())
	cache := NewCache(time.Minute)
	p := NewPortfolio(client, cache, nil)

	summary, err := p.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalAssets)

	// A caller is free to use any filter values, including ones that
	// look like internal view names. Both results stay well-typed.
	assets, err := p.ListAssets(context.Background(), map[string]string{"view": "summary"})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "gold", assets[0].AssetType)

	summary, err = p.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalAssets)
}

func TestPortfolio_CreateAssetInvalidatesSummary(t *testing.T) {
	backend := &portfolioServer{assets: []Asset{
		{ID: "a1", AssetType: "gold", Weight: 10, CurrentPrice: 60},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := NewClient(srv.URL, NewMemorySessionStore())
	cache := NewCache(time.Minute)
	p := NewPortfolio(client, cache, nil)

	summary, err := p.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), summary.TotalAssets)

	_, err = p.CreateAsset(context.Background(), CreateAssetInput{
		AssetType:    "silver",
		Weight:       5,
		Purity:       92.5,
		CurrentPrice: 20,
	})
	require.NoError(t, err)

	summary, err = p.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalAssets, "summary refetched with its base resource")
}

func TestPortfolio_Me(t *testing.T) {
	backend := &portfolioServer{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := NewClient(srv.URL, NewMemorySessionStore())
	p := NewPortfolio(client, NewCache(time.Minute), nil)

	me, err := p.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", me.ID)
	assert.NotEmpty(t, me.WalletAddress)
}

// denyConfirmer declines every destructive mutation.
type denyConfirmer struct{}

func (denyConfirmer) Confirm(string) bool { return false }

func TestPortfolio_CancelOrderGatedByConfirmer(t *testing.T) {
	backend := &portfolioServer{orders: []Order{{ID: "o1", Status: "pending"}}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := NewClient(srv.URL, NewMemorySessionStore())
	p := NewPortfolio(client, NewCache(time.Minute), denyConfirmer{})

	err := p.CancelOrder(context.Background(), "o1")
	require.ErrorIs(t, err, ErrAborted)

	// Nothing was dispatched: the order is still pending.
	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, "pending", backend.orders[0].Status)
}

func TestPortfolio_CancelOrderConfirmed(t *testing.T) {
	backend := &portfolioServer{orders: []Order{{ID: "o1", Status: "pending"}}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := NewClient(srv.URL, NewMemorySessionStore())
	p := NewPortfolio(client, NewCache(time.Minute), AutoConfirm{})

	require.NoError(t, p.CancelOrder(context.Background(), "o1"))

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, "cancelled", backend.orders[0].Status)
}
