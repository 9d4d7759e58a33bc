package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpHandler "github.com/VWA-XRPL/VWA-XRPL/internal/adapter/http/handler"
	redisStorage "github.com/VWA-XRPL/VWA-XRPL/internal/adapter/storage/redis"
	"github.com/VWA-XRPL/VWA-XRPL/internal/chain"
	"github.com/VWA-XRPL/VWA-XRPL/internal/service"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds the full application stack: real HTTP layer,
// middleware, handlers and services over in-memory repos and miniredis.

type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	marketCache := redisStorage.NewMarketCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	userRepo := newInMemoryUserRepo()
	assetRepo := newInMemoryAssetRepo()
	orderRepo := newInMemoryOrderRepo()
	historyRepo := newInMemoryHistoryRepo(assetRepo)
	transactor := newInMemoryTransactor()

	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", "HS256", 24*time.Hour, "test-issuer")
	tokenizer := chain.NewAddressDeriver("test-program")

	log := logger.New("debug", false)
	userSvc := service.NewUserService(userRepo, tokenSvc, log)
	assetSvc := service.NewAssetService(assetRepo, userRepo, orderRepo, historyRepo, tokenizer, log)
	tradeSvc := service.NewTradeService(orderRepo, assetRepo, log)
	pricingSvc := service.NewPricingService(assetRepo, historyRepo, marketCache, nil, transactor, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		UserSvc:        userSvc,
		AssetSvc:       assetSvc,
		TradeSvc:       tradeSvc,
		PricingSvc:     pricingSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		Logger:         log,
	})

	server := httptest.NewServer(router)

	return &testApp{
		server: server,
		redis:  mr,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

// login authenticates a wallet and returns the bearer token.
func (a *testApp) login(t *testing.T, wallet string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"wallet_address": wallet})
	resp, err := http.Post(a.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NotEmpty(t, envelope.Data.Token)
	return envelope.Data.Token
}

// request performs an authenticated JSON request and decodes the data
// envelope into out (when non-nil).
func (a *testApp) request(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		envelope := struct {
			Data any `json:"data"`
		}{Data: out}
		require.NoError(t, json.Unmarshal(raw, &envelope), string(raw))
	}
	return resp.StatusCode
}

const (
	walletAlice = "GCEZWKCA5VLDNRLN3RPRJMRZOX3Z6G5CHCGSNFHEYVXM3XOJMDS674JZ"
	walletBob   = "GDRXE2BQUC3AZNPVFSCEZ76NJ3WWL25FYFK6RGZGIEKWE4SOOHSUJUJ6"
)

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_DemoStub(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/api/assets")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"name":"Tokenized Asset","value":"1000 USD"}]`, string(raw))
}

func TestIntegration_WalletLogin(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	// First login creates the account.
	body, _ := json.Marshal(map[string]string{"wallet_address": walletAlice})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var first struct {
		Data struct {
			Created bool `json:"created"`
			User    struct {
				ID string `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&first))
	assert.True(t, first.Data.Created)

	// Second login finds the same account.
	resp2, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp2.Body.Close()

	var second struct {
		Data struct {
			Created bool `json:"created"`
			User    struct {
				ID string `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&second))
	assert.False(t, second.Data.Created)
	assert.Equal(t, first.Data.User.ID, second.Data.User.ID)
}

func TestIntegration_AssetLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.login(t, walletAlice)

	// Unauthenticated create is rejected.
	code := app.request(t, http.MethodPost, "/api/v1/assets", "", map[string]any{
		"asset_type": "gold", "weight": 10.0, "purity": 99.9, "current_price": 65.0,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// Tokenize an asset; a mint address is derived on creation.
	var asset struct {
		ID          string  `json:"id"`
		TotalValue  float64 `json:"total_value"`
		MintAddress *string `json:"mint_address"`
	}
	code = app.request(t, http.MethodPost, "/api/v1/assets", token, map[string]any{
		"asset_type": "gold", "weight": 10.0, "purity": 99.9, "current_price": 65.0,
	}, &asset)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, float64(650), asset.TotalValue)
	require.NotNil(t, asset.MintAddress)
	assert.NotEmpty(t, *asset.MintAddress)

	// Listing sees it; soft delete hides it from the active view.
	var assets []struct {
		ID string `json:"id"`
	}
	code = app.request(t, http.MethodGet, "/api/v1/assets?is_active=true", token, nil, &assets)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, assets, 1)

	code = app.request(t, http.MethodDelete, "/api/v1/assets/"+asset.ID, token, nil, nil)
	require.Equal(t, http.StatusOK, code)

	code = app.request(t, http.MethodGet, "/api/v1/assets?is_active=true", token, nil, &assets)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, assets, 0)
}

func TestIntegration_OrderExecution(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	alice := app.login(t, walletAlice)
	bob := app.login(t, walletBob)

	var asset struct {
		ID string `json:"id"`
	}
	code := app.request(t, http.MethodPost, "/api/v1/assets", alice, map[string]any{
		"asset_type": "silver", "weight": 100.0, "purity": 92.5, "current_price": 0.85,
	}, &asset)
	require.Equal(t, http.StatusCreated, code)

	var order struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	code = app.request(t, http.MethodPost, "/api/v1/trades/orders", alice, map[string]any{
		"asset_id": asset.ID, "order_type": "sell", "quantity": 50.0, "price_per_unit": 0.9,
	}, &order)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "pending", order.Status)

	// The owner cannot fill their own order.
	code = app.request(t, http.MethodPost, fmt.Sprintf("/api/v1/trades/orders/%s/execute", order.ID), alice, nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// A counterparty can.
	code = app.request(t, http.MethodPost, fmt.Sprintf("/api/v1/trades/orders/%s/execute", order.ID), bob, nil, nil)
	require.Equal(t, http.StatusOK, code)

	var fetched struct {
		Status string `json:"status"`
	}
	code = app.request(t, http.MethodGet, "/api/v1/trades/orders/"+order.ID, bob, nil, &fetched)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "filled", fetched.Status)

	// A filled order cannot be executed again.
	code = app.request(t, http.MethodPost, fmt.Sprintf("/api/v1/trades/orders/%s/execute", order.ID), bob, nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestIntegration_MarketSummaryAndPricing(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.login(t, walletAlice)

	code := app.request(t, http.MethodPost, "/api/v1/assets", token, map[string]any{
		"asset_type": "gold", "weight": 10.0, "purity": 99.9, "current_price": 60.0,
	}, nil)
	require.Equal(t, http.StatusCreated, code)
	code = app.request(t, http.MethodPost, "/api/v1/assets", token, map[string]any{
		"asset_type": "silver", "weight": 5.0, "purity": 92.5, "current_price": 20.0,
	}, nil)
	require.Equal(t, http.StatusCreated, code)

	var summary struct {
		TotalAssets int64   `json:"total_assets"`
		TotalValue  float64 `json:"total_value"`
	}
	code = app.request(t, http.MethodGet, "/api/v1/assets/market/summary", token, nil, &summary)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(2), summary.TotalAssets)
	assert.Equal(t, float64(700), summary.TotalValue)

	// Spot prices come from the base table when no feed is configured.
	var prices []struct {
		AssetType string  `json:"asset_type"`
		Price     float64 `json:"price"`
	}
	code = app.request(t, http.MethodGet, "/api/v1/pricing/market", token, nil, &prices)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, prices, 8)
	for _, p := range prices {
		assert.Greater(t, p.Price, float64(0), p.AssetType)
	}
}

func TestIntegration_RateLimitHeaders(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	body, _ := json.Marshal(map[string]string{"wallet_address": walletAlice})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "10", resp.Header.Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Remaining"))
}
