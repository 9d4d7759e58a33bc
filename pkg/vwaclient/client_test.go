package vwaclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_AttachesBearerWhenCredentialExists(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	session := NewMemorySessionStore()
	session.SetToken("tok-123")
	c := NewClient(srv.URL, session)

	_, err := c.Do(context.Background(), "GET", "/api/v1/users/me", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDo_NoBearerWithoutCredential(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, NewMemorySessionStore())

	_, err := c.Do(context.Background(), "GET", "/", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDo_Unauthorized_ClearsOnceAndSignalsOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"AUTH_002"}}`))
	}))
	defer srv.Close()

	session := NewMemorySessionStore()
	session.SetToken("tok-123")

	var signals, clears int32
	tracking := &trackingStore{inner: session, clears: &clears}
	c := NewClient(srv.URL, tracking, WithOnSessionInvalid(func() {
		atomic.AddInt32(&signals, 1)
	}))

	_, err := c.Do(context.Background(), "GET", "/api/v1/users/me", nil)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&clears), "credential cleared exactly once")
	assert.Equal(t, int32(1), atomic.LoadInt32(&signals), "session-invalidated signalled exactly once")
	assert.Empty(t, session.Token())
}

// trackingStore counts Clear calls on the wrapped store.
type trackingStore struct {
	inner  SessionStore
	clears *int32
}

func (s *trackingStore) Token() string         { return s.inner.Token() }
func (s *trackingStore) SetToken(token string) { s.inner.SetToken(token) }
func (s *trackingStore) Clear() {
	atomic.AddInt32(s.clears, 1)
	s.inner.Clear()
}

func TestDo_NetworkError(t *testing.T) {
	// Closed server => transport failure, no response.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, NewMemorySessionStore())

	_, err := c.Do(context.Background(), "GET", "/", nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestDo_HTTPError_CarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"code":"USER_001"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, NewMemorySessionStore())

	_, err := c.Do(context.Background(), "POST", "/api/v1/users", map[string]string{"wallet_address": "x"})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Contains(t, string(httpErr.Body), "USER_001")
}

func TestCall_SchemaError_OnShapeMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":"not-an-object"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, NewMemorySessionStore())

	_, err := Call[MarketSummary](context.Background(), c, EpAssetSummary, nil, nil)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, EpAssetSummary, schemaErr.Endpoint)
}

func TestCall_UnknownEndpoint(t *testing.T) {
	c := NewClient("http://localhost", NewMemorySessionStore())

	_, err := Call[Asset](context.Background(), c, "assets.nope", nil, nil)
	require.Error(t, err)
	var schemaErr *SchemaError
	assert.False(t, errors.As(err, &schemaErr))
}

func TestEndpointRender(t *testing.T) {
	ep, ok := Lookup(EpOrderExecute)
	require.True(t, ok)
	assert.Equal(t, "/api/v1/trades/orders/abc-123/execute", ep.Render(map[string]string{"id": "abc-123"}))
}

func TestRegistry_CoversAllOperations(t *testing.T) {
	names := []string{
		EpAuthLogin, EpUserCreate, EpUserMe, EpUserGet, EpUserList,
		EpAssetCreate, EpAssetList, EpAssetGet, EpAssetUpdate, EpAssetDelete, EpAssetSummary,
		EpOrderCreate, EpOrderList, EpOrderGet, EpOrderUpdate, EpOrderCancel, EpOrderExecute,
		EpPricingMarket, EpPricingMarketByType, EpPricingHistoryCreate,
		EpPricingHistory, EpPricingUpdate, EpPricingTrends,
	}
	for _, name := range names {
		_, ok := Lookup(name)
		assert.True(t, ok, name)
	}
}

func TestDo_StubEndpoint_ExactShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/assets" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":1,"name":"Tokenized Asset","value":"1000 USD"}]`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, NewMemorySessionStore())

	body, err := c.Do(context.Background(), "GET", "/api/assets", nil)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"name":"Tokenized Asset","value":"1000 USD"}]`, string(body))
}
